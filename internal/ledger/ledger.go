package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/codehasanali/mywallet/internal/domain"
	"github.com/codehasanali/mywallet/internal/infrastructure/metrics"
)

// Ledger is the authoritative owner of wallet state: running aggregates
// (balance, income, expense), the ordered transaction log, and per-category
// limits. Every mutation commits in memory first and then persists the full
// state to the store; a persist failure is logged and counted but never rolls
// the mutation back.
type Ledger struct {
	mu sync.Mutex

	store   Store
	idGen   IDGenerator
	policy  LimitPolicy
	logger  zerolog.Logger
	metrics *metrics.Metrics

	balance decimal.Decimal
	income  decimal.Decimal
	expense decimal.Decimal
	entries []domain.Transaction
	limits  []domain.CategoryLimit

	observers    map[int]func(Snapshot)
	nextObserver int
}

// Snapshot is a read-only copy of the ledger state.
type Snapshot struct {
	Balance        decimal.Decimal
	Income         decimal.Decimal
	Expense        decimal.Decimal
	Transactions   []domain.Transaction
	CategoryLimits []domain.CategoryLimit
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithLimitPolicy sets the category limit enforcement policy.
func WithLimitPolicy(p LimitPolicy) Option {
	return func(l *Ledger) { l.policy = p }
}

// WithLogger sets the logger used for persist and load diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(l *Ledger) { l.logger = logger }
}

// WithMetrics enables wallet metrics recording.
func WithMetrics(m *metrics.Metrics) Option {
	return func(l *Ledger) { l.metrics = m }
}

// New creates a Ledger in its zero/default state. Call Load to rehydrate
// prior sessions from the store before relying on the aggregates.
func New(store Store, idGen IDGenerator, opts ...Option) *Ledger {
	l := &Ledger{
		store:     store,
		idGen:     idGen,
		policy:    LimitPerEntry,
		logger:    zerolog.Nop(),
		balance:   decimal.Zero,
		income:    decimal.Zero,
		expense:   decimal.Zero,
		limits:    domain.DefaultCategoryLimits(),
		observers: make(map[int]func(Snapshot)),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// AddTransaction records a transaction. Expense categories are checked
// against their limit first; a rejected transaction leaves all state
// untouched and returns domain.ErrLimitExceeded. An empty ID is filled in
// from the ID generator.
func (l *Ledger) AddTransaction(ctx context.Context, tx domain.Transaction) (domain.Transaction, error) {
	l.mu.Lock()

	if err := l.checkLimitLocked(tx); err != nil {
		l.mu.Unlock()
		if l.metrics != nil {
			l.metrics.TransactionsRejected.WithLabelValues("limit_exceeded").Inc()
		}
		return domain.Transaction{}, err
	}

	if tx.ID == "" {
		tx.ID = l.idGen.Generate()
	}

	l.applyLocked(tx)
	l.persistLocked(ctx)

	snap, subs := l.commitLocked()
	l.mu.Unlock()

	if l.metrics != nil {
		l.metrics.TransactionsAdded.WithLabelValues(directionLabel(tx)).Inc()
	}

	notify(subs, snap)
	return tx, nil
}

// AddIncomeInput carries the caller-supplied fields of an income entry.
type AddIncomeInput struct {
	Name   string
	Amount decimal.Decimal
	Date   time.Time
}

// AddIncome records an income entry. No limit applies; the call always
// succeeds once the input has passed presentation-layer validation.
func (l *Ledger) AddIncome(ctx context.Context, input AddIncomeInput) (domain.Transaction, error) {
	tx := domain.Transaction{
		ID:       l.idGen.Generate(),
		Name:     input.Name,
		Amount:   input.Amount,
		Category: domain.IncomeCategory,
		Date:     input.Date,
	}

	l.mu.Lock()
	l.applyLocked(tx)
	l.persistLocked(ctx)
	snap, subs := l.commitLocked()
	l.mu.Unlock()

	if l.metrics != nil {
		l.metrics.TransactionsAdded.WithLabelValues("income").Inc()
	}

	notify(subs, snap)
	return tx, nil
}

// Remove deletes the transaction with the given ID and reverses its effect
// on the aggregates.
func (l *Ledger) Remove(ctx context.Context, id string) (domain.Transaction, error) {
	l.mu.Lock()

	index := -1
	for i, tx := range l.entries {
		if tx.ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		l.mu.Unlock()
		return domain.Transaction{}, fmt.Errorf("%w: %s", domain.ErrTransactionNotFound, id)
	}

	return l.removeLocked(ctx, index)
}

// RemoveAt deletes the transaction at a zero-based position in the current
// log. It exists for callers that still hold positional references; Remove
// by ID is the primary path.
func (l *Ledger) RemoveAt(ctx context.Context, index int) (domain.Transaction, error) {
	l.mu.Lock()

	if index < 0 || index >= len(l.entries) {
		l.mu.Unlock()
		return domain.Transaction{}, fmt.Errorf("%w: %d", domain.ErrIndexOutOfRange, index)
	}

	return l.removeLocked(ctx, index)
}

// removeLocked removes entries[index], persists and notifies.
// The caller must hold the lock; removeLocked releases it.
func (l *Ledger) removeLocked(ctx context.Context, index int) (domain.Transaction, error) {
	removed := l.entries[index]
	l.entries = append(l.entries[:index], l.entries[index+1:]...)

	if removed.IsIncome() {
		l.income = l.income.Sub(removed.Amount)
		l.balance = l.balance.Sub(removed.Amount)
	} else {
		l.expense = l.expense.Sub(removed.Amount)
		l.balance = l.balance.Add(removed.Amount)
	}

	l.persistLocked(ctx)
	snap, subs := l.commitLocked()
	l.mu.Unlock()

	if l.metrics != nil {
		l.metrics.TransactionsRemoved.Inc()
	}

	notify(subs, snap)
	return removed, nil
}

// UpdateCategoryLimit overwrites the limit for an existing category or
// appends a new entry. The limit must be non-negative.
func (l *Ledger) UpdateCategoryLimit(ctx context.Context, category string, limit decimal.Decimal) error {
	if limit.IsNegative() {
		return domain.ErrNegativeLimit
	}

	l.mu.Lock()

	found := false
	for i := range l.limits {
		if l.limits[i].Name == category {
			l.limits[i].Limit = limit
			found = true
			break
		}
	}
	if !found {
		l.limits = append(l.limits, domain.CategoryLimit{Name: category, Limit: limit})
	}

	l.persistLocked(ctx)
	snap, subs := l.commitLocked()
	l.mu.Unlock()

	if l.metrics != nil {
		l.metrics.LimitUpdates.Inc()
	}

	notify(subs, snap)
	return nil
}

// Load replaces the in-memory state wholesale from the store. Absent or
// unparsable numeric keys become zero, an invalid transaction log becomes
// empty, and absent limits fall back to the defaults. Only a store transport
// failure is returned; in that case the current state stays untouched.
func (l *Ledger) Load(ctx context.Context) error {
	balance, err := l.loadDecimal(ctx, KeyBalance)
	if err != nil {
		return err
	}
	income, err := l.loadDecimal(ctx, KeyIncome)
	if err != nil {
		return err
	}
	expense, err := l.loadDecimal(ctx, KeyExpense)
	if err != nil {
		return err
	}

	entries := []domain.Transaction{}
	raw, err := l.store.Get(ctx, KeyExpenses)
	l.recordStoreOp("get", err)
	switch {
	case err == nil:
		if uerr := json.Unmarshal([]byte(raw), &entries); uerr != nil {
			l.logger.Warn().Err(uerr).Msg("stored transaction log is invalid, starting empty")
			entries = []domain.Transaction{}
		}
	case errors.Is(err, ErrKeyNotFound):
	default:
		l.logger.Error().Err(err).Str("key", KeyExpenses).Msg("load failed")
		return err
	}

	limits := domain.DefaultCategoryLimits()
	raw, err = l.store.Get(ctx, KeyCategoryLimits)
	l.recordStoreOp("get", err)
	switch {
	case err == nil:
		var stored []domain.CategoryLimit
		if uerr := json.Unmarshal([]byte(raw), &stored); uerr != nil {
			l.logger.Warn().Err(uerr).Msg("stored category limits are invalid, using defaults")
		} else {
			limits = stored
		}
	case errors.Is(err, ErrKeyNotFound):
	default:
		l.logger.Error().Err(err).Str("key", KeyCategoryLimits).Msg("load failed")
		return err
	}

	l.mu.Lock()
	l.balance = balance
	l.income = income
	l.expense = expense
	l.entries = entries
	l.limits = limits
	snap, subs := l.commitLocked()
	l.mu.Unlock()

	notify(subs, snap)
	return nil
}

// Clear erases the ledger's keys from the store and resets the in-memory
// state to its zero/default values. The reset happens even when the store
// delete fails; the error is reported so callers can surface it.
func (l *Ledger) Clear(ctx context.Context) error {
	err := l.store.Delete(ctx, StorageKeys()...)
	l.recordStoreOp("delete", err)
	if err != nil {
		l.logger.Error().Err(err).Msg("failed to erase stored wallet data")
	}

	l.mu.Lock()
	l.balance = decimal.Zero
	l.income = decimal.Zero
	l.expense = decimal.Zero
	l.entries = nil
	l.limits = domain.DefaultCategoryLimits()
	snap, subs := l.commitLocked()
	l.mu.Unlock()

	notify(subs, snap)
	return err
}

// Snapshot returns a copy of the current ledger state.
func (l *Ledger) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

// applyLocked appends a transaction and updates the running aggregates.
func (l *Ledger) applyLocked(tx domain.Transaction) {
	l.entries = append(l.entries, tx)

	if tx.IsIncome() {
		l.income = l.income.Add(tx.Amount)
		l.balance = l.balance.Add(tx.Amount)
	} else {
		l.expense = l.expense.Add(tx.Amount)
		l.balance = l.balance.Sub(tx.Amount)
	}
}

// persistLocked writes all five state keys to the store. Failures are soft:
// in-memory state stays authoritative for the rest of the session.
func (l *Ledger) persistLocked(ctx context.Context) {
	entriesJSON, err := json.Marshal(l.entriesOrEmptyLocked())
	if err != nil {
		l.persistFailed(KeyExpenses, err)
		return
	}
	limitsJSON, err := json.Marshal(l.limits)
	if err != nil {
		l.persistFailed(KeyCategoryLimits, err)
		return
	}

	values := map[string]string{
		KeyBalance:        l.balance.String(),
		KeyIncome:         l.income.String(),
		KeyExpense:        l.expense.String(),
		KeyExpenses:       string(entriesJSON),
		KeyCategoryLimits: string(limitsJSON),
	}

	for _, key := range StorageKeys() {
		err := l.store.Set(ctx, key, values[key])
		l.recordStoreOp("set", err)
		if err != nil {
			l.persistFailed(key, err)
		}
	}
}

// recordStoreOp counts a store round-trip. Absent keys are not errors.
func (l *Ledger) recordStoreOp(op string, err error) {
	if l.metrics == nil {
		return
	}
	l.metrics.StoreOperations.WithLabelValues(op).Inc()
	if err != nil && !errors.Is(err, ErrKeyNotFound) {
		l.metrics.StoreErrors.WithLabelValues(op).Inc()
	}
}

func (l *Ledger) persistFailed(key string, err error) {
	l.logger.Error().Err(err).Str("key", key).Msg("persist failed, in-memory state remains authoritative")
	if l.metrics != nil {
		l.metrics.PersistFailures.Inc()
	}
}

// loadDecimal reads a numeric key, treating absence and parse failures as zero.
func (l *Ledger) loadDecimal(ctx context.Context, key string) (decimal.Decimal, error) {
	raw, err := l.store.Get(ctx, key)
	l.recordStoreOp("get", err)
	if errors.Is(err, ErrKeyNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		l.logger.Error().Err(err).Str("key", key).Msg("load failed")
		return decimal.Zero, err
	}

	value, perr := decimal.NewFromString(raw)
	if perr != nil {
		l.logger.Warn().Str("key", key).Str("value", raw).Msg("stored value is not numeric, using zero")
		return decimal.Zero, nil
	}
	return value, nil
}

func (l *Ledger) entriesOrEmptyLocked() []domain.Transaction {
	if l.entries == nil {
		return []domain.Transaction{}
	}
	return l.entries
}

func (l *Ledger) snapshotLocked() Snapshot {
	entries := make([]domain.Transaction, len(l.entries))
	copy(entries, l.entries)
	limits := make([]domain.CategoryLimit, len(l.limits))
	copy(limits, l.limits)

	return Snapshot{
		Balance:        l.balance,
		Income:         l.income,
		Expense:        l.expense,
		Transactions:   entries,
		CategoryLimits: limits,
	}
}

func directionLabel(tx domain.Transaction) string {
	if tx.IsIncome() {
		return "income"
	}
	return "expense"
}
