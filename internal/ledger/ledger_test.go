package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/codehasanali/mywallet/internal/domain"
	"github.com/codehasanali/mywallet/internal/ledger"
	"github.com/codehasanali/mywallet/internal/ledger/mocks"
)

func newTestLedger(opts ...ledger.Option) (*ledger.Ledger, *mocks.MockStore) {
	store := mocks.NewMockStore()
	return ledger.New(store, mocks.NewMockIDGenerator(), opts...), store
}

func domainTx(name string, amount int64, category string) domain.Transaction {
	return domain.Transaction{
		Name:     name,
		Amount:   decimal.NewFromInt(amount),
		Category: category,
		Date:     time.Now(),
	}
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("bad test date %q: %v", value, err)
	}
	return d
}

func assertInvariant(t *testing.T, snap ledger.Snapshot) {
	t.Helper()
	if !snap.Balance.Equal(snap.Income.Sub(snap.Expense)) {
		t.Fatalf("invariant violated: balance=%s income=%s expense=%s",
			snap.Balance, snap.Income, snap.Expense)
	}
}

func TestLedgerScenario(t *testing.T) {
	// The canonical flow: salary in, lunch out, oversized trip rejected.
	l, _ := newTestLedger()
	ctx := context.Background()

	salary, err := l.AddIncome(ctx, ledger.AddIncomeInput{
		Name:   "Salary",
		Amount: decimal.NewFromInt(1000),
		Date:   mustDate(t, "2024-01-05T00:00:00Z"),
	})
	if err != nil {
		t.Fatalf("AddIncome failed: %v", err)
	}
	if salary.ID == "" {
		t.Error("expected generated transaction ID")
	}

	snap := l.Snapshot()
	assertInvariant(t, snap)
	if !snap.Income.Equal(decimal.NewFromInt(1000)) || !snap.Balance.Equal(decimal.NewFromInt(1000)) || !snap.Expense.IsZero() {
		t.Fatalf("after income: balance=%s income=%s expense=%s", snap.Balance, snap.Income, snap.Expense)
	}
	if len(snap.Transactions) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(snap.Transactions))
	}

	_, err = l.AddTransaction(ctx, domain.Transaction{
		Name:     "Lunch",
		Amount:   decimal.NewFromInt(50),
		Category: "Dışarıda Yemek",
		Date:     mustDate(t, "2024-01-06T00:00:00Z"),
	})
	if err != nil {
		t.Fatalf("AddTransaction failed: %v", err)
	}

	snap = l.Snapshot()
	assertInvariant(t, snap)
	if !snap.Expense.Equal(decimal.NewFromInt(50)) || !snap.Balance.Equal(decimal.NewFromInt(950)) || !snap.Income.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("after lunch: balance=%s income=%s expense=%s", snap.Balance, snap.Income, snap.Expense)
	}

	// Tatil's default limit is 1000; a 2000 trip must be rejected untouched.
	_, err = l.AddTransaction(ctx, domain.Transaction{
		Name:     "BigTrip",
		Amount:   decimal.NewFromInt(2000),
		Category: "Tatil",
		Date:     mustDate(t, "2024-01-07T00:00:00Z"),
	})
	if !errors.Is(err, domain.ErrLimitExceeded) {
		t.Fatalf("expected ErrLimitExceeded, got %v", err)
	}

	snap = l.Snapshot()
	assertInvariant(t, snap)
	if !snap.Expense.Equal(decimal.NewFromInt(50)) || !snap.Balance.Equal(decimal.NewFromInt(950)) {
		t.Fatalf("rejected transaction changed state: balance=%s expense=%s", snap.Balance, snap.Expense)
	}
	if len(snap.Transactions) != 2 {
		t.Fatalf("expected 2 transactions after rejection, got %d", len(snap.Transactions))
	}
}

func TestLedgerLimitEnforcement(t *testing.T) {
	tests := []struct {
		name     string
		policy   ledger.LimitPolicy
		existing int64 // prior spend in the category
		amount   int64
		rejected bool
	}{
		{name: "per-entry under limit", policy: ledger.LimitPerEntry, amount: 300, rejected: false},
		{name: "per-entry at limit", policy: ledger.LimitPerEntry, amount: 400, rejected: false},
		{name: "per-entry over limit", policy: ledger.LimitPerEntry, amount: 401, rejected: true},
		{name: "per-entry ignores prior spend", policy: ledger.LimitPerEntry, existing: 350, amount: 300, rejected: false},
		{name: "cumulative counts prior spend", policy: ledger.LimitCumulative, existing: 350, amount: 100, rejected: true},
		{name: "cumulative under limit", policy: ledger.LimitCumulative, existing: 100, amount: 200, rejected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, _ := newTestLedger(ledger.WithLimitPolicy(tt.policy))
			ctx := context.Background()

			if tt.existing > 0 {
				// Seed prior spend in chunks small enough to pass either policy.
				remaining := tt.existing
				for remaining > 0 {
					chunk := remaining
					if chunk > 100 {
						chunk = 100
					}
					if _, err := l.AddTransaction(ctx, domain.Transaction{
						Name:     "seed",
						Amount:   decimal.NewFromInt(chunk),
						Category: "Alışveriş", // default limit 400
						Date:     time.Now(),
					}); err != nil {
						t.Fatalf("seeding failed: %v", err)
					}
					remaining -= chunk
				}
			}

			before := l.Snapshot()
			_, err := l.AddTransaction(ctx, domain.Transaction{
				Name:     "purchase",
				Amount:   decimal.NewFromInt(tt.amount),
				Category: "Alışveriş",
				Date:     time.Now(),
			})

			if tt.rejected {
				if !errors.Is(err, domain.ErrLimitExceeded) {
					t.Fatalf("expected ErrLimitExceeded, got %v", err)
				}
				after := l.Snapshot()
				if !after.Expense.Equal(before.Expense) || !after.Balance.Equal(before.Balance) || len(after.Transactions) != len(before.Transactions) {
					t.Error("rejected transaction must leave state unchanged")
				}
			} else if err != nil {
				t.Fatalf("unexpected rejection: %v", err)
			}

			assertInvariant(t, l.Snapshot())
		})
	}
}

func TestLedgerUncappedCategory(t *testing.T) {
	l, _ := newTestLedger()

	_, err := l.AddTransaction(context.Background(), domain.Transaction{
		Name:     "new laptop",
		Amount:   decimal.NewFromInt(50000),
		Category: "Elektronik", // no default limit
		Date:     time.Now(),
	})
	if err != nil {
		t.Fatalf("category without a limit must be uncapped: %v", err)
	}
}

func TestLedgerRemovalSymmetry(t *testing.T) {
	l, _ := newTestLedger()
	ctx := context.Background()

	if _, err := l.AddIncome(ctx, ledger.AddIncomeInput{Name: "Salary", Amount: decimal.NewFromInt(1000), Date: time.Now()}); err != nil {
		t.Fatal(err)
	}
	if _, err := l.AddTransaction(ctx, domain.Transaction{Name: "Gym", Amount: decimal.NewFromInt(80), Category: "Spor", Date: time.Now()}); err != nil {
		t.Fatal(err)
	}

	before := l.Snapshot()

	tx, err := l.AddTransaction(ctx, domain.Transaction{Name: "Taxi", Amount: decimal.NewFromInt(45), Category: "Ulaşım", Date: time.Now()})
	if err != nil {
		t.Fatal(err)
	}

	removed, err := l.Remove(ctx, tx.ID)
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if removed.ID != tx.ID {
		t.Errorf("removed wrong transaction: %s", removed.ID)
	}

	after := l.Snapshot()
	assertInvariant(t, after)
	if !after.Balance.Equal(before.Balance) || !after.Income.Equal(before.Income) || !after.Expense.Equal(before.Expense) {
		t.Errorf("add+remove did not restore aggregates: before balance=%s after=%s", before.Balance, after.Balance)
	}
	if len(after.Transactions) != len(before.Transactions) {
		t.Errorf("expected %d transactions, got %d", len(before.Transactions), len(after.Transactions))
	}
}

func TestLedgerRemoveIncomeEntry(t *testing.T) {
	l, _ := newTestLedger()
	ctx := context.Background()

	tx, err := l.AddIncome(ctx, ledger.AddIncomeInput{Name: "Bonus", Amount: decimal.NewFromInt(250), Date: time.Now()})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := l.Remove(ctx, tx.ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	snap := l.Snapshot()
	assertInvariant(t, snap)
	if !snap.Income.IsZero() || !snap.Balance.IsZero() {
		t.Errorf("removing income must reverse income and balance: income=%s balance=%s", snap.Income, snap.Balance)
	}
}

func TestLedgerRemoveErrors(t *testing.T) {
	l, _ := newTestLedger()
	ctx := context.Background()

	if _, err := l.Remove(ctx, "missing"); !errors.Is(err, domain.ErrTransactionNotFound) {
		t.Errorf("expected ErrTransactionNotFound, got %v", err)
	}

	if _, err := l.RemoveAt(ctx, 0); !errors.Is(err, domain.ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange on empty log, got %v", err)
	}
	if _, err := l.RemoveAt(ctx, -1); !errors.Is(err, domain.ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange for negative index, got %v", err)
	}
}

func TestLedgerRemoveAt(t *testing.T) {
	l, _ := newTestLedger()
	ctx := context.Background()

	first, _ := l.AddTransaction(ctx, domain.Transaction{Name: "a", Amount: decimal.NewFromInt(10), Category: "Diğer", Date: time.Now()})
	second, _ := l.AddTransaction(ctx, domain.Transaction{Name: "b", Amount: decimal.NewFromInt(20), Category: "Diğer", Date: time.Now()})

	removed, err := l.RemoveAt(ctx, 0)
	if err != nil {
		t.Fatalf("RemoveAt failed: %v", err)
	}
	if removed.ID != first.ID {
		t.Errorf("expected first entry removed, got %s", removed.Name)
	}

	snap := l.Snapshot()
	if len(snap.Transactions) != 1 || snap.Transactions[0].ID != second.ID {
		t.Error("positional removal removed the wrong entry")
	}
}

func TestLedgerUpdateCategoryLimit(t *testing.T) {
	l, _ := newTestLedger()
	ctx := context.Background()

	// Overwrite an existing category.
	if err := l.UpdateCategoryLimit(ctx, "Spor", decimal.NewFromInt(500)); err != nil {
		t.Fatal(err)
	}
	limit, ok := domain.LimitFor(l.Snapshot().CategoryLimits, "Spor")
	if !ok || !limit.Equal(decimal.NewFromInt(500)) {
		t.Errorf("Spor limit = %s, want 500", limit)
	}

	// Append a new category.
	if err := l.UpdateCategoryLimit(ctx, "Elektronik", decimal.NewFromInt(750)); err != nil {
		t.Fatal(err)
	}
	limits := l.Snapshot().CategoryLimits
	if limits[len(limits)-1].Name != "Elektronik" {
		t.Error("new category should be appended at the end")
	}

	// Negative limits are rejected.
	if err := l.UpdateCategoryLimit(ctx, "Spor", decimal.NewFromInt(-1)); !errors.Is(err, domain.ErrNegativeLimit) {
		t.Errorf("expected ErrNegativeLimit, got %v", err)
	}
}

func TestLedgerRoundTrip(t *testing.T) {
	// Simulates an app restart: a second ledger over the same store must
	// reproduce the exact state.
	store := mocks.NewMockStore()
	l := ledger.New(store, mocks.NewMockIDGenerator())
	ctx := context.Background()

	if _, err := l.AddIncome(ctx, ledger.AddIncomeInput{Name: "Salary", Amount: decimal.RequireFromString("1234.56"), Date: mustDate(t, "2024-02-01T09:30:00Z")}); err != nil {
		t.Fatal(err)
	}
	if _, err := l.AddTransaction(ctx, domain.Transaction{Name: "Groceries", Amount: decimal.RequireFromString("87.40"), Category: "Alışveriş", Date: mustDate(t, "2024-02-02T18:00:00Z")}); err != nil {
		t.Fatal(err)
	}
	if err := l.UpdateCategoryLimit(ctx, "Alışveriş", decimal.NewFromInt(600)); err != nil {
		t.Fatal(err)
	}

	want := l.Snapshot()

	restarted := ledger.New(store, mocks.NewMockIDGenerator())
	if err := restarted.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	got := restarted.Snapshot()
	assertInvariant(t, got)
	if !got.Balance.Equal(want.Balance) || !got.Income.Equal(want.Income) || !got.Expense.Equal(want.Expense) {
		t.Fatalf("round trip mismatch: got balance=%s want %s", got.Balance, want.Balance)
	}
	if len(got.Transactions) != len(want.Transactions) {
		t.Fatalf("round trip lost transactions: got %d want %d", len(got.Transactions), len(want.Transactions))
	}
	for i := range want.Transactions {
		if got.Transactions[i].ID != want.Transactions[i].ID || !got.Transactions[i].Amount.Equal(want.Transactions[i].Amount) {
			t.Errorf("transaction %d mismatch after reload", i)
		}
	}
	limit, _ := domain.LimitFor(got.CategoryLimits, "Alışveriş")
	if !limit.Equal(decimal.NewFromInt(600)) {
		t.Errorf("updated limit lost in round trip: %s", limit)
	}
}

func TestLedgerLoadIdempotence(t *testing.T) {
	store := mocks.NewMockStore()
	l := ledger.New(store, mocks.NewMockIDGenerator())
	ctx := context.Background()

	if _, err := l.AddIncome(ctx, ledger.AddIncomeInput{Name: "Salary", Amount: decimal.NewFromInt(100), Date: time.Now()}); err != nil {
		t.Fatal(err)
	}

	if err := l.Load(ctx); err != nil {
		t.Fatal(err)
	}
	first := l.Snapshot()

	if err := l.Load(ctx); err != nil {
		t.Fatal(err)
	}
	second := l.Snapshot()

	if !first.Balance.Equal(second.Balance) || !first.Income.Equal(second.Income) ||
		!first.Expense.Equal(second.Expense) || len(first.Transactions) != len(second.Transactions) {
		t.Error("consecutive loads without mutation must yield identical state")
	}
}

func TestLedgerLoadDefaults(t *testing.T) {
	tests := []struct {
		name string
		seed map[string]string
	}{
		{name: "empty store", seed: nil},
		{
			name: "unparsable numerics",
			seed: map[string]string{
				ledger.KeyBalance: "not-a-number",
				ledger.KeyIncome:  "NaNapples",
				ledger.KeyExpense: "",
			},
		},
		{
			name: "corrupt transaction log",
			seed: map[string]string{
				ledger.KeyExpenses: "{broken json",
			},
		},
		{
			name: "corrupt category limits",
			seed: map[string]string{
				ledger.KeyCategoryLimits: "[{]",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mocks.NewMockStore()
			for k, v := range tt.seed {
				store.Seed(k, v)
			}

			l := ledger.New(store, mocks.NewMockIDGenerator())
			if err := l.Load(context.Background()); err != nil {
				t.Fatalf("Load must fail soft on bad data: %v", err)
			}

			snap := l.Snapshot()
			if !snap.Balance.IsZero() || !snap.Income.IsZero() || !snap.Expense.IsZero() {
				t.Errorf("expected zero aggregates, got balance=%s", snap.Balance)
			}
			if len(snap.Transactions) != 0 {
				t.Errorf("expected empty log, got %d entries", len(snap.Transactions))
			}
			if len(snap.CategoryLimits) != len(domain.DefaultCategoryLimits()) {
				t.Errorf("expected default limits, got %d entries", len(snap.CategoryLimits))
			}
		})
	}
}

func TestLedgerLoadTransportFailure(t *testing.T) {
	store := mocks.NewMockStore()
	l := ledger.New(store, mocks.NewMockIDGenerator())
	ctx := context.Background()

	if _, err := l.AddIncome(ctx, ledger.AddIncomeInput{Name: "Salary", Amount: decimal.NewFromInt(100), Date: time.Now()}); err != nil {
		t.Fatal(err)
	}

	storeErr := errors.New("connection refused")
	store.GetFunc = func(ctx context.Context, key string) (string, error) {
		return "", storeErr
	}

	if err := l.Load(ctx); !errors.Is(err, storeErr) {
		t.Fatalf("expected transport error to surface, got %v", err)
	}

	// In-memory state stays authoritative.
	snap := l.Snapshot()
	if !snap.Income.Equal(decimal.NewFromInt(100)) {
		t.Errorf("load failure must not clobber in-memory state: income=%s", snap.Income)
	}
}

func TestLedgerPersistFailureIsSoft(t *testing.T) {
	store := mocks.NewMockStore()
	store.SetFunc = func(ctx context.Context, key, value string) error {
		return errors.New("disk full")
	}

	l := ledger.New(store, mocks.NewMockIDGenerator())

	tx, err := l.AddTransaction(context.Background(), domain.Transaction{
		Name:     "Coffee",
		Amount:   decimal.NewFromInt(5),
		Category: "Diğer",
		Date:     time.Now(),
	})
	if err != nil {
		t.Fatalf("persist failure must not fail the mutation: %v", err)
	}
	if tx.ID == "" {
		t.Error("transaction should still be committed in memory")
	}

	snap := l.Snapshot()
	if !snap.Expense.Equal(decimal.NewFromInt(5)) {
		t.Errorf("in-memory state must remain authoritative: expense=%s", snap.Expense)
	}
}

func TestLedgerClear(t *testing.T) {
	store := mocks.NewMockStore()
	l := ledger.New(store, mocks.NewMockIDGenerator())
	ctx := context.Background()

	if _, err := l.AddIncome(ctx, ledger.AddIncomeInput{Name: "Salary", Amount: decimal.NewFromInt(100), Date: time.Now()}); err != nil {
		t.Fatal(err)
	}
	if err := l.UpdateCategoryLimit(ctx, "Spor", decimal.NewFromInt(999)); err != nil {
		t.Fatal(err)
	}

	if err := l.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	snap := l.Snapshot()
	if !snap.Balance.IsZero() || !snap.Income.IsZero() || !snap.Expense.IsZero() || len(snap.Transactions) != 0 {
		t.Error("Clear must reset to the zero state")
	}
	limit, _ := domain.LimitFor(snap.CategoryLimits, "Spor")
	if !limit.Equal(decimal.NewFromInt(150)) {
		t.Errorf("Clear must restore default limits: Spor=%s", limit)
	}

	for _, key := range ledger.StorageKeys() {
		if _, ok := store.Stored(key); ok {
			t.Errorf("key %q should have been erased", key)
		}
	}
}

func TestLedgerLegacyEntriesWithoutIDs(t *testing.T) {
	// Stored JSON from older app versions has no id field.
	store := mocks.NewMockStore()
	store.Seed(ledger.KeyExpenses, `[{"name":"old","amount":"10","category":"Diğer","date":"2023-05-01T00:00:00Z"}]`)
	store.Seed(ledger.KeyBalance, "-10")
	store.Seed(ledger.KeyExpense, "10")

	l := ledger.New(store, mocks.NewMockIDGenerator())
	if err := l.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	snap := l.Snapshot()
	if len(snap.Transactions) != 1 {
		t.Fatalf("expected 1 legacy transaction, got %d", len(snap.Transactions))
	}
	if snap.Transactions[0].ID != "" {
		t.Errorf("legacy entry should keep its empty ID, got %q", snap.Transactions[0].ID)
	}
	assertInvariant(t, snap)
}

func TestParseLimitPolicy(t *testing.T) {
	tests := []struct {
		input   string
		want    ledger.LimitPolicy
		wantErr bool
	}{
		{input: "per-entry", want: ledger.LimitPerEntry},
		{input: "", want: ledger.LimitPerEntry},
		{input: "cumulative", want: ledger.LimitCumulative},
		{input: "blended", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ledger.ParseLimitPolicy(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseLimitPolicy(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseLimitPolicy(%q) = %v, %v", tt.input, got, err)
		}
	}
}
