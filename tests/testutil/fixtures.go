package testutil

import (
	"context"
	"net/http"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	adaptershttp "github.com/codehasanali/mywallet/internal/adapter/http"
	"github.com/codehasanali/mywallet/internal/adapter/http/handler"
	"github.com/codehasanali/mywallet/internal/adapter/idgen"
	redisrepo "github.com/codehasanali/mywallet/internal/adapter/repository/redis"
	"github.com/codehasanali/mywallet/internal/ledger"
)

// TestWallet wires a full wallet stack over an in-process redis.
type TestWallet struct {
	Router http.Handler
	Ledger *ledger.Ledger
	Client *goredis.Client
	Redis  *miniredis.Miniredis
}

type pingAdapter struct {
	client *goredis.Client
}

func (p pingAdapter) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

// NewTestWallet builds a router backed by miniredis. The ledger starts empty
// with default category limits.
func NewTestWallet(t *testing.T, opts ...ledger.Option) *TestWallet {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store := redisrepo.NewBalanceStore(client, "wallet")
	wallet := ledger.New(store, idgen.NewULIDGenerator(), opts...)

	router := adaptershttp.NewRouter(adaptershttp.RouterConfig{
		WalletHandler:  handler.NewWalletHandler(wallet),
		LimitHandler:   handler.NewLimitHandler(wallet),
		ReportHandler:  handler.NewReportHandler(wallet),
		SessionHandler: handler.NewSessionHandler(redisrepo.NewSessionStore(client, "wallet")),
		HealthHandler:  handler.NewHealthHandler(pingAdapter{client: client}),
		Logger:         zerolog.Nop(),
	})

	return &TestWallet{
		Router: router,
		Ledger: wallet,
		Client: client,
		Redis:  mr,
	}
}
