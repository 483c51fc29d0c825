package app

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/esposm03/my-cms/configs"
	"github.com/esposm03/my-cms/internal/events"
	"github.com/esposm03/my-cms/internal/index"
	"github.com/esposm03/my-cms/internal/migrate"
	"github.com/esposm03/my-cms/internal/telemetry"
)

// TestApp is one running instance of the service, bound to an ephemeral
// port and backed by its own logical database. Databases are not dropped
// on teardown; the cluster is assumed disposable.
type TestApp struct {
	Address string
	Pool    *pgxpool.Pool
}

func TestMain(m *testing.M) {
	if os.Getenv("TEST_LOG") != "" {
		os.Setenv("LOG_FORMAT", "json")
		os.Setenv("LOG_LEVEL", "debug")
	}
	telemetry.InitLogging()
	os.Exit(m.Run())
}

// spawnApp starts the service without blocking and returns its address.
// Each call creates a fresh uuid-named logical database and runs the
// migrations against it, so concurrent tests see disjoint state.
func spawnApp(t *testing.T) *TestApp {
	t.Helper()
	ctx := context.Background()

	cfg, err := configs.Load()
	if err != nil {
		t.Fatalf("load configuration: %v", err)
	}
	cfg.Database.DatabaseName = uuid.NewString()

	pool := configureDatabase(t, ctx, &cfg.Database)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("bind ephemeral port: %v", err)
	}

	handler, err := Router(pool, index.New(), events.NewNoop())
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	srv := &http.Server{Handler: handler}
	go func() { _ = srv.Serve(listener) }()
	t.Cleanup(func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		pool.Close()
	})

	return &TestApp{
		Address: fmt.Sprintf("http://%s", listener.Addr()),
		Pool:    pool,
	}
}

// configureDatabase creates the logical database named in cfg and
// returns a migrated pool connected to it.
func configureDatabase(t *testing.T, ctx context.Context, cfg *configs.DatabaseConfig) *pgxpool.Pool {
	t.Helper()

	conn, err := pgx.Connect(ctx, cfg.URLWithoutDB())
	if err != nil {
		t.Skipf("postgres not reachable at %s:%d: %v", cfg.Host, cfg.Port, err)
	}
	defer conn.Close(ctx)

	if _, err := conn.Exec(ctx, fmt.Sprintf(`CREATE DATABASE %q`, cfg.DatabaseName)); err != nil {
		t.Fatalf("create database: %v", err)
	}

	pool, err := pgxpool.New(ctx, cfg.URL())
	if err != nil {
		t.Fatalf("connect pool: %v", err)
	}
	if err := migrate.Run(ctx, pool, "../../migrations"); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return pool
}
