package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"taskboard/internal/cache"
	"taskboard/internal/config"
	"taskboard/internal/database"
	"taskboard/internal/worker"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func restoreGlobals() {
	loadConfig = config.Load
	newPgxPool = database.NewPgxPool
	newRedisClient = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	rollbackFn = database.RollbackAll
	startServer = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	newWorkerPool = worker.NewPool
	logOutput = os.Stderr
	exitFunc = func(code int) {}
}

func testConfig(mutate func(*config.Config)) func([]string) (*config.Config, error) {
	return func([]string) (*config.Config, error) {
		cfg := config.Default()
		cfg.Auth.JWTSecret = "secret"
		cfg.Store.DatabaseURL = "postgres://db"
		if mutate != nil {
			mutate(cfg)
		}
		return cfg, nil
	}
}

func quiet(t *testing.T) {
	logOutput = io.Discard
	t.Cleanup(restoreGlobals)
}

func TestRunSuccess(t *testing.T) {
	quiet(t)
	called := make(map[string]bool)
	loadConfig = testConfig(func(c *config.Config) {
		c.Redis.Addr = "127"
		c.Redis.Password = "pw"
		c.Redis.DB = 1
		c.Server.Addr = ":9999"
	})
	newPgxPool = func(ctx context.Context, url string) (database.DB, error) {
		called["pgx"] = true
		require.Equal(t, "postgres://db", url)
		return &database.FakeDB{CloseFn: func() { called["dbClose"] = true }}, nil
	}
	newRedisClient = func(ctx context.Context, addr, pwd string, db int) (cache.Cache, error) {
		called["redis"] = true
		require.Equal(t, "127", addr)
		require.Equal(t, "pw", pwd)
		require.Equal(t, 1, db)
		return &cache.FakeCache{CloseFn: func() error { called["redisClose"] = true; return nil }}, nil
	}
	runMigrationsFn = func(url string) error { called["migrate"] = true; return nil }
	var gotAddr string
	var gotValidator echo.Validator
	startServer = func(e *echo.Echo, addr string) error {
		called["start"] = true
		gotAddr = addr
		gotValidator = e.Validator
		return nil
	}

	require.NoError(t, run(context.Background(), nil))
	require.Equal(t, ":9999", gotAddr)
	require.NotNil(t, gotValidator)
	for _, k := range []string{"pgx", "redis", "migrate", "start", "dbClose", "redisClose"} {
		require.True(t, called[k], k)
	}
}

func TestRunMemoryDriver(t *testing.T) {
	quiet(t)
	loadConfig = testConfig(func(c *config.Config) { c.Store.Driver = config.DriverMemory })
	newPgxPool = func(context.Context, string) (database.DB, error) {
		t.Fatal("memory driver must not open postgres")
		return nil, nil
	}
	var routes int
	startServer = func(e *echo.Echo, addr string) error {
		routes = len(e.Routes())
		return nil
	}

	require.NoError(t, run(context.Background(), nil))
	require.Greater(t, routes, 0)
}

func TestRunErrors(t *testing.T) {
	quiet(t)

	loadConfig = func([]string) (*config.Config, error) { return nil, errors.New("config") }
	require.Error(t, run(context.Background(), nil))

	loadConfig = testConfig(func(c *config.Config) { c.Log.Level = "loud" })
	require.Error(t, run(context.Background(), nil))

	loadConfig = testConfig(func(c *config.Config) { c.Redis.Addr = "addr" })
	newPgxPool = func(context.Context, string) (database.DB, error) { return nil, errors.New("db") }
	require.Error(t, run(context.Background(), nil))

	closed := false
	newPgxPool = func(context.Context, string) (database.DB, error) {
		return &database.FakeDB{CloseFn: func() { closed = true }}, nil
	}
	runMigrationsFn = func(string) error { return errors.New("migrate") }
	require.Error(t, run(context.Background(), nil))
	require.True(t, closed)

	runMigrationsFn = func(string) error { return nil }
	newRedisClient = func(context.Context, string, string, int) (cache.Cache, error) { return nil, errors.New("redis") }
	require.Error(t, run(context.Background(), nil))

	newRedisClient = func(context.Context, string, string, int) (cache.Cache, error) {
		return &cache.FakeCache{CloseFn: func() error { return nil }}, nil
	}
	startServer = func(*echo.Echo, string) error { return errors.New("start") }
	require.Error(t, run(context.Background(), nil))

	startServer = func(*echo.Echo, string) error { return http.ErrServerClosed }
	require.NoError(t, run(context.Background(), nil))
}

func TestRunMigrateDown(t *testing.T) {
	quiet(t)
	rolledBack := ""
	loadConfig = testConfig(func(c *config.Config) { c.Store.MigrateDown = true })
	rollbackFn = func(url string) error { rolledBack = url; return nil }
	started := false
	startServer = func(*echo.Echo, string) error {
		started = true
		return nil
	}

	require.NoError(t, run(context.Background(), nil))
	require.Equal(t, "postgres://db", rolledBack)
	require.False(t, started)

	rollbackFn = func(string) error { return errors.New("down") }
	require.Error(t, run(context.Background(), nil))

	loadConfig = testConfig(func(c *config.Config) {
		c.Store.MigrateDown = true
		c.Store.Driver = config.DriverMemory
	})
	require.Error(t, run(context.Background(), nil))
}

func TestRunGracefulShutdown(t *testing.T) {
	quiet(t)
	loadConfig = testConfig(func(c *config.Config) {
		c.Store.Driver = config.DriverMemory
		c.Server.ShutdownTimeout = time.Second
	})
	started := make(chan struct{})
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })
	startServer = func(*echo.Echo, string) error {
		close(started)
		<-release
		return http.ErrServerClosed
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, nil) }()

	<-started
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}

func TestMainFunction(t *testing.T) {
	quiet(t)
	loadConfig = testConfig(func(c *config.Config) { c.Store.Driver = config.DriverMemory })
	startServer = func(*echo.Echo, string) error { return nil }
	exitCode := 0
	exitFunc = func(code int) { exitCode = code }
	main()
	require.Equal(t, 0, exitCode)
}

func TestMainExit(t *testing.T) {
	quiet(t)
	exitCode := 0
	exitFunc = func(code int) { exitCode = code }
	loadConfig = func([]string) (*config.Config, error) { return nil, errors.New("fail") }
	main()
	require.Equal(t, 1, exitCode)
}
