// @title        Taskboard API
// @version      1.0
// @description  看板、分類、任務與留言的後端 API，登入後令牌放在 HttpOnly cookie
// @host         localhost:8080
// @BasePath     /
// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name token
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskboard/internal/cache"
	"taskboard/internal/config"
	"taskboard/internal/database"
	"taskboard/internal/handler"
	"taskboard/internal/handler/auth"
	"taskboard/internal/logging"
	"taskboard/internal/router"
	"taskboard/internal/service"
	"taskboard/internal/store"
	"taskboard/internal/worker"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"

	_ "taskboard/docs" // 引入 swag 產出的 docs
)

var (
	loadConfig                = config.Load
	newPgxPool                = database.NewPgxPool
	newRedisClient            = cache.NewRedisClient
	runMigrationsFn           = database.RunMigrations
	rollbackFn                = database.RollbackAll
	startServer               = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	newWorkerPool             = worker.NewPool
	logOutput       io.Writer = os.Stderr
	exitFunc                  = os.Exit
)

// openStore 依 driver 建立資料存放層，回傳的 close 一定可以呼叫
func openStore(ctx context.Context, cfg config.StoreConfig) (store.Store, func(), error) {
	if cfg.Driver == config.DriverMemory {
		return store.NewMemory(), func() {}, nil
	}

	db, err := newPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, func() {}, fmt.Errorf("DB 連線失敗: %w", err)
	}
	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, func() {}, fmt.Errorf("Migration 執行失敗: %w", err)
	}
	return store.NewPostgres(db), db.Close, nil
}

func run(ctx context.Context, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, logOutput)
	if err != nil {
		return err
	}

	if cfg.Store.MigrateDown {
		if cfg.Store.Driver != config.DriverPostgres {
			return fmt.Errorf("--migrate-down needs the postgres driver, got %q", cfg.Store.Driver)
		}
		if err := rollbackFn(cfg.Store.DatabaseURL); err != nil {
			return fmt.Errorf("Migration 回滾失敗: %w", err)
		}
		logger.Info("all migrations rolled back")
		return nil
	}

	st, closeStore, err := openStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer closeStore()

	var boardStore store.BoardStore = st
	var rdb cache.Cache
	if cfg.Redis.Addr != "" {
		rdb, err = newRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return fmt.Errorf("Redis 連線失敗: %w", err)
		}
		defer rdb.Close()
		boardStore = cache.NewBoardCache(st, rdb, cfg.Redis.CacheTTL, logger)
	}

	wp := newWorkerPool(cfg.Workers.Count)
	defer wp.Stop()

	tokens, err := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return err
	}
	sameSite, err := cfg.Auth.Cookie.SameSiteMode()
	if err != nil {
		return err
	}
	policy := service.OwnershipPolicy{
		EnforceBoardUpdate: cfg.Ownership.EnforceBoardUpdate,
		EnforceHierarchy:   cfg.Ownership.EnforceHierarchy,
	}

	e := echo.New()
	e.HideBanner = true
	e.Debug = cfg.Server.Debug
	e.Validator = handler.NewValidator()
	e.JSONSerializer = router.SonicSerializer{}
	e.Use(middleware.Recover())
	e.Use(logging.RequestLogger(logger))

	router.Setup(e, router.Deps{
		Store:  st,
		Cache:  rdb,
		Tokens: tokens,
		Cookie: auth.CookieConfig{
			Name:     cfg.Auth.Cookie.Name,
			Domain:   cfg.Auth.Cookie.Domain,
			Secure:   cfg.Auth.Cookie.Secure,
			SameSite: sameSite,
		},
		Accounts:   service.NewAccounts(st, service.NewPasswordHasher(wp), tokens),
		Boards:     service.NewBoards(boardStore, st, policy),
		Categories: service.NewCategories(st, policy),
		Tasks:      service.NewTasks(st, policy),
		Comments:   service.NewComments(st, policy, cfg.Auth.FreshIdentity),
		Swagger:    cfg.Server.Swagger,
	})

	logger.WithFields(log.Fields{
		"addr":   cfg.Server.Addr,
		"driver": cfg.Store.Driver,
		"redis":  cfg.Redis.Addr != "",
	}).Info("server starting")
	return serve(ctx, e, cfg.Server.Addr, cfg.Server.ShutdownTimeout, logger)
}

// serve 啟動伺服器，ctx 結束時在 timeout 內優雅關閉
func serve(ctx context.Context, e *echo.Echo, addr string, timeout time.Duration, logger log.FieldLogger) error {
	errCh := make(chan error, 1)
	go func() { errCh <- startServer(e, addr) }()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		log.Error(err)
		exitFunc(1)
	}
}
