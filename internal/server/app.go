// Package server initializes and runs the accounts application: it opens the
// database, runs migrations, wires the account service with its mail and OTP
// collaborators, and starts the HTTP server with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/skycastlabs/accounts/internal/logging"
	"github.com/skycastlabs/accounts/internal/server/config"
	"github.com/skycastlabs/accounts/internal/server/httpapi"
	"github.com/skycastlabs/accounts/internal/server/mail"
	"github.com/skycastlabs/accounts/internal/server/otp"
	"github.com/skycastlabs/accounts/internal/server/repositories/repomanager"
	"github.com/skycastlabs/accounts/internal/server/services"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	accounts *services.AccountService
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	gen := otp.NewNumericGenerator(cfg.OTPLength)
	notifier := mail.NewSMTPNotifier(cfg.SMTPAddr, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom)
	accounts := services.NewAccountService(db, m, gen, notifier, cfg)

	return &App{config: cfg, logger: logger, db: db, accounts: accounts}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewServer(app.config.Addr, app.logger, app.accounts, app.config.SecretKey)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
