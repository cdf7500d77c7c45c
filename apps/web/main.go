package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/exchangedesk/fortworth1031/platform/go/apicontract"
	"github.com/exchangedesk/fortworth1031/platform/go/catalog"
	platformlogging "github.com/exchangedesk/fortworth1031/platform/go/logging"
	"github.com/exchangedesk/fortworth1031/platform/go/notify"
	"github.com/exchangedesk/fortworth1031/platform/go/setups"
)

type config struct {
	Port            string        `env:"PORT" envDefault:"3000"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	CORSOrigins     []string      `env:"CORS_ORIGINS" envSeparator:","`

	Content setups.ContentConfig
	Leads   setups.LeadStoreConfig
	Assets  setups.AssetConfig

	SMTPAddr     string   `env:"SMTP_ADDR"` // empty disables lead mail
	SMTPUser     string   `env:"SMTP_USER"`
	SMTPPassword string   `env:"SMTP_PASSWORD"`
	NotifyFrom   string   `env:"LEAD_NOTIFY_FROM"`
	NotifyTo     []string `env:"LEAD_NOTIFY_TO" envSeparator:","`
}

func main() {
	_ = godotenv.Load()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := platformlogging.NewLogger(platformlogging.Config{
		Component: "web",
		Level:     cfg.LogLevel,
	})
	if err != nil {
		log.Fatalf("init zap logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("web server stopped", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	loaded, err := setups.LoadContent(cfg.Content.FS())
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}
	setups.LogContent(logger, loaded)
	holder := catalog.NewHolder(loaded.Catalog)

	leads, closeLeads, err := setups.OpenLeads(ctx, cfg.Leads)
	if err != nil {
		return fmt.Errorf("open lead store: %w", err)
	}
	defer closeLeads()

	backend, closeAssets, err := setups.OpenAssets(ctx, cfg.Assets)
	if err != nil {
		return fmt.Errorf("open asset backend: %w", err)
	}
	defer closeAssets()

	notifier, err := buildNotifier(cfg, loaded.Site.Company, logger)
	if err != nil {
		return fmt.Errorf("init lead notifier: %w", err)
	}

	contract, err := apicontract.Load(ctx)
	if err != nil {
		return fmt.Errorf("load api contract: %w", err)
	}

	handler, err := newRouter(routerDeps{
		Logger:         logger,
		Site:           loaded.Site,
		Catalog:        holder,
		Leads:          leads,
		Notifier:       notifier,
		Assets:         backend,
		Contract:       contract,
		RequestTimeout: cfg.RequestTimeout,
		CORSOrigins:    cfg.CORSOrigins,
		LastModified:   time.Now(),
	})
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		logger.Info("starting web server", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server listen failed: %w", err)
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		logger.Info("web server stopped")
		return nil
	})

	if cfg.Content.Watch {
		dir := cfg.Content.BatchDir()
		if dir == "" {
			logger.Warn("CONTENT_WATCH ignored for embedded content; set CONTENT_DIR")
		} else {
			watcher := catalog.NewWatcher(dir, holder, func() (*catalog.Catalog, error) {
				reloaded, err := setups.LoadContent(cfg.Content.FS())
				if err != nil {
					return nil, err
				}
				setups.LogContent(logger, reloaded)
				return reloaded.Catalog, nil
			}, logger)
			group.Go(func() error { return watcher.Run(groupCtx) })
		}
	}

	return group.Wait()
}

func buildNotifier(cfg config, company string, logger *zap.Logger) (notify.Notifier, error) {
	if strings.TrimSpace(cfg.SMTPAddr) == "" {
		logger.Info("SMTP_ADDR not set; lead notifications disabled")
		return notify.Noop{Logger: logger}, nil
	}
	return notify.NewSMTPNotifier(cfg.SMTPAddr, cfg.SMTPUser, cfg.SMTPPassword, notify.MailConfig{
		From:        cfg.NotifyFrom,
		To:          cfg.NotifyTo,
		CompanyName: company,
	})
}
