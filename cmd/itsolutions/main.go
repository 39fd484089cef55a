package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"itsolutions/internal/cart"
	"itsolutions/internal/config"
	"itsolutions/internal/content"
	"itsolutions/internal/guard"
	"itsolutions/internal/http/handlers"
	"itsolutions/internal/latency"
	applog "itsolutions/internal/log"
	"itsolutions/internal/mirror"
	"itsolutions/internal/repos"
	"itsolutions/internal/services"
	"itsolutions/internal/session"
	"itsolutions/internal/telemetry"
	"itsolutions/web"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var cfgPath string
	root := &cobra.Command{
		Use:          "itsolutions",
		Short:        "IT services company site with a shop and back office",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), cfgPath)
		},
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a YAML config file")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the web server (default)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), cfgPath)
		},
	})

	var force bool
	seed := &cobra.Command{
		Use:   "seed",
		Short: "Write demo users and default page content into the database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return seedDB(cmd.Context(), cfgPath, force)
		},
	}
	seed.Flags().BoolVar(&force, "force", false, "overwrite content that already exists")
	root.AddCommand(seed)
	return root
}

func setup(cfgPath string) (config.Config, func(), error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return cfg, nil, err
	}
	flush, err := applog.Init(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		applog.L().Warn("log.file.open", zap.String("file", cfg.LogFile), zap.Error(err))
	}
	return cfg, flush, nil
}

func serve(ctx context.Context, cfgPath string) error {
	cfg, flush, err := setup(cfgPath)
	if err != nil {
		return err
	}
	defer flush()
	lg := applog.L()

	shutdownTrace, err := telemetry.Init(cfg.TraceStdout)
	if err != nil {
		return err
	}
	defer func() { _ = shutdownTrace(context.Background()) }()

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	var dir session.Directory = repos.NewUserRepo(db)
	if strings.EqualFold(cfg.AuthBackend, "demo") {
		dir = session.NewDemoDirectory()
	}

	var kv mirror.Backend
	switch strings.ToLower(cfg.MirrorBackend) {
	case "redis":
		r, err := mirror.NewRedis(mirror.RedisOptions{URL: cfg.RedisURL, TTL: 30 * 24 * time.Hour})
		if err != nil {
			return err
		}
		defer r.Close()
		kv = r
	case "memory":
		kv = mirror.NewMemory()
	default:
		kv = repos.NewMirrorRepo(db)
	}

	var backend content.Backend = content.NewMemoryBackend()
	if strings.EqualFold(cfg.ContentBackend, "sqlite") {
		backend = repos.NewDocumentRepo(db)
	}

	lat := latency.NewProfile(cfg.LatencyScale)
	stores, err := content.Open(ctx, backend, lat)
	if err != nil {
		return fmt.Errorf("open content: %w", err)
	}

	app := handlers.NewApp(handlers.Deps{
		Views:    web.Engine(),
		Sessions: session.NewRegistry(dir, kv, session.Options{Latency: lat.Login}),
		Carts:    cart.NewRegistry(),
		Shells:   guard.NewShells(),
		Content:  stores,
		Orders:   services.NewOrderService(repos.NewOrderRepo(db), stores.Products),
		CSRF:     cfg.CSRF,
	})

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		lg.Info("server.start",
			zap.String("addr", ":"+cfg.Port),
			zap.String("auth", cfg.AuthBackend),
			zap.String("mirror", cfg.MirrorBackend),
			zap.String("content", cfg.ContentBackend),
		)
		errc <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errc:
		return err
	case <-sigCtx.Done():
	}
	lg.Info("server.stop")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.ShutdownWithContext(shutdownCtx)
}

func seedDB(ctx context.Context, cfgPath string, force bool) error {
	cfg, flush, err := setup(cfgPath)
	if err != nil {
		return err
	}
	defer flush()

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()
	return seedContent(ctx, db, force)
}

func seedContent(ctx context.Context, db *sqlx.DB, force bool) error {
	docs := repos.NewDocumentRepo(db)
	seeds := []struct {
		name string
		v    any
	}{
		{"home", content.SeedHome()},
		{"about", content.SeedAbout()},
		{"contact", content.SeedContact()},
		{"services", content.SeedServices()},
		{"products", content.SeedProducts()},
	}
	var errs []error
	for _, s := range seeds {
		if !force {
			var existing any
			ok, err := docs.Load(ctx, s.name, &existing)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if ok {
				applog.L().Info("seed.content.skip", zap.String("name", s.name))
				continue
			}
		}
		if err := docs.Save(ctx, s.name, s.v); err != nil {
			errs = append(errs, fmt.Errorf("seed %s: %w", s.name, err))
			continue
		}
		applog.L().Info("seed.content", zap.String("name", s.name))
	}
	return errors.Join(errs...)
}
