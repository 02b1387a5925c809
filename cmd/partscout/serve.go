package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"partscout/internal/config"
	"partscout/internal/http/handlers"
	applog "partscout/internal/log"
	"partscout/internal/notify"
	"partscout/internal/repos"
)

var templatesDir string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web UI and JSON API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&templatesDir, "templates", "./web/templates", "HTML template directory")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	closeLog := setupLogging(cfg, os.Stdout)
	defer closeLog()

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	engine, store, err := buildEngine(cfg, notify.Discard)
	if err != nil {
		return err
	}
	defer store.Close()

	app := handlers.NewApp(handlers.AppConfig{
		TemplatesDir:      templatesDir,
		Reload:            true,
		AccessLog:         os.Stdout,
		RequestsPerMinute: 60,
	}, handlers.NewDeps(db, engine))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		_ = app.ShutdownWithTimeout(5 * time.Second)
	}()

	applog.Event("server.start", map[string]any{"port": cfg.Port})
	return app.Listen(":" + cfg.Port)
}
