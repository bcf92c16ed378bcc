package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eventsqa/harness/internal/dispatch"
	"github.com/eventsqa/harness/internal/handlers"
	"github.com/eventsqa/harness/internal/models"
	"github.com/eventsqa/harness/internal/server"
	"github.com/eventsqa/harness/internal/services"
	"github.com/eventsqa/harness/internal/store"
	"github.com/eventsqa/harness/internal/store/migrations"
	"github.com/eventsqa/harness/internal/ui"
	"github.com/eventsqa/harness/pkg/scheduler"
)

// extraEntities get a create_<entity> keyword on top of the built-in ones.
var extraEntities = []models.TestType{
	models.TestTypeProfile,
	models.TestTypeTagAffinity,
	models.TestTypeEvent,
	models.TestTypeUserEvent,
	models.TestTypeURL,
	models.TestTypeCrawl,
}

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the keyword HTTP API and the tool server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}

	flags := cmd.Flags()
	flags.String("mode", "dev", "server mode: dev or prod")
	flags.Int("http-port", 8000, "HTTP port")
	flags.String("data-folder", "", "folder holding the run history database; empty keeps it in memory")
	flags.Int("workers", 1, "number of tests run concurrently")
	flags.Int("tools-port", 8003, "tool server port")
	flags.Int("tools-alt-port", 0, "second tool server port; 0 disables it")
	mustBind(a.v, flags, map[string]string{
		"server.mode":        "mode",
		"server.http-port":   "http-port",
		"server.data-folder": "data-folder",
		"runner.workers":     "workers",
		"tools.port":         "tools-port",
		"tools.alt-port":     "tools-alt-port",
	})

	return cmd
}

func (a *app) serve(ctx context.Context) error {
	log := zap.S().Named("serve")
	cfg := a.cfg

	dbPath, err := store.DBPath(cfg.Server.DataFolder)
	if err != nil {
		return err
	}
	db, err := store.NewDB(dbPath)
	if err != nil {
		return err
	}
	if err := migrations.Run(ctx, db); err != nil {
		_ = db.Close()
		return err
	}
	st := store.NewStore(db)
	defer func() {
		if err := st.Close(); err != nil {
			log.Errorw("failed to close store", "error", err)
		}
	}()

	if cfg.Server.HistoryRetention > 0 {
		n, err := st.Runs().Prune(ctx, time.Now().Add(-cfg.Server.HistoryRetention))
		if err != nil {
			log.Errorw("failed to prune run history", "error", err)
		} else if n > 0 {
			log.Infow("pruned run history", "runs", n)
		}
	}

	sched := scheduler.NewScheduler(cfg.Runner.Workers)
	defer sched.Close()

	runSrv := services.NewRunService(st)
	opts := []services.ControllerOption{services.WithRecorder(runSrv)}
	if cfg.Browser.Automation {
		opts = append(opts, services.WithUIRunner(ui.NewScenarioRunner(cfg.Browser)))
	}
	controller := services.NewController(cfg.Runner, sched, opts...)

	d := dispatch.New(controller)
	for _, t := range extraEntities {
		d.Register("create_"+string(t), dispatch.EntityHandler(controller, t))
	}

	h := handlers.New(d, runSrv)
	srv, err := server.NewServer(cfg, func(root, api *gin.RouterGroup) {
		handlers.RegisterRoutes(root, api, h)
	})
	if err != nil {
		return err
	}

	var tools *server.ToolServer
	if cfg.Tools.Enabled {
		tools = server.NewToolServer(cfg.Tools, d)
		tools.StartBackground()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx)
	}()

	log.Infow("harness ready", "port", cfg.Server.HTTPPort, "keywords", d.Keywords(), "ui_automation", cfg.Browser.Automation)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if tools != nil {
		tools.Stop(shutdownCtx)
	}
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Errorw("failed to stop server", "error", err)
	}
	return nil
}
