package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/oltcmd/oltcmd/api/router"
	"github.com/oltcmd/oltcmd/internal/config"
	"github.com/oltcmd/oltcmd/internal/service"
	"github.com/oltcmd/oltcmd/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "config file path (default: ./configs/config.yaml when present)")
	flag.Parse()

	// 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化日志
	if err := logger.Init(logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		FilePath:   cfg.Log.FilePath,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	}); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	logger.Infof("Starting OLT command workbench, data dir %s, storage %s", cfg.BaseDir(), cfg.Storage.Backend)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	workbench, err := service.NewWorkbench(cfg, service.WithRegisterer(reg))
	if err != nil {
		logger.Fatalf("Failed to create workbench: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := workbench.Start(ctx); err != nil {
		logger.Fatalf("Failed to start workbench: %v", err)
	}
	defer workbench.Stop()

	server := &http.Server{
		Addr:           cfg.GetServerAddr(),
		Handler:        router.SetupRouter(cfg.Server.Mode, workbench, reg),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Infof("Server listening on %s (mode %s)", server.Addr, cfg.Server.Mode)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Errorf("Server exited with error: %v", err)
		return
	}
	logger.Info("Server exited")
}
