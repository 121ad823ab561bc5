package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	dashboard "github.com/banjiubanjiu/Nickle-System/internal/application/service/dashboard"
	"github.com/banjiubanjiu/Nickle-System/internal/config"
	api "github.com/banjiubanjiu/Nickle-System/internal/infrastructure/api"
	mockdata "github.com/banjiubanjiu/Nickle-System/internal/infrastructure/mockdata"
	tui "github.com/banjiubanjiu/Nickle-System/internal/interfaces/tui"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	// The TUI owns the terminal, so log output goes to a file or nowhere.
	var logOut io.Writer = io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			logger.Fatalf("open log file: %v", err)
		}
		defer f.Close()
		logOut = f
	}
	logger.SetOutput(logOut)

	client := api.NewClient(api.Options{
		BaseURL:        cfg.API.BaseURL,
		Timeout:        time.Duration(cfg.API.TimeoutSeconds) * time.Second,
		YearlyBasePath: cfg.API.YearlyBasePath,
	})

	now := time.Now()
	fallback := mockdata.NewProvider(now, now.Truncate(time.Hour).Unix())

	svc := dashboard.NewService(client, fallback, logger, dashboard.Options{
		DefaultInterval: time.Duration(cfg.Poll.DefaultSeconds) * time.Second,
		MinInterval:     time.Duration(cfg.Poll.MinSeconds) * time.Second,
	})

	sink := tui.NewProgramSink()
	model := tui.New(ctx, svc, sink, fallback.Exchanges())
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	sink.Attach(program)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := program.Run()
		return err
	})
	g.Go(func() error {
		<-gctx.Done()
		program.Quit()
		return nil
	})

	if err := g.Wait(); err != nil &&
		!errors.Is(err, tea.ErrProgramKilled) &&
		!errors.Is(err, context.Canceled) {
		logger.Fatalf("dashboard error: %v", err)
	}
}
