package main

import (
	"context"
	"log"
	"os"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/honeycarbs/silver-talent/internal/blog"
	"github.com/honeycarbs/silver-talent/internal/config"
	"github.com/honeycarbs/silver-talent/internal/listing"
	"github.com/honeycarbs/silver-talent/internal/tui"
	"github.com/honeycarbs/silver-talent/internal/vacancies"
	"github.com/honeycarbs/silver-talent/pkg/logging"
	"github.com/honeycarbs/silver-talent/pkg/shutdown"
	"github.com/honeycarbs/silver-talent/pkg/silvertalent"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logPath := os.Getenv("BROWSE_LOG")
	if logPath == "" {
		logPath = "silver-talent-browse.log"
	}
	logger := logging.NewFile(cfg.LogLevel, logPath)
	defer func() { _ = logger.Sync() }()

	client, err := silvertalent.NewClient(silvertalent.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.RequestTimeout,
	})
	if err != nil {
		log.Fatalf("failed to build client: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opts := []listing.Option{
		listing.WithDebounce(cfg.API.SearchDebounce),
		listing.WithTimeout(cfg.API.RequestTimeout),
		listing.WithContext(ctx),
	}
	jobs, err := vacancies.NewPage(client, logger, opts...)
	if err != nil {
		log.Fatalf("failed to build vacancies page: %v", err)
	}
	posts, err := blog.NewPage(client, logger, opts...)
	if err != nil {
		log.Fatalf("failed to build blog page: %v", err)
	}

	prog := tea.NewProgram(tui.New(ctx, jobs, posts, logger), tea.WithAltScreen(), tea.WithContext(ctx))

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		shutdown.Graceful(
			ctx,
			[]os.Signal{syscall.SIGTERM, syscall.SIGHUP},
			2*time.Second,
			logger,
			shutdown.StopFunc(prog.Quit),
			shutdown.StopFunc(jobs.Close),
			shutdown.StopFunc(posts.Close),
		)
	}()

	logger.Info("browser starting", "api", cfg.API.BaseURL)
	_, runErr := prog.Run()

	cancel()
	<-stopped

	if runErr != nil {
		logger.Error("browser exited with error", "err", runErr)
		os.Exit(1)
	}
}
