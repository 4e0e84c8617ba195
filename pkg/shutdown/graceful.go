package shutdown

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/honeycarbs/silver-talent/pkg/logging"
)

type Stoppable interface {
	Shutdown(ctx context.Context) error
}

// StopFunc adapts a plain close function, such as a page's Close, to Stoppable
type StopFunc func()

func (f StopFunc) Shutdown(context.Context) error {
	f()
	return nil
}

// Graceful blocks until one of signals arrives or parent is done, then stops
// every target in order within timeout.
func Graceful(parent context.Context, signals []os.Signal, timeout time.Duration, log *logging.Logger, targets ...Stoppable) {
	sigCtx, stop := signal.NotifyContext(parent, signals...)
	defer stop()

	<-sigCtx.Done()
	log.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var failed bool
	for _, s := range targets {
		if err := s.Shutdown(ctx); err != nil {
			failed = true
			log.Warn("graceful shutdown completed with error", "err", err)
		}
	}
	if !failed {
		log.Info("graceful shutdown completed successfully")
	}
}
