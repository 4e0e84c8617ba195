package tools

import (
	"context"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/silver-talent/internal/listing"
	"github.com/honeycarbs/silver-talent/pkg/logging"
)

// Option configures which tools are registered
type Option func(*registry)

type registry struct {
	server  *sdkmcp.Server
	logger  *logging.Logger
	timeout time.Duration
	now     func() time.Time
}

// Register applies the provided tool options
func Register(server *sdkmcp.Server, opts ...Option) {
	reg := &registry{
		server:  server,
		logger:  logging.NewNop(),
		timeout: listing.DefaultTimeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(reg)
	}
}

// WithLogger sets the logger every tool reports to
func WithLogger(l *logging.Logger) Option {
	return func(reg *registry) {
		reg.logger = logging.OrNop(l).Component("mcp.tools")
	}
}

// WithTimeout bounds each backend call made by a tool
func WithTimeout(d time.Duration) Option {
	return func(reg *registry) {
		if d > 0 {
			reg.timeout = d
		}
	}
}

// WithClock replaces the clock used for relative dates
func WithClock(now func() time.Time) Option {
	return func(reg *registry) {
		if now != nil {
			reg.now = now
		}
	}
}

func (reg *registry) call(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, reg.timeout)
}
