//go:build wireinject
// +build wireinject

package mcp

import (
	"context"

	"github.com/google/wire"

	"github.com/honeycarbs/silver-talent/internal/config"
	"github.com/honeycarbs/silver-talent/pkg/silvertalent"
)

// InitializeResources creates Resources with all clients wired up
func InitializeResources(ctx context.Context, cfg config.Config) (*Resources, error) {
	wire.Build(
		// Silver Talent REST backend
		provideSiteConfig,
		silvertalent.NewClient,

		// Google Sheets, optional
		provideSheetsClient,

		wire.Struct(new(Resources), "*"),
	)

	return &Resources{}, nil
}
