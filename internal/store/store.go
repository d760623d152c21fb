package store

import (
	"context"

	"github.com/me/langparse/pkg/model"
)

// Store defines the persistence layer for resolution history.
type Store interface {
	CreateResolution(ctx context.Context, r *model.Resolution) error
	GetResolution(ctx context.Context, id string) (*model.Resolution, error)
	ListResolutions(ctx context.Context, opts model.ListOptions) ([]*model.Resolution, int, error)

	// Lifecycle
	Close() error
	Migrate(ctx context.Context) error
}
