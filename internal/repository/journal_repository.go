// Package repository declares the persistence ports used by the use cases.
package repository

import (
	"context"

	"journal-api/internal/domain/entity"
)

// JournalRepository persists Journal aggregates. An aggregate is always
// stored and removed together with its embedded Article.
//
// Get returns (nil, nil) when no journal has the given id.
// Create assigns both generated ids on the passed journal.
// Update and Delete return entity.ErrNotFound when the row is gone.
type JournalRepository interface {
	Get(ctx context.Context, id int64) (*entity.Journal, error)
	List(ctx context.Context) ([]*entity.Journal, error)
	Create(ctx context.Context, journal *entity.Journal) error
	Update(ctx context.Context, journal *entity.Journal) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}
