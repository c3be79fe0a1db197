package library

import (
	"context"
)

// Repository defines the contract for book storage. Every read and write
// is scoped to an owner; Update must never touch id or added_at.
type Repository interface {
	Create(ctx context.Context, b *Book) error
	GetByID(ctx context.Context, id, ownerID string) (Book, error)
	ListByOwner(ctx context.Context, ownerID string, category *Category) ([]Book, error)
	Update(ctx context.Context, b *Book) error
	Delete(ctx context.Context, id, ownerID string) error
}
