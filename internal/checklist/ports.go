package checklist

import (
	"context"
)

// Repository defines the contract for checklist storage.
type Repository interface {
	// CreateInstance stores an instance with its items. It is a no-op
	// returning the existing instance when one already exists for the
	// book and template.
	CreateInstance(ctx context.Context, inst *Instance) error
	GetInstance(ctx context.Context, bookSlug, templateName string) (Instance, error)
	ListInstances(ctx context.Context, bookSlug string) ([]Instance, error)
	SetItemDone(ctx context.Context, bookSlug, templateName, itemKey string, done bool) (Item, error)
}

// BookChecker verifies the target book exists and exposes its puzzle
// type, without pulling in the whole book package contract.
type BookChecker interface {
	PuzzleTypeOf(ctx context.Context, slug string) (string, error)
}
