package adapters

import (
	"context"

	"github.com/google/uuid"

	"lostfound_backend/internal/inquiries/ports"
	inventoryrepo "lostfound_backend/internal/inventory/repository"
)

// InventoryAdapter exposes inventory removal and counts to the inquiries
// module.
type InventoryAdapter struct {
	repo inventoryrepo.Repository
}

func NewInventoryAdapter(repo inventoryrepo.Repository) *InventoryAdapter {
	return &InventoryAdapter{repo: repo}
}

func (a *InventoryAdapter) DeleteForResolution(ctx context.Context, itemID uuid.UUID) error {
	return a.repo.DeleteForResolution(ctx, itemID)
}

func (a *InventoryAdapter) Counts(ctx context.Context) (int, int, error) {
	return a.repo.Counts(ctx)
}

var (
	_ ports.InventoryRemover = (*InventoryAdapter)(nil)
	_ ports.InventoryCounts  = (*InventoryAdapter)(nil)
)
