package priceclient

import (
	"context"

	"github.com/mealpath/mealplan-engine/internal/domain"
)

// SearchProvider is one supermarket's product-search API. Concrete
// per-store implementations live behind this interface so the client
// itself never changes when a new store is onboarded.
type SearchProvider interface {
	Store() string
	Search(ctx context.Context, query string, page, pageSize int) ([]domain.SKUCandidate, error)
}
