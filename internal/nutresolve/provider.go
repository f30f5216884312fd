// Package nutresolve implements C5: the tiered nutrition resolver
// that checks the hot-path and canonical stores before ever reaching
// an external provider, validates every external row's fingerprint,
// and caches validated external results with stale-while-revalidate
// semantics.
package nutresolve

import (
	"context"
	"time"

	"github.com/mealpath/mealplan-engine/internal/domain"
	"github.com/mealpath/mealplan-engine/pkg/cache"
)

// Provider is an external nutrition data source — a barcode lookup
// service or a free-text search API. Implementations never see the
// fingerprint gate; Resolver applies it uniformly to every provider.
type Provider interface {
	Name() string
	FetchByBarcode(ctx context.Context, barcode string) (domain.NutritionRow, error)
	FetchByQuery(ctx context.Context, query string) (domain.NutritionRow, error)
}

// Cache is the subset of pkg/cache.SWRCache the resolver depends on,
// kept as a narrow interface (rather than the concrete type) so tests
// can substitute a fake without standing up Redis. *cache.SWRCache
// satisfies this structurally.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (cache.State, error)
	Set(ctx context.Context, key string, value interface{}, freshTTL, hardTTL time.Duration) error
	TryBeginRefresh(key string) bool
	EndRefresh(key string)
}
