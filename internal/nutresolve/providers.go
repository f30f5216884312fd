package nutresolve

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mealpath/mealplan-engine/internal/domain"
	applogger "github.com/mealpath/mealplan-engine/pkg/logger"
)

// FDCProvider stands in for a USDA FoodData Central-shaped free-text
// search API behind the Provider interface. It makes no network call:
// FetchByQuery and FetchByBarcode always return an error.
type FDCProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
	log     *applogger.Logger
}

func NewFDCProvider(baseURL, apiKey string, timeout time.Duration, log *applogger.Logger) *FDCProvider {
	return &FDCProvider{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		apiKey:  apiKey,
		log:     log.Tag("fdc_provider"),
	}
}

func (p *FDCProvider) Name() string { return "usda_fdc" }

func (p *FDCProvider) FetchByQuery(ctx context.Context, query string) (domain.NutritionRow, error) {
	// No HTTP request is made; the orchestrator only depends on the
	// Provider interface, and cmd/mealplan-engine builds the resolver
	// with no providers at all.
	return domain.NutritionRow{}, fmt.Errorf("nutresolve: fdc provider has no query result for %q", query)
}

func (p *FDCProvider) FetchByBarcode(ctx context.Context, barcode string) (domain.NutritionRow, error) {
	return domain.NutritionRow{}, fmt.Errorf("nutresolve: fdc provider does not support barcode lookup")
}

// OpenFoodFactsProvider stands in for a barcode-first nutrition
// database shaped after the Open Food Facts API. It makes no network
// call: FetchByBarcode always returns a not-found error and
// FetchByQuery reports free-text lookup as unsupported.
type OpenFoodFactsProvider struct {
	client  *http.Client
	baseURL string
	log     *applogger.Logger
}

func NewOpenFoodFactsProvider(baseURL string, timeout time.Duration, log *applogger.Logger) *OpenFoodFactsProvider {
	return &OpenFoodFactsProvider{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		log:     log.Tag("off_provider"),
	}
}

func (p *OpenFoodFactsProvider) Name() string { return "open_food_facts" }

func (p *OpenFoodFactsProvider) FetchByBarcode(ctx context.Context, barcode string) (domain.NutritionRow, error) {
	return domain.NutritionRow{}, fmt.Errorf("nutresolve: open food facts has no product for barcode %q", barcode)
}

func (p *OpenFoodFactsProvider) FetchByQuery(ctx context.Context, query string) (domain.NutritionRow, error) {
	return domain.NutritionRow{}, fmt.Errorf("nutresolve: open food facts query lookup not supported without a barcode")
}
