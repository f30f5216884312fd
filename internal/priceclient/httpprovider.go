package priceclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mealpath/mealplan-engine/internal/domain"
	"github.com/shopspring/decimal"
)

// HTTPSearchProvider is a generic JSON product-search API client: it
// covers any store whose search endpoint takes a query string and
// page number and returns a JSON array of products. Store-specific
// quirks (auth headers, different field names) are expected to be
// handled by a thin wrapper constructing the request, not by forking
// this type.
type HTTPSearchProvider struct {
	store      string
	baseURL    string
	httpClient *http.Client
	headers    map[string]string
}

func NewHTTPSearchProvider(store, baseURL string, httpClient *http.Client, headers map[string]string) *HTTPSearchProvider {
	return &HTTPSearchProvider{store: store, baseURL: baseURL, httpClient: httpClient, headers: headers}
}

func (p *HTTPSearchProvider) Store() string { return p.store }

type searchResponseItem struct {
	Title    string  `json:"title"`
	Brand    string  `json:"brand"`
	Category string  `json:"category"`
	Price    string  `json:"price"`
	SizeVal  float64 `json:"size_value"`
	SizeUnit string  `json:"size_unit"`
	URL      string  `json:"url"`
	Barcode  string  `json:"barcode"`
}

func (p *HTTPSearchProvider) Search(ctx context.Context, query string, page, pageSize int) ([]domain.SKUCandidate, error) {
	u, err := url.Parse(p.baseURL)
	if err != nil {
		return nil, newError(KindConfig, p.store, "invalid base url", err)
	}
	q := u.Query()
	q.Set("q", query)
	q.Set("page", fmt.Sprintf("%d", page))
	q.Set("page_size", fmt.Sprintf("%d", pageSize))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, newError(KindConfig, p.store, "failed to build request", err)
	}
	for k, v := range p.headers {
		req.Header.Set(k, v)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, classify(p.store, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if classified := ClassifyHTTPStatus(p.store, resp.StatusCode); classified != nil {
			return nil, classified
		}
	}

	var items []searchResponseItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, newError(KindBadRequest, p.store, "malformed search response body", err)
	}

	candidates := make([]domain.SKUCandidate, 0, len(items))
	for _, it := range items {
		price, err := decimal.NewFromString(it.Price)
		if err != nil {
			continue
		}
		size := domain.Size{Value: it.SizeVal, Unit: domain.SizeUnit(it.SizeUnit)}
		unitPrice := decimal.Zero
		if size.Value > 0 {
			unitPrice = price.Div(decimal.NewFromFloat(size.Value)).Mul(decimal.NewFromInt(100))
		}
		candidates = append(candidates, domain.SKUCandidate{
			Title:           it.Title,
			Brand:           it.Brand,
			Category:        it.Category,
			Price:           price,
			Size:            size,
			URL:             it.URL,
			Barcode:         it.Barcode,
			UnitPricePer100: unitPrice,
		})
	}
	return candidates, nil
}
