package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/mealpath/mealplan-engine/internal/contract"
	"github.com/mealpath/mealplan-engine/internal/domain"
	"github.com/mealpath/mealplan-engine/internal/llm"
	"github.com/mealpath/mealplan-engine/internal/marketrun"
	"github.com/mealpath/mealplan-engine/internal/nutresolve"
	"github.com/mealpath/mealplan-engine/internal/nutrition"
	"github.com/mealpath/mealplan-engine/internal/orchestrator"
	"github.com/mealpath/mealplan-engine/internal/registry"
	"github.com/mealpath/mealplan-engine/pkg/cache"
	applogger "github.com/mealpath/mealplan-engine/pkg/logger"
)

type fakeFetcher struct{ reg *registry.Registry }

func (f *fakeFetcher) FetchPrices(ctx context.Context, store, query string, page int) ([]domain.SKUCandidate, error) {
	for _, cid := range []string{"chicken_breast", "white_rice", "broccoli", "salmon_fillet", "sweet_potato", "spinach", "egg", "oats", "banana", "honey"} {
		spec, ok := f.reg.Spec(cid)
		if !ok {
			continue
		}
		queries, err := f.reg.BuildQueries(cid)
		if err != nil || len(queries) == 0 || query != queries[0].Query {
			continue
		}
		size := 500.0
		if len(spec.TypicalPackSizesG) > 0 {
			size = spec.TypicalPackSizesG[0]
		}
		price := decimal.NewFromFloat(5.0)
		unitPrice := price.Div(decimal.NewFromFloat(size)).Mul(decimal.NewFromInt(100))
		title := spec.DisplayName
		for _, must := range spec.MustInclude {
			title += " " + must
		}
		return []domain.SKUCandidate{{
			Title: title, Category: "grocery", Price: price,
			Size: domain.Size{Value: size, Unit: domain.SizeGram},
			URL:  "http://store/" + cid, UnitPricePer100: unitPrice,
		}}, nil
	}
	return nil, nil
}

type noopCache struct{}

func (noopCache) Get(ctx context.Context, key string, dest interface{}) (cache.State, error) {
	return cache.Miss, nil
}
func (noopCache) Set(ctx context.Context, key string, value interface{}, freshTTL, hardTTL time.Duration) error {
	return nil
}
func (noopCache) TryBeginRefresh(key string) bool { return true }
func (noopCache) EndRefresh(key string)           {}

func buildTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	reg := registry.New()
	log := applogger.NewNop()
	runner := marketrun.New(reg, &fakeFetcher{reg: reg}, "S1", 5, log)
	resolver := nutresolve.New(nutrition.NewOffline(), reg, noopCache{}, nil, nutresolve.Tolerances{KcalPct: 0.2, MacroPct: 0.25}, time.Hour, 24*time.Hour, log)
	limits := contract.Limits{ProteinMaxGPerKg: 2.8, FatMaxMultiple: 1.5, CarbMinMultiple: 0.8, MinKcal: 1200, KcalPct: 0.03, MacroPct: 0.08, CarbFloorPct: 0.8}
	orch := orchestrator.New(limits, reg, llm.NewStub(), runner, resolver, 5, log)
	return NewServer(orch, log, 30*time.Second)
}

func TestHandleMealPlanStreamsNDJSONEndingInFinalData(t *testing.T) {
	srv := buildTestServer(t)
	router := srv.Router()

	profile := domain.Profile{
		HeightCM: 187, WeightKG: 73, Age: 23, Sex: domain.SexMale,
		Activity: domain.ActivityActive, Goal: domain.GoalBulkLean,
		Days: 1, EatingOccasions: 3, Store: "S1",
	}
	body, _ := json.Marshal(profile)

	req := httptest.NewRequest("POST", "/api/v1/mealplan", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	lines := bytes.Split(bytes.TrimSpace(w.Body.Bytes()), []byte("\n"))
	if len(lines) == 0 {
		t.Fatal("expected at least one NDJSON line")
	}
	var final struct {
		Event string `json:"event"`
	}
	if err := json.Unmarshal(lines[len(lines)-1], &final); err != nil {
		t.Fatalf("last line not valid JSON: %v", err)
	}
	if final.Event != "finalData" {
		t.Fatalf("expected last line to be finalData, got %q", final.Event)
	}
}

func TestHandleMealPlanRejectsMalformedBody(t *testing.T) {
	srv := buildTestServer(t)
	router := srv.Router()

	req := httptest.NewRequest("POST", "/api/v1/mealplan", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != 400 {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv := buildTestServer(t)
	router := srv.Router()

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
