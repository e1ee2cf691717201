package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"holdings-observer/src/analysis"
	"holdings-observer/src/logger"
	"holdings-observer/src/models"
	"holdings-observer/src/series"
)

func testServer(t *testing.T) (*APIServer, *series.Store[models.MSettlementHolding], *series.Store[models.MAccumulatedHolding]) {
	t.Helper()

	cfg := &models.MConfig{
		Name: "test", Host: "127.0.0.1", Port: 8081, LogLevel: "ERROR",
		Momentum: models.MMomentumConfig{LookbackDays: 20, MinSamples: 2, TrendBand: 3, TopLimit: 20},
	}
	log := logger.NewLogger("ERROR", "test")

	settlement := series.NewStore[models.MSettlementHolding]()
	accumulated := series.NewStore[models.MAccumulatedHolding]()
	momentum := analysis.NewMomentumAnalyzer(cfg, settlement, log)
	accAnalyzer := analysis.NewAccumulatedAnalyzer(accumulated)
	enricher := analysis.NewEnricher(accumulated, settlement, nil)

	return NewAPIServer(cfg, log, settlement, accumulated, momentum, accAnalyzer, enricher), settlement, accumulated
}

func doGet(t *testing.T, s *APIServer, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	s.engine.ServeHTTP(w, req)

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("GET %s: invalid JSON response: %v", path, err)
	}
	return w, body
}

func loadSettlement(t *testing.T, store *series.Store[models.MSettlementHolding], days []models.MSettlementDay) {
	t.Helper()
	if err := store.Load(days); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
}

// -----------------------------------------------------------------------------

func TestEndpointsBeforeLoad(t *testing.T) {
	s, _, _ := testServer(t)

	for _, path := range []string{
		"/api/data", "/api/stocks", "/api/stock/GARAN", "/api/top-momentum",
		"/api/top-holdings", "/api/akd/data", "/api/akd/stocks",
		"/api/akd/stock/GARAN", "/api/akd/top-sales", "/api/akd/all-stocks",
	} {
		w, _ := doGet(t, s, path)
		if w.Code != 503 {
			t.Errorf("GET %s before load: expected 503, got %d", path, w.Code)
		}
	}

	// Health never gates on data.
	w, _ := doGet(t, s, "/api/health")
	if w.Code != 200 {
		t.Errorf("GET /api/health: expected 200, got %d", w.Code)
	}
}

func TestGetData(t *testing.T) {
	s, settlement, _ := testServer(t)
	loadSettlement(t, settlement, []models.MSettlementDay{
		{Date: "2024-01-03", Holdings: []models.MSettlementHolding{{Code: "GARAN", Rank: 1}}},
		{Date: "2024-01-04", Holdings: []models.MSettlementHolding{{Code: "GARAN", Rank: 1}}},
	})

	w, body := doGet(t, s, "/api/data")
	if w.Code != 200 {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if body["days"].(float64) != 2 {
		t.Errorf("Expected 2 days, got %v", body["days"])
	}
	dates := body["dates"].([]interface{})
	if len(dates) != 2 || dates[0] != "2024-01-03" {
		t.Errorf("Unexpected dates %v", dates)
	}
}

func TestGetStocksFiltersDelisted(t *testing.T) {
	s, settlement, _ := testServer(t)
	loadSettlement(t, settlement, []models.MSettlementDay{
		{Date: "2024-01-03", Holdings: []models.MSettlementHolding{
			{Code: "GARAN", Rank: 1},
			{Code: "USDTRF", Rank: 2}, // delisted
		}},
	})

	w, body := doGet(t, s, "/api/stocks")
	if w.Code != 200 {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	stocks := body["stocks"].([]interface{})
	if len(stocks) != 1 || stocks[0] != "GARAN" {
		t.Errorf("Expected only GARAN after delisted filtering, got %v", stocks)
	}
}

func TestGetStock(t *testing.T) {
	s, settlement, _ := testServer(t)
	loadSettlement(t, settlement, []models.MSettlementDay{
		{Date: "2024-01-03", Holdings: []models.MSettlementHolding{{Code: "GARAN", Rank: 5}}},
		{Date: "2024-01-04", Holdings: []models.MSettlementHolding{{Code: "GARAN", Rank: 2}}},
	})

	w, body := doGet(t, s, "/api/stock/garan")
	if w.Code != 200 {
		t.Fatalf("Expected 200 for a lowercase code, got %d", w.Code)
	}
	if body["code"] != "GARAN" {
		t.Errorf("Expected canonical upper-case code, got %v", body["code"])
	}
	trend := body["analysis"].(map[string]interface{})
	if trend["change"].(float64) != 3 {
		t.Errorf("Expected change 3, got %v", trend["change"])
	}

	w, _ = doGet(t, s, "/api/stock/NOPE")
	if w.Code != 404 {
		t.Errorf("Expected 404 for an unknown code, got %d", w.Code)
	}
}

func TestGetTopMomentum(t *testing.T) {
	s, settlement, _ := testServer(t)
	loadSettlement(t, settlement, []models.MSettlementDay{
		{Date: "2024-01-03", Holdings: []models.MSettlementHolding{
			{Code: "CLIMB", Rank: 9}, {Code: "EDGE", Rank: 5}, {Code: "SLIDE", Rank: 1},
		}},
		{Date: "2024-01-04", Holdings: []models.MSettlementHolding{
			{Code: "CLIMB", Rank: 2}, {Code: "EDGE", Rank: 4}, {Code: "SLIDE", Rank: 8},
		}},
	})

	w, body := doGet(t, s, "/api/top-momentum?limit=1&minPoints=2")
	if w.Code != 200 {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	top := body["top_stocks"].([]interface{})
	if len(top) != 1 {
		t.Fatalf("Expected the limit applied, got %d entries", len(top))
	}
	first := top[0].(map[string]interface{})
	if first["code"] != "CLIMB" {
		t.Errorf("Expected CLIMB first, got %v", first["code"])
	}
	if body["total"].(float64) != 2 {
		t.Errorf("Expected total 2 before the limit, got %v", body["total"])
	}
}

func TestGetTopHoldings(t *testing.T) {
	s, settlement, _ := testServer(t)
	loadSettlement(t, settlement, []models.MSettlementDay{
		{Date: "2024-01-03", Holdings: []models.MSettlementHolding{{Code: "OLD", Rank: 1}}},
		{Date: "2024-01-04", Holdings: []models.MSettlementHolding{
			{Code: "GARAN", Rank: 1}, {Code: "THYAO", Rank: 2}, {Code: "AKBNK", Rank: 3},
		}},
	})

	w, body := doGet(t, s, "/api/top-holdings?limit=2")
	if w.Code != 200 {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if body["date"] != "2024-01-04" {
		t.Errorf("Expected the latest day, got %v", body["date"])
	}
	holdings := body["holdings"].([]interface{})
	if len(holdings) != 2 {
		t.Errorf("Expected 2 holdings with limit 2, got %d", len(holdings))
	}
}

func TestPostReload(t *testing.T) {
	s, _, _ := testServer(t)

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/reload", nil))
	if w.Code != 503 {
		t.Errorf("Expected 503 with no reload wired, got %d", w.Code)
	}

	done := make(chan struct{})
	s.ReloadFunc = func() { close(done) }

	w = httptest.NewRecorder()
	s.engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/reload", nil))
	if w.Code != 202 {
		t.Errorf("Expected 202, got %d", w.Code)
	}
	<-done
}

func TestAkdTopSales(t *testing.T) {
	s, _, accumulated := testServer(t)
	if err := accumulated.Load([]models.MAccumulatedDay{
		{Date: "2024-01-04", Holdings: []models.MAccumulatedHolding{
			{Code: "GARAN", Rank: 1, SellQty: 900},
			{Code: "THYAO", Rank: 2, SellQty: 700},
		}},
	}); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	w, body := doGet(t, s, "/api/akd/top-sales?limit=1")
	if w.Code != 200 {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if body["date"] != "2024-01-04" {
		t.Errorf("Expected resolved date, got %v", body["date"])
	}
	top := body["top_stocks"].([]interface{})
	if len(top) != 1 || top[0].(map[string]interface{})["code"] != "GARAN" {
		t.Errorf("Expected GARAN as the top seller, got %v", top)
	}
}

func TestAkdStockEnriched(t *testing.T) {
	s, settlement, accumulated := testServer(t)
	loadSettlement(t, settlement, []models.MSettlementDay{
		{Date: "2024-01-04", Holdings: []models.MSettlementHolding{{Code: "GARAN", Rank: 1, Price: 41.2}}},
	})
	if err := accumulated.Load([]models.MAccumulatedDay{
		{Date: "2024-01-04", Holdings: []models.MAccumulatedHolding{{Code: "GARAN", Rank: 1, SellQty: 900}}},
	}); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	w, body := doGet(t, s, "/api/akd/stock/GARAN")
	if w.Code != 200 {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	data := body["data"].([]interface{})
	if len(data) != 1 {
		t.Fatalf("Expected 1 enriched entry, got %d", len(data))
	}
	entry := data[0].(map[string]interface{})
	if entry["price"] == nil || entry["price"].(float64) != 41.2 {
		t.Errorf("Expected the settlement price joined in, got %v", entry["price"])
	}

	w, _ = doGet(t, s, "/api/akd/stock/NOPE")
	if w.Code != 404 {
		t.Errorf("Expected 404 for an unknown code, got %d", w.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	s, _, _ := testServer(t)

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/health", nil))
	if w.Code != 204 {
		t.Errorf("Expected 204 for a preflight request, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("Expected the CORS origin header")
	}
}
