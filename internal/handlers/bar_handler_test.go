package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "assetdb/internal/errors"
	"assetdb/internal/models"
	"assetdb/internal/services"
)

// --- mock bar service ---

type mockBarService struct {
	addBarsFn func(ticker, typeName string, bars []models.BarFields) ([]models.Bar, error)
	getBarsFn func(tickers []string, startDate time.Time, endDate *time.Time) (map[string][]models.Bar, error)
	editBarFn func(typeName string, assetID uint, edits map[string]any) (models.Bar, error)
}

func (m *mockBarService) AddBars(ticker, typeName string, bars []models.BarFields) ([]models.Bar, error) {
	if m.addBarsFn != nil {
		return m.addBarsFn(ticker, typeName, bars)
	}
	return []models.Bar{}, nil
}

func (m *mockBarService) GetBars(tickers []string, startDate time.Time, endDate *time.Time) (map[string][]models.Bar, error) {
	if m.getBarsFn != nil {
		return m.getBarsFn(tickers, startDate, endDate)
	}
	return map[string][]models.Bar{}, nil
}

func (m *mockBarService) EditBar(typeName string, assetID uint, edits map[string]any) (models.Bar, error) {
	if m.editBarFn != nil {
		return m.editBarFn(typeName, assetID, edits)
	}
	return &models.EquityBar{}, nil
}

var _ services.BarServicer = (*mockBarService)(nil)

func setupBarRouter(handler *BarHandler) *gin.Engine {
	r := gin.New()
	r.POST("/bars/query", handler.QueryBars)
	r.POST("/bars/:type", handler.AddBars)
	r.PUT("/bars/:type/:assetId", handler.EditBar)
	return r
}

// --- tests ---

func TestBarHandler_AddBars(t *testing.T) {
	t.Run("returns 201 and converts payload", func(t *testing.T) {
		var got []models.BarFields
		svc := &mockBarService{
			addBarsFn: func(ticker, typeName string, bars []models.BarFields) ([]models.Bar, error) {
				got = bars
				return []models.Bar{&models.EquityBar{AssetID: 1}}, nil
			},
		}
		r := setupBarRouter(NewBarHandler(svc))

		rec := doRequest(r, "POST", "/bars/equity",
			`{"ticker":"AAPL","bars":[{"date":"2024-01-02","open":100,"high":105.5,"low":99.25,"close":104.75,"volume":1000000,"adjusted_close":104.1}]}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if len(got) != 1 {
			t.Fatalf("expected 1 converted bar, got %d", len(got))
		}
		if !got[0].Date.Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("expected date 2024-01-02, got %s", got[0].Date)
		}
		if !got[0].Close.Equal(decimal.NewFromFloat(104.75)) {
			t.Errorf("expected close 104.75, got %s", got[0].Close)
		}
		if got[0].AdjustedClose == nil {
			t.Error("expected adjusted close to be carried through")
		}
	})

	t.Run("returns 400 on empty bars array", func(t *testing.T) {
		r := setupBarRouter(NewBarHandler(&mockBarService{}))

		rec := doRequest(r, "POST", "/bars/equity", `{"ticker":"AAPL","bars":[]}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on malformed bar date", func(t *testing.T) {
		r := setupBarRouter(NewBarHandler(&mockBarService{}))

		rec := doRequest(r, "POST", "/bars/equity",
			`{"ticker":"AAPL","bars":[{"date":"02/01/2024","open":100,"high":105,"low":99,"close":104,"volume":1000}]}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 409 on duplicate bar", func(t *testing.T) {
		svc := &mockBarService{
			addBarsFn: func(ticker, typeName string, bars []models.BarFields) ([]models.Bar, error) {
				return nil, apperrors.ErrDuplicateBar
			},
		}
		r := setupBarRouter(NewBarHandler(svc))

		rec := doRequest(r, "POST", "/bars/equity",
			`{"ticker":"AAPL","bars":[{"date":"2024-01-02","open":100,"high":105,"low":99,"close":104,"volume":1000}]}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "DUPLICATE_BAR")
	})
}

func TestBarHandler_QueryBars(t *testing.T) {
	t.Run("returns 200 with bars per ticker", func(t *testing.T) {
		svc := &mockBarService{
			getBarsFn: func(tickers []string, startDate time.Time, endDate *time.Time) (map[string][]models.Bar, error) {
				if endDate == nil {
					t.Error("expected end date to be passed through")
				}
				return map[string][]models.Bar{
					"AAPL": {&models.EquityBar{AssetID: 1, Date: startDate}},
				}, nil
			},
		}
		r := setupBarRouter(NewBarHandler(svc))

		rec := doRequest(r, "POST", "/bars/query",
			`{"tickers":["AAPL"],"start_date":"2024-01-01","end_date":"2024-01-31"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		bars := result["bars"].(map[string]interface{})
		if _, ok := bars["AAPL"]; !ok {
			t.Errorf("expected AAPL key in response, got %v", bars)
		}
	})

	t.Run("end date optional", func(t *testing.T) {
		svc := &mockBarService{
			getBarsFn: func(tickers []string, startDate time.Time, endDate *time.Time) (map[string][]models.Bar, error) {
				if endDate != nil {
					t.Error("expected nil end date when omitted")
				}
				return map[string][]models.Bar{}, nil
			},
		}
		r := setupBarRouter(NewBarHandler(svc))

		rec := doRequest(r, "POST", "/bars/query", `{"tickers":["AAPL"],"start_date":"2024-01-01"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 400 on missing start date", func(t *testing.T) {
		r := setupBarRouter(NewBarHandler(&mockBarService{}))

		rec := doRequest(r, "POST", "/bars/query", `{"tickers":["AAPL"]}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 404 when any ticker missing", func(t *testing.T) {
		svc := &mockBarService{
			getBarsFn: func(tickers []string, startDate time.Time, endDate *time.Time) (map[string][]models.Bar, error) {
				return nil, apperrors.ErrAssetNotFound
			},
		}
		r := setupBarRouter(NewBarHandler(svc))

		rec := doRequest(r, "POST", "/bars/query",
			`{"tickers":["AAPL","MISSING"],"start_date":"2024-01-01"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestBarHandler_EditBar(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		svc := &mockBarService{
			editBarFn: func(typeName string, assetID uint, edits map[string]any) (models.Bar, error) {
				return &models.EquityBar{AssetID: assetID}, nil
			},
		}
		r := setupBarRouter(NewBarHandler(svc))

		rec := doRequest(r, "PUT", "/bars/equity/1", `{"date":"2024-01-02","close":106.25}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 400 on bad date format from service", func(t *testing.T) {
		svc := &mockBarService{
			editBarFn: func(typeName string, assetID uint, edits map[string]any) (models.Bar, error) {
				return nil, apperrors.ErrInvalidDateFormat
			},
		}
		r := setupBarRouter(NewBarHandler(svc))

		rec := doRequest(r, "PUT", "/bars/equity/1", `{"close":106.25}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_DATE_FORMAT")
	})

	t.Run("returns 400 on non-numeric asset id", func(t *testing.T) {
		r := setupBarRouter(NewBarHandler(&mockBarService{}))

		rec := doRequest(r, "PUT", "/bars/equity/abc", `{"date":"2024-01-02"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
