package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "assetdb/internal/errors"
	"assetdb/internal/models"
	"assetdb/internal/services"
)

// BarHandler handles daily bar time-series requests.
type BarHandler struct {
	barService services.BarServicer
}

// NewBarHandler creates a new BarHandler.
func NewBarHandler(barService services.BarServicer) *BarHandler {
	return &BarHandler{barService: barService}
}

// BarEntry is one bar in a bulk insert payload.
type BarEntry struct {
	Date          string   `json:"date" binding:"required,dateonly"`
	Open          float64  `json:"open" binding:"required"`
	High          float64  `json:"high" binding:"required"`
	Low           float64  `json:"low" binding:"required"`
	Close         float64  `json:"close" binding:"required"`
	Volume        int64    `json:"volume" binding:"required"`
	AdjustedClose *float64 `json:"adjusted_close"`
}

// AddBarsRequest represents the request payload for a bulk bar insert.
type AddBarsRequest struct {
	Ticker string     `json:"ticker" binding:"required,min=1,max=10"`
	Bars   []BarEntry `json:"bars" binding:"required,min=1,dive"`
}

// BarQueryRequest represents the request payload for a multi-ticker bar
// query over an inclusive date range. EndDate defaults to today.
type BarQueryRequest struct {
	Tickers   []string `json:"tickers" binding:"required,min=1"`
	StartDate string   `json:"start_date" binding:"required,dateonly"`
	EndDate   string   `json:"end_date" binding:"omitempty,dateonly"`
}

// AddBars handles bulk-inserting bars for an asset. The batch is atomic:
// one duplicate date rejects the whole payload.
func (h *BarHandler) AddBars(c *gin.Context) {
	typeName := c.Param("type")

	var req AddBarsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	fields := make([]models.BarFields, 0, len(req.Bars))
	for _, entry := range req.Bars {
		date, err := parseDateOnly(entry.Date)
		if err != nil {
			respondWithError(c, err)
			return
		}
		f := models.BarFields{
			Date:   date,
			Open:   decimal.NewFromFloat(entry.Open),
			High:   decimal.NewFromFloat(entry.High),
			Low:    decimal.NewFromFloat(entry.Low),
			Close:  decimal.NewFromFloat(entry.Close),
			Volume: entry.Volume,
		}
		if entry.AdjustedClose != nil {
			adj := decimal.NewFromFloat(*entry.AdjustedClose)
			f.AdjustedClose = &adj
		}
		fields = append(fields, f)
	}

	bars, err := h.barService.AddBars(req.Ticker, typeName, fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"bars": bars})
}

// QueryBars handles retrieving bars for several tickers at once, keyed by
// the ticker as the caller wrote it.
func (h *BarHandler) QueryBars(c *gin.Context) {
	var req BarQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	start, err := parseDateOnly(req.StartDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var end *time.Time
	if req.EndDate != "" {
		parsed, err := parseDateOnly(req.EndDate)
		if err != nil {
			respondWithError(c, err)
			return
		}
		end = &parsed
	}

	bars, err := h.barService.GetBars(req.Tickers, start, end)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bars": bars})
}

// EditBar handles updating a single bar. The edits map must carry a
// 'date' key identifying the bar; the remaining keys are field edits.
func (h *BarHandler) EditBar(c *gin.Context) {
	typeName := c.Param("type")

	assetID, err := parsePathID(c, "assetId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var edits map[string]any
	if err := c.ShouldBindJSON(&edits); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	bar, err := h.barService.EditBar(typeName, assetID, edits)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bar": bar})
}
