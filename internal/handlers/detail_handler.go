package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "assetdb/internal/errors"
	"assetdb/internal/services"
)

// DetailHandler handles per-type asset detail requests.
type DetailHandler struct {
	detailService services.DetailServicer
}

// NewDetailHandler creates a new DetailHandler.
func NewDetailHandler(detailService services.DetailServicer) *DetailHandler {
	return &DetailHandler{detailService: detailService}
}

// AddDetailsRequest represents the request payload for adding asset details.
// Fields are column-name keyed values applied against the resolved shape.
type AddDetailsRequest struct {
	Ticker string         `json:"ticker" binding:"required,min=1,max=10"`
	Fields map[string]any `json:"fields" binding:"required"`
}

// AddDetails handles creating the detail record for an existing asset.
func (h *DetailHandler) AddDetails(c *gin.Context) {
	typeName := c.Param("type")

	var req AddDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	detail, err := h.detailService.AddDetails(req.Ticker, typeName, req.Fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"details": detail})
}

// GetDetails handles retrieving the detail record for a single ticker.
func (h *DetailHandler) GetDetails(c *gin.Context) {
	typeName := c.Param("type")
	ticker := c.Query("ticker")
	if ticker == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrMissingField, "ticker query parameter is required"))
		return
	}

	details, err := h.detailService.GetDetails(typeName, ticker, nil)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"details": details})
}

// QueryDetails handles retrieving detail records matching a criteria map.
// Keys may carry a _gte or _lte suffix for range comparisons.
func (h *DetailHandler) QueryDetails(c *gin.Context) {
	typeName := c.Param("type")

	var criteria map[string]any
	if err := c.ShouldBindJSON(&criteria); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	details, err := h.detailService.GetDetails(typeName, "", criteria)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"details": details})
}

// EditDetails handles updating the detail record owned by an asset.
func (h *DetailHandler) EditDetails(c *gin.Context) {
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

	detail, err := h.detailService.EditDetails(typeName, assetID, edits)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"details": detail})
}
