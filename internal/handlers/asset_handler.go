package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "assetdb/internal/errors"
	"assetdb/internal/pagination"
	"assetdb/internal/services"
)

// AssetHandler handles asset identity requests.
type AssetHandler struct {
	assetService services.AssetServicer
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(assetService services.AssetServicer) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

// CreateAssetRequest represents the request payload for creating an asset.
type CreateAssetRequest struct {
	Ticker string `json:"ticker" binding:"required,min=1,max=10"`
	Type   string `json:"type" binding:"required,asset_type"`
}

// CreateAsset handles creating a new asset identity record.
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	asset, err := h.assetService.CreateAsset(req.Ticker, req.Type)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"asset": asset})
}

// GetAssets handles retrieving assets by ticker or type. With neither
// filter it falls back to a paginated listing of all assets.
func (h *AssetHandler) GetAssets(c *gin.Context) {
	ticker := c.Query("ticker")
	typeName := c.Query("type")

	if ticker == "" && typeName == "" {
		var page pagination.PageRequest
		if err := c.ShouldBindQuery(&page); err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
		result, err := h.assetService.ListAssets(page)
		if err != nil {
			respondWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
		return
	}

	assets, err := h.assetService.GetAssets(ticker, typeName)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"assets": assets})
}

// EditAsset handles renaming an asset. The edits arrive as a field-name
// to value mapping; immutable fields are rejected by the service.
func (h *AssetHandler) EditAsset(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var edits map[string]any
	if err := c.ShouldBindJSON(&edits); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	asset, err := h.assetService.EditAsset(id, edits)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"asset": asset})
}

// DeleteAsset handles deleting an asset and its dependent records.
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	ticker := c.Query("ticker")
	if ticker == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrMissingField, "ticker query parameter is required"))
		return
	}

	confirmation, err := h.assetService.DeleteAsset(ticker, id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": confirmation})
}
