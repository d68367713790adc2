package services

import (
	"sort"
	"time"

	"assetdb/internal/models"
	"assetdb/internal/pagination"
)

// AssetServicer defines the contract for asset identity records.
type AssetServicer interface {
	CreateAsset(ticker, typeName string) (*models.Asset, error)
	GetAssets(ticker, typeName string) ([]models.Asset, error)
	ListAssets(page pagination.PageRequest) (*pagination.PageResponse[models.Asset], error)
	EditAsset(assetID uint, edits map[string]any) (*models.Asset, error)
	DeleteAsset(ticker string, assetID uint) (string, error)
}

// DetailServicer defines the contract for per-type asset detail records.
type DetailServicer interface {
	AddDetails(ticker, typeName string, fields map[string]any) (models.Detail, error)
	GetDetails(typeName, ticker string, criteria map[string]any) ([]models.Detail, error)
	EditDetails(typeName string, assetID uint, edits map[string]any) (models.Detail, error)
}

// BarServicer defines the contract for time-series bar data.
type BarServicer interface {
	AddBars(ticker, typeName string, bars []models.BarFields) ([]models.Bar, error)
	GetBars(tickers []string, startDate time.Time, endDate *time.Time) (map[string][]models.Bar, error)
	EditBar(typeName string, assetID uint, edits map[string]any) (models.Bar, error)
}

// sortedKeys returns the map's keys in sorted order so edit application
// and error reporting are deterministic.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
