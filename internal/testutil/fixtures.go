package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"assetdb/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestAsset creates an asset of the given type with a unique ticker.
func CreateTestAsset(t *testing.T, db *gorm.DB, assetType models.AssetType) *models.Asset {
	t.Helper()
	ticker := fmt.Sprintf("TST%d", nextID())
	return CreateTestAssetWithTicker(t, db, ticker, assetType)
}

// CreateTestAssetWithTicker creates an asset with the given ticker and type.
func CreateTestAssetWithTicker(t *testing.T, db *gorm.DB, ticker string, assetType models.AssetType) *models.Asset {
	t.Helper()

	asset := &models.Asset{
		Ticker: models.NormalizeTicker(ticker),
		Type:   assetType,
	}
	if err := db.Create(asset).Error; err != nil {
		t.Fatalf("failed to create test asset: %v", err)
	}
	return asset
}

// CreateTestEquity creates the equity detail record for an asset.
func CreateTestEquity(t *testing.T, db *gorm.DB, assetID uint) *models.Equity {
	t.Helper()

	n := nextID()
	equity := &models.Equity{
		AssetID:           assetID,
		CompanyName:       fmt.Sprintf("Test Company %d", n),
		Exchange:          "NASDAQ",
		Currency:          "USD",
		Industry:          "Technology",
		MarketCap:         1_000_000_000,
		SharesOutstanding: 50_000_000,
	}
	if err := db.Create(equity).Error; err != nil {
		t.Fatalf("failed to create test equity: %v", err)
	}
	return equity
}

// CreateTestCryptocurrency creates the cryptocurrency detail record for an asset.
func CreateTestCryptocurrency(t *testing.T, db *gorm.DB, assetID uint) *models.Cryptocurrency {
	t.Helper()

	n := nextID()
	crypto := &models.Cryptocurrency{
		AssetID:            assetID,
		CryptocurrencyName: fmt.Sprintf("Test Coin %d", n),
		CirculatingSupply:  19_000_000,
		MarketCap:          500_000_000,
		TotalSupply:        21_000_000,
		MaxSupply:          21_000_000,
	}
	if err := db.Create(crypto).Error; err != nil {
		t.Fatalf("failed to create test cryptocurrency: %v", err)
	}
	return crypto
}

// CreateTestCommodityFuture creates the commodity future detail record for an asset.
func CreateTestCommodityFuture(t *testing.T, db *gorm.DB, assetID uint) *models.CommodityFuture {
	t.Helper()

	n := nextID()
	future := &models.CommodityFuture{
		AssetID:        assetID,
		CommodityName:  fmt.Sprintf("Test Commodity %d", n),
		BaseFutureCode: "CL",
		ExpirationDate: time.Date(2027, 12, 17, 0, 0, 0, 0, time.UTC),
		Industry:       "Energy",
		Exchange:       "NYMEX",
		Currency:       "USD",
	}
	if err := db.Create(future).Error; err != nil {
		t.Fatalf("failed to create test commodity future: %v", err)
	}
	return future
}

// TestBarFields returns a bar for the given date with plausible OHLCV values.
func TestBarFields(date time.Time) models.BarFields {
	return models.BarFields{
		Date:   date,
		Open:   decimal.NewFromFloat(100.00),
		High:   decimal.NewFromFloat(105.50),
		Low:    decimal.NewFromFloat(99.25),
		Close:  decimal.NewFromFloat(104.75),
		Volume: 1_000_000,
	}
}

// CreateTestEquityBar inserts one equity bar row for the asset and date.
func CreateTestEquityBar(t *testing.T, db *gorm.DB, assetID uint, date time.Time) *models.EquityBar {
	t.Helper()

	bar := &models.EquityBar{
		AssetID: assetID,
		Date:    date,
		Open:    decimal.NewFromFloat(100.00),
		High:    decimal.NewFromFloat(105.50),
		Low:     decimal.NewFromFloat(99.25),
		Close:   decimal.NewFromFloat(104.75),
		Volume:  1_000_000,
	}
	if err := db.Create(bar).Error; err != nil {
		t.Fatalf("failed to create test equity bar: %v", err)
	}
	return bar
}
