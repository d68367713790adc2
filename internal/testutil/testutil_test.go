package testutil_test

import (
	"testing"
	"time"

	"assetdb/internal/errors"
	"assetdb/internal/models"
	"assetdb/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	// Verify all tables exist by doing a simple count query on each model.
	var count int64
	for _, table := range []string{
		"asset", "equity", "equity_bardata", "cryptocurrency",
		"cryptocurrency_bardata", "commodity_future", "commodity_future_bardata",
	} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	asset := testutil.CreateTestAsset(t, db, models.AssetTypeEquity)
	if asset.AssetID == 0 {
		t.Fatal("asset should have a non-zero ID")
	}

	equity := testutil.CreateTestEquity(t, db, asset.AssetID)
	if equity.AssetID != asset.AssetID {
		t.Errorf("expected equity owned by asset %d, got %d", asset.AssetID, equity.AssetID)
	}

	cryptoAsset := testutil.CreateTestAsset(t, db, models.AssetTypeCryptocurrency)
	crypto := testutil.CreateTestCryptocurrency(t, db, cryptoAsset.AssetID)
	if crypto.CryptocurrencyName == "" {
		t.Error("expected cryptocurrency name to be set")
	}

	futureAsset := testutil.CreateTestAsset(t, db, models.AssetTypeCommodityFuture)
	future := testutil.CreateTestCommodityFuture(t, db, futureAsset.AssetID)
	if future.BaseFutureCode == "" {
		t.Error("expected base future code to be set")
	}

	bar := testutil.CreateTestEquityBar(t, db, asset.AssetID, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	if bar.RecordID == 0 {
		t.Error("bar should have a non-zero record ID")
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrAssetNotFound, "custom message")
	testutil.AssertAppError(t, err, "ASSET_NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
