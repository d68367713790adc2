package services

import (
	"testing"
	"time"

	"assetdb/internal/models"
	"assetdb/internal/pagination"
	"assetdb/internal/testutil"
)

func TestCreateAsset(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		asset, err := svc.CreateAsset("AAPL", "equity")
		testutil.AssertNoError(t, err)

		if asset.AssetID == 0 {
			t.Fatal("expected non-zero asset ID")
		}
		if asset.Ticker != "AAPL" {
			t.Errorf("expected ticker AAPL, got %s", asset.Ticker)
		}
		if asset.Type != models.AssetTypeEquity {
			t.Errorf("expected type equity, got %s", asset.Type)
		}
	})

	t.Run("normalizes_ticker_and_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		asset, err := svc.CreateAsset("  btc  ", "  CryptoCurrency ")
		testutil.AssertNoError(t, err)

		if asset.Ticker != "BTC" {
			t.Errorf("expected ticker BTC, got %s", asset.Ticker)
		}
		if asset.Type != models.AssetTypeCryptocurrency {
			t.Errorf("expected type cryptocurrency, got %s", asset.Type)
		}
	})

	t.Run("invalid_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		_, err := svc.CreateAsset("AAPL", "bond")
		testutil.AssertAppError(t, err, "INVALID_ASSET_TYPE")
	})

	t.Run("missing_ticker", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		_, err := svc.CreateAsset("   ", "equity")
		testutil.AssertAppError(t, err, "MISSING_FIELD")
	})

	t.Run("missing_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		_, err := svc.CreateAsset("AAPL", "")
		testutil.AssertAppError(t, err, "MISSING_FIELD")
	})

	t.Run("duplicate", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		_, err := svc.CreateAsset("AAPL", "equity")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateAsset("aapl", "EQUITY")
		testutil.AssertAppError(t, err, "DUPLICATE_ASSET")
	})

	t.Run("same_ticker_different_type_allowed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		_, err := svc.CreateAsset("GLD", "equity")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateAsset("GLD", "commodityfuture")
		testutil.AssertNoError(t, err)
	})
}

func TestGetAssets(t *testing.T) {
	t.Run("by_ticker", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)
		created := testutil.CreateTestAssetWithTicker(t, db, "AAPL", models.AssetTypeEquity)

		assets, err := svc.GetAssets("aapl", "")
		testutil.AssertNoError(t, err)

		if len(assets) != 1 {
			t.Fatalf("expected 1 asset, got %d", len(assets))
		}
		if assets[0].AssetID != created.AssetID {
			t.Errorf("expected asset ID %d, got %d", created.AssetID, assets[0].AssetID)
		}
	})

	t.Run("by_ticker_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		_, err := svc.GetAssets("MISSING", "")
		testutil.AssertAppError(t, err, "ASSET_NOT_FOUND")
	})

	t.Run("by_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		testutil.CreateTestAsset(t, db, models.AssetTypeEquity)
		testutil.CreateTestAsset(t, db, models.AssetTypeEquity)
		testutil.CreateTestAsset(t, db, models.AssetTypeCryptocurrency)

		assets, err := svc.GetAssets("", "equity")
		testutil.AssertNoError(t, err)

		if len(assets) != 2 {
			t.Errorf("expected 2 equity assets, got %d", len(assets))
		}
		for _, a := range assets {
			if a.Type != models.AssetTypeEquity {
				t.Errorf("expected type equity, got %s", a.Type)
			}
		}
	})

	t.Run("by_type_empty", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		_, err := svc.GetAssets("", "commodityfuture")
		testutil.AssertAppError(t, err, "ASSET_NOT_FOUND")
	})

	t.Run("invalid_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		_, err := svc.GetAssets("", "bond")
		testutil.AssertAppError(t, err, "INVALID_ASSET_TYPE")
	})

	t.Run("neither_ticker_nor_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		_, err := svc.GetAssets("", "")
		testutil.AssertAppError(t, err, "MISSING_FIELD")
	})
}

func TestListAssets(t *testing.T) {
	t.Run("pagination", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		for i := 0; i < 5; i++ {
			testutil.CreateTestAsset(t, db, models.AssetTypeEquity)
		}

		result, err := svc.ListAssets(pagination.PageRequest{Page: 1, PageSize: 2})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 5 {
			t.Errorf("expected 5 total items, got %d", result.TotalItems)
		}
		if len(result.Data) != 2 {
			t.Errorf("expected 2 items on page 1, got %d", len(result.Data))
		}
		if result.TotalPages != 3 {
			t.Errorf("expected 3 total pages, got %d", result.TotalPages)
		}
	})

	t.Run("ordered_by_ticker", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		testutil.CreateTestAssetWithTicker(t, db, "MSFT", models.AssetTypeEquity)
		testutil.CreateTestAssetWithTicker(t, db, "AAPL", models.AssetTypeEquity)

		result, err := svc.ListAssets(pagination.PageRequest{Page: 1, PageSize: 20})
		testutil.AssertNoError(t, err)

		if len(result.Data) != 2 {
			t.Fatalf("expected 2 assets, got %d", len(result.Data))
		}
		if result.Data[0].Ticker != "AAPL" {
			t.Errorf("expected AAPL first, got %s", result.Data[0].Ticker)
		}
	})
}

func TestEditAsset(t *testing.T) {
	t.Run("rename_ticker", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)
		asset := testutil.CreateTestAssetWithTicker(t, db, "FB", models.AssetTypeEquity)

		updated, err := svc.EditAsset(asset.AssetID, map[string]any{"ticker": "meta"})
		testutil.AssertNoError(t, err)

		if updated.Ticker != "META" {
			t.Errorf("expected ticker META, got %s", updated.Ticker)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		_, err := svc.EditAsset(99999, map[string]any{"ticker": "META"})
		testutil.AssertAppError(t, err, "ASSET_NOT_FOUND")
	})

	t.Run("immutable_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)
		asset := testutil.CreateTestAsset(t, db, models.AssetTypeEquity)

		_, err := svc.EditAsset(asset.AssetID, map[string]any{"type": "cryptocurrency"})
		testutil.AssertAppError(t, err, "IMMUTABLE_FIELD")
	})

	t.Run("immutable_asset_id", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)
		asset := testutil.CreateTestAsset(t, db, models.AssetTypeEquity)

		_, err := svc.EditAsset(asset.AssetID, map[string]any{"asset_id": 42})
		testutil.AssertAppError(t, err, "IMMUTABLE_FIELD")
	})

	t.Run("unknown_attribute", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)
		asset := testutil.CreateTestAsset(t, db, models.AssetTypeEquity)

		_, err := svc.EditAsset(asset.AssetID, map[string]any{"bogus": "value"})
		testutil.AssertAppError(t, err, "INVALID_ATTRIBUTE")
	})

	t.Run("rename_onto_existing_pair", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		testutil.CreateTestAssetWithTicker(t, db, "AAPL", models.AssetTypeEquity)
		other := testutil.CreateTestAssetWithTicker(t, db, "MSFT", models.AssetTypeEquity)

		_, err := svc.EditAsset(other.AssetID, map[string]any{"ticker": "AAPL"})
		testutil.AssertAppError(t, err, "DUPLICATE_ASSET")
	})
}

func TestDeleteAsset(t *testing.T) {
	t.Run("cascades_details_and_bars", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		asset := testutil.CreateTestAssetWithTicker(t, db, "AAPL", models.AssetTypeEquity)
		testutil.CreateTestEquity(t, db, asset.AssetID)
		testutil.CreateTestEquityBar(t, db, asset.AssetID, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
		testutil.CreateTestEquityBar(t, db, asset.AssetID, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC))

		msg, err := svc.DeleteAsset("AAPL", asset.AssetID)
		testutil.AssertNoError(t, err)
		if msg == "" {
			t.Error("expected confirmation message")
		}

		var assetCount, detailCount, barCount int64
		db.Model(&models.Asset{}).Where("asset_id = ?", asset.AssetID).Count(&assetCount)
		db.Model(&models.Equity{}).Where("asset_id = ?", asset.AssetID).Count(&detailCount)
		db.Model(&models.EquityBar{}).Where("asset_id = ?", asset.AssetID).Count(&barCount)

		if assetCount != 0 {
			t.Errorf("expected asset row deleted, found %d", assetCount)
		}
		if detailCount != 0 {
			t.Errorf("expected detail row deleted, found %d", detailCount)
		}
		if barCount != 0 {
			t.Errorf("expected bar rows deleted, found %d", barCount)
		}
	})

	t.Run("ticker_id_mismatch", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		asset := testutil.CreateTestAssetWithTicker(t, db, "AAPL", models.AssetTypeEquity)
		testutil.CreateTestAssetWithTicker(t, db, "MSFT", models.AssetTypeEquity)

		_, err := svc.DeleteAsset("MSFT", asset.AssetID)
		testutil.AssertAppError(t, err, "ASSET_NOT_FOUND")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		_, err := svc.DeleteAsset("AAPL", 99999)
		testutil.AssertAppError(t, err, "ASSET_NOT_FOUND")
	})
}
