package services

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"gorm.io/gorm"

	apperrors "assetdb/internal/errors"
	"assetdb/internal/filter"
	"assetdb/internal/models"
)

// dateOnlyPattern is the required format for the bar lookup date in edits.
var dateOnlyPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// barService handles time-series bar data, dispatching through the asset
// type registry to the concrete bar shape.
type barService struct {
	db *gorm.DB
}

// NewBarService creates a new BarServicer.
func NewBarService(db *gorm.DB) BarServicer {
	return &barService{db: db}
}

// AddBars bulk-inserts bars for an asset whose detail record already
// exists. The batch commits as one transaction: a duplicate (asset, date)
// anywhere in it rejects the whole batch.
func (s *barService) AddBars(ticker, typeName string, bars []models.BarFields) ([]models.Bar, error) {
	desc, err := models.ResolveAssetType(typeName)
	if err != nil {
		return nil, err
	}
	ticker = models.NormalizeTicker(ticker)

	if len(bars) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Bars array is empty")
	}

	var asset models.Asset
	if err := s.db.Where("ticker = ? AND type = ?", ticker, desc.Type).First(&asset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrAssetNotFound,
				fmt.Sprintf("Asset non-existent in '%s' table", desc.Type))
		}
		return nil, apperrors.Wrap(apperrors.ErrStorageFailure, err)
	}

	if _, err := desc.FindDetail(s.db.Where("asset_id = ?", asset.AssetID)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrAssetNotFound,
				fmt.Sprintf("Asset non-existent in '%s' table", desc.Type))
		}
		return nil, apperrors.Wrap(apperrors.ErrStorageFailure, err)
	}

	batch := desc.MakeBars(asset.AssetID, bars)
	err = s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(batch).Error
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.WithMessage(apperrors.ErrDuplicateBar,
				"Duplicate date trying to be entered into database")
		}
		return nil, apperrors.Wrap(apperrors.ErrStorageFailure, err)
	}

	return desc.CollectBars(batch), nil
}

// GetBars returns the bars for each requested ticker within the inclusive
// date range. A missing asset for any ticker aborts the whole call. The
// end date defaults to now. Bars are sorted by date for determinism.
func (s *barService) GetBars(tickers []string, startDate time.Time, endDate *time.Time) (map[string][]models.Bar, error) {
	end := time.Now()
	if endDate != nil {
		end = *endDate
	}

	results := make(map[string][]models.Bar, len(tickers))
	for _, ticker := range tickers {
		normalized := models.NormalizeTicker(ticker)

		var asset models.Asset
		if err := s.db.Where("ticker = ?", normalized).First(&asset).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.WithMessage(apperrors.ErrAssetNotFound,
					fmt.Sprintf("Asset %s not present in 'asset' table", normalized))
			}
			return nil, apperrors.Wrap(apperrors.ErrStorageFailure, err)
		}

		desc, err := models.ResolveAssetType(string(asset.Type))
		if err != nil {
			return nil, err
		}

		q := filter.DateRange(s.db.Where("asset_id = ?", asset.AssetID), startDate, end)
		bars, err := desc.FindBars(q.Order("date ASC"))
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStorageFailure, err)
		}
		results[ticker] = bars
	}

	return results, nil
}

// EditBar applies edits to the bar identified by the asset id and the
// mandatory 'date' edit key (YYYY-MM-DD). The date is the lookup key;
// the remaining edits are applied field by field.
func (s *barService) EditBar(typeName string, assetID uint, edits map[string]any) (models.Bar, error) {
	desc, err := models.ResolveAssetType(typeName)
	if err != nil {
		return nil, err
	}

	if len(edits) == 0 {
		return nil, apperrors.ErrNoEdits
	}

	raw, _ := edits["date"].(string)
	if !dateOnlyPattern.MatchString(raw) {
		return nil, apperrors.ErrInvalidDateFormat
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, apperrors.ErrInvalidDateFormat
	}

	var asset models.Asset
	if err := s.db.First(&asset, assetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrAssetNotFound,
				fmt.Sprintf("Asset with asset_id %d not found", assetID))
		}
		return nil, apperrors.Wrap(apperrors.ErrStorageFailure, err)
	}

	bar, err := desc.FindBar(s.db.Where("asset_id = ? AND date = ?", assetID, date))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrBarNotFound,
				fmt.Sprintf("Asset with asset_id %d not found in '%s_bardata' table", assetID, desc.Type))
		}
		return nil, apperrors.Wrap(apperrors.ErrStorageFailure, err)
	}

	for _, key := range sortedKeys(edits) {
		if key == "date" {
			continue
		}
		if err := bar.ApplyEdit(key, edits[key]); err != nil {
			return nil, err
		}
	}

	if err := s.db.Save(bar).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageFailure, err)
	}

	return bar, nil
}
