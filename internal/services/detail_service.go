package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "assetdb/internal/errors"
	"assetdb/internal/filter"
	"assetdb/internal/models"
)

// detailService handles per-type asset detail records, dispatching through
// the asset type registry to the concrete detail shape.
type detailService struct {
	db *gorm.DB
}

// NewDetailService creates a new DetailServicer.
func NewDetailService(db *gorm.DB) DetailServicer {
	return &detailService{db: db}
}

// AddDetails creates the detail record for an existing asset. Fields are
// applied by column name against the resolved shape; unknown fields are
// rejected.
func (s *detailService) AddDetails(ticker, typeName string, fields map[string]any) (models.Detail, error) {
	desc, err := models.ResolveAssetType(typeName)
	if err != nil {
		return nil, err
	}
	ticker = models.NormalizeTicker(ticker)

	var asset models.Asset
	if err := s.db.Where("ticker = ? AND type = ?", ticker, desc.Type).First(&asset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrAssetNotFound,
				fmt.Sprintf("Asset %s non-existent in database", ticker))
		}
		return nil, apperrors.Wrap(apperrors.ErrStorageFailure, err)
	}

	if _, err := desc.FindDetail(s.db.Where("asset_id = ?", asset.AssetID)); err == nil {
		return nil, apperrors.WithMessage(apperrors.ErrDetailsAlreadyExist,
			fmt.Sprintf("Asset already present in '%s' table", desc.Type))
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrStorageFailure, err)
	}

	detail := desc.NewDetail()
	for _, key := range sortedKeys(fields) {
		if err := detail.ApplyEdit(key, fields[key]); err != nil {
			return nil, err
		}
	}
	detail.SetAssetID(asset.AssetID)

	if err := s.db.Create(detail).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.ErrDetailsAlreadyExist
		}
		return nil, apperrors.Wrap(apperrors.ErrStorageFailure, err)
	}

	return detail, nil
}

// GetDetails returns detail records of the given type, either the single
// record for a ticker or all records matching the filter criteria.
func (s *detailService) GetDetails(typeName, ticker string, criteria map[string]any) ([]models.Detail, error) {
	desc, err := models.ResolveAssetType(typeName)
	if err != nil {
		return nil, err
	}

	if ticker != "" {
		ticker = models.NormalizeTicker(ticker)
		var asset models.Asset
		if err := s.db.Where("ticker = ?", ticker).First(&asset).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.WithMessage(apperrors.ErrAssetNotFound,
					fmt.Sprintf("Asset %s not present in 'asset' table", ticker))
			}
			return nil, apperrors.Wrap(apperrors.ErrStorageFailure, err)
		}

		detail, err := desc.FindDetail(s.db.Where("asset_id = ?", asset.AssetID))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.WithMessage(apperrors.ErrDetailsNotFound,
					fmt.Sprintf("Asset not present in '%s' table", desc.Type))
			}
			return nil, apperrors.Wrap(apperrors.ErrStorageFailure, err)
		}
		return []models.Detail{detail}, nil
	}

	q, err := filter.Apply(s.db, desc.DetailShape, criteria)
	if err != nil {
		return nil, err
	}
	details, err := desc.FindDetails(q)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageFailure, err)
	}
	if len(details) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrDetailsNotFound,
			fmt.Sprintf("No assets found with the criteria: %v", criteria))
	}

	return details, nil
}

// EditDetails applies edits to the detail record owned by the given asset.
// All edits are validated against the resolved shape before a single save.
func (s *detailService) EditDetails(typeName string, assetID uint, edits map[string]any) (models.Detail, error) {
	desc, err := models.ResolveAssetType(typeName)
	if err != nil {
		return nil, err
	}

	if len(edits) == 0 {
		return nil, apperrors.ErrNoEdits
	}

	var asset models.Asset
	if err := s.db.First(&asset, assetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrAssetNotFound,
				fmt.Sprintf("Asset with asset_id %d not found", assetID))
		}
		return nil, apperrors.Wrap(apperrors.ErrStorageFailure, err)
	}

	detail, err := desc.FindDetail(s.db.Where("asset_id = ?", assetID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrDetailsNotFound,
				fmt.Sprintf("Asset with asset_id %d not found in '%s' table", assetID, desc.Type))
		}
		return nil, apperrors.Wrap(apperrors.ErrStorageFailure, err)
	}

	for _, key := range sortedKeys(edits) {
		if err := detail.ApplyEdit(key, edits[key]); err != nil {
			return nil, err
		}
	}

	if err := s.db.Save(detail).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageFailure, err)
	}

	return detail, nil
}
