package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	apperrors "assetdb/internal/errors"
	"assetdb/internal/models"
	"assetdb/internal/pagination"
)

// assetService handles asset identity records.
type assetService struct {
	db *gorm.DB
}

// NewAssetService creates a new AssetServicer.
func NewAssetService(db *gorm.DB) AssetServicer {
	return &assetService{db: db}
}

// CreateAsset creates a new asset identity record. The ticker is stored
// uppercase and the type lowercase; the (ticker, type) pair must be new.
func (s *assetService) CreateAsset(ticker, typeName string) (*models.Asset, error) {
	ticker = models.NormalizeTicker(ticker)
	typeName = models.NormalizeTypeName(typeName)

	if ticker == "" {
		return nil, apperrors.WithMessage(apperrors.ErrMissingField, "Ticker is missing")
	}
	if typeName == "" {
		return nil, apperrors.WithMessage(apperrors.ErrMissingField, "Asset type is missing")
	}

	desc, err := models.ResolveAssetType(typeName)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.Asset{}).
		Where("ticker = ? AND type = ?", ticker, desc.Type).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageFailure, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateAsset
	}

	asset := &models.Asset{Ticker: ticker, Type: desc.Type}
	if err := s.db.Create(asset).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.ErrDuplicateAsset
		}
		return nil, apperrors.Wrap(apperrors.ErrStorageFailure, err)
	}

	return asset, nil
}

// GetAssets returns assets matching the given ticker or type. The ticker
// takes precedence and yields exactly one record.
func (s *assetService) GetAssets(ticker, typeName string) ([]models.Asset, error) {
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
		return []models.Asset{asset}, nil
	}

	if typeName != "" {
		desc, err := models.ResolveAssetType(typeName)
		if err != nil {
			return nil, err
		}
		var assets []models.Asset
		if err := s.db.Where("type = ?", desc.Type).Find(&assets).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStorageFailure, err)
		}
		if len(assets) == 0 {
			return nil, apperrors.WithMessage(apperrors.ErrAssetNotFound, "No assets for given type")
		}
		return assets, nil
	}

	return nil, apperrors.WithMessage(apperrors.ErrMissingField, "Either ticker or type is required")
}

// ListAssets returns a paginated list of all assets ordered by ticker.
func (s *assetService) ListAssets(page pagination.PageRequest) (*pagination.PageResponse[models.Asset], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Asset{})
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageFailure, err)
	}

	var assets []models.Asset
	if err := base.Order("ticker ASC").Scopes(pagination.Paginate(page)).Find(&assets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageFailure, err)
	}

	result := pagination.NewPageResponse(assets, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// EditAsset applies edits to an asset. The asset id and type are
// immutable; a type change requires deleting and re-creating the asset.
func (s *assetService) EditAsset(assetID uint, edits map[string]any) (*models.Asset, error) {
	var asset models.Asset
	if err := s.db.First(&asset, assetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrAssetNotFound,
				fmt.Sprintf("Asset with asset_id %d not found", assetID))
		}
		return nil, apperrors.Wrap(apperrors.ErrStorageFailure, err)
	}

	if _, ok := edits["asset_id"]; ok {
		return nil, apperrors.WithMessage(apperrors.ErrImmutableField, "Attribute 'asset_id' cannot be changed")
	}
	if _, ok := edits["type"]; ok {
		return nil, apperrors.WithMessage(apperrors.ErrImmutableField,
			"Asset 'type' cannot be changed, drop the asset and re-add it under the correct asset class")
	}

	for _, key := range sortedKeys(edits) {
		if err := asset.ApplyEdit(key, edits[key]); err != nil {
			return nil, err
		}
	}

	if err := s.db.Save(&asset).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.ErrDuplicateAsset
		}
		return nil, apperrors.Wrap(apperrors.ErrStorageFailure, err)
	}

	return &asset, nil
}

// DeleteAsset removes an asset and all of its detail and bar records. The
// ticker and id must both match the same row.
func (s *assetService) DeleteAsset(ticker string, assetID uint) (string, error) {
	ticker = models.NormalizeTicker(ticker)

	var asset models.Asset
	if err := s.db.Where("ticker = ? AND asset_id = ?", ticker, assetID).First(&asset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.WithMessage(apperrors.ErrAssetNotFound,
				fmt.Sprintf("Asset with ticker %s and asset_id %d not found", ticker, assetID))
		}
		return "", apperrors.Wrap(apperrors.ErrStorageFailure, err)
	}

	desc, err := models.ResolveAssetType(string(asset.Type))
	if err != nil {
		return "", err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("asset_id = ?", assetID).Delete(desc.NewBar()).Error; err != nil {
			return err
		}
		if err := tx.Where("asset_id = ?", assetID).Delete(desc.NewDetail()).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Asset{}, assetID).Error
	})
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrStorageFailure, err)
	}

	return fmt.Sprintf("Asset with ticker %s and asset_id %d successfully deleted", ticker, assetID), nil
}

// isUniqueConstraintError checks if a GORM error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // SQLite
		strings.Contains(msg, "duplicate key value violates unique constraint") // PostgreSQL
}
