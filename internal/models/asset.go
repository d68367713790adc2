package models

import (
	"fmt"
	"strings"
	"time"

	apperrors "assetdb/internal/errors"
)

// Asset is the top-level identity record for a tradable instrument.
// The (ticker, type) pair is unique; tickers are stored uppercase and
// types lowercase.
type Asset struct {
	AssetID   uint      `gorm:"column:asset_id;primaryKey" json:"asset_id"`
	Ticker    string    `gorm:"size:10;not null;uniqueIndex:uix_ticker_type" json:"ticker"`
	Type      AssetType `gorm:"size:50;uniqueIndex:uix_ticker_type" json:"type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the default GORM table name.
func (Asset) TableName() string { return "asset" }

// NormalizeTicker trims and uppercases a ticker at the API boundary.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// NormalizeTypeName trims and lowercases an asset type name at the API boundary.
func NormalizeTypeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ApplyEdit sets one editable field by its column name. The asset id and
// type are immutable and are rejected by the service layer before this is
// reached; anything else unknown is an invalid attribute.
func (a *Asset) ApplyEdit(field string, value any) error {
	switch field {
	case "ticker":
		s, ok := toString(value)
		if !ok {
			return invalidValue(field)
		}
		a.Ticker = NormalizeTicker(s)
	default:
		return invalidAttribute(field)
	}
	return nil
}

func invalidAttribute(field string) error {
	return apperrors.WithMessage(apperrors.ErrInvalidAttribute,
		fmt.Sprintf("'%s' is not a valid attribute", field))
}

func invalidValue(field string) error {
	return apperrors.WithMessage(apperrors.ErrInvalidInput,
		fmt.Sprintf("invalid value for attribute '%s'", field))
}
