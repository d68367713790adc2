package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Equity holds the type-specific descriptive fields for a listed company,
// one-to-one with its owning Asset.
type Equity struct {
	EquityID          uint      `gorm:"column:equity_id;primaryKey" json:"equity_id"`
	AssetID           uint      `gorm:"not null;uniqueIndex:uix_equity_asset" json:"asset_id"`
	CompanyName       string    `gorm:"size:150;not null" json:"company_name"`
	Exchange          string    `gorm:"size:25;not null" json:"exchange"`
	Currency          string    `gorm:"size:3" json:"currency"`
	Industry          string    `gorm:"size:50" json:"industry"`
	Description       string    `gorm:"size:1000" json:"description"`
	MarketCap         int64     `json:"market_cap"`
	SharesOutstanding int64     `json:"shares_outstanding"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (Equity) TableName() string { return "equity" }

var equityColumns = map[string]bool{
	"equity_id": true, "asset_id": true, "company_name": true,
	"exchange": true, "currency": true, "industry": true,
	"description": true, "market_cap": true, "shares_outstanding": true,
	"created_at": true, "updated_at": true,
}

// HasColumn reports whether name is a real column on the equity table.
func (Equity) HasColumn(name string) bool { return equityColumns[name] }

func (e *Equity) SetAssetID(id uint) { e.AssetID = id }
func (e *Equity) OwnerAssetID() uint { return e.AssetID }

// ApplyEdit sets one editable field by column name. Keys, generated ids,
// and timestamps are not editable.
func (e *Equity) ApplyEdit(field string, value any) error {
	switch field {
	case "company_name":
		return setString(&e.CompanyName, field, value)
	case "exchange":
		return setString(&e.Exchange, field, value)
	case "currency":
		return setString(&e.Currency, field, value)
	case "industry":
		return setString(&e.Industry, field, value)
	case "description":
		return setString(&e.Description, field, value)
	case "market_cap":
		return setInt64(&e.MarketCap, field, value)
	case "shares_outstanding":
		return setInt64(&e.SharesOutstanding, field, value)
	}
	return invalidAttribute(field)
}

// EquityBar is one daily OHLCV observation for an equity. The equity table
// is the only bar table that carries an adjusted close.
type EquityBar struct {
	RecordID      uint                `gorm:"column:record_id;primaryKey" json:"record_id"`
	AssetID       uint                `gorm:"not null;uniqueIndex:uix_equity_bardata_asset_date" json:"asset_id"`
	Date          time.Time           `gorm:"not null;uniqueIndex:uix_equity_bardata_asset_date" json:"date"`
	Open          decimal.Decimal     `gorm:"type:decimal(10,2)" json:"open"`
	High          decimal.Decimal     `gorm:"type:decimal(10,2)" json:"high"`
	Low           decimal.Decimal     `gorm:"type:decimal(10,2)" json:"low"`
	Close         decimal.Decimal     `gorm:"type:decimal(10,2)" json:"close"`
	Volume        int64               `json:"volume"`
	AdjustedClose decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"adjusted_close"`
}

func (EquityBar) TableName() string { return "equity_bardata" }

var equityBarColumns = map[string]bool{
	"record_id": true, "asset_id": true, "date": true, "open": true,
	"high": true, "low": true, "close": true, "volume": true,
	"adjusted_close": true,
}

// HasColumn reports whether name is a real column on the equity bar table.
func (EquityBar) HasColumn(name string) bool { return equityBarColumns[name] }

func (b *EquityBar) OwnerAssetID() uint { return b.AssetID }
func (b *EquityBar) BarDate() time.Time { return b.Date }

// ApplyEdit sets one editable bar field by column name. The date itself is
// the lookup key and is handled by the service.
func (b *EquityBar) ApplyEdit(field string, value any) error {
	switch field {
	case "open":
		return setDecimal(&b.Open, field, value)
	case "high":
		return setDecimal(&b.High, field, value)
	case "low":
		return setDecimal(&b.Low, field, value)
	case "close":
		return setDecimal(&b.Close, field, value)
	case "volume":
		return setInt64(&b.Volume, field, value)
	case "adjusted_close":
		d, ok := toDecimal(value)
		if !ok {
			return invalidValue(field)
		}
		b.AdjustedClose = decimal.NewNullDecimal(d)
		return nil
	}
	return invalidAttribute(field)
}

func newEquityBar(assetID uint, f BarFields) EquityBar {
	bar := EquityBar{
		AssetID: assetID,
		Date:    f.Date,
		Open:    f.Open,
		High:    f.High,
		Low:     f.Low,
		Close:   f.Close,
		Volume:  f.Volume,
	}
	if f.AdjustedClose != nil {
		bar.AdjustedClose = decimal.NewNullDecimal(*f.AdjustedClose)
	}
	return bar
}

func setString(dst *string, field string, value any) error {
	s, ok := toString(value)
	if !ok {
		return invalidValue(field)
	}
	*dst = s
	return nil
}

func setInt64(dst *int64, field string, value any) error {
	n, ok := toInt64(value)
	if !ok {
		return invalidValue(field)
	}
	*dst = n
	return nil
}

func setDecimal(dst *decimal.Decimal, field string, value any) error {
	d, ok := toDecimal(value)
	if !ok {
		return invalidValue(field)
	}
	*dst = d
	return nil
}

func setTime(dst *time.Time, field string, value any) error {
	t, ok := toTime(value)
	if !ok {
		return invalidValue(field)
	}
	*dst = t
	return nil
}
