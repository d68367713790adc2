package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CommodityFuture holds the type-specific descriptive fields for a futures
// contract, one-to-one with its owning Asset.
type CommodityFuture struct {
	CommodityFutureID uint      `gorm:"column:commodity_future_id;primaryKey" json:"commodity_future_id"`
	AssetID           uint      `gorm:"not null;uniqueIndex:uix_commodity_future_asset" json:"asset_id"`
	CommodityName     string    `gorm:"size:25;not null" json:"commodity_name"`
	BaseFutureCode    string    `gorm:"size:10;not null" json:"base_future_code"`
	ExpirationDate    time.Time `gorm:"not null" json:"expiration_date"`
	Industry          string    `gorm:"size:50" json:"industry"`
	Exchange          string    `gorm:"size:25" json:"exchange"`
	Currency          string    `gorm:"size:3" json:"currency"`
	Description       string    `gorm:"size:1000" json:"description"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (CommodityFuture) TableName() string { return "commodity_future" }

var commodityFutureColumns = map[string]bool{
	"commodity_future_id": true, "asset_id": true, "commodity_name": true,
	"base_future_code": true, "expiration_date": true, "industry": true,
	"exchange": true, "currency": true, "description": true,
	"created_at": true, "updated_at": true,
}

// HasColumn reports whether name is a real column on the commodity future table.
func (CommodityFuture) HasColumn(name string) bool { return commodityFutureColumns[name] }

func (c *CommodityFuture) SetAssetID(id uint) { c.AssetID = id }
func (c *CommodityFuture) OwnerAssetID() uint { return c.AssetID }

// ApplyEdit sets one editable field by column name.
func (c *CommodityFuture) ApplyEdit(field string, value any) error {
	switch field {
	case "commodity_name":
		return setString(&c.CommodityName, field, value)
	case "base_future_code":
		return setString(&c.BaseFutureCode, field, value)
	case "expiration_date":
		return setTime(&c.ExpirationDate, field, value)
	case "industry":
		return setString(&c.Industry, field, value)
	case "exchange":
		return setString(&c.Exchange, field, value)
	case "currency":
		return setString(&c.Currency, field, value)
	case "description":
		return setString(&c.Description, field, value)
	}
	return invalidAttribute(field)
}

// CommodityFutureBar is one daily OHLCV observation for a commodity future.
// Futures carry no adjusted close.
type CommodityFutureBar struct {
	RecordID uint            `gorm:"column:record_id;primaryKey" json:"record_id"`
	AssetID  uint            `gorm:"not null;uniqueIndex:uix_commodity_future_bardata_asset_date" json:"asset_id"`
	Date     time.Time       `gorm:"not null;uniqueIndex:uix_commodity_future_bardata_asset_date" json:"date"`
	Open     decimal.Decimal `gorm:"type:decimal(10,2)" json:"open"`
	High     decimal.Decimal `gorm:"type:decimal(10,2)" json:"high"`
	Low      decimal.Decimal `gorm:"type:decimal(10,2)" json:"low"`
	Close    decimal.Decimal `gorm:"type:decimal(10,2)" json:"close"`
	Volume   int64           `json:"volume"`
}

func (CommodityFutureBar) TableName() string { return "commodity_future_bardata" }

var commodityFutureBarColumns = map[string]bool{
	"record_id": true, "asset_id": true, "date": true, "open": true,
	"high": true, "low": true, "close": true, "volume": true,
}

// HasColumn reports whether name is a real column on the commodity future bar table.
func (CommodityFutureBar) HasColumn(name string) bool { return commodityFutureBarColumns[name] }

func (b *CommodityFutureBar) OwnerAssetID() uint { return b.AssetID }
func (b *CommodityFutureBar) BarDate() time.Time { return b.Date }

// ApplyEdit sets one editable bar field by column name.
func (b *CommodityFutureBar) ApplyEdit(field string, value any) error {
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
	}
	return invalidAttribute(field)
}

func newCommodityFutureBar(assetID uint, f BarFields) CommodityFutureBar {
	return CommodityFutureBar{
		AssetID: assetID,
		Date:    f.Date,
		Open:    f.Open,
		High:    f.High,
		Low:     f.Low,
		Close:   f.Close,
		Volume:  f.Volume,
	}
}
