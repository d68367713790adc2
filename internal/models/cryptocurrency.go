package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cryptocurrency holds the type-specific descriptive fields for a digital
// asset, one-to-one with its owning Asset.
type Cryptocurrency struct {
	CryptocurrencyID   uint      `gorm:"column:cryptocurrency_id;primaryKey" json:"cryptocurrency_id"`
	AssetID            uint      `gorm:"not null;uniqueIndex:uix_cryptocurrency_asset" json:"asset_id"`
	CryptocurrencyName string    `gorm:"size:50;not null" json:"cryptocurrency_name"`
	CirculatingSupply  int64     `json:"circulating_supply"`
	MarketCap          int64     `json:"market_cap"`
	TotalSupply        int64     `json:"total_supply"`
	MaxSupply          int64     `json:"max_supply"`
	Description        string    `gorm:"size:1000" json:"description"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (Cryptocurrency) TableName() string { return "cryptocurrency" }

var cryptocurrencyColumns = map[string]bool{
	"cryptocurrency_id": true, "asset_id": true, "cryptocurrency_name": true,
	"circulating_supply": true, "market_cap": true, "total_supply": true,
	"max_supply": true, "description": true, "created_at": true,
	"updated_at": true,
}

// HasColumn reports whether name is a real column on the cryptocurrency table.
func (Cryptocurrency) HasColumn(name string) bool { return cryptocurrencyColumns[name] }

func (c *Cryptocurrency) SetAssetID(id uint) { c.AssetID = id }
func (c *Cryptocurrency) OwnerAssetID() uint { return c.AssetID }

// ApplyEdit sets one editable field by column name.
func (c *Cryptocurrency) ApplyEdit(field string, value any) error {
	switch field {
	case "cryptocurrency_name":
		return setString(&c.CryptocurrencyName, field, value)
	case "circulating_supply":
		return setInt64(&c.CirculatingSupply, field, value)
	case "market_cap":
		return setInt64(&c.MarketCap, field, value)
	case "total_supply":
		return setInt64(&c.TotalSupply, field, value)
	case "max_supply":
		return setInt64(&c.MaxSupply, field, value)
	case "description":
		return setString(&c.Description, field, value)
	}
	return invalidAttribute(field)
}

// CryptocurrencyBar is one daily OHLCV observation for a cryptocurrency.
type CryptocurrencyBar struct {
	RecordID uint            `gorm:"column:record_id;primaryKey" json:"record_id"`
	AssetID  uint            `gorm:"not null;uniqueIndex:uix_cryptocurrency_bardata_asset_date" json:"asset_id"`
	Date     time.Time       `gorm:"not null;uniqueIndex:uix_cryptocurrency_bardata_asset_date" json:"date"`
	Open     decimal.Decimal `gorm:"type:decimal(10,2)" json:"open"`
	High     decimal.Decimal `gorm:"type:decimal(10,2)" json:"high"`
	Low      decimal.Decimal `gorm:"type:decimal(10,2)" json:"low"`
	Close    decimal.Decimal `gorm:"type:decimal(10,2)" json:"close"`
	Volume   int64           `json:"volume"`
}

func (CryptocurrencyBar) TableName() string { return "cryptocurrency_bardata" }

var cryptocurrencyBarColumns = map[string]bool{
	"record_id": true, "asset_id": true, "date": true, "open": true,
	"high": true, "low": true, "close": true, "volume": true,
}

// HasColumn reports whether name is a real column on the cryptocurrency bar table.
func (CryptocurrencyBar) HasColumn(name string) bool { return cryptocurrencyBarColumns[name] }

func (b *CryptocurrencyBar) OwnerAssetID() uint { return b.AssetID }
func (b *CryptocurrencyBar) BarDate() time.Time { return b.Date }

// ApplyEdit sets one editable bar field by column name.
func (b *CryptocurrencyBar) ApplyEdit(field string, value any) error {
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

func newCryptocurrencyBar(assetID uint, f BarFields) CryptocurrencyBar {
	// Cryptocurrency bars carry no adjusted close; the field is dropped.
	return CryptocurrencyBar{
		AssetID: assetID,
		Date:    f.Date,
		Open:    f.Open,
		High:    f.High,
		Low:     f.Low,
		Close:   f.Close,
		Volume:  f.Volume,
	}
}
