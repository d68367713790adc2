package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "assetdb/internal/errors"
)

// AssetType is the canonical name of an asset category. The set is closed:
// every asset row carries one of the three values below.
type AssetType string

const (
	AssetTypeEquity          AssetType = "equity"
	AssetTypeCryptocurrency  AssetType = "cryptocurrency"
	AssetTypeCommodityFuture AssetType = "commodityfuture"
)

// Shape exposes the column set of an entity so the filter layer can
// validate criteria keys before they reach SQL.
type Shape interface {
	TableName() string
	HasColumn(name string) bool
}

// Detail is implemented by the per-type detail records (Equity,
// Cryptocurrency, CommodityFuture).
type Detail interface {
	ApplyEdit(field string, value any) error
	SetAssetID(id uint)
	OwnerAssetID() uint
}

// Bar is implemented by the per-type bar records.
type Bar interface {
	ApplyEdit(field string, value any) error
	OwnerAssetID() uint
	BarDate() time.Time
}

// BarFields carries the already-parsed values for one bar to insert.
// AdjustedClose is dropped for bar shapes that do not store it.
type BarFields struct {
	Date          time.Time
	Open          decimal.Decimal
	High          decimal.Decimal
	Low           decimal.Decimal
	Close         decimal.Decimal
	Volume        int64
	AdjustedClose *decimal.Decimal
}

// AssetTypeDescriptor binds a canonical type name to the concrete detail
// and bar shapes behind it. The typed closures let one generic service
// path query and construct three structurally different table pairs.
type AssetTypeDescriptor struct {
	Type        AssetType
	DetailShape Shape
	BarShape    Shape

	NewDetail   func() Detail
	FindDetail  func(q *gorm.DB) (Detail, error)
	FindDetails func(q *gorm.DB) ([]Detail, error)

	NewBar      func() Bar
	MakeBars    func(assetID uint, inputs []BarFields) any
	CollectBars func(batch any) []Bar
	FindBar     func(q *gorm.DB) (Bar, error)
	FindBars    func(q *gorm.DB) ([]Bar, error)
}

var registry = map[AssetType]*AssetTypeDescriptor{
	AssetTypeEquity: {
		Type:        AssetTypeEquity,
		DetailShape: Equity{},
		BarShape:    EquityBar{},
		NewDetail:   func() Detail { return &Equity{} },
		FindDetail:  findDetail[Equity, *Equity],
		FindDetails: findDetails[Equity, *Equity],
		NewBar:      func() Bar { return &EquityBar{} },
		MakeBars: func(assetID uint, inputs []BarFields) any {
			rows := make([]EquityBar, len(inputs))
			for i, f := range inputs {
				rows[i] = newEquityBar(assetID, f)
			}
			return &rows
		},
		CollectBars: collectBars[EquityBar, *EquityBar],
		FindBar:     findBar[EquityBar, *EquityBar],
		FindBars:    findBars[EquityBar, *EquityBar],
	},
	AssetTypeCryptocurrency: {
		Type:        AssetTypeCryptocurrency,
		DetailShape: Cryptocurrency{},
		BarShape:    CryptocurrencyBar{},
		NewDetail:   func() Detail { return &Cryptocurrency{} },
		FindDetail:  findDetail[Cryptocurrency, *Cryptocurrency],
		FindDetails: findDetails[Cryptocurrency, *Cryptocurrency],
		NewBar:      func() Bar { return &CryptocurrencyBar{} },
		MakeBars: func(assetID uint, inputs []BarFields) any {
			rows := make([]CryptocurrencyBar, len(inputs))
			for i, f := range inputs {
				rows[i] = newCryptocurrencyBar(assetID, f)
			}
			return &rows
		},
		CollectBars: collectBars[CryptocurrencyBar, *CryptocurrencyBar],
		FindBar:     findBar[CryptocurrencyBar, *CryptocurrencyBar],
		FindBars:    findBars[CryptocurrencyBar, *CryptocurrencyBar],
	},
	AssetTypeCommodityFuture: {
		Type:        AssetTypeCommodityFuture,
		DetailShape: CommodityFuture{},
		BarShape:    CommodityFutureBar{},
		NewDetail:   func() Detail { return &CommodityFuture{} },
		FindDetail:  findDetail[CommodityFuture, *CommodityFuture],
		FindDetails: findDetails[CommodityFuture, *CommodityFuture],
		NewBar:      func() Bar { return &CommodityFutureBar{} },
		MakeBars: func(assetID uint, inputs []BarFields) any {
			rows := make([]CommodityFutureBar, len(inputs))
			for i, f := range inputs {
				rows[i] = newCommodityFutureBar(assetID, f)
			}
			return &rows
		},
		CollectBars: collectBars[CommodityFutureBar, *CommodityFutureBar],
		FindBar:     findBar[CommodityFutureBar, *CommodityFutureBar],
		FindBars:    findBars[CommodityFutureBar, *CommodityFutureBar],
	},
}

// ResolveAssetType maps a type name, case-insensitively, onto its registry
// entry. Any name outside the closed set fails with INVALID_ASSET_TYPE.
func ResolveAssetType(name string) (*AssetTypeDescriptor, error) {
	if desc, ok := registry[AssetType(NormalizeTypeName(name))]; ok {
		return desc, nil
	}
	return nil, apperrors.WithMessage(apperrors.ErrInvalidAssetType,
		fmt.Sprintf("'%s' is not a valid asset type", name))
}

// All returns every GORM model for schema migration.
func All() []any {
	return []any{
		&Asset{},
		&Equity{},
		&EquityBar{},
		&Cryptocurrency{},
		&CryptocurrencyBar{},
		&CommodityFuture{},
		&CommodityFutureBar{},
	}
}

// Generic finders shared by the registry entries. The pointer constraint
// ties the concrete row type to the interface its pointer implements.

func findDetail[T any, PT interface {
	*T
	Detail
}](q *gorm.DB) (Detail, error) {
	var row T
	if err := q.First(&row).Error; err != nil {
		return nil, err
	}
	return PT(&row), nil
}

func findDetails[T any, PT interface {
	*T
	Detail
}](q *gorm.DB) ([]Detail, error) {
	var rows []T
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]Detail, len(rows))
	for i := range rows {
		out[i] = PT(&rows[i])
	}
	return out, nil
}

func findBar[T any, PT interface {
	*T
	Bar
}](q *gorm.DB) (Bar, error) {
	var row T
	if err := q.First(&row).Error; err != nil {
		return nil, err
	}
	return PT(&row), nil
}

func findBars[T any, PT interface {
	*T
	Bar
}](q *gorm.DB) ([]Bar, error) {
	var rows []T
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]Bar, len(rows))
	for i := range rows {
		out[i] = PT(&rows[i])
	}
	return out, nil
}

func collectBars[T any, PT interface {
	*T
	Bar
}](batch any) []Bar {
	rows := *batch.(*[]T)
	out := make([]Bar, len(rows))
	for i := range rows {
		out[i] = PT(&rows[i])
	}
	return out
}
