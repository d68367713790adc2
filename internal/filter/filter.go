// Package filter builds GORM query predicates from untyped filter criteria.
//
// Criteria are flat field-name -> value mappings. A key may carry a "_gte"
// or "_lte" suffix to request a range predicate on the suffix-stripped
// column instead of equality. All predicates are conjoined.
package filter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "assetdb/internal/errors"
	"assetdb/internal/models"
)

const (
	suffixGTE = "_gte"
	suffixLTE = "_lte"
)

// Apply refines q with one predicate per criteria entry, validating every
// key (direct or suffix-stripped) against the shape's column set. The
// first invalid key fails the whole call with INVALID_ATTRIBUTE and no
// predicate is kept. Keys are processed in sorted order so the reported
// key is deterministic.
func Apply(q *gorm.DB, shape models.Shape, criteria map[string]any) (*gorm.DB, error) {
	keys := make([]string, 0, len(criteria))
	for key := range criteria {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := criteria[key]
		switch {
		case strings.HasSuffix(key, suffixGTE):
			column := strings.TrimSuffix(key, suffixGTE)
			if !shape.HasColumn(column) {
				return nil, invalidKey(key)
			}
			q = q.Where(column+" >= ?", value)
		case strings.HasSuffix(key, suffixLTE):
			column := strings.TrimSuffix(key, suffixLTE)
			if !shape.HasColumn(column) {
				return nil, invalidKey(key)
			}
			q = q.Where(column+" <= ?", value)
		default:
			if !shape.HasColumn(key) {
				return nil, invalidKey(key)
			}
			q = q.Where(key+" = ?", value)
		}
	}
	return q, nil
}

// DateRange refines q to bars with start <= date <= end, both ends
// inclusive. An inverted range simply matches nothing.
func DateRange(q *gorm.DB, start, end time.Time) *gorm.DB {
	return q.Where("date >= ? AND date <= ?", start, end)
}

func invalidKey(key string) error {
	return apperrors.WithMessage(apperrors.ErrInvalidAttribute,
		fmt.Sprintf("'%s' is not a valid attribute", key))
}
