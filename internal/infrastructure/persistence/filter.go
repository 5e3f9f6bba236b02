package persistence

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/lojamae/backend/internal/domain/shared"
)

// applyFilter applies pagination and ordering from a shared.Filter to a query
func applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.OrderBy != "" {
		dir := "asc"
		if strings.EqualFold(filter.OrderDir, "desc") {
			dir = "desc"
		}
		query = query.Order(fmt.Sprintf("%s %s", filter.OrderBy, dir))
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query
}

// countThenPage runs a count on the filtered query before pagination is
// applied, then returns the paged query
func countThenPage(query *gorm.DB, filter shared.Filter) (*gorm.DB, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	return applyFilter(query, filter), total, nil
}
