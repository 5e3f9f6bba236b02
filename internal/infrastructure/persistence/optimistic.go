package persistence

import (
	"gorm.io/gorm"

	"github.com/lojamae/backend/internal/domain/shared"
	"github.com/lojamae/backend/internal/infrastructure/persistence/models"
)

// saveAggregate writes an aggregate row under an optimistic version check.
// An existing row is only updated while it still holds the version the
// caller loaded, and the stored version is bumped in the same statement;
// a mismatch returns shared.ErrConcurrencyConflict and nothing is written.
// A missing row is inserted with the version it carries. Association
// fields handled separately by the caller go in omit.
func saveAggregate(db *gorm.DB, model interface{}, agg *models.AggregateModel, omit ...string) error {
	loaded := agg.Version
	agg.Version = loaded + 1

	query := db.Model(model).
		Where("version = ?", loaded).
		Select("*").
		Omit(append([]string{"ID", "CreatedAt"}, omit...)...)
	result := query.Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var exists int64
	if err := db.Model(model).Where("id = ?", agg.ID).Count(&exists).Error; err != nil {
		return err
	}
	if exists > 0 {
		return shared.ErrConcurrencyConflict
	}

	agg.Version = loaded
	if len(omit) > 0 {
		return db.Omit(omit...).Create(model).Error
	}
	return db.Create(model).Error
}
