package repository

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotPending is returned by review transitions when the row exists but was
// already approved or rejected.
var ErrNotPending = errors.New("record is no longer pending")

// casResult turns the outcome of a "WHERE status = pending" update into
// ErrNotPending or gorm.ErrRecordNotFound.
func casResult(tx *gorm.DB, model any, id any, rowsAffected int64) error {
	if rowsAffected > 0 {
		return nil
	}
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrNotPending
	}
	return gorm.ErrRecordNotFound
}
