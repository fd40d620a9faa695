// Package store is the single write path for every farm table. Each
// handler maps its request into a typed model and dispatches through
// these helpers, so the set of writable tables is closed at compile
// time.
package store

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound reports a delete or lookup against a missing row.
var ErrNotFound = errors.New("record not found")

// Upsert inserts the record when its primary key is zero and updates
// the existing row otherwise. Saving the same fully-specified record
// twice updates in place rather than duplicating it.
func Upsert[M any](db *gorm.DB, record *M) error {
	return db.Save(record).Error
}

// DeleteByID removes the row with the given primary key.
func DeleteByID[M any](db *gorm.DB, id uint) error {
	var m M
	result := db.Delete(&m, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindByID loads one row by primary key.
func FindByID[M any](db *gorm.DB, id uint) (*M, error) {
	var m M
	result := db.First(&m, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &m, nil
}

// CountWhere counts rows matching a condition. Used for the
// referential checks performed before a delete is dispatched.
func CountWhere[M any](db *gorm.DB, query string, args ...any) (int64, error) {
	var m M
	var count int64
	err := db.Model(&m).Where(query, args...).Count(&count).Error
	return count, err
}
