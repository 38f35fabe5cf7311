package database

import (
	"gorm.io/gorm"

	"github.com/yukikurage/proposal-board-api/internal/utils"
)

// Scope is a reusable query modifier for db.Scopes.
type Scope = func(db *gorm.DB) *gorm.DB

// Paginate applies offset and limit. A zero limit leaves the query unbounded.
func Paginate(params utils.PaginationParams) Scope {
	return func(db *gorm.DB) *gorm.DB {
		if params.Limit <= 0 {
			return db
		}
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

// EqualIf filters column by value unless value is empty.
func EqualIf(column, value string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		if value == "" {
			return db
		}
		return db.Where(column+" = ?", value)
	}
}

// NewestFirst orders by a timestamp column, latest rows first.
func NewestFirst(column string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(column + " DESC")
	}
}
