package service

import (
	"context"

	"gorm.io/gorm"
)

// txRunner runs fn inside a single database transaction.
type txRunner func(ctx context.Context, fn func(tx *gorm.DB) error) error

func gormTx(db *gorm.DB) txRunner {
	return func(ctx context.Context, fn func(tx *gorm.DB) error) error {
		return db.WithContext(ctx).Transaction(fn)
	}
}
