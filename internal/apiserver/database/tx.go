package database

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// withTx stores an open transaction in the context so nested repository
// calls inside a Transaction callback reuse it instead of the shared pool.
func withTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// conn returns the transaction carried by ctx when one is present,
// falling back to the shared connection.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}
