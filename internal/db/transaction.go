package db

import (
	"context"

	"gorm.io/gorm"
)

type contextKey struct{}

func withTransaction(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, contextKey{}, tx)
}

func transactionFromContext(ctx context.Context) *gorm.DB {
	tx, _ := ctx.Value(contextKey{}).(*gorm.DB)
	return tx
}

// NewTransaction runs f in a transaction. Queries with the ctx passed to f join the transaction
func NewTransaction(ctx context.Context, client *Client, f func(context.Context) error) error {
	return client.connection.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return f(withTransaction(ctx, tx))
	})
}
