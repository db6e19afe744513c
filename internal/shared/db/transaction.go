// Package db provides transaction management shared by repositories.
package db

import "context"

// txKey is the context key marking that a transaction is open.
type txKey struct{}

// TransactionManager runs fn atomically: if fn returns an error every
// change it made through the repositories is undone.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// WithTx marks ctx as running inside a transaction.
func WithTx(ctx context.Context) context.Context {
	return context.WithValue(ctx, txKey{}, true)
}

// InTx reports whether ctx is already inside a transaction, so nested calls
// join the outer one instead of opening their own.
func InTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
}
