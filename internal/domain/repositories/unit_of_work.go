package repositories

import (
	"context"
)

// UnitOfWork groups repository writes into one commit
type UnitOfWork interface {
	// Do runs fn inside a transaction. The transaction commits only when fn
	// returns nil; otherwise every write made through ctx is rolled back.
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
