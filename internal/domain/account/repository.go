package account

import "context"

// Repository describes account persistence needs from use cases.
type Repository interface {
	GetByUsername(ctx context.Context, username string) (Account, bool, error)
	Upsert(ctx context.Context, item Account) (Account, error)
}
