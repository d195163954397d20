package loan

import "context"

type Repository interface {
	Create(ctx context.Context, a *Application) error
	GetByReference(ctx context.Context, reference string) (*Application, error)
	// GetByReferenceForUpdate locks the loan row for the duration of the
	// surrounding transaction; lifecycle and ledger mutations go through it.
	GetByReferenceForUpdate(ctx context.Context, reference string) (*Application, error)
	GetPendingByUserID(ctx context.Context, userID string) (*Application, error)
	Save(ctx context.Context, a *Application) error
}
