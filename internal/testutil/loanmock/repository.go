package loanmock

import (
	"context"

	"gorm.io/gorm"

	domain "lending-engine/internal/domain/loan"
)

// Repo is a function-backed mock satisfying loan.Repository. Only set the
// funcs a test needs; unset lookups report not-found.
type Repo struct {
	CreateFn                  func(ctx context.Context, a *domain.Application) error
	GetByReferenceFn          func(ctx context.Context, reference string) (*domain.Application, error)
	GetByReferenceForUpdateFn func(ctx context.Context, reference string) (*domain.Application, error)
	GetPendingByUserIDFn      func(ctx context.Context, userID string) (*domain.Application, error)
	SaveFn                    func(ctx context.Context, a *domain.Application) error
}

func (m *Repo) Create(ctx context.Context, a *domain.Application) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByReference(ctx context.Context, reference string) (*domain.Application, error) {
	if m.GetByReferenceFn != nil {
		return m.GetByReferenceFn(ctx, reference)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByReferenceForUpdate(ctx context.Context, reference string) (*domain.Application, error) {
	if m.GetByReferenceForUpdateFn != nil {
		return m.GetByReferenceForUpdateFn(ctx, reference)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetPendingByUserID(ctx context.Context, userID string) (*domain.Application, error) {
	if m.GetPendingByUserIDFn != nil {
		return m.GetPendingByUserIDFn(ctx, userID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) Save(ctx context.Context, a *domain.Application) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}
