package bootstrap

import (
	"context"

	"github.com/noah-isme/escola-api/internal/repository"
	"github.com/noah-isme/escola-api/internal/service"
)

// storeUnitOfWork exposes a repository.Store through service.UnitOfWork.
type storeUnitOfWork struct {
	store *repository.Store
}

// NewUnitOfWork adapts store for the service layer.
func NewUnitOfWork(store *repository.Store) service.UnitOfWork {
	return &storeUnitOfWork{store: store}
}

func (u *storeUnitOfWork) Read(ctx context.Context, fn func(service.Repos) error) error {
	return u.store.Read(ctx, func(r *repository.Registry) error {
		return fn(reposFrom(r))
	})
}

func (u *storeUnitOfWork) Atomic(ctx context.Context, fn func(service.Repos) error) error {
	return u.store.Atomic(ctx, func(r *repository.Registry) error {
		return fn(reposFrom(r))
	})
}

func reposFrom(r *repository.Registry) service.Repos {
	return service.Repos{
		Teachers:    r.Teachers,
		Students:    r.Students,
		Courses:     r.Courses,
		Classes:     r.Classes,
		Enrollments: r.Enrollments,
		Summary:     r.Summary,
	}
}
