// AngelaMos | 2026
// service.go

package category

import (
	"context"

	"github.com/google/uuid"

	"github.com/nearmeb2b/backoffice/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(
	ctx context.Context,
	actor core.Actor,
	req CreateCategoryRequest,
) (*Category, error) {
	if !actor.IsAdmin() {
		return nil, core.ForbiddenError("only admins can manage categories")
	}

	c := &Category{
		ID:   uuid.New().String(),
		Name: req.Name,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(
	ctx context.Context,
	actor core.Actor,
	id string,
	req UpdateCategoryRequest,
) (*Category, error) {
	if !actor.IsAdmin() {
		return nil, core.ForbiddenError("only admins can manage categories")
	}

	c := &Category{ID: id, Name: req.Name}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

func (s *Service) Delete(
	ctx context.Context,
	actor core.Actor,
	id string,
) error {
	if !actor.IsAdmin() {
		return core.ForbiddenError("only admins can manage categories")
	}

	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Category, error) {
	return s.repo.List(ctx)
}
