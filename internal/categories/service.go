package categories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopmart-io/shopmart-backend/pkg/db"
	"github.com/shopmart-io/shopmart-backend/pkg/db/models"
	pkgerrors "github.com/shopmart-io/shopmart-backend/pkg/errors"
)

// Service exposes catalog category operations.
type Service interface {
	CreateCategory(ctx context.Context, input CreateCategoryInput) (*CategoryDTO, error)
	UpdateCategory(ctx context.Context, categoryID uuid.UUID, input UpdateCategoryInput) (*CategoryDTO, error)
	DeleteCategory(ctx context.Context, categoryID uuid.UUID) error
	GetCategory(ctx context.Context, categoryID uuid.UUID, includeInactive bool) (*CategoryDTO, error)
	ListCategories(ctx context.Context) ([]CategoryDTO, error)
	FindByID(ctx context.Context, id uuid.UUID, includeInactive bool) (*models.Category, error)
}

// CreateCategoryInput holds the validated payload to create a category.
type CreateCategoryInput struct {
	Name        string
	Description *string
	Image       *string
	ParentID    *uuid.UUID
}

// UpdateCategoryInput holds optional mutation values for a category.
type UpdateCategoryInput struct {
	Name        *string
	Description *string
	Image       *string
	ParentID    *uuid.UUID
	ClearParent bool
	IsActive    *bool
}

// service implements the category service.
type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs a category service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("category repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

// CreateCategory derives the slug and level and inserts the row. Root rows
// get level 0, children always parent.level+1.
func (s *service) CreateCategory(ctx context.Context, input CreateCategoryInput) (*CategoryDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	slug := Slugify(name)
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name must contain at least one alphanumeric character")
	}

	level := 0
	if input.ParentID != nil {
		parent, err := s.repo.FindByID(ctx, *input.ParentID, false)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "parent category does not exist")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load parent category")
		}
		level = parent.Level + 1
	}

	row := &models.Category{
		Name:        name,
		Slug:        slug,
		Description: input.Description,
		Image:       input.Image,
		ParentID:    input.ParentID,
		Level:       level,
		IsActive:    true,
	}

	created, err := s.repo.Create(ctx, row)
	if err != nil {
		if db.IsUniqueViolation(err, "categories_name_key") || db.IsUniqueViolation(err, "categories_slug_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert category")
	}

	return s.loadDTO(ctx, created.ID)
}

// UpdateCategory applies the partial update. A parent change recomputes the
// level; re-parenting a category that still has children is refused so the
// level invariant cannot silently break for the subtree.
func (s *service) UpdateCategory(ctx context.Context, categoryID uuid.UUID, input UpdateCategoryInput) (*CategoryDTO, error) {
	row, err := s.repo.FindByID(ctx, categoryID, true)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}

	parentChanges := input.ClearParent || (input.ParentID != nil && !sameParent(row.ParentID, input.ParentID))
	if parentChanges {
		children, err := s.repo.CountChildren(ctx, categoryID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count children")
		}
		if children > 0 {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cannot move a category that has children")
		}
	}

	if input.ParentID != nil && !input.ClearParent {
		if *input.ParentID == categoryID {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "category cannot be its own parent")
		}
		parent, err := s.repo.FindByID(ctx, *input.ParentID, false)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "parent category does not exist")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load parent category")
		}
		row.ParentID = input.ParentID
		row.Level = parent.Level + 1
	} else if input.ClearParent {
		row.ParentID = nil
		row.Level = 0
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		slug := Slugify(name)
		if slug == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name must contain at least one alphanumeric character")
		}
		row.Name = name
		row.Slug = slug
	}
	if input.Description != nil {
		row.Description = input.Description
	}
	if input.Image != nil {
		row.Image = input.Image
	}
	if input.IsActive != nil {
		row.IsActive = *input.IsActive
	}

	row.Parent = nil
	if _, err := s.repo.Update(ctx, row); err != nil {
		if db.IsUniqueViolation(err, "categories_name_key") || db.IsUniqueViolation(err, "categories_slug_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update category")
	}

	return s.loadDTO(ctx, categoryID)
}

// DeleteCategory soft-deletes the node. Children keep their rows; they are
// simply unreachable through the active-only list until re-parented.
func (s *service) DeleteCategory(ctx context.Context, categoryID uuid.UUID) error {
	if err := s.repo.SoftDelete(ctx, categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete category")
	}
	return nil
}

// GetCategory returns one category with its parent resolved.
func (s *service) GetCategory(ctx context.Context, categoryID uuid.UUID, includeInactive bool) (*CategoryDTO, error) {
	row, err := s.repo.FindByID(ctx, categoryID, includeInactive)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	return NewCategoryDTO(row), nil
}

// ListCategories returns the active tree ordered by level then name.
func (s *service) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list categories")
	}
	return NewCategoryDTOs(rows), nil
}

// FindByID exposes the raw model for sibling services (product validation).
func (s *service) FindByID(ctx context.Context, id uuid.UUID, includeInactive bool) (*models.Category, error) {
	return s.repo.FindByID(ctx, id, includeInactive)
}

func (s *service) loadDTO(ctx context.Context, id uuid.UUID) (*CategoryDTO, error) {
	row, err := s.repo.FindByID(ctx, id, true)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category detail")
	}
	return NewCategoryDTO(row), nil
}

func sameParent(current *uuid.UUID, next *uuid.UUID) bool {
	if current == nil || next == nil {
		return current == nil && next == nil
	}
	return *current == *next
}
