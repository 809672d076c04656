package categories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/shopadmin-backend/pkg/db"
	"github.com/angelmondragon/shopadmin-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/shopadmin-backend/pkg/errors"
	"github.com/angelmondragon/shopadmin-backend/pkg/pagination"
)

const (
	msgCategoryNotFound = "Category not found"
	msgParentInvalid    = "The selected parent id is invalid."
	msgParentCycle      = "The parent id field must not reference the category or one of its descendants."
	msgSlugTaken        = "The slug has already been taken."
	maxNameLen          = 50
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service manages the category tree. Level is always derived from the parent.
type Service interface {
	Create(ctx context.Context, input Input) (*CategoryDetailDTO, error)
	List(ctx context.Context, filter ListFilter, params pagination.Params) (pagination.Page[CategoryDTO], error)
	Get(ctx context.Context, id int64) (*CategoryDetailDTO, error)
	Update(ctx context.Context, id int64, input Input) (*CategoryDetailDTO, error)
	Delete(ctx context.Context, id int64) error
}

// Input carries create and update fields; nil leaves a field untouched on update.
type Input struct {
	ParentID        *int64
	Name            *string
	OrderLevel      *int
	CommisionRate   *decimal.Decimal
	Banner          *string
	Icon            *string
	CoverImage      *string
	Featured        *bool
	Top             *bool
	Digital         *bool
	Slug            *string
	MetaTitle       *string
	MetaDescription *string
}

type service struct {
	repo *Repository
	tx   txRunner
}

func NewService(repo *Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("category repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) Create(ctx context.Context, input Input) (*CategoryDetailDTO, error) {
	category := &models.Category{}
	fields := pkgerrors.FieldErrors{}
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		fields.Add("name", "The name field is required.")
	}
	if err := s.apply(ctx, fields, category, input); err != nil {
		return nil, err
	}
	if err := fields.Err(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, db.Wrap(err, "create category")
	}
	return s.Get(ctx, category.ID)
}

func (s *service) List(ctx context.Context, filter ListFilter, params pagination.Params) (pagination.Page[CategoryDTO], error) {
	page, err := s.repo.List(ctx, filter, params)
	if err != nil {
		return pagination.Page[CategoryDTO]{}, db.Wrap(err, "list categories")
	}
	items := make([]CategoryDTO, 0, len(page.Data))
	for i := range page.Data {
		items = append(items, NewCategoryDTO(&page.Data[i]))
	}
	return pagination.NewPage(items, params, page.Total), nil
}

func (s *service) Get(ctx context.Context, id int64) (*CategoryDetailDTO, error) {
	category, err := s.repo.FindWithChildren(ctx, id)
	if err != nil {
		return nil, mapCategoryErr(err, "load category")
	}
	dto := NewCategoryDetailDTO(category)
	return &dto, nil
}

func (s *service) Update(ctx context.Context, id int64, input Input) (*CategoryDetailDTO, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapCategoryErr(err, "load category")
	}
	previousLevel := category.Level

	fields := pkgerrors.FieldErrors{}
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		fields.Add("name", "The name field is required.")
	}
	if err := s.apply(ctx, fields, category, input); err != nil {
		return nil, err
	}
	if err := fields.Err(); err != nil {
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.Save(ctx, category); err != nil {
			return err
		}
		if category.Level == previousLevel {
			return nil
		}
		return relevel(ctx, txRepo, category.ID, category.Level)
	})
	if err != nil {
		return nil, db.Wrap(err, "update category")
	}
	return s.Get(ctx, id)
}

// Delete removes the category and promotes its direct children to roots.
func (s *service) Delete(ctx context.Context, id int64) error {
	var deleted bool
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		children, err := txRepo.Children(ctx, id)
		if err != nil {
			return err
		}
		deleted, err = txRepo.Delete(ctx, id)
		if err != nil || !deleted {
			return err
		}
		if err := txRepo.ReparentChildren(ctx, id); err != nil {
			return err
		}
		for _, child := range children {
			if err := relevel(ctx, txRepo, child.ID, 0); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return db.Wrap(err, "delete category")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, msgCategoryNotFound)
	}
	return nil
}

// apply copies input onto category, resolving the parent and the derived level.
func (s *service) apply(ctx context.Context, fields pkgerrors.FieldErrors, category *models.Category, input Input) error {
	if input.ParentID != nil {
		if err := s.applyParent(ctx, fields, category, *input.ParentID); err != nil {
			return err
		}
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if len(name) > maxNameLen {
			fields.Add("name", fmt.Sprintf("The name field must not be greater than %d characters.", maxNameLen))
		}
		category.Name = name
	}
	if input.OrderLevel != nil {
		category.OrderLevel = *input.OrderLevel
	}
	if input.CommisionRate != nil {
		if input.CommisionRate.IsNegative() {
			fields.Add("commision_rate", "The commision rate field must be at least 0.")
		}
		category.CommisionRate = *input.CommisionRate
	}
	if input.Slug != nil {
		slug := strings.TrimSpace(*input.Slug)
		if slug != "" {
			taken, err := s.repo.SlugTaken(ctx, slug, category.ID)
			if err != nil {
				return db.Wrap(err, "lookup slug")
			}
			if taken {
				fields.Add("slug", msgSlugTaken)
			}
		}
	}
	assign(&category.Slug, input.Slug)
	assign(&category.Banner, input.Banner)
	assign(&category.Icon, input.Icon)
	assign(&category.CoverImage, input.CoverImage)
	assign(&category.MetaTitle, input.MetaTitle)
	assign(&category.MetaDescription, input.MetaDescription)
	flag(&category.Featured, input.Featured)
	flag(&category.Top, input.Top)
	flag(&category.Digital, input.Digital)
	return nil
}

func (s *service) applyParent(ctx context.Context, fields pkgerrors.FieldErrors, category *models.Category, parentID int64) error {
	if parentID == 0 {
		category.ParentID = 0
		category.Level = 0
		return nil
	}
	if category.ID != 0 && parentID == category.ID {
		fields.Add("parent_id", msgParentCycle)
		return nil
	}
	parent, err := s.repo.FindByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fields.Add("parent_id", msgParentInvalid)
			return nil
		}
		return db.Wrap(err, "lookup parent category")
	}
	if category.ID != 0 {
		descendant, err := s.isAncestor(ctx, category.ID, parent)
		if err != nil {
			return err
		}
		if descendant {
			fields.Add("parent_id", msgParentCycle)
			return nil
		}
	}
	category.ParentID = parent.ID
	category.Level = parent.Level + 1
	return nil
}

// isAncestor walks up from node and reports whether id is on the path to the root.
func (s *service) isAncestor(ctx context.Context, id int64, node *models.Category) (bool, error) {
	seen := map[int64]struct{}{}
	for node.ParentID != 0 {
		if node.ParentID == id {
			return true, nil
		}
		if _, ok := seen[node.ParentID]; ok {
			return false, nil
		}
		seen[node.ParentID] = struct{}{}
		next, err := s.repo.FindByID(ctx, node.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return false, nil
			}
			return false, db.Wrap(err, "lookup ancestor category")
		}
		node = next
	}
	return false, nil
}

// relevel sets level on id and rewrites every descendant below it.
func relevel(ctx context.Context, r *Repository, id int64, level int) error {
	if err := r.SetLevel(ctx, id, level); err != nil {
		return err
	}
	children, err := r.Children(ctx, id)
	if err != nil {
		return err
	}
	for _, child := range children {
		if err := relevel(ctx, r, child.ID, level+1); err != nil {
			return err
		}
	}
	return nil
}

func assign(dst **string, value *string) {
	if value == nil {
		return
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		*dst = nil
		return
	}
	*dst = &trimmed
}

func flag(dst *int, value *bool) {
	if value == nil {
		return
	}
	*dst = 0
	if *value {
		*dst = 1
	}
}

func mapCategoryErr(err error, action string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, msgCategoryNotFound)
	}
	return db.Wrap(err, action)
}
