package attributes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/angelmondragon/shopadmin-backend/pkg/db"
	"github.com/angelmondragon/shopadmin-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/shopadmin-backend/pkg/errors"
)

const (
	msgAttributeNotFound = "Attribute not found"
	msgValueNotFound     = "Attribute value not found"
	msgNameTaken         = "The name has already been taken."
	msgAttributeInvalid  = "The selected attribute id is invalid."
)

// Service exposes attribute and attribute value management.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*AttributeDTO, error)
	List(ctx context.Context, status *bool) ([]AttributeDTO, error)
	Get(ctx context.Context, id int64) (*AttributeDTO, error)
	Update(ctx context.Context, id int64, input UpdateInput) (*AttributeDTO, error)
	Delete(ctx context.Context, id int64) error

	CreateValue(ctx context.Context, input CreateValueInput) (*AttributeValueDTO, error)
	UpdateValue(ctx context.Context, id int64, input UpdateValueInput) (*AttributeValueDTO, error)
	DeleteValue(ctx context.Context, id int64) error
}

type CreateInput struct {
	Name   string
	Status bool
}

// UpdateInput carries optional fields; nil leaves the column untouched.
type UpdateInput struct {
	Name   *string
	Status *bool
}

type CreateValueInput struct {
	AttributeID int64
	Value       string
	ColorCode   *string
	Status      bool
}

// UpdateValueInput carries optional fields. ClearColor removes the color code.
type UpdateValueInput struct {
	Value      *string
	ColorCode  *string
	ClearColor bool
	Status     *bool
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs the attribute service.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("attribute repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*AttributeDTO, error) {
	name := strings.TrimSpace(input.Name)
	if err := s.ensureNameFree(ctx, name, 0); err != nil {
		return nil, err
	}

	attr := &models.Attribute{Name: name, Status: input.Status}
	if err := s.repo.Create(ctx, attr); err != nil {
		return nil, mapNameConflict(err, "create attribute")
	}
	dto := NewAttributeDTO(attr)
	return &dto, nil
}

func (s *service) List(ctx context.Context, status *bool) ([]AttributeDTO, error) {
	attrs, err := s.repo.List(ctx, status)
	if err != nil {
		return nil, db.Wrap(err, "list attributes")
	}
	out := make([]AttributeDTO, 0, len(attrs))
	for i := range attrs {
		out = append(out, NewAttributeDTO(&attrs[i]))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id int64) (*AttributeDTO, error) {
	attr, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := NewAttributeDTO(attr)
	return &dto, nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateInput) (*AttributeDTO, error) {
	attr, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if err := s.ensureNameFree(ctx, name, id); err != nil {
			return nil, err
		}
		attr.Name = name
	}
	if input.Status != nil {
		attr.Status = *input.Status
	}

	if err := s.repo.Save(ctx, attr); err != nil {
		return nil, mapNameConflict(err, "update attribute")
	}
	dto := NewAttributeDTO(attr)
	return &dto, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	var deleted bool
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		var err error
		deleted, err = s.repo.WithTx(tx).Delete(ctx, id)
		return err
	})
	if err != nil {
		return db.Wrap(err, "delete attribute")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, msgAttributeNotFound)
	}
	return nil
}

func (s *service) CreateValue(ctx context.Context, input CreateValueInput) (*AttributeValueDTO, error) {
	ok, err := s.repo.AttributeExists(ctx, input.AttributeID)
	if err != nil {
		return nil, db.Wrap(err, "lookup attribute")
	}
	if !ok {
		return nil, pkgerrors.FieldErrors{"attribute_id": {msgAttributeInvalid}}.Err()
	}

	value := &models.AttributeValue{
		AttributeID: input.AttributeID,
		Value:       strings.TrimSpace(input.Value),
		ColorCode:   input.ColorCode,
		Status:      input.Status,
	}
	if err := s.repo.CreateValue(ctx, value); err != nil {
		return nil, db.Wrap(err, "create attribute value")
	}
	dto := NewAttributeValueDTO(value)
	return &dto, nil
}

func (s *service) UpdateValue(ctx context.Context, id int64, input UpdateValueInput) (*AttributeValueDTO, error) {
	value, err := s.repo.FindValue(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, msgValueNotFound)
		}
		return nil, db.Wrap(err, "load attribute value")
	}

	if input.Value != nil {
		value.Value = strings.TrimSpace(*input.Value)
	}
	switch {
	case input.ClearColor:
		value.ColorCode = nil
	case input.ColorCode != nil:
		value.ColorCode = input.ColorCode
	}
	if input.Status != nil {
		value.Status = *input.Status
	}

	if err := s.repo.SaveValue(ctx, value); err != nil {
		return nil, db.Wrap(err, "update attribute value")
	}
	dto := NewAttributeValueDTO(value)
	return &dto, nil
}

func (s *service) DeleteValue(ctx context.Context, id int64) error {
	deleted, err := s.repo.DeleteValue(ctx, id)
	if err != nil {
		return db.Wrap(err, "delete attribute value")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, msgValueNotFound)
	}
	return nil
}

func (s *service) load(ctx context.Context, id int64) (*models.Attribute, error) {
	attr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, msgAttributeNotFound)
		}
		return nil, db.Wrap(err, "load attribute")
	}
	return attr, nil
}

func (s *service) ensureNameFree(ctx context.Context, name string, exceptID int64) error {
	taken, err := s.repo.NameTaken(ctx, name, exceptID)
	if err != nil {
		return db.Wrap(err, "check attribute name")
	}
	if taken {
		return pkgerrors.FieldErrors{"name": {msgNameTaken}}.Err()
	}
	return nil
}

// mapNameConflict turns a lost uniqueness race into the same violation the pre-check reports.
func mapNameConflict(err error, action string) error {
	if db.IsUniqueViolation(err, "") {
		return pkgerrors.FieldErrors{"name": {msgNameTaken}}.Err()
	}
	return db.Wrap(err, action)
}
