package users

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/shopadmin-backend/pkg/db"
	"github.com/angelmondragon/shopadmin-backend/pkg/db/models"
	"github.com/angelmondragon/shopadmin-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/shopadmin-backend/pkg/errors"
	"github.com/angelmondragon/shopadmin-backend/pkg/pagination"
)

const (
	msgUserNotFound  = "User not found"
	msgEmailTaken    = "The email has already been taken."
	msgEmailInvalid  = "The email field must be a valid email address."
	msgRoleInvalid   = "The selected role is invalid."
	msgPasswordShort = "The password field must be at least 8 characters."
	minPasswordLen   = 8
)

// PasswordHasher turns a plaintext password into a storable hash.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// Service manages admin-facing user accounts.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*UserDTO, error)
	List(ctx context.Context, filter ListFilter, params pagination.Params) (pagination.Page[UserDTO], error)
	Get(ctx context.Context, id int64) (*UserDTO, error)
	Update(ctx context.Context, id int64, input UpdateInput) (*UserDTO, error)
	Delete(ctx context.Context, id int64) error
}

// Profile holds the optional contact and location fields.
type Profile struct {
	Mobile        *string
	OptionalPhone *string
	Address       *string
	Status        *string
	Zone          *string
	District      *string
	Area          *string
	Lat           *decimal.Decimal
	Lon           *decimal.Decimal
}

type CreateInput struct {
	Name     string
	Email    string
	Password *string
	Role     *string
	IsBanned *bool
	Profile  Profile
}

type UpdateInput struct {
	Name     *string
	Email    *string
	Password *string
	Role     *string
	IsBanned *bool
	Profile  Profile
}

type service struct {
	repo   *Repository
	hasher PasswordHasher
}

// NewService constructs the user service.
func NewService(repo *Repository, hasher PasswordHasher) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if hasher == nil {
		return nil, fmt.Errorf("password hasher required")
	}
	return &service{repo: repo, hasher: hasher}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*UserDTO, error) {
	user := &models.User{
		Name:  strings.TrimSpace(input.Name),
		Email: normalizeEmail(input.Email),
		Role:  enums.UserRoleCustomer,
	}
	fields := pkgerrors.FieldErrors{}
	if user.Name == "" {
		fields.Add("name", "The name field is required.")
	}
	if err := s.checkEmail(ctx, fields, user.Email, 0); err != nil {
		return nil, err
	}
	if input.Role != nil {
		role, err := enums.ParseUserRole(*input.Role)
		if err != nil {
			fields.Add("role", msgRoleInvalid)
		}
		user.Role = role
	}
	if input.Password != nil && len(*input.Password) < minPasswordLen {
		fields.Add("password", msgPasswordShort)
	}
	if err := fields.Err(); err != nil {
		return nil, err
	}

	if input.Password != nil {
		hashed, err := s.hasher.Hash(*input.Password)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
		}
		user.Password = &hashed
	}
	if input.IsBanned != nil {
		user.IsBanned = *input.IsBanned
	}
	applyProfile(user, input.Profile)

	if err := s.repo.Create(ctx, user); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.FieldErrors{"email": {msgEmailTaken}}.Err()
		}
		return nil, db.Wrap(err, "create user")
	}
	return FromModel(user), nil
}

func (s *service) List(ctx context.Context, filter ListFilter, params pagination.Params) (pagination.Page[UserDTO], error) {
	page, err := s.repo.List(ctx, filter, params)
	if err != nil {
		return pagination.Page[UserDTO]{}, db.Wrap(err, "list users")
	}
	items := make([]UserDTO, 0, len(page.Data))
	for i := range page.Data {
		items = append(items, *FromModel(&page.Data[i]))
	}
	return pagination.NewPage(items, params, page.Total), nil
}

func (s *service) Get(ctx context.Context, id int64) (*UserDTO, error) {
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(user), nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateInput) (*UserDTO, error) {
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := pkgerrors.FieldErrors{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			fields.Add("name", "The name field is required.")
		}
		user.Name = name
	}
	if input.Email != nil {
		email := normalizeEmail(*input.Email)
		if err := s.checkEmail(ctx, fields, email, id); err != nil {
			return nil, err
		}
		user.Email = email
	}
	if input.Role != nil {
		role, err := enums.ParseUserRole(*input.Role)
		if err != nil {
			fields.Add("role", msgRoleInvalid)
		}
		user.Role = role
	}
	if input.Password != nil && len(*input.Password) < minPasswordLen {
		fields.Add("password", msgPasswordShort)
	}
	if err := fields.Err(); err != nil {
		return nil, err
	}

	if input.Password != nil {
		hashed, err := s.hasher.Hash(*input.Password)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
		}
		user.Password = &hashed
	}
	if input.IsBanned != nil {
		user.IsBanned = *input.IsBanned
	}
	applyProfile(user, input.Profile)

	if err := s.repo.Save(ctx, user); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.FieldErrors{"email": {msgEmailTaken}}.Err()
		}
		return nil, db.Wrap(err, "update user")
	}
	return FromModel(user), nil
}

// Delete soft deletes the user; tokens owned by it stop authenticating.
func (s *service) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		return db.Wrap(err, "delete user")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, msgUserNotFound)
	}
	return nil
}

func (s *service) find(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, msgUserNotFound)
		}
		return nil, db.Wrap(err, "load user")
	}
	return user, nil
}

func (s *service) checkEmail(ctx context.Context, fields pkgerrors.FieldErrors, email string, exceptID int64) error {
	if email == "" {
		fields.Add("email", "The email field is required.")
		return nil
	}
	if _, err := mail.ParseAddress(email); err != nil {
		fields.Add("email", msgEmailInvalid)
		return nil
	}
	taken, err := s.repo.EmailTaken(ctx, email, exceptID)
	if err != nil {
		return db.Wrap(err, "lookup email")
	}
	if taken {
		fields.Add("email", msgEmailTaken)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// applyProfile overwrites provided fields; an empty string clears one.
func applyProfile(user *models.User, p Profile) {
	assign(&user.Mobile, p.Mobile)
	assign(&user.OptionalPhone, p.OptionalPhone)
	assign(&user.Address, p.Address)
	assign(&user.Status, p.Status)
	assign(&user.Zone, p.Zone)
	assign(&user.District, p.District)
	assign(&user.Area, p.Area)
	if p.Lat != nil {
		user.Lat = decimal.NewNullDecimal(*p.Lat)
	}
	if p.Lon != nil {
		user.Lon = decimal.NewNullDecimal(*p.Lon)
	}
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
