package serializers

import (
	"time"

	"github.com/google/uuid"

	"github.com/baharkarakas/stays-backend/internal/models"
	"github.com/baharkarakas/stays-backend/internal/validate"
)

// bcrypt.GenerateFromPassword rejects longer input.
const maxPasswordBytes = 72

type UserInput struct {
	Email       *string      `json:"email" validate:"omitempty,email,max=254"`
	FirstName   *string      `json:"first_name" validate:"omitempty,max=150"`
	LastName    *string      `json:"last_name" validate:"omitempty,max=150"`
	PhoneNumber *string      `json:"phone_number" validate:"omitempty,max=20"`
	Role        *models.Role `json:"role" validate:"omitempty,oneof=guest host admin"`
	Password    *string      `json:"password" validate:"omitempty,min=8"`
}

// Validate checks field syntax. Password is required on create only.
func (in *UserInput) Validate(mode Mode) error {
	errs := validate.Struct(in)
	requireAll(mode, &errs, map[string]bool{
		"email":      in.Email != nil,
		"first_name": in.FirstName != nil,
		"last_name":  in.LastName != nil,
	})
	if mode == Create {
		errs.Add(validate.Present("password", in.Password != nil))
	}
	if in.Password != nil && len(*in.Password) > maxPasswordBytes {
		errs.Set("password", "Ensure this field has no more than 72 bytes.")
	}
	return errs.Err()
}

// Apply copies the supplied fields onto u. The password is left to the caller.
func (in *UserInput) Apply(u *models.User) {
	if in.Email != nil {
		u.Email = models.NormalizeEmail(*in.Email)
	}
	if in.FirstName != nil {
		u.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		u.LastName = *in.LastName
	}
	if in.PhoneNumber != nil {
		u.PhoneNumber = *in.PhoneNumber
	}
	if in.Role != nil {
		u.Role = *in.Role
	}
}

type UserOutput struct {
	UserID      uuid.UUID   `json:"user_id"`
	Email       string      `json:"email"`
	FirstName   string      `json:"first_name"`
	LastName    string      `json:"last_name"`
	PhoneNumber string      `json:"phone_number"`
	Role        models.Role `json:"role"`
	CreatedAt   time.Time   `json:"created_at"`
}

func User(u models.User) UserOutput {
	return UserOutput{
		UserID:      u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role,
		CreatedAt:   u.CreatedAt,
	}
}

func Users(us []models.User) []UserOutput {
	out := make([]UserOutput, 0, len(us))
	for _, u := range us {
		out = append(out, User(u))
	}
	return out
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenOutput struct {
	Token string `json:"token"`
}
