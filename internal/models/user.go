package models

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/baharkarakas/stays-backend/internal/validate"
)

type Role string

const (
	RoleGuest Role = "guest"
	RoleHost  Role = "host"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleGuest, RoleHost, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           uuid.UUID
	Email        string
	FirstName    string
	LastName     string
	PhoneNumber  string
	Role         Role
	PasswordHash string
	CreatedAt    time.Time
}

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// NormalizeEmail trims the address and lower-cases its domain part.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}

func (u *User) Validate() error {
	var errs validate.Errs
	if u.Email == "" {
		errs.Set("email", validate.MsgRequired)
	} else if a, err := mail.ParseAddress(u.Email); err != nil || a.Address != u.Email {
		errs.Set("email", "Enter a valid email address.")
	}
	errs.Add(validate.Required("first_name", u.FirstName))
	errs.Add(validate.Required("last_name", u.LastName))
	if len(u.PhoneNumber) > 20 {
		errs.Set("phone_number", "Ensure this field has no more than 20 characters.")
	}
	if u.Role == "" {
		u.Role = RoleGuest
	}
	if !u.Role.Valid() {
		errs.Set("role", `"`+string(u.Role)+`" is not a valid choice.`)
	}
	return errs.Err()
}
