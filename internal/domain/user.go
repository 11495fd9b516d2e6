package domain

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

// Column limits on users.email and users.full_name, in characters.
const (
	MaxEmailLength    = 255
	MaxFullNameLength = 255
)

// User represents a person that tasks can be assigned to.
type User struct {
	ID       int64   `json:"id"`
	Email    string  `json:"email"`
	FullName *string `json:"full_name"`
}

// UserPatch carries the fields of a partial user update.
type UserPatch struct {
	Email    Optional[string]
	FullName Optional[string]
}

// IsEmpty reports whether the patch changes nothing.
func (p UserPatch) IsEmpty() bool {
	return !p.Email.Set && !p.FullName.Set
}

// NormalizeEmail trims surrounding whitespace and lowercases the address.
// Emails are unique case-insensitively, so the stored form is always lowercase.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeText trims s and maps an empty result to nil.
func NormalizeText(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// ValidateEmail checks that email is a bare, syntactically valid address.
func ValidateEmail(email string) error {
	if email == "" {
		return NewValidationError("email", "cannot be empty", ErrEmptyContent)
	}
	if utf8.RuneCountInString(email) > MaxEmailLength {
		return NewValidationError("email", fmt.Sprintf("must be at most %d characters", MaxEmailLength), ErrTooLong)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return NewValidationError("email", "has invalid format", ErrInvalidEmail)
	}
	at := strings.LastIndex(email, "@")
	if at <= 0 || !strings.Contains(email[at+1:], ".") {
		return NewValidationError("email", "has invalid format", ErrInvalidEmail)
	}
	return nil
}

// ValidateFullName checks an already normalized full name. Nil is allowed.
func ValidateFullName(name *string) error {
	if name != nil && utf8.RuneCountInString(*name) > MaxFullNameLength {
		return NewValidationError("full_name", fmt.Sprintf("must be at most %d characters", MaxFullNameLength), ErrTooLong)
	}
	return nil
}

// NewUser normalizes the supplied fields and returns a User ready to be stored.
// The ID is left zero; the store assigns it.
func NewUser(email string, fullName *string) (*User, error) {
	user := &User{
		Email:    NormalizeEmail(email),
		FullName: NormalizeText(fullName),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if err := ValidateEmail(u.Email); err != nil {
		return err
	}
	return ValidateFullName(u.FullName)
}

// Normalize returns a copy of the patch with email and name normalized and
// validated. Clearing the email is rejected. A blank full name is treated as
// absent and leaves the stored name unchanged; an explicit null clears it.
func (p UserPatch) Normalize() (UserPatch, error) {
	out := p

	if p.Email.Set {
		if p.Email.Null {
			return UserPatch{}, NewValidationError("email", "cannot be null", ErrNullNotAllowed)
		}
		email := NormalizeEmail(p.Email.Value)
		if err := ValidateEmail(email); err != nil {
			return UserPatch{}, err
		}
		out.Email = Some(email)
	}

	if p.FullName.HasValue() {
		if name := NormalizeText(&p.FullName.Value); name != nil {
			if err := ValidateFullName(name); err != nil {
				return UserPatch{}, err
			}
			out.FullName = Some(*name)
		} else {
			out.FullName = Optional[string]{}
		}
	}

	return out, nil
}
