package account

import (
	"net/mail"
	"strings"

	"github.com/shiftlog/shiftlog-backend/internal/domain"
)

const (
	minPasswordLen = 8
	maxNameLen     = 100
)

// RegisterInput carries the fields of a new account.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Username  string
	Password  string
}

// Validate checks the registration fields.
func (in RegisterInput) Validate() error {
	var fields []domain.FieldError

	if strings.TrimSpace(in.Email) == "" {
		fields = append(fields, domain.FieldError{Field: "email", Message: "required"})
	} else if _, err := mail.ParseAddress(in.Email); err != nil {
		fields = append(fields, domain.FieldError{Field: "email", Message: "invalid address"})
	}

	if strings.TrimSpace(in.Username) == "" {
		fields = append(fields, domain.FieldError{Field: "username", Message: "required"})
	}
	if len(in.Password) < minPasswordLen {
		fields = append(fields, domain.FieldError{Field: "password", Message: "too short (min 8)"})
	}
	if len(in.FirstName) > maxNameLen {
		fields = append(fields, domain.FieldError{Field: "first_name", Message: "too long (max 100)"})
	}
	if len(in.LastName) > maxNameLen {
		fields = append(fields, domain.FieldError{Field: "last_name", Message: "too long (max 100)"})
	}

	if len(fields) > 0 {
		return domain.NewValidationErrors(fields)
	}
	return nil
}

// CreateGroupInput carries the fields of a new user-defined group.
type CreateGroupInput struct {
	Name        string
	Description *string
}

// Validate checks the group fields.
func (in CreateGroupInput) Validate() error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.NewValidationError("name", "required")
	}
	if len(name) > maxNameLen {
		return domain.NewValidationError("name", "too long (max 100)")
	}
	return nil
}

// UpdateGroupInput carries the new name and description of a group.
type UpdateGroupInput struct {
	Name        string
	Description *string
}

// Validate checks the group fields.
func (in UpdateGroupInput) Validate() error {
	return CreateGroupInput{Name: in.Name, Description: in.Description}.Validate()
}
