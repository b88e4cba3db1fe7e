package domain

import (
	"time"

	"github.com/google/uuid"
)

// SystemRole identifies a built-in group. At most one group row may carry
// a given role.
type SystemRole string

const (
	SystemRoleAdministrator SystemRole = "ADMINISTRATOR"
)

func (r SystemRole) String() string { return string(r) }

func (r SystemRole) IsValid() bool {
	switch r {
	case SystemRoleAdministrator:
		return true
	}
	return false
}

// Group is either user-defined (free name and description, editable) or
// system-defined (bound to a SystemRole, name derived from the role,
// protected from rename and from membership removal). A row matches by
// role or by name, never both: the constructors below are the only two
// ways to build a valid Group.
type Group struct {
	ID          uuid.UUID
	Name        string
	Description *string
	SystemRole  *SystemRole // nil for user-defined groups
	CreatedAt   time.Time
}

// NewUserGroup builds a user-defined group.
func NewUserGroup(name string, description *string) Group {
	return Group{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
	}
}

// NewSystemGroup builds a system-defined group. The name is derived from
// the role and must not be changed afterwards.
func NewSystemGroup(role SystemRole) Group {
	desc := "System-defined group: " + role.String()
	return Group{
		ID:          uuid.New(),
		Name:        role.String(),
		Description: &desc,
		SystemRole:  &role,
	}
}

// IsSystem reports whether the group is bound to a built-in role.
func (g *Group) IsSystem() bool {
	return g.SystemRole != nil
}
