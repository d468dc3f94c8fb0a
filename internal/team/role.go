package team

import (
	"fmt"
	"slices"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type Role string

const (
	RoleOwner  Role = "Owner"
	RoleAdmin  Role = "Admin"
	RoleMember Role = "Member"
	RoleViewer Role = "Viewer"
)

type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionManage Action = "manage"
)

var (
	Roles = []Role{RoleOwner, RoleAdmin, RoleMember, RoleViewer}

	rolePermissions = map[Role][]Action{
		RoleOwner:  {ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionManage},
		RoleAdmin:  {ActionCreate, ActionRead, ActionUpdate, ActionDelete},
		RoleMember: {ActionCreate, ActionRead, ActionUpdate},
		RoleViewer: {ActionRead},
	}
)

func (role Role) Can(action Action) bool {
	return slices.Contains(rolePermissions[role], action)
}

func (role Role) Validate() error {
	values := make([]interface{}, 0, len(Roles))
	for _, value := range Roles {
		values = append(values, string(value))
	}
	return validation.Validate(string(role),
		validation.Required,
		validation.In(values...),
	)
}

func ParseRole(value string) (Role, error) {
	role := Role(value)
	if err := role.Validate(); err != nil {
		return "", fmt.Errorf("%w: role %q: %w", ErrInvalidArgument, value, err)
	}
	return role, nil
}
