package enums

import "fmt"

// Role is an account role as listed in list_of_roles.
type Role string

const (
	RoleAdmin             Role = "ADMIN"
	RoleRequestor         Role = "REQUESTOR"
	RoleShipper           Role = "SHIPPER"
	RoleProducer          Role = "PRODUCER"
	RoleProductionManager Role = "PRODUCTION_MANAGER"
	RoleRequestApprover   Role = "REQUEST_APPROVER"
	RoleFulfiller         Role = "FULFILLER"
)

var validRoles = []Role{
	RoleAdmin,
	RoleRequestor,
	RoleShipper,
	RoleProducer,
	RoleProductionManager,
	RoleRequestApprover,
	RoleFulfiller,
}

// String implements fmt.Stringer.
func (v Role) String() string {
	return string(v)
}

// IsValid reports whether the value is a known Role.
func (v Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == v {
			return true
		}
	}
	return false
}

// Roles returns every Role in display order.
func Roles() []Role {
	return append([]Role(nil), validRoles...)
}

// ParseRole converts raw input into a Role.
func ParseRole(value string) (Role, error) {
	for _, candidate := range validRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", value)
}
