package order

import (
	"fooddelivery/internal/pkg/errs"
)

// Role identifies the kind of actor driving an order mutation. The
// authenticated identity and role come from the upstream auth layer and
// are trusted unconditionally; the domain only decides what each role
// may do to a given order.
type Role string

const (
	RoleBuyer   Role = "buyer"
	RoleSeller  Role = "seller"
	RoleCourier Role = "courier"
	RoleAdmin   Role = "admin"
)

// RoleFromString parses a role header value.
func RoleFromString(s string) (Role, error) {
	switch Role(s) {
	case RoleBuyer, RoleSeller, RoleCourier, RoleAdmin:
		return Role(s), nil
	}
	return "", errs.NewValueIsInvalidError("role")
}
