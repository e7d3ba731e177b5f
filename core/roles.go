package core

// roles.go – C4: per-(user,basket) role bitset, grounded on the
// reference's actor/role account (each (user, basket) pair owns one role
// record) and on the teacher's AuthorityNode/AuthoritySet bitset pattern
// in core/common_structs.go.

// RoleRecord is the persisted role-bitset account for one (Owner Address,
// Basket Address) pair, per spec.md §3.
type RoleRecord struct {
	User     Address
	BasketID Address
	Bump     uint8
	Roles    uint8 // bitset of Role
}

// NewRoleRecord creates a fresh record with the given initial role set
// already granted, e.g. RoleOwner at basket-init time.
func NewRoleRecord(user, basketID Address, bump uint8, initial Role) *RoleRecord {
	return &RoleRecord{User: user, BasketID: basketID, Bump: bump, Roles: uint8(initial)}
}

// Has reports whether the record carries role.
func (r *RoleRecord) Has(role Role) bool {
	return HasRole(r.Roles, role)
}

// AddRole grants role to the record. Per spec.md §4.4, only an actor
// holding RoleOwner on this basket may call this; callerRoles is the
// caller's own bitset on the same basket. Per spec.md §8 P7, a basket
// that has entered StatusMigrating accepts no role change; basketStatus
// is the basket's current status, checked before the role bitset is
// touched.
func (r *RoleRecord) AddRole(callerRoles uint8, role Role, basketStatus BasketStatus) error {
	if basketStatus == StatusMigrating {
		return ErrInvalidBasketStatus
	}
	if !HasRole(callerRoles, RoleOwner) {
		return ErrUnauthorized
	}
	r.Roles |= uint8(role)
	return nil
}

// RemoveRole revokes role from the record. Owner-gated like AddRole, and
// subject to the same P7 Migrating check. A record may remove its own
// RoleOwner bit, matching the reference's unrestricted self-demotion
// (ownership transfer is performed by adding RoleOwner to a new record
// first, then removing it here).
func (r *RoleRecord) RemoveRole(callerRoles uint8, role Role, basketStatus BasketStatus) error {
	if basketStatus == StatusMigrating {
		return ErrInvalidBasketStatus
	}
	if !HasRole(callerRoles, RoleOwner) {
		return ErrUnauthorized
	}
	r.Roles &^= uint8(role)
	return nil
}
