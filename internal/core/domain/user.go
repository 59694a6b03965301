package domain

import "time"

// Role is a named privilege tier attached to a user account.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleStaff      Role = "staff"
	RoleManager    Role = "manager"
)

// Capability is a coarse permission tag checked by the authorization gate.
type Capability string

const (
	CapManager    Capability = "manager"
	CapAdmin      Capability = "admin"
	CapSuperAdmin Capability = "super_admin"
)

// roleGrants is the explicit role → capability-set table. The tiers are not a
// linear ordering: staff does NOT carry the manager capability. Keep this a
// lookup table, never a numeric comparison.
var roleGrants = map[Role]map[Capability]struct{}{
	RoleSuperAdmin: {CapManager: {}, CapAdmin: {}, CapSuperAdmin: {}},
	RoleAdmin:      {CapManager: {}, CapAdmin: {}},
	RoleManager:    {CapManager: {}},
	RoleStaff:      {},
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := roleGrants[r]
	return ok
}

// Has reports whether the role grants the given capability.
// Unknown roles grant nothing.
func (r Role) Has(c Capability) bool {
	grants, ok := roleGrants[r]
	if !ok {
		return false
	}
	_, ok = grants[c]
	return ok
}

// User models a back-office account (an actor, once authenticated).
type User struct {
	ID            string    `bson:"_id" json:"id"`
	Username      string    `bson:"username" json:"username"`
	Email         string    `bson:"email" json:"email"`
	FirstName     string    `bson:"first_name" json:"first_name"`
	LastName      string    `bson:"last_name" json:"last_name"`
	PasswordHash  string    `bson:"password_hash" json:"-"`
	Role          Role      `bson:"role" json:"role"`
	Phone         string    `bson:"phone,omitempty" json:"phone,omitempty"`
	AvatarPath    string    `bson:"avatar_path,omitempty" json:"avatar_path,omitempty"`
	IsActiveAdmin bool      `bson:"is_active_admin" json:"is_active_admin"`
	LastLoginIP   string    `bson:"last_login_ip,omitempty" json:"last_login_ip,omitempty"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}

// FullName returns "First Last", falling back to the username when both parts
// are empty.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "" && u.LastName == "":
		return u.Username
	case u.LastName == "":
		return u.FirstName
	case u.FirstName == "":
		return u.LastName
	}
	return u.FirstName + " " + u.LastName
}
