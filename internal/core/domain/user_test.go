package domain

import "testing"

func TestRole_Has_CapabilityTable(t *testing.T) {
	cases := []struct {
		role       Role
		capability Capability
		want       bool
	}{
		{RoleSuperAdmin, CapManager, true},
		{RoleSuperAdmin, CapAdmin, true},
		{RoleSuperAdmin, CapSuperAdmin, true},
		{RoleAdmin, CapManager, true},
		{RoleAdmin, CapAdmin, true},
		{RoleAdmin, CapSuperAdmin, false},
		{RoleManager, CapManager, true},
		{RoleManager, CapAdmin, false},
		{RoleManager, CapSuperAdmin, false},
		// staff sits "above" nothing: no manager capability despite being
		// a real back-office role.
		{RoleStaff, CapManager, false},
		{RoleStaff, CapAdmin, false},
		{RoleStaff, CapSuperAdmin, false},
	}

	for _, tc := range cases {
		if got := tc.role.Has(tc.capability); got != tc.want {
			t.Errorf("Role(%s).Has(%s) = %v, want %v", tc.role, tc.capability, got, tc.want)
		}
	}
}

func TestRole_Has_UnknownRole(t *testing.T) {
	if Role("intern").Has(CapManager) {
		t.Fatalf("unknown role must grant nothing")
	}
}

func TestRole_Valid(t *testing.T) {
	for _, r := range []Role{RoleSuperAdmin, RoleAdmin, RoleManager, RoleStaff} {
		if !r.Valid() {
			t.Errorf("expected %s to be valid", r)
		}
	}
	if Role("root").Valid() {
		t.Fatalf("unexpected valid role")
	}
	if Role("").Valid() {
		t.Fatalf("empty role must be invalid")
	}
}

func TestUser_FullName(t *testing.T) {
	cases := []struct {
		first, last, username, want string
	}{
		{"Ana", "Lopez", "ana", "Ana Lopez"},
		{"Ana", "", "ana", "Ana"},
		{"", "Lopez", "ana", "Lopez"},
		{"", "", "ana", "ana"},
	}
	for _, tc := range cases {
		u := &User{FirstName: tc.first, LastName: tc.last, Username: tc.username}
		if got := u.FullName(); got != tc.want {
			t.Errorf("FullName(%q, %q) = %q, want %q", tc.first, tc.last, got, tc.want)
		}
	}
}
