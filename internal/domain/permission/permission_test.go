package permission

import "testing"

func TestParse(t *testing.T) {
	p, err := Parse("itemcreate")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if p != ItemCreate {
		t.Fatalf("expected ItemCreate, got %v", p)
	}

	if _, err := Parse("SUPERUSER"); err == nil {
		t.Fatalf("expected error for unknown name")
	}
}

func TestSet_Membership(t *testing.T) {
	s := NewSet(Admin, ItemDelete)

	if !s.Has(Admin) || !s.Has(ItemDelete) {
		t.Fatalf("missing members: %s", s.String())
	}
	if s.Has(User) || s.Has(PermissionUpdate) {
		t.Fatalf("unexpected members: %s", s.String())
	}
	if !s.Intersects(NewSet(ItemDelete, User)) {
		t.Fatalf("expected overlap on ITEMDELETE")
	}
	if s.Intersects(NewSet(User, ItemCreate)) {
		t.Fatalf("unexpected overlap")
	}
	if NewSet().IsEmpty() == false || s.IsEmpty() {
		t.Fatalf("IsEmpty misreports")
	}
}

func TestSet_RoundTrip(t *testing.T) {
	s := NewSet(PermissionUpdate, User)

	got, err := ParseSet(s.Strings())
	if err != nil {
		t.Fatalf("ParseSet returned error: %v", err)
	}
	if got != s {
		t.Fatalf("round trip changed the set: %s vs %s", got.String(), s.String())
	}
}

func TestParseSet_UnknownNameFailsWhole(t *testing.T) {
	if _, err := ParseSet([]string{"USER", "WIZARD"}); err == nil {
		t.Fatalf("expected failure for unknown name in set")
	}
}
