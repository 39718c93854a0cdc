package permission

import "testing"

func TestValidDepartmentName(t *testing.T) {
	for _, ok := range []string{"Chemistry", "R&D", "Lab (North)", "Bio-Safety/2", "  Pathology  "} {
		if !ValidDepartmentName(ok) {
			t.Fatalf("expected %q to be valid", ok)
		}
	}
	for _, bad := range []string{"", "A", "1Lab", "Lab#1", "Ünits", string(make([]byte, 65))} {
		if ValidDepartmentName(bad) {
			t.Fatalf("expected %q to be invalid", bad)
		}
	}
}

func TestApplyAndAllows(t *testing.T) {
	p := New("Chemistry")
	if !p.Allows(CapRequest) || p.Allows(CapApprove) || p.Allows(CapEditInventory) {
		t.Fatalf("new department must only allow requests: %+v", p)
	}
	f, tr := false, true
	p.Apply(Patch{CanRequest: &f, CanEditInventory: &tr})
	if p.CanRequest || !p.CanEditInventory || p.CanApprove {
		t.Fatalf("patch not applied: %+v", p)
	}
	if (Patch{}).Empty() != true {
		t.Fatalf("zero patch should be empty")
	}
}
