package structure

import "testing"

func TestFieldStates(t *testing.T) {
	var unset Field[string]
	if !unset.IsUnset() || unset.IsSet() || unset.IsRemoved() {
		t.Fatalf("zero field state = %v", unset.State())
	}
	set := Value("x")
	if v, ok := set.Get(); !ok || v != "x" {
		t.Fatalf("Get = %q, %v", v, ok)
	}
	removed := Remove[bool]()
	if !removed.IsRemoved() || removed.State().String() != "removed" {
		t.Fatalf("removed field state = %v", removed.State())
	}
	if _, ok := removed.Get(); ok {
		t.Fatalf("removed field has a value")
	}
}

func TestFragmentsArePromoted(t *testing.T) {
	s := &PropertyDeclaration{}
	s.NamedPart().Name = Value("p")
	s.ScopedPart().Scope = Value(ScopePrivate)
	if v, _ := s.Name.Get(); v != "p" {
		t.Fatalf("Name = %q", v)
	}
	if v, _ := s.Scope.Get(); !v.Valid() || v != ScopePrivate {
		t.Fatalf("Scope = %q", v)
	}
	if Scope("internal").Valid() {
		t.Fatalf("unknown scope accepted")
	}
}
