package core

import "testing"

func TestProgramRegistrarApprovedAtConstruction(t *testing.T) {
	prog := AddressFromLabel("prog")
	r := NewProgramRegistrar(prog)
	if !r.IsRegistered(prog) {
		t.Fatalf("expected pre-approved program to be registered")
	}
}

func TestProgramRegistrarRegisterAndDeregister(t *testing.T) {
	r := NewProgramRegistrar()
	prog := AddressFromLabel("prog")
	if r.IsRegistered(prog) {
		t.Fatalf("expected unregistered program to report false")
	}
	r.Register(prog)
	if !r.IsRegistered(prog) {
		t.Fatalf("expected registered program to report true")
	}
	r.Deregister(prog)
	if r.IsRegistered(prog) {
		t.Fatalf("expected deregistered program to report false")
	}
}
