package core

// registrar.go – the migration whitelist, grounded on
// migrate_infinix_tokens.rs's registrar-membership check: a basket may
// only migrate to a program the DAO has explicitly approved.

// ProgramRegistrar is the whitelist of programs a basket is permitted to
// migrate its tokens into.
type ProgramRegistrar struct {
	programs map[Address]bool
}

// NewProgramRegistrar builds a registrar pre-populated with approved.
func NewProgramRegistrar(approved ...Address) *ProgramRegistrar {
	r := &ProgramRegistrar{programs: make(map[Address]bool, len(approved))}
	for _, p := range approved {
		r.programs[p] = true
	}
	return r
}

// Register approves program for migration targets.
func (r *ProgramRegistrar) Register(program Address) {
	r.programs[program] = true
}

// Deregister revokes a previously approved program.
func (r *ProgramRegistrar) Deregister(program Address) {
	delete(r.programs, program)
}

// IsRegistered reports whether program is an approved migration target.
func (r *ProgramRegistrar) IsRegistered(program Address) bool {
	return r.programs[program]
}
