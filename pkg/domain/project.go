package domain

// Project is a named collection of circuits, one of which may be current.
// It is the unit sub-circuit references resolve within: a sub-circuit stores
// a circuit name, and a loader maps that name back to a circuit.
type Project struct {
	Name    string
	Path    string
	Current string

	Circuits []*Circuit
}

// NewProject creates an empty project.
func NewProject(name, path string) *Project {
	return &Project{Name: name, Path: path}
}

// AddCircuit appends a circuit, ignoring nil and duplicates by identity.
func (p *Project) AddCircuit(c *Circuit) {
	if c == nil {
		return
	}
	for _, existing := range p.Circuits {
		if existing == c {
			return
		}
	}
	p.Circuits = append(p.Circuits, c)
}

// RemoveCircuit removes a circuit by identity.
func (p *Project) RemoveCircuit(c *Circuit) {
	kept := p.Circuits[:0]
	for _, existing := range p.Circuits {
		if existing != c {
			kept = append(kept, existing)
		}
	}
	p.Circuits = kept
}

// CircuitByName finds a circuit by name, or nil.
func (p *Project) CircuitByName(name string) *Circuit {
	for _, c := range p.Circuits {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// CurrentCircuit returns the circuit marked current, or nil.
func (p *Project) CurrentCircuit() *Circuit {
	return p.CircuitByName(p.Current)
}
