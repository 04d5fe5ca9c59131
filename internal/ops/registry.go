package ops

import (
	"sort"
)

// Registry maps operator paths to their factories. Libraries double as the
// categories a client groups its node menu by.
type Registry struct {
	libs map[string]map[string]*Factory
}

// NewRegistry returns an empty factory registry.
func NewRegistry() *Registry {
	return &Registry{libs: make(map[string]map[string]*Factory)}
}

// Register adds a factory under its path. Registering the same path twice
// is an error.
func (r *Registry) Register(f *Factory) error {
	lib, ok := r.libs[f.Library]
	if !ok {
		lib = make(map[string]*Factory)
		r.libs[f.Library] = lib
	}
	if _, dup := lib[f.Operator]; dup {
		return &DuplicateOperationTypeError{Path: f.Path()}
	}
	lib[f.Operator] = f
	return nil
}

// Lookup resolves a path to its factory.
func (r *Registry) Lookup(path OpPath) (*Factory, error) {
	if lib, ok := r.libs[path.Library]; ok {
		if f, ok := lib[path.Operator]; ok {
			return f, nil
		}
	}
	return nil, &UnknownOperationTypeError{Path: path}
}

// New builds a fresh operation instance for the path.
func (r *Registry) New(path OpPath) (Operation, error) {
	f, err := r.Lookup(path)
	if err != nil {
		return nil, err
	}
	return f.New()
}

// Categories returns every registered library name, sorted.
func (r *Registry) Categories() []string {
	out := make([]string, 0, len(r.libs))
	for lib := range r.libs {
		out = append(out, lib)
	}
	sort.Strings(out)
	return out
}

// Operators returns a library's factories sorted by operator name. Unknown
// libraries yield an empty list.
func (r *Registry) Operators(library string) []*Factory {
	lib := r.libs[library]
	out := make([]*Factory, 0, len(lib))
	for _, f := range lib {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Operator < out[j].Operator })
	return out
}
