package runtime

import (
	"sort"
)

// Scope is an immutable lexical environment. Extending a scope returns a new
// scope and leaves the receiver untouched, so inner bindings shadow outer ones
// without ever changing them. The nil *Scope is the empty scope.
type Scope struct {
	name   string
	value  Value
	parent *Scope
}

// NewScope builds a scope holding the given bindings.
func NewScope(bindings map[string]Value) *Scope {
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	var scope *Scope
	for _, name := range names {
		scope = scope.Extend(name, bindings[name])
	}
	return scope
}

// Extend returns a child scope binding name to value.
func (s *Scope) Extend(name string, value Value) *Scope {
	return &Scope{name: name, value: value, parent: s}
}

// Lookup retrieves the innermost binding for name.
func (s *Scope) Lookup(name string) (Value, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.name == name {
			return cur.value, true
		}
	}
	return nil, false
}

// Names returns the visible binding names in sorted order.
func (s *Scope) Names() []string {
	seen := make(map[string]struct{})
	var names []string
	for cur := s; cur != nil; cur = cur.parent {
		if _, ok := seen[cur.name]; ok {
			continue
		}
		seen[cur.name] = struct{}{}
		names = append(names, cur.name)
	}
	sort.Strings(names)
	return names
}

// Namespace is the mutable variable store written by set and read by get. A
// single namespace is shared by reference for one evaluation. The zero value
// is an empty namespace ready to use.
type Namespace struct {
	values map[string]Value
}

// NewNamespace creates an empty namespace.
func NewNamespace() *Namespace {
	return &Namespace{values: make(map[string]Value)}
}

// NamespaceFrom creates a namespace seeded with a copy of values.
func NamespaceFrom(values map[string]Value) *Namespace {
	ns := NewNamespace()
	for k, v := range values {
		ns.values[k] = v
	}
	return ns
}

// Get retrieves a binding.
func (n *Namespace) Get(name string) (Value, bool) {
	v, ok := n.values[name]
	return v, ok
}

// Has reports whether name has been set.
func (n *Namespace) Has(name string) bool {
	_, ok := n.values[name]
	return ok
}

// Set inserts or overwrites a binding.
func (n *Namespace) Set(name string, value Value) {
	if n.values == nil {
		n.values = make(map[string]Value)
	}
	n.values[name] = value
}

// Clone returns an independent copy of the namespace.
func (n *Namespace) Clone() *Namespace {
	return NamespaceFrom(n.values)
}

// MergeExisting copies back from local every binding whose name already
// exists in n. Names only present in local are dropped.
func (n *Namespace) MergeExisting(local *Namespace) {
	for name, value := range local.values {
		if _, ok := n.values[name]; ok {
			n.values[name] = value
		}
	}
}

// Snapshot returns a copy of the current bindings.
func (n *Namespace) Snapshot() map[string]Value {
	out := make(map[string]Value, len(n.values))
	for k, v := range n.values {
		out[k] = v
	}
	return out
}

// Keys returns the bindings in sorted order (useful for determinism in tests).
func (n *Namespace) Keys() []string {
	keys := make([]string, 0, len(n.values))
	for k := range n.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
