package interpreter

import (
	"fmt"
)

// EnvID addresses a scope in an Environments arena. Closures and objects hold
// an EnvID rather than a pointer to the scope they captured.
type EnvID int

const NoEnv EnvID = -1

type Namespace int

const (
	Variables Namespace = iota
	Functions
)

func (n Namespace) String() string {
	if n == Functions {
		return "function"
	}

	return "variable"
}

type scope struct {
	parent    EnvID
	name      string
	values    map[string]Value
	functions map[string]Value

	captured bool
	live     bool
}

func (s *scope) table(ns Namespace) map[string]Value {
	if ns == Functions {
		return s.functions
	}

	return s.values
}

// Environments is the arena of every scope created by one interpreter. A
// scope captured by a closure or object stays alive for the lifetime of the
// arena; other scopes are recycled once their owner releases them.
type Environments struct {
	scopes  []scope
	free    []EnvID
	natives map[string]Value
}

func NewEnvironments(natives map[string]Value) *Environments {
	if natives == nil {
		natives = make(map[string]Value)
	}

	return &Environments{natives: natives}
}

// New allocates a scope whose lookups fall through to parent. The name is
// only used for diagnostics.
func (e *Environments) New(parent EnvID, name string) EnvID {
	s := scope{
		parent:    parent,
		name:      name,
		values:    make(map[string]Value),
		functions: make(map[string]Value),
		live:      true,
	}

	if n := len(e.free); n > 0 {
		id := e.free[n-1]
		e.free = e.free[:n-1]
		e.scopes[id] = s
		return id
	}

	e.scopes = append(e.scopes, s)
	return EnvID(len(e.scopes) - 1)
}

func (e *Environments) get(id EnvID) *scope {
	if id < 0 || int(id) >= len(e.scopes) || !e.scopes[id].live {
		return nil
	}

	return &e.scopes[id]
}

func (e *Environments) Parent(id EnvID) EnvID {
	s := e.get(id)
	if s == nil {
		return NoEnv
	}

	return s.parent
}

func (e *Environments) Name(id EnvID) string {
	s := e.get(id)
	if s == nil {
		return ""
	}

	return s.name
}

// Capture pins id and every enclosing scope so Release leaves them alone.
func (e *Environments) Capture(id EnvID) {
	for s := e.get(id); s != nil && !s.captured; s = e.get(s.parent) {
		s.captured = true
	}
}

// Release returns an uncaptured scope to the free list.
func (e *Environments) Release(id EnvID) {
	s := e.get(id)
	if s == nil || s.captured {
		return
	}

	*s = scope{}
	e.free = append(e.free, id)
}

// Live reports the number of scopes currently allocated.
func (e *Environments) Live() int {
	return len(e.scopes) - len(e.free)
}

// Add binds name in scope id itself. It fails if the name is already bound
// in that namespace at that level.
func (e *Environments) Add(id EnvID, name string, value Value, ns Namespace) error {
	s := e.get(id)
	if s == nil {
		return fmt.Errorf("scope %d is not live", id)
	}

	table := s.table(ns)
	if _, ok := table[name]; ok {
		return fmt.Errorf("%w: %s %s is already defined in this scope", ErrRedeclared, ns, name)
	}

	table[name] = value

	return nil
}

// Define binds name in scope id itself, overwriting any binding already made
// at that level in the same namespace.
func (e *Environments) Define(id EnvID, name string, value Value, ns Namespace) error {
	s := e.get(id)
	if s == nil {
		return fmt.Errorf("scope %d is not live", id)
	}

	s.table(ns)[name] = value

	return nil
}

// Delete removes the nearest binding of name, searching outward from id, and
// returns the scope it was removed from. Natives cannot be deleted.
func (e *Environments) Delete(id EnvID, name string, ns Namespace) (EnvID, bool) {
	for cur := id; ; {
		s := e.get(cur)
		if s == nil {
			return NoEnv, false
		}

		table := s.table(ns)
		if _, ok := table[name]; ok {
			delete(table, name)
			return cur, true
		}

		cur = s.parent
	}
}

// Set overwrites the nearest existing binding of name, searching outward
// from id. It reports whether a binding was found.
func (e *Environments) Set(id EnvID, name string, value Value, ns Namespace) bool {
	for s := e.get(id); s != nil; s = e.get(s.parent) {
		table := s.table(ns)
		if _, ok := table[name]; ok {
			table[name] = value
			return true
		}
	}

	return false
}

// SetLocal overwrites an existing binding in scope id only.
func (e *Environments) SetLocal(id EnvID, name string, value Value, ns Namespace) bool {
	s := e.get(id)
	if s == nil {
		return false
	}

	table := s.table(ns)
	if _, ok := table[name]; !ok {
		return false
	}

	table[name] = value

	return true
}

// Get resolves name outward from id. Function lookups fall back to the
// native table once the scope chain is exhausted.
func (e *Environments) Get(id EnvID, name string, ns Namespace) (Value, bool) {
	for s := e.get(id); s != nil; s = e.get(s.parent) {
		if v, ok := s.table(ns)[name]; ok {
			return v, true
		}
	}

	if ns == Functions {
		v, ok := e.natives[name]
		return v, ok
	}

	return nil, false
}

// Local resolves name in scope id only, without consulting parents or natives.
func (e *Environments) Local(id EnvID, name string, ns Namespace) (Value, bool) {
	s := e.get(id)
	if s == nil {
		return nil, false
	}

	v, ok := s.table(ns)[name]
	return v, ok
}
