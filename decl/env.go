package decl

import (
	"fmt"
	"slices"
)

// Env[T] maps names to values and remembers the order names were first set.
type Env[T any] struct {
	store map[string]T
	order []string
}

func NewEnv[T any]() *Env[T] {
	return &Env[T]{store: make(map[string]T)}
}

// Get retrieves a value by name.
func (e *Env[T]) Get(name string) (out T, found bool) {
	out, found = e.store[name]
	return
}

func (e *Env[T]) Set(key string, value T) {
	if _, exists := e.store[key]; !exists {
		e.order = append(e.order, key)
	}
	e.store[key] = value
}

// Keys returns the names in the order they were first set.
func (e *Env[T]) Keys() []string {
	return slices.Clone(e.order)
}

// String representation for debugging
func (e *Env[T]) String() string {
	return fmt.Sprintf("Env{keys: %v}", e.order)
}
