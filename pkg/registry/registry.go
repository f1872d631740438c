package registry

import (
	"fmt"
	"sync"

	"github.com/arthur-debert/delegate/pkg/errors"
)

// Registry is a generic, thread-safe registry for storing and retrieving items by key
type Registry[K comparable, T any] interface {
	// Register adds an item to the registry
	Register(key K, item T) error

	// Get retrieves an item from the registry
	Get(key K) (T, error)

	// GetOrCreate returns the item for key, calling create to store one
	// when the key is missing. create runs at most once per key.
	GetOrCreate(key K, create func() T) T

	// Remove removes an item from the registry
	Remove(key K) error

	// Keys returns all registered keys in registration order
	Keys() []K

	// Has checks if an item is registered
	Has(key K) bool

	// Clear removes all items from the registry
	Clear()

	// Count returns the number of registered items
	Count() int
}

// registry is the internal implementation of Registry
type registry[K comparable, T any] struct {
	mu    sync.RWMutex
	items map[K]T
	order []K
}

// New creates a new Registry instance
func New[K comparable, T any]() Registry[K, T] {
	return &registry[K, T]{
		items: make(map[K]T),
	}
}

// Register adds an item to the registry
func (r *registry[K, T]) Register(key K, item T) error {
	var zero K
	if key == zero {
		return errors.New(errors.ErrInvalidInput, "registry key cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[key]; exists {
		return errors.Newf(errors.ErrAlreadyExists, "item '%v' is already registered", key)
	}

	r.items[key] = item
	r.order = append(r.order, key)
	return nil
}

// Get retrieves an item from the registry
func (r *registry[K, T]) Get(key K) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.items[key]
	if !exists {
		var zero T
		return zero, errors.Newf(errors.ErrNotFound, "item '%v' not found in registry", key)
	}

	return item, nil
}

// GetOrCreate returns the existing item or stores the one built by create
func (r *registry[K, T]) GetOrCreate(key K, create func() T) T {
	r.mu.RLock()
	item, exists := r.items[key]
	r.mu.RUnlock()
	if exists {
		return item
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Another goroutine may have won the race between the two locks
	if item, exists = r.items[key]; exists {
		return item
	}
	item = create()
	r.items[key] = item
	r.order = append(r.order, key)
	return item
}

// Remove removes an item from the registry
func (r *registry[K, T]) Remove(key K) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[key]; !exists {
		return errors.Newf(errors.ErrNotFound, "item '%v' not found in registry", key)
	}

	delete(r.items, key)
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Keys returns all registered keys in registration order
func (r *registry[K, T]) Keys() []K {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]K, len(r.order))
	copy(keys, r.order)
	return keys
}

// Has checks if an item is registered
func (r *registry[K, T]) Has(key K) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.items[key]
	return exists
}

// Clear removes all items from the registry
func (r *registry[K, T]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = make(map[K]T)
	r.order = nil
}

// Count returns the number of registered items
func (r *registry[K, T]) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}

// MustRegister registers an item and panics if registration fails
// This is useful for init() functions where registration errors are programming errors
func MustRegister[K comparable, T any](reg Registry[K, T], key K, item T) {
	if err := reg.Register(key, item); err != nil {
		panic(fmt.Sprintf("failed to register %v: %v", key, err))
	}
}
