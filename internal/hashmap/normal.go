package hashmap

import "sync"

// NormalMap wraps the builtin map type with a RWMutex in order to provide thread safety
type NormalMap[K comparable, V any] struct {
	mtx        sync.RWMutex
	underlying map[K]V
}

// NewNormal creates a new thread safe map
func NewNormal[K comparable, V any]() *NormalMap[K, V] {
	return &NormalMap[K, V]{
		underlying: make(map[K]V),
	}
}

// Size returns the amount of stored key-value pairs
func (obj *NormalMap[K, V]) Size() int {
	obj.mtx.RLock()
	defer obj.mtx.RUnlock()
	return len(obj.underlying)
}

// Lookup returns the value assigned to the given key and a boolean indicating if the key exists
func (obj *NormalMap[K, V]) Lookup(key K) (V, bool) {
	obj.mtx.RLock()
	defer obj.mtx.RUnlock()
	val, ok := obj.underlying[key]
	return val, ok
}

// Set sets a key-value pair
func (obj *NormalMap[K, V]) Set(key K, value V) {
	obj.mtx.Lock()
	defer obj.mtx.Unlock()
	obj.underlying[key] = value
}

// Update atomically replaces the value of key with the result of fn.
// fn receives the current value and whether the key existed.
func (obj *NormalMap[K, V]) Update(key K, fn func(current V, ok bool) V) {
	obj.mtx.Lock()
	defer obj.mtx.Unlock()
	current, ok := obj.underlying[key]
	obj.underlying[key] = fn(current, ok)
}

// Unset deletes the value assigned to given key
func (obj *NormalMap[K, V]) Unset(key K) {
	obj.mtx.Lock()
	defer obj.mtx.Unlock()
	delete(obj.underlying, key)
}

// Sweep deletes every key-value pair fn returns true for
func (obj *NormalMap[K, V]) Sweep(fn func(key K, value V) bool) int {
	obj.mtx.Lock()
	defer obj.mtx.Unlock()
	n := 0
	for key, value := range obj.underlying {
		if fn(key, value) {
			delete(obj.underlying, key)
			n++
		}
	}
	return n
}

// Drain returns the underlying map and replaces it with an empty one
func (obj *NormalMap[K, V]) Drain() map[K]V {
	obj.mtx.Lock()
	defer obj.mtx.Unlock()
	drained := obj.underlying
	obj.underlying = make(map[K]V)
	return drained
}
