package hashmap

import (
	"time"

	"github.com/skybi/bitflags/internal/task"
)

type expiringEntry[V any] struct {
	raw      V
	inserted time.Time
}

// ExpiringMap wraps a NormalMap in order to implement value expiration
type ExpiringMap[K comparable, V any] struct {
	normal      *NormalMap[K, expiringEntry[V]]
	lifetime    time.Duration
	now         func() time.Time
	cleanupTask *task.RepeatingTask
}

// NewExpiring creates a new expiring map whose values exist for a specific lifetime.
// Expired values are never returned, but they are not removed from memory before ScheduleCleanupTask is called.
func NewExpiring[K comparable, V any](lifetime time.Duration) *ExpiringMap[K, V] {
	return &ExpiringMap[K, V]{
		normal:   NewNormal[K, expiringEntry[V]](),
		lifetime: lifetime,
		now:      time.Now,
	}
}

// ScheduleCleanupTask schedules the task that removes expired values in a specific interval.
// StopCleanupTask has to be called as soon as the map is no longer needed.
func (obj *ExpiringMap[K, V]) ScheduleCleanupTask(tick time.Duration) {
	if obj.cleanupTask != nil {
		return
	}
	obj.cleanupTask = task.NewRepeating(func() {
		obj.Cleanup()
	}, tick)
	obj.cleanupTask.Start()
}

// StopCleanupTask stops the cleanup task
func (obj *ExpiringMap[K, V]) StopCleanupTask() {
	if obj.cleanupTask == nil {
		return
	}
	obj.cleanupTask.Stop(false)
	obj.cleanupTask = nil
}

// Cleanup removes all expired values and returns their amount
func (obj *ExpiringMap[K, V]) Cleanup() int {
	now := obj.now()
	return obj.normal.Sweep(func(_ K, entry expiringEntry[V]) bool {
		return obj.expired(entry, now)
	})
}

func (obj *ExpiringMap[K, V]) expired(entry expiringEntry[V], now time.Time) bool {
	return now.Sub(entry.inserted) > obj.lifetime
}

// Size returns the amount of stored key-value pairs, including expired ones not yet cleaned up
func (obj *ExpiringMap[K, V]) Size() int {
	return obj.normal.Size()
}

// Lookup returns the value assigned to the given key and a boolean indicating if a non-expired value exists
func (obj *ExpiringMap[K, V]) Lookup(key K) (V, bool) {
	entry, ok := obj.normal.Lookup(key)
	if !ok || obj.expired(entry, obj.now()) {
		var zero V
		return zero, false
	}
	return entry.raw, true
}

// Set sets a key-value pair and resets its lifetime
func (obj *ExpiringMap[K, V]) Set(key K, value V) {
	obj.normal.Set(key, expiringEntry[V]{
		raw:      value,
		inserted: obj.now(),
	})
}

// Unset deletes the value assigned to given key
func (obj *ExpiringMap[K, V]) Unset(key K) {
	obj.normal.Unset(key)
}

// UnsetWhere deletes every value fn returns true for
func (obj *ExpiringMap[K, V]) UnsetWhere(fn func(key K, value V) bool) int {
	return obj.normal.Sweep(func(key K, entry expiringEntry[V]) bool {
		return fn(key, entry.raw)
	})
}
