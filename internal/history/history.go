// Package history provides a bounded undo/redo stack over state snapshots.
package history

import "reflect"

// DefaultLimit bounds each of the past and future stacks.
const DefaultLimit = 50

// Manager keeps a present snapshot plus bounded past and future stacks.
// Snapshots are compared structurally, not by identity, because producers
// typically pass freshly constructed collections on every mutation.
type Manager[T any] struct {
	past    []T
	present T
	future  []T
	limit   int
}

// New creates a manager seeded with the initial snapshot.
func New[T any](initial T, limit int) *Manager[T] {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Manager[T]{present: initial, limit: limit}
}

// Push records a new present snapshot. Pushing a snapshot deep-equal to the
// current present is a no-op, so incidental re-renders never create
// degenerate history entries. Any redo branch is discarded.
func (m *Manager[T]) Push(next T) {
	if reflect.DeepEqual(next, m.present) {
		return
	}
	m.past = append(m.past, m.present)
	if len(m.past) > m.limit {
		m.past = m.past[len(m.past)-m.limit:]
	}
	m.present = next
	m.future = nil
}

// Undo moves the present one step back. It reports false, leaving the state
// untouched, when there is nothing to undo.
func (m *Manager[T]) Undo() (T, bool) {
	if len(m.past) == 0 {
		var zero T
		return zero, false
	}
	m.future = append([]T{m.present}, m.future...)
	if len(m.future) > m.limit {
		m.future = m.future[:m.limit]
	}
	m.present = m.past[len(m.past)-1]
	m.past = m.past[:len(m.past)-1]
	return m.present, true
}

// Redo moves the present one step forward. It reports false, leaving the
// state untouched, when there is nothing to redo.
func (m *Manager[T]) Redo() (T, bool) {
	if len(m.future) == 0 {
		var zero T
		return zero, false
	}
	m.past = append(m.past, m.present)
	if len(m.past) > m.limit {
		m.past = m.past[len(m.past)-m.limit:]
	}
	m.present = m.future[0]
	m.future = m.future[1:]
	return m.present, true
}

// Present returns the current snapshot.
func (m *Manager[T]) Present() T { return m.present }

// CanUndo reports whether an undo step is available.
func (m *Manager[T]) CanUndo() bool { return len(m.past) > 0 }

// CanRedo reports whether a redo step is available.
func (m *Manager[T]) CanRedo() bool { return len(m.future) > 0 }

// PastLen returns the current depth of the past stack.
func (m *Manager[T]) PastLen() int { return len(m.past) }

// FutureLen returns the current depth of the future stack.
func (m *Manager[T]) FutureLen() int { return len(m.future) }
