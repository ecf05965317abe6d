package history

import "github.com/example/drawboard/internal/shape"

// Store keeps the committed shapes and the shapes removed by undo. Both
// stacks are ordered oldest first and grow until Clear.
type Store struct {
	committed []shape.Shape
	undone    []shape.Shape
}

// New returns an empty store.
func New() *Store { return &Store{} }

// Commit appends s to the committed stack. The undone stack is left as is.
func (st *Store) Commit(s shape.Shape) {
	st.committed = append(st.committed, s)
}

// Undo moves the newest committed shape onto the undone stack.
func (st *Store) Undo() (shape.Shape, bool) {
	s, ok := pop(&st.committed)
	if ok {
		st.undone = append(st.undone, s)
	}
	return s, ok
}

// Redo moves the most recently undone shape back onto the committed stack.
func (st *Store) Redo() (shape.Shape, bool) {
	s, ok := pop(&st.undone)
	if ok {
		st.committed = append(st.committed, s)
	}
	return s, ok
}

// Clear empties both stacks.
func (st *Store) Clear() {
	st.committed = nil
	st.undone = nil
}

// Len returns the number of committed shapes.
func (st *Store) Len() int { return len(st.committed) }

// UndoneLen returns the number of shapes waiting to be redone.
func (st *Store) UndoneLen() int { return len(st.undone) }

// Committed returns a copy of the committed stack, oldest first.
func (st *Store) Committed() []shape.Shape { return clone(st.committed) }

// Undone returns a copy of the undone stack, most recently undone last.
func (st *Store) Undone() []shape.Shape { return clone(st.undone) }

func pop(stack *[]shape.Shape) (shape.Shape, bool) {
	s := *stack
	if len(s) == 0 {
		return shape.Shape{}, false
	}
	last := s[len(s)-1]
	s[len(s)-1] = shape.Shape{}
	*stack = s[:len(s)-1]
	return last, true
}

func clone(in []shape.Shape) []shape.Shape {
	out := make([]shape.Shape, len(in))
	for i, s := range in {
		out[i] = s.Clone()
	}
	return out
}
