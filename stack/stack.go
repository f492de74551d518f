/*
Copyright © 2024 Red Hat, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package stack contains a generic LIFO container backed by an array that
// grows on demand. It is used by the RPN evaluator and by the expression
// editor.
package stack

// Generated documentation is available at:
// https://pkg.go.dev/github.com/RedHatInsights/ccx-calculator/stack

// DefaultCapacity is the initial size of backing storage
const DefaultCapacity = 32

// MinimalCapacity is the smallest initial capacity accepted by New
const MinimalCapacity = 16

// Stack is a last-in, first-out container. The zero value is an empty stack
// that allocates MinimalCapacity items on first Push.
type Stack[T any] struct {
	items []T
	size  int
}

// New constructs an empty stack with the default initial capacity.
func New[T any]() *Stack[T] {
	return NewWithCapacity[T](DefaultCapacity)
}

// NewWithCapacity constructs an empty stack with given initial capacity.
// Capacities below MinimalCapacity are raised to MinimalCapacity.
func NewWithCapacity[T any](capacity int) *Stack[T] {
	if capacity < MinimalCapacity {
		capacity = MinimalCapacity
	}
	return &Stack[T]{
		items: make([]T, capacity),
	}
}

// Push stores the item on top of the stack and returns it.
func (s *Stack[T]) Push(item T) T {
	switch {
	case s.items == nil:
		s.items = make([]T, MinimalCapacity)
	case s.size == len(s.items):
		s.resize()
	}
	s.items[s.size] = item
	s.size++
	return item
}

// Pop removes and returns the item on top of the stack. It panics with
// *EmptyContainerError when the stack is empty.
func (s *Stack[T]) Pop() T {
	if s.IsEmpty() {
		panic(&EmptyContainerError{Operation: "Pop"})
	}
	s.size--
	item := s.items[s.size]

	// drop the reference so the item can be garbage collected
	var zero T
	s.items[s.size] = zero

	return item
}

// Peek returns the item on top of the stack without removing it. It panics
// with *EmptyContainerError when the stack is empty.
func (s *Stack[T]) Peek() T {
	if s.IsEmpty() {
		panic(&EmptyContainerError{Operation: "Peek"})
	}
	return s.items[s.size-1]
}

// IsEmpty checks if the stack contains no items.
func (s *Stack[T]) IsEmpty() bool {
	return s.size == 0
}

// Size returns the number of items stored in the stack.
func (s *Stack[T]) Size() int {
	return s.size
}

// Capacity returns the size of backing storage. It never shrinks.
func (s *Stack[T]) Capacity() int {
	return len(s.items)
}

// Items returns a copy of stored items, bottom first.
func (s *Stack[T]) Items() []T {
	result := make([]T, s.size)
	copy(result, s.items[:s.size])
	return result
}

// resize doubles the backing storage. Only the occupied part of the old
// storage is copied.
func (s *Stack[T]) resize() {
	newItems := make([]T, len(s.items)*2)
	copy(newItems, s.items[:s.size])
	s.items = newItems
}
