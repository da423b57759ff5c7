package domain

import "fmt"

// BadNameError indicates a resource name that fails the character-set
// policy. It is reported before any store access.
type BadNameError struct {
	Name string
}

func (e *BadNameError) Error() string {
	return fmt.Sprintf("badly formatted resource name: %q", e.Name)
}

// NotFoundError indicates that a requested name has no mapping.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resource %q does not exist", e.Name)
}

// AlreadyExistsError indicates a create request for a name that is
// already registered.
type AlreadyExistsError struct {
	Name string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("resource %q already exists", e.Name)
}

// CorruptEntryError indicates a stored value that cannot be decoded back
// into an identifier. It is a store-integrity fault, not a lookup miss.
type CorruptEntryError struct {
	Name string
	Len  int
}

func (e *CorruptEntryError) Error() string {
	return fmt.Sprintf("corrupt identifier for resource %q: got %d bytes, want %d", e.Name, e.Len, UIDSize)
}
