package domain

import "github.com/google/uuid"

// UIDSize is the byte length of a stored identifier.
const UIDSize = 16

// Entry is a persisted (name, identifier) pair.
type Entry struct {
	Name string
	UID  uuid.UUID
}

// DecodeUID parses a raw stored value back into an identifier.
// Returns a CorruptEntryError if the value is not exactly 16 bytes or
// cannot be interpreted as a UUID; corruption is surfaced, never skipped.
func DecodeUID(name string, raw []byte) (uuid.UUID, error) {
	if len(raw) != UIDSize {
		return uuid.UUID{}, &CorruptEntryError{Name: name, Len: len(raw)}
	}
	uid, err := uuid.FromBytes(raw)
	if err != nil {
		return uuid.UUID{}, &CorruptEntryError{Name: name, Len: len(raw)}
	}
	return uid, nil
}
