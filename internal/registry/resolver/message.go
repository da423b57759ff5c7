package resolver

import (
	"github.com/google/uuid"

	"github.com/sorenhq/namevault/internal/registry/domain"
)

// message is a request submitted to the resolution actor. Each variant
// carries its own one-shot reply channel so a typed result reaches exactly
// one waiting caller.
type message interface {
	isMessage()
}

// uidResult is the reply payload for operations resolving to an identifier.
type uidResult struct {
	uid uuid.UUID
	err error
}

// listResult is the reply payload for list.
type listResult struct {
	entries []domain.Entry
	err     error
}

type createMsg struct {
	name  string
	reply chan uidResult
}

type getMsg struct {
	name  string
	reply chan uidResult
}

type deleteMsg struct {
	name  string
	reply chan uidResult
}

type listMsg struct {
	reply chan listResult
}

type insertMsg struct {
	name  string
	uid   uuid.UUID
	reply chan error
}

type statsMsg struct {
	reply chan Stats
}

func (createMsg) isMessage() {}
func (getMsg) isMessage()    {}
func (deleteMsg) isMessage() {}
func (listMsg) isMessage()   {}
func (insertMsg) isMessage() {}
func (statsMsg) isMessage()  {}
