// Package perm decides whether an actor may perform an operation on a
// resource. Policies are plain per-operation lookup tables handed to each
// service at construction; an operation with no entry is denied.
package perm

import "github.com/google/uuid"

type Operation string

const (
	OpList     Operation = "list"
	OpRetrieve Operation = "retrieve"
	OpCreate   Operation = "create"
	OpUpdate   Operation = "update"
	OpDelete   Operation = "delete"

	// OpMarkRead is the one custom action notifications expose.
	OpMarkRead Operation = "mark-read"
)

// Resource is anything with an owner and a set of involved parties.
type Resource interface {
	Owner() uuid.UUID
	Parties() []uuid.UUID
}

// Predicate is a pure yes/no check over (actor, resource).
type Predicate func(actor uuid.UUID, res Resource) bool

func Anyone(actor uuid.UUID, res Resource) bool {
	return true
}

func OwnerOnly(actor uuid.UUID, res Resource) bool {
	return res.Owner() == actor
}

func InvolvedParty(actor uuid.UUID, res Resource) bool {
	for _, party := range res.Parties() {
		if party == actor {
			return true
		}
	}
	return false
}

func Nobody(actor uuid.UUID, res Resource) bool {
	return false
}

// Policy maps operations to predicates. Evaluation is total: a missing
// entry denies.
type Policy map[Operation]Predicate

func (p Policy) Allows(op Operation, actor uuid.UUID, res Resource) bool {
	pred, ok := p[op]
	if !ok {
		return false
	}
	return pred(actor, res)
}

// PublicOwned is the policy for public content (posts, comments):
// anyone reads, only the owner mutates.
func PublicOwned() Policy {
	return Policy{
		OpList:     Anyone,
		OpRetrieve: Anyone,
		OpCreate:   Anyone,
		OpUpdate:   OwnerOnly,
		OpDelete:   OwnerOnly,
	}
}

// PrivateOwned is the policy for notifications: only the owner reads,
// nobody mutates.
func PrivateOwned() Policy {
	return Policy{
		OpList:     OwnerOnly,
		OpRetrieve: OwnerOnly,
		OpMarkRead: OwnerOnly,
		OpUpdate:   Nobody,
		OpDelete:   Nobody,
	}
}

// Conversation is the policy for direct messages: sender and recipient
// read, nobody mutates after creation.
func Conversation() Policy {
	return Policy{
		OpList:     InvolvedParty,
		OpRetrieve: InvolvedParty,
		OpCreate:   Anyone,
		OpUpdate:   Nobody,
		OpDelete:   Nobody,
	}
}
