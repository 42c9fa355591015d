package domain

import "context"

// PartnerRepository persists the partner roster.
type PartnerRepository interface {
	Upsert(ctx context.Context, p Partner) error
	LoadAll(ctx context.Context, fn func(p Partner) error) error
}

// RosterCache is the in-memory read model of the roster.
type RosterCache interface {
	Get(id string) (Partner, bool)
	Put(p Partner)
	All() []Partner
}

// RecommendationOracle produces a raw recommendation for an order given the
// candidate partners. Output is untrusted text; parsing and verification
// happen in the domain.
type RecommendationOracle interface {
	Propose(ctx context.Context, order Order, candidates []Partner) ([]byte, error)
}

// RecommendationStore persists verified recommendations keyed by order uid.
type RecommendationStore interface {
	Save(ctx context.Context, orderUID string, rec Recommendation) error
	Get(ctx context.Context, orderUID string) (Recommendation, bool, error)
}

// MessageSubscriber delivers incoming order messages; ack/redelivery is the
// adapter's concern.
type MessageSubscriber interface {
	Subscribe(ctx context.Context, handler func(ctx context.Context, raw []byte) error) error
}

// Common domain errors.
var (
	ErrNotFound           = notFoundError("not found")
	ErrValidation         = validationError("invalid data")
	ErrNoEligiblePartners = notFoundError("no eligible DME partners")
	ErrMalformedProposal  = validationError("malformed oracle proposal")
)

type notFoundError string

func (e notFoundError) Error() string { return string(e) }

type validationError string

func (e validationError) Error() string { return string(e) }
