// Package services contains domain services that do not belong to a
// single aggregate. The courier selector implements the dispatch
// policy: who gets offered a ready order.
package services

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"fooddelivery/internal/core/domain/model/courier"
)

// ErrNoCourierAvailable is returned when no eligible courier exists
// for a ready order. This is a normal, expected condition: the order
// stays ready and unassigned for a later retry, and callers surface it
// as an informational message rather than a failure.
var ErrNoCourierAvailable = errors.New("no courier available")

// CourierSelector picks one courier uniformly at random from the
// eligible candidates. The randomness source is injected so the policy
// is seedable and deterministic in tests; the storage-side random
// ordering of the original system is deliberately kept out of the
// database.
type CourierSelector struct {
	rng *rand.Rand
	mu  *sync.Mutex
}

// NewCourierSelector creates a selector. Pass nil to seed from the
// current time.
func NewCourierSelector(rng *rand.Rand) CourierSelector {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return CourierSelector{rng: rng, mu: &sync.Mutex{}}
}

// Select returns one online courier chosen uniformly at random.
// Candidates that are offline or improperly constructed are skipped.
// The caller is expected to have already excluded couriers holding an
// on_delivery order; this function only applies the availability and
// uniformity rules.
func (s CourierSelector) Select(candidates []*courier.Courier) (*courier.Courier, error) {
	eligible := make([]*courier.Courier, 0, len(candidates))
	for _, c := range candidates {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if c.IsOnline() {
			eligible = append(eligible, c)
		}
	}

	if len(eligible) == 0 {
		return nil, ErrNoCourierAvailable
	}

	// One selector instance serves concurrent dispatch paths and
	// rand.Rand is not safe for concurrent use.
	s.mu.Lock()
	pick := eligible[s.rng.Intn(len(eligible))]
	s.mu.Unlock()
	return pick, nil
}
