package strategy

import (
	"context"
	"errors"
	"time"
)

// ErrAllocationFailed signals an internal fault in an allocation strategy.
// Callers are expected to recover from it with a fallback strategy; it is
// never surfaced outside the allocator.
var ErrAllocationFailed = errors.New("allocation: strategy failed")

// OutcomeStatus is the lifecycle state of a historical order used to score a channel
type OutcomeStatus string

const (
	OutcomePending   OutcomeStatus = "pending"
	OutcomeCompleted OutcomeStatus = "completed"
	OutcomeCancelled OutcomeStatus = "cancelled"
)

// OrderOutcome is one historical order placed against a channel listing
type OrderOutcome struct {
	Status      OutcomeStatus
	ListedAt    time.Time
	CompletedAt *time.Time
}

// HoursToSell returns the hours between listing creation and order completion.
// The second return is false when the order has not completed.
func (o OrderOutcome) HoursToSell() (float64, bool) {
	if o.Status != OutcomeCompleted || o.CompletedAt == nil {
		return 0, false
	}
	return o.CompletedAt.Sub(o.ListedAt).Hours(), true
}

// StockAllocationContext is the input to a stock allocation strategy.
// Channels keeps the caller's order; ties are broken by it.
type StockAllocationContext struct {
	TotalStock int
	Channels   []string
	History    map[string][]OrderOutcome
}

// StockAllocationResult is the per-channel split of the total stock
type StockAllocationResult struct {
	Allocations map[string]int
	Weights     map[string]float64
	Strategy    string
	Fallback    bool
}

// Sum returns the total number of allocated units
func (r StockAllocationResult) Sum() int {
	total := 0
	for _, qty := range r.Allocations {
		total += qty
	}
	return total
}

// StockAllocationStrategy splits a finite stock across sales channels
type StockAllocationStrategy interface {
	Strategy
	// Allocate returns an allocation whose sum equals TotalStock, or an error
	// wrapping ErrAllocationFailed
	Allocate(ctx context.Context, allocCtx StockAllocationContext) (StockAllocationResult, error)
}
