// Package events carries the change-notification contract: every successful
// mutation emits a ResourceChanged event so cached reads for that resource's
// key family can be invalidated without relying on each caller to remember.
package events

import (
	"context"
	"time"
)

// TopicResourceChanges is the Kafka topic change notifications are published to.
const TopicResourceChanges = "lodging.changes"

// Resource kinds, doubling as cache key families.
const (
	ResourceBookings = "bookings"
	ResourceCabins   = "cabins"
	ResourceGuests   = "guests"
	ResourceSettings = "settings"
)

// Op is the kind of mutation that happened.
type Op string

const (
	OpCreated Op = "created"
	OpUpdated Op = "updated"
	OpDeleted Op = "deleted"
)

// ResourceChanged announces that a mutation on one resource kind committed.
type ResourceChanged struct {
	Resource   string    `json:"resource"`
	Op         Op        `json:"op"`
	ID         int64     `json:"id,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Notifier publishes change notifications. Publishing is best effort: a
// failed notification must never fail the mutation that triggered it.
type Notifier interface {
	ResourceChanged(ctx context.Context, evt ResourceChanged)
}

// NopNotifier discards all notifications. Used when Kafka is not configured.
type NopNotifier struct{}

// ResourceChanged implements Notifier.
func (NopNotifier) ResourceChanged(context.Context, ResourceChanged) {}
