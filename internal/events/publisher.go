// Package events carries the cross-view change signal: every successful
// back-office mutation publishes a topic that tells any mounted dashboard to
// drop its cached aggregates. Delivery is fire-and-forget, at most once per
// mutation; a missed signal is bounded by the snapshot cache TTL.
package events

const (
	TopicInventoryUpdated     = "inventory-updated"
	TopicDashboardDataUpdated = "dashboard-data-updated"
)

type Publisher interface {
	Publish(topic string, payload map[string]interface{})
}

// NopPublisher is used when no Redis address is configured; mutations then
// rely on the snapshot TTL alone.
type NopPublisher struct{}

func (NopPublisher) Publish(string, map[string]interface{}) {}
