package enums

// OutboxEventType names a domain event stored in outbox_events.
type OutboxEventType string

const (
	OutboxEventTenantCreated  OutboxEventType = "tenant.created"
	OutboxEventStoreCreated   OutboxEventType = "store.created"
	OutboxEventPagePublished  OutboxEventType = "page.published"
	OutboxEventProductCreated OutboxEventType = "product.created"
)

var validOutboxEventTypes = []OutboxEventType{
	OutboxEventTenantCreated,
	OutboxEventStoreCreated,
	OutboxEventPagePublished,
	OutboxEventProductCreated,
}

// String implements fmt.Stringer.
func (o OutboxEventType) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OutboxEventType.
func (o OutboxEventType) IsValid() bool {
	for _, candidate := range validOutboxEventTypes {
		if candidate == o {
			return true
		}
	}
	return false
}

// OutboxAggregateType names the aggregate an outbox event belongs to.
type OutboxAggregateType string

const (
	OutboxAggregateTenant  OutboxAggregateType = "tenant"
	OutboxAggregateStore   OutboxAggregateType = "store"
	OutboxAggregatePage    OutboxAggregateType = "page"
	OutboxAggregateProduct OutboxAggregateType = "product"
)

// String implements fmt.Stringer.
func (o OutboxAggregateType) String() string {
	return string(o)
}
