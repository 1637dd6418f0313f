package event

import "strings"

// Topic is a Kafka topic. One topic per domain; a topic carries only event
// kinds belonging to its domain.
type Topic string

const (
	TopicUser     Topic = "user"
	TopicSupplier Topic = "supplier"
	TopicProduct  Topic = "product"
	TopicOrder    Topic = "order"
	TopicPost     Topic = "post"
)

// Type tags an event as "<domain>.<action>".
type Type string

const (
	UserCreated Type = "user.created"
	UserUpdated Type = "user.updated"
	UserDeleted Type = "user.deleted"

	SupplierCreated Type = "supplier.created"
	SupplierUpdated Type = "supplier.updated"
	SupplierDeleted Type = "supplier.deleted"

	ProductCreated      Type = "product.created"
	ProductUpdated      Type = "product.updated"
	ProductPublished    Type = "product.published"
	ProductDiscontinued Type = "product.discontinued"
	ProductOutOfStock   Type = "product.out_of_stock"
	ProductRestored     Type = "product.restored"
	ProductDeleted      Type = "product.deleted"

	OrderCreated   Type = "order.created"
	OrderCancelled Type = "order.cancelled"

	PostCreated   Type = "post.created"
	PostUpdated   Type = "post.updated"
	PostPublished Type = "post.published"
	PostDeleted   Type = "post.deleted"
)

// typesByTopic is the static domain → event-kind table. The consumer
// subscribes to its keys and uses the values for the defensive membership
// check on arriving messages.
var typesByTopic = map[Topic][]Type{
	TopicUser:     {UserCreated, UserUpdated, UserDeleted},
	TopicSupplier: {SupplierCreated, SupplierUpdated, SupplierDeleted},
	TopicProduct: {
		ProductCreated, ProductUpdated, ProductPublished,
		ProductDiscontinued, ProductOutOfStock, ProductRestored,
		ProductDeleted,
	},
	TopicOrder: {OrderCreated, OrderCancelled},
	TopicPost:  {PostCreated, PostUpdated, PostPublished, PostDeleted},
}

// Topics returns every domain topic as plain strings, ready for
// Consumer.SubscribeTopics and admin-client topic creation.
func Topics() []string {
	return []string{
		string(TopicUser),
		string(TopicSupplier),
		string(TopicProduct),
		string(TopicOrder),
		string(TopicPost),
	}
}

// Types returns every known event type across all topics.
func Types() []Type {
	var all []Type
	for _, topic := range Topics() {
		all = append(all, typesByTopic[Topic(topic)]...)
	}
	return all
}

// Domain returns the "<domain>" prefix of the event type.
func (t Type) Domain() string {
	if i := strings.IndexByte(string(t), '.'); i >= 0 {
		return string(t)[:i]
	}
	return string(t)
}

// TopicFor maps an event type to the topic it is published on. The second
// return is false for event types outside the static table.
func TopicFor(t Type) (Topic, bool) {
	topic := Topic(t.Domain())
	for _, known := range typesByTopic[topic] {
		if known == t {
			return topic, true
		}
	}
	return "", false
}

// Contains reports whether the event type belongs to this topic.
func (tp Topic) Contains(t Type) bool {
	topic, ok := TopicFor(t)
	return ok && topic == tp
}
