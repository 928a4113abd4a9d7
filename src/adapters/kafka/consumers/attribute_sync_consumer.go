package consumers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"umsgraph/src/infra/kafka"
	"umsgraph/src/services/attributes"
	"umsgraph/src/services/membership"
)

// AttributeMessage é o schema da mensagem de sincronização de atributos.
type AttributeMessage struct {
	NodeReference string `json:"node_reference"`
	Key           string `json:"key"`
	Value         string `json:"value"`
	SentAt        string `json:"sent_at"`
}

// attributeValue guarda valor e timestamp para last-write-wins dentro do lote.
type attributeValue struct {
	value  []byte
	sentAt time.Time
}

type AttributeSyncConsumer struct {
	logger            *slog.Logger
	attributeService  *attributes.AttributeService
	membershipService *membership.MembershipService
}

func NewAttributeSyncConsumer(
	logger *slog.Logger,
	attributeService *attributes.AttributeService,
	membershipService *membership.MembershipService,
) *AttributeSyncConsumer {
	return &AttributeSyncConsumer{
		logger:            logger,
		attributeService:  attributeService,
		membershipService: membershipService,
	}
}

func (c *AttributeSyncConsumer) Start(ctx context.Context, kafkaClient *kafka.KafkaClient, topic string) error {
	c.logger.Info("Starting attribute sync consumer", "topic", topic)

	handler := func(messages []kafka.Message) error {
		return c.handleMessages(ctx, messages)
	}

	return kafkaClient.Consumer(ctx, handler, topic)
}

func (c *AttributeSyncConsumer) handleMessages(ctx context.Context, messages []kafka.Message) error {
	if len(messages) == 0 {
		return nil
	}

	c.logger.Info("Processing attribute messages batch", "count", len(messages))

	// nodeReference -> key -> valor mais recente do lote
	batch := make(map[string]map[string]attributeValue)

	for _, msg := range messages {
		var attrMsg AttributeMessage
		if err := json.Unmarshal(msg.Value, &attrMsg); err != nil {
			c.logger.Error("Failed to unmarshal attribute message",
				"error", err,
				"key", msg.Key,
				"value", string(msg.Value))
			return fmt.Errorf("failed to unmarshal attribute message with key %s: %w", msg.Key, err)
		}

		if attrMsg.NodeReference == "" || attrMsg.Key == "" {
			c.logger.Error("Invalid attribute message: missing required fields",
				"key", msg.Key,
				"node_reference", attrMsg.NodeReference,
				"attribute_key", attrMsg.Key)
			return fmt.Errorf("invalid attribute message with key %s: missing required fields", msg.Key)
		}

		sentAt, err := c.parseSentAt(attrMsg.SentAt)
		if err != nil {
			c.logger.Error("Failed to parse sent_at",
				"error", err,
				"key", msg.Key,
				"sent_at", attrMsg.SentAt)
			return fmt.Errorf("failed to parse sent_at for message with key %s: %w", msg.Key, err)
		}

		if _, exists := batch[attrMsg.NodeReference]; !exists {
			batch[attrMsg.NodeReference] = make(map[string]attributeValue)
		}

		existing, hasExisting := batch[attrMsg.NodeReference][attrMsg.Key]
		if !hasExisting || sentAt.After(existing.sentAt) {
			batch[attrMsg.NodeReference][attrMsg.Key] = attributeValue{
				value:  []byte(attrMsg.Value),
				sentAt: sentAt,
			}
		} else {
			c.logger.Debug("Skipped older attribute value",
				"node_reference", attrMsg.NodeReference,
				"attribute_key", attrMsg.Key,
				"existing_sent_at", existing.sentAt,
				"message_sent_at", sentAt)
		}
	}

	for nodeReference, values := range batch {
		node, err := c.membershipService.GetNodeByUniqueID(ctx, nodeReference)
		if err != nil {
			c.logger.Error("Failed to resolve node reference",
				"error", err,
				"node_reference", nodeReference)
			return fmt.Errorf("failed to resolve node reference %s: %w", nodeReference, err)
		}

		flat := make(map[string][]byte, len(values))
		for key, v := range values {
			flat[key] = v.value
		}

		if err := c.attributeService.BulkUpsert(ctx, node.ID, flat); err != nil {
			c.logger.Error("Failed to bulk upsert attributes",
				"error", err,
				"node_reference", nodeReference,
				"attributesCount", len(flat))
			return fmt.Errorf("failed to bulk upsert attributes for node %s: %w", nodeReference, err)
		}
	}

	c.logger.Info("Successfully processed attribute batch",
		"count", len(messages),
		"nodesAggregated", len(batch))

	return nil
}

func (c *AttributeSyncConsumer) parseSentAt(dateStr string) (time.Time, error) {
	if dateStr == "" {
		return time.Now().UTC(), nil
	}

	formats := []string{
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05Z",
		"2006-01-02T15:04:05.000Z",
		time.RFC3339,
		"2006-01-02",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date %s with any known format", dateStr)
}
