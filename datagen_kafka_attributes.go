//go:build datagen_attributes
// +build datagen_attributes

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"
	"umsgraph/src/infra/kafka"

	"github.com/brianvoe/gofakeit/v6"
)

// AttributeMessage espelha o schema consumido pelo attribute-sync-consumer.
type AttributeMessage struct {
	NodeReference string `json:"node_reference"`
	Key           string `json:"key"`
	Value         string `json:"value"`
	SentAt        string `json:"sent_at"`
}

var attributeKeys = []string{
	"nickname", "email", "phone", "locale", "timezone",
	"theme", "quota", "region", "department", "position",
}

var sampleValues = map[string][]string{
	"locale":     {"pt-BR", "en-US", "es-AR", "fr-FR"},
	"timezone":   {"America/Sao_Paulo", "America/New_York", "UTC", "Europe/Lisbon"},
	"theme":      {"light", "dark", "system"},
	"region":     {"south", "north", "east", "west"},
	"department": {"Engineering", "Sales", "Marketing", "Support", "Finance"},
	"position":   {"Developer", "Manager", "Analyst", "Director", "Coordinator"},
}

func generateValue(key string) string {
	if samples, exists := sampleValues[key]; exists {
		return samples[rand.Intn(len(samples))]
	}

	switch key {
	case "nickname":
		return gofakeit.Username()
	case "email":
		return gofakeit.Email()
	case "phone":
		return "+55" + fmt.Sprintf("%d", rand.Intn(89999999999)+10000000000)
	case "quota":
		return fmt.Sprintf("%d", rand.Intn(500)+10)
	default:
		return gofakeit.Word()
	}
}

// generateBatch gera mensagens para um conjunto de nós; conflictRate controla
// a chance de uma segunda escrita mais recente para a mesma (nó, chave), para
// exercitar o last-write-wins do consumer.
func generateBatch(totalMessages int, nodeRefs []string, conflictRate float64) []AttributeMessage {
	var messages []AttributeMessage
	baseTime := time.Now().UTC()

	for len(messages) < totalMessages {
		nodeRef := nodeRefs[rand.Intn(len(nodeRefs))]
		key := attributeKeys[rand.Intn(len(attributeKeys))]
		sentAt := baseTime.Add(time.Duration(rand.Intn(7200)) * time.Second)

		messages = append(messages, AttributeMessage{
			NodeReference: nodeRef,
			Key:           key,
			Value:         generateValue(key),
			SentAt:        sentAt.Format("2006-01-02 15:04:05"),
		})

		if rand.Float64() < conflictRate && len(messages) < totalMessages {
			conflictTime := sentAt.Add(time.Duration(rand.Intn(3600)+300) * time.Second)
			messages = append(messages, AttributeMessage{
				NodeReference: nodeRef,
				Key:           key,
				Value:         generateValue(key),
				SentAt:        conflictTime.Format("2006-01-02 15:04:05"),
			})
		}
	}

	// Embaralha para misturar nós e chaves dentro do lote
	for i := range messages {
		j := rand.Intn(i + 1)
		messages[i], messages[j] = messages[j], messages[i]
	}

	if len(messages) > totalMessages {
		messages = messages[:totalMessages]
	}
	return messages
}

func main() {
	rand.Seed(time.Now().UnixNano())

	totalMessages := flag.Int("count", 1000, "Total number of attribute messages to generate. Use -1 for infinite.")
	batchSize := flag.Int("batch-size", 100, "Number of messages per batch")
	numNodes := flag.Int("nodes", 200, "Number of distinct node references to spread messages over")
	topic := flag.String("topic", "", "Kafka topic to send messages to (required)")
	brokers := flag.String("brokers", "", "Kafka brokers (comma-separated) (required)")
	groupID := flag.String("group-id", "", "Kafka group ID (required)")
	delayMs := flag.Int("delay-ms", 100, "Delay in milliseconds between batches")
	conflictRate := flag.Float64("conflict-rate", 0.2, "Probability of a newer rewrite per (node, key) (0.0-1.0)")
	flag.Parse()

	if *topic == "" {
		log.Fatal("The 'topic' flag is required")
	}
	if *brokers == "" {
		log.Fatal("The 'brokers' flag is required")
	}
	if *groupID == "" {
		log.Fatal("The 'group-id' flag is required")
	}

	isInfinite := *totalMessages == -1
	if isInfinite {
		log.Printf("Starting attributes datagen in INFINITE mode with batches of %d (conflict rate: %.1f%%)",
			*batchSize, *conflictRate*100)
	} else {
		log.Printf("Starting attributes datagen with %d messages in batches of %d (conflict rate: %.1f%%)",
			*totalMessages, *batchSize, *conflictRate*100)
	}

	nodeRefs := make([]string, *numNodes)
	for i := range nodeRefs {
		nodeRefs[i] = gofakeit.UUID()
	}

	kafkaClient, err := kafka.NewKafkaClient(*brokers, *groupID, *batchSize)
	if err != nil {
		log.Fatalf("Failed to create Kafka client: %v", err)
	}
	defer kafkaClient.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Received shutdown signal, stopping...")
		cancel()
	}()

	messagesSent := 0
	startTime := time.Now()

	for isInfinite || messagesSent < *totalMessages {
		select {
		case <-ctx.Done():
			log.Println("Shutdown requested, stopping message generation")
			return
		default:
		}

		currentBatchSize := *batchSize
		if !isInfinite {
			remaining := *totalMessages - messagesSent
			if remaining < currentBatchSize {
				currentBatchSize = remaining
			}
		}

		batch := generateBatch(currentBatchSize, nodeRefs, *conflictRate)

		kafkaMessages := make([]kafka.Message, len(batch))
		for i, msg := range batch {
			msgBytes, err := json.Marshal(msg)
			if err != nil {
				log.Printf("Failed to marshal message: %v", err)
				continue
			}

			kafkaMessages[i] = kafka.Message{
				Key:   msg.NodeReference, // particiona por nó
				Value: msgBytes,
			}
		}

		if err := kafkaClient.Producer(kafkaMessages, *topic); err != nil {
			log.Printf("Failed to send batch: %v", err)
			continue
		}

		messagesSent += len(batch)

		if messagesSent%500 == 0 || (!isInfinite && messagesSent >= *totalMessages) {
			elapsed := time.Since(startTime)
			rate := float64(messagesSent) / elapsed.Seconds()
			if isInfinite {
				log.Printf("Sent %d messages over %d nodes (%.1f msg/sec)",
					messagesSent, len(nodeRefs), rate)
			} else {
				log.Printf("Sent %d/%d messages over %d nodes (%.1f msg/sec)",
					messagesSent, *totalMessages, len(nodeRefs), rate)
			}
		}

		if *delayMs > 0 && (isInfinite || messagesSent < *totalMessages) {
			time.Sleep(time.Duration(*delayMs) * time.Millisecond)
		}
	}

	elapsed := time.Since(startTime)
	log.Printf("Messages sent: %d", messagesSent)
	log.Printf("Total time: %v", elapsed)
	log.Printf("Rate: %.1f msg/sec", float64(messagesSent)/elapsed.Seconds())
}
