// Package events publica eventos de documentos en Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/jhoicas/Documentos-api/internal/application/documents"
)

var (
	_ documents.EventPublisher = (*KafkaPublisher)(nil)
	_ documents.EventPublisher = NoopPublisher{}
)

// messageWriter subconjunto de *kafka.Writer usado por el publicador.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher serializa cada evento como JSON; la clave es el ID del documento para
// que los eventos de un mismo documento caigan en la misma partición y conserven el orden.
type KafkaPublisher struct {
	w       messageWriter
	timeout time.Duration
}

// NewKafkaPublisher crea el writer sobre brokers/topic.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 50 * time.Millisecond,
		},
		timeout: 5 * time.Second,
	}
}

// Publish escribe el evento. Usa un contexto propio con timeout: el de la petición
// puede cancelarse apenas se responde al cliente.
func (p *KafkaPublisher) Publish(ctx context.Context, evt documents.Event) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("kafka: serializar evento: %w", err)
	}
	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()
	err = p.w.WriteMessages(wctx, kafka.Message{
		Key:   []byte(evt.DocumentID),
		Value: body,
		Headers: []kafka.Header{
			{Key: "event", Value: []byte(evt.Name)},
			{Key: "document_type", Value: []byte(evt.DocumentType)},
		},
		Time: evt.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("kafka: publicar %s %s: %w", evt.Name, evt.Number, err)
	}
	return nil
}

// Close vacía y cierra el writer.
func (p *KafkaPublisher) Close() error {
	return p.w.Close()
}

// NoopPublisher descarta los eventos; se usa cuando KAFKA_BROKERS está vacío.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, documents.Event) error { return nil }
