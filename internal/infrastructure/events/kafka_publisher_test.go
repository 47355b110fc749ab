package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Documentos-api/internal/application/documents"
	"github.com/jhoicas/Documentos-api/internal/domain/document"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w.msgs = append(w.msgs, msgs...)
	return w.err
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{w: w, timeout: time.Second}
	at := time.Date(2025, 5, 14, 10, 0, 0, 0, time.UTC)

	err := p.Publish(context.Background(), documents.Event{
		Name:         documents.EventStatusChanged,
		DocumentType: document.TypeInvoice,
		DocumentID:   "inv-1",
		Number:       "INV/2025/05/003",
		Action:       document.ActionPay,
		From:         document.StatusUnpaid,
		To:           document.StatusPaid,
		ActorID:      "u1",
		OccurredAt:   at,
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "inv-1", string(msg.Key))
	assert.Equal(t, at, msg.Time)

	var body map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	assert.Equal(t, "document.status_changed", body["event"])
	assert.Equal(t, "invoice", body["document_type"])
	assert.Equal(t, "INV/2025/05/003", body["number"])
	assert.Equal(t, "unpaid", body["from"])
	assert.Equal(t, "paid", body["to"])

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisher_PropagaError(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker no disponible")}
	p := &KafkaPublisher{w: w, timeout: time.Second}

	err := p.Publish(context.Background(), documents.Event{Name: documents.EventCreated, Number: "QUO/2025/05/001"})
	assert.ErrorContains(t, err, "QUO/2025/05/001")
}

func TestKafkaPublisher_IgnoraCancelacionDeLaPeticion(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{w: w, timeout: time.Second}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, p.Publish(ctx, documents.Event{Name: documents.EventCreated}))
	assert.Len(t, w.msgs, 1)
}
