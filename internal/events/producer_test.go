package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/electroshop/pkg/logging"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestNewProducer_RequiresBrokers(t *testing.T) {
	_, err := NewProducer(nil)
	assert.Error(t, err)

	p, err := NewProducer([]string{"localhost:9092"})
	require.NoError(t, err)
	assert.NotNil(t, p)
}

func TestProducer_PublishEvent(t *testing.T) {
	w := &fakeWriter{}
	p := &Producer{writer: w}

	err := p.PublishEvent(context.Background(), TopicOrders, "user-1", map[string]string{"order_id": "o-1"})
	require.NoError(t, err)

	require.Len(t, w.msgs, 1)
	assert.Equal(t, TopicOrders, w.msgs[0].Topic)
	assert.Equal(t, "user-1", string(w.msgs[0].Key))
	assert.JSONEq(t, `{"order_id":"o-1"}`, string(w.msgs[0].Value))

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestProducer_PublishEvent_WriteError(t *testing.T) {
	p := &Producer{writer: &fakeWriter{err: errors.New("broker down")}}

	err := p.PublishEvent(context.Background(), TopicCart, "k", struct{}{})
	assert.ErrorContains(t, err, "broker down")
}

func TestEmit_WrapsPayload(t *testing.T) {
	w := &fakeWriter{}
	Emit(context.Background(), &Producer{writer: w}, TopicProducts, "p-1", "product_created", map[string]string{"id": "p-1"})

	require.Len(t, w.msgs, 1)
	var ev struct {
		Type    string            `json:"type"`
		Payload map[string]string `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &ev))
	assert.Equal(t, "product_created", ev.Type)
	assert.Equal(t, "p-1", ev.Payload["id"])
}

func TestEmit_LogsFailures(t *testing.T) {
	var buf bytes.Buffer
	ctx := logging.IntoContext(context.Background(), logging.NewWithWriter(&buf, "info"))

	Emit(ctx, &Producer{writer: &fakeWriter{err: errors.New("broker down")}}, TopicCart, "k", "cart_updated", nil)

	assert.Contains(t, buf.String(), "kafka_publish_error")
	assert.Contains(t, buf.String(), "broker down")
}

func TestEmit_NilAndNop(t *testing.T) {
	assert.NotPanics(t, func() {
		Emit(context.Background(), nil, TopicCart, "k", "x", nil)
		Emit(context.Background(), Nop{}, TopicCart, "k", "x", nil)
	})
}
