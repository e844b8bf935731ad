package events

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProducer_MarshalErrorIsReported(t *testing.T) {
	p := NewProducer([]string{"127.0.0.1:1"})
	defer p.Close()

	err := p.PublishEvent(context.Background(), TopicOrderEvents, "k", make(chan int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "json.Marshal")
}

func TestNop(t *testing.T) {
	var p Publisher = Nop{}
	require.NoError(t, p.PublishEvent(context.Background(), TopicOrderEvents, "k", OrderEvent{}))
}

func TestRecorder(t *testing.T) {
	var r Recorder
	id := uuid.New()

	require.NoError(t, r.PublishEvent(context.Background(), TopicOrderEvents, id.String(), OrderEvent{Type: OrderRequested, OrderID: id}))
	require.NoError(t, r.PublishEvent(context.Background(), TopicOrderEvents, id.String(), OrderEvent{Type: OrderApproved, OrderID: id}))
	require.NoError(t, r.PublishEvent(context.Background(), "other", "x", "not an order event"))

	got := r.Events()
	require.Len(t, got, 3)
	assert.Equal(t, TopicOrderEvents, got[0].Topic)
	assert.Equal(t, id.String(), got[0].Key)
	assert.Equal(t, []string{OrderRequested, OrderApproved}, r.Types())
}
