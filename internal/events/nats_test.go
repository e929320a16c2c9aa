package events

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNop(t *testing.T) {
	var p Publisher = Nop{}
	assert.NoError(t, p.Publish(context.Background(), SubjectJobScheduled, JobEvent{}))
}

func TestNATSPublisher_Publish(t *testing.T) {
	url := os.Getenv("TEST_NATS_URL")
	if url == "" {
		t.Skip("TEST_NATS_URL not set, skipping nats integration test")
	}

	sub, err := nats.Connect(url)
	require.NoError(t, err)
	defer sub.Close()

	msgs := make(chan *nats.Msg, 1)
	s, err := sub.ChanSubscribe("test.jobs.completed", msgs)
	require.NoError(t, err)
	defer s.Unsubscribe()
	require.NoError(t, sub.Flush())

	pub, err := ConnectNATS(url, "test", nil)
	require.NoError(t, err)
	defer pub.Close()

	event := JobEvent{
		JobID:      uuid.New(),
		CampaignID: uuid.New(),
		State:      "completed",
		Recipients: 2,
		Delivered:  true,
		At:         time.Now().UTC(),
	}
	require.NoError(t, pub.Publish(context.Background(), SubjectJobCompleted, event))

	select {
	case msg := <-msgs:
		var got JobEvent
		require.NoError(t, json.Unmarshal(msg.Data, &got))
		assert.Equal(t, event.JobID, got.JobID)
		assert.True(t, got.Delivered)
	case <-time.After(2 * time.Second):
		t.Fatal("event not received")
	}
}

func TestNATSPublisher_CancelledContext(t *testing.T) {
	p := &NATSPublisher{prefix: "test"}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, p.Publish(ctx, SubjectJobScheduled, JobEvent{}), context.Canceled)
}
