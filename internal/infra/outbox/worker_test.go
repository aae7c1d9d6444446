package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQueue struct {
	docs   []*EventDocument
	sent   []string
	failed map[string]string
}

func (q *fakeQueue) Claim(ctx context.Context, workerID string) (*EventDocument, error) {
	if len(q.docs) == 0 {
		return nil, nil
	}
	doc := q.docs[0]
	q.docs = q.docs[1:]
	return doc, nil
}

func (q *fakeQueue) MarkSent(ctx context.Context, id string) error {
	q.sent = append(q.sent, id)
	return nil
}

func (q *fakeQueue) MarkFailed(ctx context.Context, id string, next time.Time, errMsg string) error {
	if q.failed == nil {
		q.failed = map[string]string{}
	}
	q.failed[id] = errMsg
	return nil
}

type published struct {
	topic   string
	key     string
	payload []byte
	headers map[string]string
}

type fakeProducer struct {
	out []published
	err error
}

func (p *fakeProducer) Publish(ctx context.Context, topic, key string, payload []byte, headers map[string]string) error {
	if p.err != nil {
		return p.err
	}
	p.out = append(p.out, published{topic: topic, key: key, payload: payload, headers: headers})
	return nil
}

func TestWorkerPublishesCloudEvent(t *testing.T) {
	queue := &fakeQueue{docs: []*EventDocument{{
		ID:         "evt-1",
		Name:       "reservation.confirmed",
		Payload:    []byte(`{"ReservationID":"res-1"}`),
		Aggregate:  "res-1",
		OccurredAt: time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC),
	}}}
	producer := &fakeProducer{}
	w := &Worker{Store: queue, Producer: producer, TopicPrefix: "pousada.", ID: "w1"}

	processed, err := w.processOnce(context.Background())
	require.NoError(t, err)
	require.True(t, processed)

	require.Len(t, producer.out, 1)
	msg := producer.out[0]
	assert.Equal(t, "pousada.reservation.events.v1", msg.topic)
	assert.Equal(t, "res-1", msg.key)
	assert.Equal(t, "application/cloudevents+json", msg.headers["content-type"])

	var evt map[string]any
	require.NoError(t, json.Unmarshal(msg.payload, &evt))
	assert.Equal(t, "reservation.confirmed.v1", evt["type"])
	assert.Equal(t, "evt-1", evt["id"])
	assert.Equal(t, "app://pousada", evt["source"])
	assert.Equal(t, []string{"evt-1"}, queue.sent)

	processed, err = w.processOnce(context.Background())
	require.NoError(t, err)
	assert.False(t, processed)
}

func TestWorkerMarksFailures(t *testing.T) {
	queue := &fakeQueue{docs: []*EventDocument{
		{ID: "bad", Name: "reservation.requested", Payload: []byte("not json")},
		{ID: "down", Name: "reservation.requested", Payload: []byte(`{}`)},
	}}
	w := &Worker{Store: queue, Producer: &fakeProducer{err: errors.New("broker down")}, ID: "w1"}

	for i := 0; i < 2; i++ {
		processed, err := w.processOnce(context.Background())
		require.NoError(t, err)
		require.True(t, processed)
	}
	assert.Contains(t, queue.failed, "bad")
	assert.Equal(t, "broker down", queue.failed["down"])
	assert.Empty(t, queue.sent)
}

func TestNextRetryUsesBackoffSchedule(t *testing.T) {
	w := &Worker{Backoff: []time.Duration{time.Second, time.Minute}}
	assert.WithinDuration(t, time.Now().Add(time.Second), w.nextRetry(0), 100*time.Millisecond)
	assert.WithinDuration(t, time.Now().Add(time.Minute), w.nextRetry(5), 100*time.Millisecond)
}
