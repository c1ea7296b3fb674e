package main

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukahq/duka-backend/pkg/config"
	"github.com/dukahq/duka-backend/pkg/db/models"
	"github.com/dukahq/duka-backend/pkg/enums"
	"github.com/dukahq/duka-backend/pkg/logger"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(ctx context.Context) error {
	return s.err
}

type stubRepo struct {
	events    []models.OutboxEvent
	fetchErr  error
	published []uuid.UUID
	failed    []uuid.UUID
}

func (s *stubRepo) FetchUnpublished(limit, maxAttempts int) ([]models.OutboxEvent, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return s.events, nil
}

func (s *stubRepo) MarkPublished(id uuid.UUID) error {
	s.published = append(s.published, id)
	return nil
}

func (s *stubRepo) MarkFailed(id uuid.UUID, err error) error {
	s.failed = append(s.failed, id)
	return nil
}

type stubResult struct {
	err error
}

func (s stubResult) Get(ctx context.Context) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "server-id", nil
}

type stubPublisher struct {
	err  error
	msgs []*gcppubsub.Message
}

func (s *stubPublisher) Publish(ctx context.Context, msg *gcppubsub.Message) publishResult {
	s.msgs = append(s.msgs, msg)
	return stubResult{err: s.err}
}

func newTestService(t *testing.T, repo *stubRepo, pub *stubPublisher) *Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Config:    &config.Config{},
		Logger:    logger.New(logger.Options{ServiceName: "test"}),
		DB:        stubPinger{},
		Repo:      repo,
		Publisher: pub,
	})
	require.NoError(t, err)
	return svc
}

func sampleEvent(t *testing.T) models.OutboxEvent {
	t.Helper()
	payload, err := json.Marshal(map[string]any{
		"version":    1,
		"eventId":    "evt-123",
		"occurredAt": time.Now().UTC(),
		"data":       map[string]any{"store_id": uuid.NewString()},
	})
	require.NoError(t, err)
	return models.OutboxEvent{
		ID:            uuid.New(),
		EventType:     enums.OutboxEventStoreCreated,
		AggregateType: enums.OutboxAggregateStore,
		AggregateID:   uuid.New(),
		Payload:       payload,
	}
}

func TestProcessBatchPublishes(t *testing.T) {
	event := sampleEvent(t)
	repo := &stubRepo{events: []models.OutboxEvent{event}}
	pub := &stubPublisher{}
	svc := newTestService(t, repo, pub)

	processed, err := svc.processBatch(context.Background())
	require.NoError(t, err)
	assert.True(t, processed)

	require.Len(t, repo.published, 1)
	assert.Equal(t, event.ID, repo.published[0])
	assert.Empty(t, repo.failed)

	require.Len(t, pub.msgs, 1)
	msg := pub.msgs[0]
	assert.Equal(t, string(event.EventType), msg.Attributes["event_type"])
	assert.Equal(t, string(event.AggregateType), msg.Attributes["aggregate_type"])
	assert.Equal(t, event.AggregateID.String(), msg.Attributes["aggregate_id"])
	assert.Equal(t, "evt-123", msg.Attributes["event_id"])
	assert.Equal(t, []byte(event.Payload), msg.Data)
}

func TestProcessBatchMarksFailed(t *testing.T) {
	event := sampleEvent(t)
	repo := &stubRepo{events: []models.OutboxEvent{event}}
	pub := &stubPublisher{err: errors.New("topic unavailable")}
	svc := newTestService(t, repo, pub)

	processed, err := svc.processBatch(context.Background())
	require.NoError(t, err)
	assert.True(t, processed)

	require.Len(t, repo.failed, 1)
	assert.Equal(t, event.ID, repo.failed[0])
	assert.Empty(t, repo.published)
}

func TestProcessBatchEmptyQueue(t *testing.T) {
	repo := &stubRepo{}
	svc := newTestService(t, repo, &stubPublisher{})

	processed, err := svc.processBatch(context.Background())
	require.NoError(t, err)
	assert.False(t, processed)
}

func TestProcessBatchFetchError(t *testing.T) {
	repo := &stubRepo{fetchErr: errors.New("connection reset")}
	svc := newTestService(t, repo, &stubPublisher{})

	_, err := svc.processBatch(context.Background())
	require.Error(t, err)
}

func TestRunStopsOnCancel(t *testing.T) {
	repo := &stubRepo{}
	svc := newTestService(t, repo, &stubPublisher{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := svc.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNextBackoffDoublesAndCaps(t *testing.T) {
	floor := 500 * time.Millisecond
	ceiling := 10 * time.Second

	assert.Equal(t, time.Second, nextBackoff(floor, floor, ceiling))
	assert.Equal(t, 2*time.Second, nextBackoff(time.Second, floor, ceiling))
	assert.Equal(t, ceiling, nextBackoff(8*time.Second, floor, ceiling))
	assert.Equal(t, floor, nextBackoff(0, floor, ceiling))
}

func TestNewServiceRequiresPublisherSource(t *testing.T) {
	_, err := NewService(ServiceParams{
		Config: &config.Config{},
		Logger: logger.New(logger.Options{ServiceName: "test"}),
		DB:     stubPinger{},
		Repo:   &stubRepo{},
	})
	require.Error(t, err)
}
