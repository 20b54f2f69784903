package messaging

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/docker/docker/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/rabbitmq"
	"go.uber.org/zap"

	"rpg-server/internal/models"
)

func requireDocker(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		t.Skipf("Docker client init error: %v", err)
	}
	defer cli.Close()
	if _, err := cli.Ping(context.Background()); err != nil {
		t.Skipf("Docker daemon is not available: %v", err)
	}
}

func TestEncounterPublisher_FanoutDelivery(t *testing.T) {
	requireDocker(t)
	ctx := context.Background()

	container, err := rabbitmq.Run(ctx, "rabbitmq:3.13-management-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	url, err := container.AmqpURL(ctx)
	require.NoError(t, err)

	conn, err := Connect(ctx, url, 3, time.Second, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	pub, err := NewEncounterPublisher(conn, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = pub.Close() })

	ch, err := conn.Channel()
	require.NoError(t, err)
	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	require.NoError(t, err)
	require.NoError(t, ch.QueueBind(q.Name, "", EncounterExchange, false, nil))
	deliveries, err := ch.Consume(q.Name, "", true, true, false, false, nil)
	require.NoError(t, err)

	event := models.EncounterEvent{
		Type:       models.EventEncounterConcluded,
		Chapter:    "3",
		PlayerName: "Hero",
		EnemyName:  "Boitatá",
		Winner:     models.SidePlayer,
		Loser:      models.SideEnemy,
		OccurredAt: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, pub.PublishEncounterEvent(ctx, event))

	select {
	case d := <-deliveries:
		assert.Equal(t, "application/json", d.ContentType)
		assert.Equal(t, models.EventEncounterConcluded, d.Type)
		var got models.EncounterEvent
		require.NoError(t, json.Unmarshal(d.Body, &got))
		assert.Equal(t, event.PlayerName, got.PlayerName)
		assert.Equal(t, models.SidePlayer, got.Winner)
	case <-time.After(10 * time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestNewEncounterPublisher_NilConnection(t *testing.T) {
	_, err := NewEncounterPublisher(nil, zap.NewNop())
	assert.Error(t, err)
}
