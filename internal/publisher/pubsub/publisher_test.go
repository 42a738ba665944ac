package pubsub

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/pubsub/pstest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

func TestPublisherPublishesJSONWithEventType(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	srv := pstest.NewServer()
	defer srv.Close()

	conn, err := grpc.NewClient(srv.Addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	client, err := pubsub.NewClient(ctx, "project-id", option.WithGRPCConn(conn))
	require.NoError(t, err)
	defer client.Close()

	topic, err := client.CreateTopic(ctx, "occupation-refresh")
	require.NoError(t, err)

	pub := New(topic)
	id, err := pub.Publish(ctx, "occupation.refreshed", map[string]string{"code": "15-1252"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	require.NoError(t, pub.Close())

	msgs := srv.Messages()
	require.Len(t, msgs, 1)
	assert.JSONEq(t, `{"code":"15-1252"}`, string(msgs[0].Data))
	assert.Equal(t, "occupation.refreshed", msgs[0].Attributes[EventTypeAttribute])
}

func TestPublisherRequiresTopic(t *testing.T) {
	t.Parallel()

	_, err := (&Publisher{}).Publish(context.Background(), "occupation.refreshed", nil)
	require.Error(t, err)
	require.NoError(t, (&Publisher{}).Close())

	_, err = Connect(context.Background(), "", "topic")
	require.Error(t, err)
}
