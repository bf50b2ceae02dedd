package rocket_mq

import (
	"context"
	"errors"
	"testing"

	"github.com/apache/rocketmq-client-go/v2/primitive"
	"github.com/apache/rocketmq-client-go/v2/producer"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grpc-boot/mesh"
	"github.com/grpc-boot/mesh/atomic"
)

func newTestProducer(t *testing.T, client ProducerClient) *Producer {
	t.Helper()

	p, err := NewProducer(mesh.NewKeyValue().Put(mesh.AccessPoints, "127.0.0.1:9876"),
		WithProducerClientFactory(func(opts ...producer.Option) (ProducerClient, error) { return client, nil }),
	)
	require.NoError(t, err)
	return p
}

func TestProducer_NotStarted(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := newTestProducer(t, NewMockProducerClient(ctrl))
	msg := mesh.NewMessage("orders", []byte("hello"))

	_, err := p.Send(context.Background(), msg)
	assert.ErrorIs(t, err, ErrNotStarted)
	assert.ErrorIs(t, p.SendOneway(context.Background(), msg), ErrNotStarted)
	assert.ErrorIs(t, p.SendAsync(context.Background(), msg, nil), ErrNotStarted)

	// shutting down a producer that never started is a no-op
	require.NoError(t, p.Shutdown())
	assert.ErrorIs(t, p.Startup(), ErrShutdown)
}

func TestProducer_Send(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := NewMockProducerClient(ctrl)
	p := newTestProducer(t, client)

	client.EXPECT().Start().Return(nil)
	require.NoError(t, p.Startup())
	require.NoError(t, p.Startup())

	msg := mesh.NewMessage("orders", []byte("hello")).PutSysHeader(mesh.Tags, "created")

	client.EXPECT().SendSync(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, msgs ...*primitive.Message) (*primitive.SendResult, error) {
			require.Len(t, msgs, 1)
			assert.Equal(t, "created", msgs[0].GetProperty(propertyTags))
			return &primitive.SendResult{Status: primitive.SendOK, MsgID: "MSG-1", QueueOffset: 7}, nil
		})

	result, err := p.Send(context.Background(), msg)
	require.NoError(t, err)
	assert.Equal(t, &mesh.SendResult{MessageID: "MSG-1", Destination: "orders", QueueOffset: 7}, result)

	client.EXPECT().SendSync(gomock.Any(), gomock.Any()).
		Return(&primitive.SendResult{Status: primitive.SendFlushDiskTimeout, MsgID: "MSG-2"}, nil)
	result, err = p.Send(context.Background(), msg)
	assert.ErrorIs(t, err, ErrSendStatus)
	assert.Equal(t, "MSG-2", result.MessageID)

	boom := errors.New("broker busy")
	client.EXPECT().SendSync(gomock.Any(), gomock.Any()).Return(nil, boom)
	_, err = p.Send(context.Background(), msg)
	assert.ErrorIs(t, err, boom)

	client.EXPECT().SendOneWay(gomock.Any(), gomock.Any()).Return(nil)
	assert.NoError(t, p.SendOneway(context.Background(), msg))

	client.EXPECT().Shutdown().Return(nil)
	require.NoError(t, p.Shutdown())
	require.NoError(t, p.Close())
	assert.Equal(t, atomic.Shutdown, p.state.Load())
}

func TestProducer_SendAsync(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := NewMockProducerClient(ctrl)
	p := newTestProducer(t, client)

	client.EXPECT().Start().Return(nil)
	require.NoError(t, p.Startup())

	client.EXPECT().SendAsync(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, cb func(context.Context, *primitive.SendResult, error), msgs ...*primitive.Message) error {
			cb(ctx, &primitive.SendResult{Status: primitive.SendOK, MsgID: "MSG-9", QueueOffset: 1}, nil)
			return nil
		})

	var got *mesh.SendResult
	err := p.SendAsync(context.Background(), mesh.NewMessage("orders", nil), func(result *mesh.SendResult, err error) {
		assert.NoError(t, err)
		got = result
	})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "MSG-9", got.MessageID)

	boom := errors.New("timeout")
	client.EXPECT().SendAsync(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, cb func(context.Context, *primitive.SendResult, error), msgs ...*primitive.Message) error {
			cb(ctx, nil, boom)
			return nil
		})

	var gotErr error
	require.NoError(t, p.SendAsync(context.Background(), mesh.NewMessage("orders", nil), func(result *mesh.SendResult, err error) {
		gotErr = err
	}))
	assert.ErrorIs(t, gotErr, boom)
}

func TestProducer_StartFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := NewMockProducerClient(ctrl)
	p := newTestProducer(t, client)

	gomock.InOrder(
		client.EXPECT().Start().Return(errors.New("no route")),
		client.EXPECT().Shutdown().Return(nil),
	)
	assert.Error(t, p.Startup())
	assert.Equal(t, atomic.StartFailed, p.state.Load())
}
