package rocket_mq

import (
	"context"

	"github.com/apache/rocketmq-client-go/v2"
	"github.com/apache/rocketmq-client-go/v2/consumer"
	"github.com/apache/rocketmq-client-go/v2/primitive"
	"github.com/apache/rocketmq-client-go/v2/producer"
)

//go:generate mockgen -source=client.go -destination=client_mock_test.go -package=rocket_mq

type ConsumeFunc func(ctx context.Context, msgs ...*primitive.MessageExt) (consumer.ConsumeResult, error)

// PushClient is the slice of rocketmq.PushConsumer the connector drives.
type PushClient interface {
	Start() error
	Shutdown() error
	Subscribe(topic string, selector consumer.MessageSelector, f func(context.Context, ...*primitive.MessageExt) (consumer.ConsumeResult, error)) error
	Unsubscribe(topic string) error
}

// ProducerClient is the slice of rocketmq.Producer the connector drives.
type ProducerClient interface {
	Start() error
	Shutdown() error
	SendSync(ctx context.Context, mq ...*primitive.Message) (*primitive.SendResult, error)
	SendAsync(ctx context.Context, mq func(ctx context.Context, result *primitive.SendResult, err error), msg ...*primitive.Message) error
	SendOneWay(ctx context.Context, mq ...*primitive.Message) error
}

type PushClientFactory func(opts ...consumer.Option) (PushClient, error)

type ProducerClientFactory func(opts ...producer.Option) (ProducerClient, error)

func NewPushClient(opts ...consumer.Option) (client PushClient, err error) {
	var connection rocketmq.PushConsumer
	connection, err = rocketmq.NewPushConsumer(opts...)
	if err != nil {
		return
	}
	return connection, nil
}

func NewProducerClient(opts ...producer.Option) (client ProducerClient, err error) {
	var connection rocketmq.Producer
	connection, err = rocketmq.NewProducer(opts...)
	if err != nil {
		return
	}
	return connection, nil
}
