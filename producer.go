package mesh

import "context"

type SendResult struct {
	MessageID   string `json:"messageId"`
	Destination string `json:"destination"`
	QueueOffset int64  `json:"queueOffset"`
}

type Producer interface {
	Attributes() *KeyValue
	Startup() (err error)
	Shutdown() (err error)

	Send(ctx context.Context, msg *Message) (result *SendResult, err error)
	SendAsync(ctx context.Context, msg *Message, callback func(result *SendResult, err error)) (err error)
	SendOneway(ctx context.Context, msg *Message) (err error)
}
