package mesh

import "time"

type PushConsumer interface {
	Attributes() *KeyValue
	Startup() (err error)
	Shutdown() (err error)

	Resume()
	Suspend()
	// SuspendTimeout suspends delivery and resumes it automatically once
	// timeout elapses. A non-positive timeout behaves like Suspend.
	SuspendTimeout(timeout time.Duration)
	IsSuspended() bool

	AttachQueue(queueName string, listener MessageListener, attributes ...*KeyValue) (err error)
	DetachQueue(queueName string) (err error)

	AddInterceptor(interceptor ConsumerInterceptor)
	RemoveInterceptor(interceptor ConsumerInterceptor)
}

// MeshMQPushConsumer is the consumer contract the event mesh runtime drives.
type MeshMQPushConsumer interface {
	PushConsumer

	Init(isBroadcast bool, conf *CommonConfiguration, consumerGroup string) (err error)
	SetInstanceName(instanceName string) (err error)
	RegisterMessageListener(listener MessageListener)
	Start() (err error)
	Subscribe(topic string) (err error)
	Unsubscribe(topic string) (err error)
	IsPause() bool
	Pause()
	UpdateOffset(msgs []*Message, ctx Context) (err error)
}
