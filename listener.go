package mesh

// Context travels with one delivered message. Ack marks it consumed; until
// then Attributes()[ConsumeStatus] reads ReconsumeLater.
type Context interface {
	Attributes() *KeyValue
	Ack()
}

type MessageListener interface {
	OnReceived(msg *Message, ctx Context)
}

type MessageListenerFunc func(msg *Message, ctx Context)

func (f MessageListenerFunc) OnReceived(msg *Message, ctx Context) {
	f(msg, ctx)
}

// ConsumerInterceptor wraps every delivery. Implementations are compared by
// identity when removed, so register pointers.
type ConsumerInterceptor interface {
	PreReceive(msg *Message, ctx Context)
	PostReceive(msg *Message, ctx Context)
}
