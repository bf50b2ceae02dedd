package rocket_mq

import (
	"context"
	"sync"
	"time"

	"github.com/grpc-boot/mesh"
)

var _ mesh.Context = (*ackContext)(nil)

type ackContext struct {
	attributes *mesh.KeyValue
	once       sync.Once
	acked      chan struct{}
}

func newAckContext() *ackContext {
	return &ackContext{
		attributes: mesh.NewKeyValue().Put(mesh.ConsumeStatus, mesh.ReconsumeLater),
		acked:      make(chan struct{}),
	}
}

func (c *ackContext) Attributes() *mesh.KeyValue {
	return c.attributes
}

func (c *ackContext) Ack() {
	c.once.Do(func() {
		c.attributes.Put(mesh.ConsumeStatus, mesh.ConsumeSuccess)
		close(c.acked)
	})
}

// await blocks until Ack, timeout, ctx cancellation or done, whichever first.
func (c *ackContext) await(ctx context.Context, done <-chan struct{}, timeout time.Duration) (acked bool) {
	if timeout <= 0 {
		select {
		case <-c.acked:
			return true
		default:
			return false
		}
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-c.acked:
		return true
	case <-timer.C:
	case <-ctx.Done():
	case <-done:
	}
	return false
}

func (c *ackContext) succeeded() bool {
	return c.attributes.GetString(mesh.ConsumeStatus) == mesh.ConsumeSuccess
}
