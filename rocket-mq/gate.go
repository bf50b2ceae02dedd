package rocket_mq

import (
	"context"
	"errors"
	"sync"
	"time"
)

var errGateClosed = errors.New("consumer is shutting down")

// gate holds deliveries back while the consumer is suspended. resumed is nil
// when deliveries flow and is closed on resume.
type gate struct {
	mutex    sync.Mutex
	resumed  chan struct{}
	timer    *time.Timer
	onResume func()
}

func newGate(onResume func()) *gate {
	return &gate{onResume: onResume}
}

func (g *gate) suspend(timeout time.Duration) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if g.resumed == nil {
		g.resumed = make(chan struct{})
	}

	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}

	if timeout > 0 {
		resumed := g.resumed
		g.timer = time.AfterFunc(timeout, func() { g.release(resumed) })
	}
}

func (g *gate) resume() (released bool) {
	return g.release(nil)
}

// release reopens the gate. A non-nil want only releases that exact
// suspension, so a stale timer cannot end a later one.
func (g *gate) release(want chan struct{}) (released bool) {
	g.mutex.Lock()
	if g.resumed == nil || (want != nil && g.resumed != want) {
		g.mutex.Unlock()
		return false
	}

	close(g.resumed)
	g.resumed = nil
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
	g.mutex.Unlock()

	if g.onResume != nil {
		g.onResume()
	}
	return true
}

func (g *gate) suspended() bool {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	return g.resumed != nil
}

func (g *gate) wait(ctx context.Context, done <-chan struct{}) (err error) {
	g.mutex.Lock()
	resumed := g.resumed
	g.mutex.Unlock()

	if resumed == nil {
		return nil
	}

	select {
	case <-resumed:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return errGateClosed
	}
}
