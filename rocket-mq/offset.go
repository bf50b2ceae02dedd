package rocket_mq

import "sync"

// processQueue tracks in-flight offsets of one message queue.
type processQueue struct {
	inflight  map[int64]*ackContext
	maxOffset int64
	committed int64
}

type offsetTable struct {
	mutex  sync.Mutex
	queues map[queueKey]*processQueue
}

func newOffsetTable() *offsetTable {
	return &offsetTable{queues: make(map[queueKey]*processQueue)}
}

func (t *offsetTable) put(key queueKey, offset int64, ctx *ackContext) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	pq, ok := t.queues[key]
	if !ok {
		pq = &processQueue{
			inflight:  make(map[int64]*ackContext),
			maxOffset: -1,
			committed: -1,
		}
		t.queues[key] = pq
	}

	pq.inflight[offset] = ctx
	if offset > pq.maxOffset {
		pq.maxOffset = offset
	}
}

func (t *offsetTable) lookup(key queueKey, offset int64) (ctx *ackContext, exists bool) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	pq, ok := t.queues[key]
	if !ok {
		return nil, false
	}
	ctx, exists = pq.inflight[offset]
	return
}

// remove drops offsets and returns the queue's committed offset: the smallest
// offset still in flight, or maxOffset+1 when none is. It never moves back and
// is -1 for a queue that was never tracked.
func (t *offsetTable) remove(key queueKey, offsets ...int64) (committed int64) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	pq, ok := t.queues[key]
	if !ok {
		return -1
	}

	for _, offset := range offsets {
		delete(pq.inflight, offset)
	}

	next := pq.maxOffset + 1
	for offset := range pq.inflight {
		if offset < next {
			next = offset
		}
	}

	if next > pq.committed {
		pq.committed = next
	}
	return pq.committed
}

func (t *offsetTable) inflight(key queueKey) int {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if pq, ok := t.queues[key]; ok {
		return len(pq.inflight)
	}
	return 0
}

func (t *offsetTable) snapshot() (offsets map[string]int64) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	offsets = make(map[string]int64, len(t.queues))
	for key, pq := range t.queues {
		if pq.committed >= 0 {
			offsets[key.String()] = pq.committed
		}
	}
	return
}

func (t *offsetTable) drop(topic string) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	for key := range t.queues {
		if key.topic == topic {
			delete(t.queues, key)
		}
	}
}
