package rocket_mq

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/apache/rocketmq-client-go/v2/consumer"
	"github.com/apache/rocketmq-client-go/v2/primitive"
	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/grpc-boot/mesh"
	"github.com/grpc-boot/mesh/atomic"
	"github.com/grpc-boot/mesh/container"
	"github.com/grpc-boot/mesh/monitor"
)

var (
	ErrShutdown            = errors.New("push consumer has been shut down")
	ErrAlreadyStarted      = errors.New("push consumer already started")
	ErrEmptyQueue          = errors.New("queue name must not be empty")
	ErrNilListener         = errors.New("message listener must not be nil")
	ErrMissingQueueHeaders = errors.New("message carries no queue headers")
	errQueueDetached       = errors.New("queue detached")
)

var _ mesh.PushConsumer = (*PushConsumerImpl)(nil)

type queue struct {
	listener mesh.MessageListener
	selector consumer.MessageSelector
}

type PushConsumerOption func(pc *PushConsumerImpl)

func WithPushClientFactory(factory PushClientFactory) PushConsumerOption {
	return func(pc *PushConsumerImpl) {
		pc.newClient = factory
	}
}

func WithMonitor(m *monitor.Monitor) PushConsumerOption {
	return func(pc *PushConsumerImpl) {
		pc.monitor = m
	}
}

func WithLogger(logger *zap.Logger) PushConsumerOption {
	return func(pc *PushConsumerImpl) {
		pc.logger = logger
	}
}

// PushConsumerImpl delivers RocketMQ messages to mesh listeners. The RocketMQ
// client is only built at Startup, so queues and the instance name may be
// set up beforehand.
type PushConsumerImpl struct {
	attributes *mesh.KeyValue
	group      string

	// mutex serialises lifecycle and subscription changes
	mutex          sync.Mutex
	state          atomic.State
	client         PushClient
	newClient      PushClientFactory
	consumeTimeout time.Duration
	done           chan struct{}

	queuesMu sync.RWMutex
	queues   map[string]*queue

	interceptors *container.Chain[mesh.ConsumerInterceptor]
	gate         *gate
	offsets      *offsetTable
	monitor      *monitor.Monitor
	logger       *zap.Logger
}

func NewPushConsumer(attributes *mesh.KeyValue, opts ...PushConsumerOption) (pc *PushConsumerImpl, err error) {
	attrs := mesh.NewKeyValue()
	if attributes != nil {
		attrs = attributes.Clone()
	}

	if !attrs.ContainsKey(mesh.InstanceName) {
		attrs.Put(mesh.InstanceName, uuid.New().String())
	}

	var conf consumerConfig
	if conf, err = parseConsumerConfig(attrs); err != nil {
		return nil, err
	}

	pc = &PushConsumerImpl{
		attributes:     attrs,
		group:          conf.group,
		newClient:      NewPushClient,
		consumeTimeout: conf.consumeTimeout,
		done:           make(chan struct{}),
		queues:         make(map[string]*queue),
		interceptors:   container.NewChain[mesh.ConsumerInterceptor](),
		offsets:        newOffsetTable(),
		monitor:        monitor.Default,
		logger:         defaultLogger(),
	}

	for _, opt := range opts {
		opt(pc)
	}

	pc.logger = pc.logger.With(zap.String("group", pc.group))
	pc.gate = newGate(func() {
		pc.monitor.SetSuspended(pc.group, false)
		pc.logger.Info("push consumer resumed")
	})
	return pc, nil
}

func (pc *PushConsumerImpl) Attributes() *mesh.KeyValue {
	return pc.attributes
}

func (pc *PushConsumerImpl) Group() string {
	return pc.group
}

func (pc *PushConsumerImpl) Status() atomic.Status {
	return pc.state.Load()
}

// SetInstanceName only takes effect before Startup.
func (pc *PushConsumerImpl) SetInstanceName(instanceName string) (err error) {
	pc.mutex.Lock()
	defer pc.mutex.Unlock()

	switch pc.state.Load() {
	case atomic.Created, atomic.StartFailed:
		pc.attributes.Put(mesh.InstanceName, instanceName)
		return nil
	case atomic.Shutdown:
		return ErrShutdown
	}
	return ErrAlreadyStarted
}

func (pc *PushConsumerImpl) Startup() (err error) {
	pc.mutex.Lock()
	defer pc.mutex.Unlock()

	switch pc.state.Load() {
	case atomic.Running:
		return nil
	case atomic.Shutdown:
		return ErrShutdown
	}

	if !pc.state.Transfer(atomic.Created, atomic.Starting) && !pc.state.Transfer(atomic.StartFailed, atomic.Starting) {
		return ErrAlreadyStarted
	}

	defer func() {
		if err != nil {
			pc.state.Store(atomic.StartFailed)
			pc.logger.Error("push consumer start failed", zap.Error(err))
		}
	}()

	conf, err := parseConsumerConfig(pc.attributes)
	if err != nil {
		return err
	}
	pc.consumeTimeout = conf.consumeTimeout

	client, err := pc.newClient(conf.options()...)
	if err != nil {
		return pkgerrors.Wrap(err, "create rocketmq push consumer")
	}

	if err = pc.subscribeAll(client); err == nil {
		if err = client.Start(); err != nil {
			err = pkgerrors.Wrap(err, "start rocketmq push consumer")
		}
	}

	if err != nil {
		if shutdownErr := client.Shutdown(); shutdownErr != nil {
			pc.logger.Warn("shutdown half started client", zap.Error(shutdownErr))
		}
		return err
	}

	pc.client = client
	pc.state.Store(atomic.Running)
	pc.logger.Info("push consumer started",
		zap.String("instance", conf.instanceName),
		zap.Strings("nameServers", conf.nameServers),
	)
	return nil
}

func (pc *PushConsumerImpl) subscribeAll(client PushClient) (err error) {
	pc.queuesMu.RLock()
	defer pc.queuesMu.RUnlock()

	for name, q := range pc.queues {
		if err = client.Subscribe(name, q.selector, pc.consume(name)); err != nil {
			return pkgerrors.Wrapf(err, "subscribe %s", name)
		}
	}
	return nil
}

// Shutdown is idempotent. Deliveries still waiting for an ack or held by a
// suspension are released as RECONSUME_LATER.
func (pc *PushConsumerImpl) Shutdown() (err error) {
	pc.mutex.Lock()
	defer pc.mutex.Unlock()

	previous := pc.state.Terminate()
	if previous == atomic.Shutdown {
		return nil
	}
	close(pc.done)

	if previous == atomic.Running && pc.client != nil {
		if err = pc.client.Shutdown(); err != nil {
			err = pkgerrors.Wrap(err, "shutdown rocketmq push consumer")
		}
	}
	pc.logger.Info("push consumer shut down", zap.Stringer("previous", previous))
	return err
}

func (pc *PushConsumerImpl) Suspend() {
	pc.SuspendTimeout(0)
}

func (pc *PushConsumerImpl) SuspendTimeout(timeout time.Duration) {
	pc.monitor.SetSuspended(pc.group, true)
	pc.gate.suspend(timeout)
	pc.logger.Info("push consumer suspended", zap.Duration("timeout", timeout))
}

func (pc *PushConsumerImpl) Resume() {
	pc.gate.resume()
}

func (pc *PushConsumerImpl) IsSuspended() bool {
	return pc.gate.suspended()
}

func (pc *PushConsumerImpl) AttachQueue(queueName string, listener mesh.MessageListener, attributes ...*mesh.KeyValue) (err error) {
	if queueName == "" {
		return ErrEmptyQueue
	}

	if listener == nil {
		return ErrNilListener
	}

	pc.mutex.Lock()
	defer pc.mutex.Unlock()

	if pc.state.Is(atomic.Shutdown) {
		return ErrShutdown
	}

	pc.queuesMu.Lock()
	if q, exists := pc.queues[queueName]; exists {
		q.listener = listener
		pc.queuesMu.Unlock()
		return nil
	}

	q := &queue{
		listener: listener,
		selector: selectorOf(attributes...),
	}
	pc.queues[queueName] = q
	pc.queuesMu.Unlock()

	if !pc.state.Is(atomic.Running) {
		return nil
	}

	if err = pc.client.Subscribe(queueName, q.selector, pc.consume(queueName)); err != nil {
		pc.queuesMu.Lock()
		delete(pc.queues, queueName)
		pc.queuesMu.Unlock()
		return pkgerrors.Wrapf(err, "subscribe %s", queueName)
	}

	pc.logger.Info("queue attached", zap.String("queue", queueName), zap.String("expression", q.selector.Expression))
	return nil
}

func (pc *PushConsumerImpl) DetachQueue(queueName string) (err error) {
	pc.mutex.Lock()
	defer pc.mutex.Unlock()

	pc.queuesMu.RLock()
	_, exists := pc.queues[queueName]
	pc.queuesMu.RUnlock()
	if !exists {
		return nil
	}

	if pc.state.Is(atomic.Running) {
		if err = pc.client.Unsubscribe(queueName); err != nil {
			return pkgerrors.Wrapf(err, "unsubscribe %s", queueName)
		}
	}

	pc.queuesMu.Lock()
	delete(pc.queues, queueName)
	pc.queuesMu.Unlock()

	pc.offsets.drop(queueName)
	pc.logger.Info("queue detached", zap.String("queue", queueName))

	if pc.state.Is(atomic.Running) {
		return pc.restoreRetrySubscription()
	}
	return nil
}

// restoreRetrySubscription re-subscribes one remaining queue. The client drops
// the group's %RETRY% subscription on every Unsubscribe, and re-subscribing any
// topic adds it back.
func (pc *PushConsumerImpl) restoreRetrySubscription() (err error) {
	pc.queuesMu.RLock()
	names := make([]string, 0, len(pc.queues))
	for name := range pc.queues {
		names = append(names, name)
	}

	if len(names) == 0 {
		pc.queuesMu.RUnlock()
		return nil
	}

	sort.Strings(names)
	name, q := names[0], pc.queues[names[0]]
	pc.queuesMu.RUnlock()

	if err = pc.client.Subscribe(name, q.selector, pc.consume(name)); err != nil {
		return pkgerrors.Wrapf(err, "restore retry subscription via %s", name)
	}
	return nil
}

func (pc *PushConsumerImpl) Queues() (names []string) {
	pc.queuesMu.RLock()
	defer pc.queuesMu.RUnlock()

	names = make([]string, 0, len(pc.queues))
	for name := range pc.queues {
		names = append(names, name)
	}
	return
}

func (pc *PushConsumerImpl) AddInterceptor(interceptor mesh.ConsumerInterceptor) {
	if interceptor != nil {
		pc.interceptors.Use(interceptor)
	}
}

func (pc *PushConsumerImpl) RemoveInterceptor(interceptor mesh.ConsumerInterceptor) {
	if interceptor != nil {
		pc.interceptors.Remove(interceptor)
	}
}

// UpdateOffset acknowledges msgs and advances the committed offset of their
// queues. Every message must carry the queue headers set at delivery.
func (pc *PushConsumerImpl) UpdateOffset(msgs []*mesh.Message, ctx mesh.Context) (err error) {
	type position struct {
		key    queueKey
		offset int64
	}

	positions := make([]position, 0, len(msgs))
	for index, msg := range msgs {
		if msg == nil {
			return pkgerrors.Wrapf(ErrMissingQueueHeaders, "message %d is nil", index)
		}

		key, offset, ok := queueKeyFromMessage(msg)
		if !ok {
			return pkgerrors.Wrapf(ErrMissingQueueHeaders, "message %s", msg.ID())
		}
		positions = append(positions, position{key: key, offset: offset})
	}

	for _, p := range positions {
		if ackCtx, exists := pc.offsets.lookup(p.key, p.offset); exists {
			ackCtx.Ack()
		}

		committed := pc.offsets.remove(p.key, p.offset)
		pc.logger.Debug("offset updated",
			zap.Stringer("queue", p.key),
			zap.Int64("offset", p.offset),
			zap.Int64("committed", committed),
		)
	}

	if ctx != nil {
		ctx.Attributes().Put(mesh.ConsumeStatus, mesh.ConsumeSuccess)
	}
	return nil
}

// Offsets returns the committed offset per queue, keyed topic@broker@queueId.
func (pc *PushConsumerImpl) Offsets() map[string]int64 {
	return pc.offsets.snapshot()
}

func (pc *PushConsumerImpl) listener(queueName string) (listener mesh.MessageListener) {
	pc.queuesMu.RLock()
	defer pc.queuesMu.RUnlock()

	if q, exists := pc.queues[queueName]; exists {
		listener = q.listener
	}
	return
}

func (pc *PushConsumerImpl) consume(queueName string) ConsumeFunc {
	return func(ctx context.Context, msgs ...*primitive.MessageExt) (consumer.ConsumeResult, error) {
		if err := pc.gate.wait(ctx, pc.done); err != nil {
			return consumer.ConsumeRetryLater, err
		}

		for _, ext := range msgs {
			listener := pc.listener(queueName)
			if listener == nil {
				return consumer.ConsumeRetryLater, errQueueDetached
			}

			if !pc.deliver(ctx, listener, ext) {
				return consumer.ConsumeRetryLater, nil
			}
		}
		return consumer.ConsumeSuccess, nil
	}
}

func (pc *PushConsumerImpl) deliver(ctx context.Context, listener mesh.MessageListener, ext *primitive.MessageExt) (acked bool) {
	var (
		start  = time.Now()
		msg    = toMeshMessage(ext)
		ackCtx = newAckContext()
		key    = queueKeyOf(ext)
	)

	pc.offsets.put(key, ext.QueueOffset, ackCtx)
	pc.monitor.Received(pc.group, msg.Destination())

	pc.interceptors.Range(func(_ int, interceptor mesh.ConsumerInterceptor) (handled bool) {
		pc.safely("pre receive", msg, func() { interceptor.PreReceive(msg, ackCtx) })
		return false
	})

	timeout := pc.consumeTimeout - time.Since(start)
	if !pc.safely("listener", msg, func() { listener.OnReceived(msg, ackCtx) }) {
		timeout = 0
	}
	ackCtx.await(ctx, pc.done, timeout)

	pc.interceptors.Range(func(_ int, interceptor mesh.ConsumerInterceptor) (handled bool) {
		pc.safely("post receive", msg, func() { interceptor.PostReceive(msg, ackCtx) })
		return false
	})

	pc.offsets.remove(key, ext.QueueOffset)

	if ackCtx.succeeded() {
		pc.monitor.Acked(pc.group, msg.Destination())
		return true
	}

	if level := ackCtx.Attributes().GetInt(mesh.DelayLevelWhenNextConsume); level > 0 {
		if concurrentCtx, ok := primitive.GetConcurrentlyCtx(ctx); ok {
			concurrentCtx.DelayLevelWhenNextConsume = level
		}
	}

	pc.monitor.Retried(pc.group, msg.Destination())
	pc.logger.Warn("message not acknowledged, reconsume later",
		zap.String("msgId", ext.MsgId),
		zap.String("topic", msg.Destination()),
		zap.Int32("reconsumeTimes", ext.ReconsumeTimes),
	)
	return false
}

func (pc *PushConsumerImpl) safely(stage string, msg *mesh.Message, fn func()) (ok bool) {
	defer func() {
		if err := recover(); err != nil {
			ok = false
			pc.logger.Error("recovered from panic",
				zap.String("stage", stage),
				zap.String("msgId", msg.ID()),
				zap.Any("error", err),
			)
		}
	}()
	fn()
	return true
}

func selectorOf(attributes ...*mesh.KeyValue) consumer.MessageSelector {
	expression := "*"
	for _, attrs := range attributes {
		if tags := attrs.GetString(mesh.Tags); tags != "" {
			expression = tags
		}
	}
	return consumer.MessageSelector{Type: consumer.TAG, Expression: expression}
}
