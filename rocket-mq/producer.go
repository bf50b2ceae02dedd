package rocket_mq

import (
	"context"
	"errors"
	"sync"

	"github.com/apache/rocketmq-client-go/v2/primitive"
	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/grpc-boot/mesh"
	"github.com/grpc-boot/mesh/atomic"
)

var (
	ErrNotStarted = errors.New("producer is not running")
	ErrSendStatus = errors.New("broker did not accept message")
)

var _ mesh.Producer = (*Producer)(nil)

type ProducerOption func(p *Producer)

func WithProducerClientFactory(factory ProducerClientFactory) ProducerOption {
	return func(p *Producer) {
		p.newClient = factory
	}
}

func WithProducerLogger(logger *zap.Logger) ProducerOption {
	return func(p *Producer) {
		p.logger = logger
	}
}

type Producer struct {
	attributes *mesh.KeyValue
	mutex      sync.Mutex
	state      atomic.State
	connection ProducerClient
	newClient  ProducerClientFactory
	logger     *zap.Logger
}

func NewProducer(attributes *mesh.KeyValue, opts ...ProducerOption) (p *Producer, err error) {
	attrs := mesh.NewKeyValue()
	if attributes != nil {
		attrs = attributes.Clone()
	}

	if _, err = parseProducerConfig(attrs); err != nil {
		return nil, err
	}

	p = &Producer{
		attributes: attrs,
		newClient:  NewProducerClient,
		logger:     defaultLogger(),
	}

	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

func (p *Producer) Attributes() *mesh.KeyValue {
	return p.attributes
}

func (p *Producer) Startup() (err error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	switch p.state.Load() {
	case atomic.Running:
		return nil
	case atomic.Shutdown:
		return ErrShutdown
	}

	conf, err := parseProducerConfig(p.attributes)
	if err != nil {
		p.state.Store(atomic.StartFailed)
		return err
	}

	conn, err := p.newClient(conf.options()...)
	if err != nil {
		p.state.Store(atomic.StartFailed)
		return pkgerrors.Wrap(err, "create rocketmq producer")
	}

	if err = conn.Start(); err != nil {
		p.state.Store(atomic.StartFailed)
		if shutdownErr := conn.Shutdown(); shutdownErr != nil {
			p.logger.Warn("shutdown half started producer", zap.Error(shutdownErr))
		}
		return pkgerrors.Wrap(err, "start rocketmq producer")
	}

	p.connection = conn
	p.state.Store(atomic.Running)
	p.logger.Info("producer started", zap.String("group", conf.group))
	return nil
}

func (p *Producer) Shutdown() (err error) {
	return p.Close()
}

func (p *Producer) Close() (err error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if previous := p.state.Terminate(); previous != atomic.Running {
		return nil
	}
	return p.connection.Shutdown()
}

func (p *Producer) running() (err error) {
	if !p.state.Is(atomic.Running) {
		return ErrNotStarted
	}
	return nil
}

func (p *Producer) Send(ctx context.Context, msg *mesh.Message) (result *mesh.SendResult, err error) {
	if err = p.running(); err != nil {
		return nil, err
	}

	var res *primitive.SendResult
	if res, err = p.connection.SendSync(ctx, toRocketMessage(msg)); err != nil {
		return nil, pkgerrors.Wrapf(err, "send to %s", msg.Destination())
	}
	return toSendResult(msg, res)
}

func (p *Producer) SendAsync(ctx context.Context, msg *mesh.Message, callback func(result *mesh.SendResult, err error)) (err error) {
	if err = p.running(); err != nil {
		return err
	}

	return p.connection.SendAsync(ctx, func(ctx context.Context, res *primitive.SendResult, err error) {
		if callback == nil {
			return
		}

		if err != nil {
			callback(nil, err)
			return
		}
		callback(toSendResult(msg, res))
	}, toRocketMessage(msg))
}

func (p *Producer) SendOneway(ctx context.Context, msg *mesh.Message) (err error) {
	if err = p.running(); err != nil {
		return err
	}
	return p.connection.SendOneWay(ctx, toRocketMessage(msg))
}

func toSendResult(msg *mesh.Message, res *primitive.SendResult) (result *mesh.SendResult, err error) {
	if res == nil {
		return nil, ErrSendStatus
	}

	result = &mesh.SendResult{
		MessageID:   res.MsgID,
		Destination: msg.Destination(),
		QueueOffset: res.QueueOffset,
	}

	if res.Status != primitive.SendOK {
		return result, pkgerrors.Wrapf(ErrSendStatus, "status %d", res.Status)
	}
	return result, nil
}
