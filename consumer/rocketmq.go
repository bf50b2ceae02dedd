package consumer

import (
	"errors"
	"strings"
	"sync"
	"time"

	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/grpc-boot/mesh"
	"github.com/grpc-boot/mesh/oms"
	rocket_mq "github.com/grpc-boot/mesh/rocket-mq"
)

const (
	DefaultRegion = "namespace"
	urlPrefix     = "oms:" + rocket_mq.DriverName + "://"
)

var (
	ErrNotInitialized     = errors.New("consumer is not initialized")
	ErrAlreadyInitialized = errors.New("consumer already initialized")
	ErrNilConfiguration   = errors.New("configuration must not be nil")
	ErrNoListener         = errors.New("no message listener registered")
	ErrUnexpectedConsumer = errors.New("access point returned a foreign push consumer")
)

var _ mesh.MeshMQPushConsumer = (*RocketMQConsumerImpl)(nil)

type Option func(c *RocketMQConsumerImpl)

func WithLogger(logger *zap.Logger) Option {
	return func(c *RocketMQConsumerImpl) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// RocketMQConsumerImpl is the event mesh consumer backed by the rocketmq oms
// driver. Before Init, error returning methods report ErrNotInitialized and
// the others do nothing.
type RocketMQConsumerImpl struct {
	mutex    sync.RWMutex
	consumer *rocket_mq.PushConsumerImpl
	listener mesh.MessageListener
	logger   *zap.Logger

	create func(url string, attributes *mesh.KeyValue) (*rocket_mq.PushConsumerImpl, error)
}

func NewRocketMQConsumer(opts ...Option) *RocketMQConsumerImpl {
	c := &RocketMQConsumerImpl{
		logger: zap.NewNop(),
		create: createFromAccessPoint,
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

func createFromAccessPoint(url string, attributes *mesh.KeyValue) (pc *rocket_mq.PushConsumerImpl, err error) {
	accessPoint, err := oms.GetMessagingAccessPoint(url, attributes)
	if err != nil {
		return nil, err
	}

	pushConsumer, err := accessPoint.CreatePushConsumer()
	if err != nil {
		return nil, err
	}

	pc, ok := pushConsumer.(*rocket_mq.PushConsumerImpl)
	if !ok {
		return nil, ErrUnexpectedConsumer
	}
	return pc, nil
}

// Attributes builds the push consumer attributes for conf.
func Attributes(isBroadcast bool, conf *mesh.CommonConfiguration, consumerGroup string) (url string, attrs *mesh.KeyValue) {
	url = urlPrefix + conf.NamesrvAddr + "/" + DefaultRegion

	model := mesh.Clustering
	if isBroadcast {
		model = mesh.Broadcasting
	}

	attrs = mesh.NewKeyValue().
		Put(mesh.DriverImpl, rocket_mq.DriverName).
		Put(mesh.AccessPoints, url).
		Put(mesh.Region, DefaultRegion).
		Put(mesh.ConsumerID, consumerGroup).
		Put(mesh.MessageModel, model)

	if conf.ConsumeTimeout > 0 {
		attrs.PutInt64(mesh.ConsumeTimeout, conf.ConsumeTimeout)
	}

	if conf.ConsumeBatchSize > 0 {
		attrs.PutInt(mesh.ConsumeBatchSize, conf.ConsumeBatchSize)
	}

	if conf.PullBatchSize > 0 {
		attrs.PutInt(mesh.PullBatchSize, conf.PullBatchSize)
	}

	if conf.MaxReconsumeTimes > 0 {
		attrs.PutInt(mesh.MaxReconsumeTimes, conf.MaxReconsumeTimes)
	}

	if conf.ConsumeFromWhere != "" {
		attrs.Put(mesh.ConsumeFromWhere, conf.ConsumeFromWhere)
	}

	if conf.ClientUserName != "" {
		attrs.Put(mesh.AccessKey, conf.ClientUserName).
			Put(mesh.SecretKey, conf.ClientPass)
	}
	return
}

func (c *RocketMQConsumerImpl) Init(isBroadcast bool, conf *mesh.CommonConfiguration, consumerGroup string) (err error) {
	if conf == nil {
		return ErrNilConfiguration
	}

	if strings.TrimSpace(conf.NamesrvAddr) == "" {
		return mesh.ErrEmptyNamesrvAddr
	}

	if strings.TrimSpace(consumerGroup) == "" {
		return mesh.ErrEmptyConsumeGroup
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.consumer != nil {
		return ErrAlreadyInitialized
	}

	url, attrs := Attributes(isBroadcast, conf, consumerGroup)
	if c.consumer, err = c.create(url, attrs); err != nil {
		return pkgerrors.Wrapf(err, "init consumer %s", consumerGroup)
	}

	c.logger = c.logger.With(zap.String("group", consumerGroup))
	c.logger.Info("consumer initialized", zap.String("url", url), zap.Bool("broadcast", isBroadcast))
	return nil
}

func (c *RocketMQConsumerImpl) get() *rocket_mq.PushConsumerImpl {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.consumer
}

func (c *RocketMQConsumerImpl) Attributes() *mesh.KeyValue {
	if pc := c.get(); pc != nil {
		return pc.Attributes()
	}
	return nil
}

// Offsets returns the committed offset per queue.
func (c *RocketMQConsumerImpl) Offsets() map[string]int64 {
	if pc := c.get(); pc != nil {
		return pc.Offsets()
	}
	return map[string]int64{}
}

func (c *RocketMQConsumerImpl) SetInstanceName(instanceName string) (err error) {
	pc := c.get()
	if pc == nil {
		return ErrNotInitialized
	}
	return pc.SetInstanceName(instanceName)
}

func (c *RocketMQConsumerImpl) RegisterMessageListener(listener mesh.MessageListener) {
	c.mutex.Lock()
	c.listener = listener
	c.mutex.Unlock()
}

func (c *RocketMQConsumerImpl) Start() (err error) {
	return c.Startup()
}

func (c *RocketMQConsumerImpl) Startup() (err error) {
	pc := c.get()
	if pc == nil {
		return ErrNotInitialized
	}
	return pc.Startup()
}

func (c *RocketMQConsumerImpl) Shutdown() (err error) {
	pc := c.get()
	if pc == nil {
		return ErrNotInitialized
	}
	return pc.Shutdown()
}

func (c *RocketMQConsumerImpl) Subscribe(topic string) (err error) {
	c.mutex.RLock()
	pc, listener := c.consumer, c.listener
	c.mutex.RUnlock()

	if pc == nil {
		return ErrNotInitialized
	}

	if listener == nil {
		c.logger.Error("subscribe without message listener", zap.String("topic", topic))
		return ErrNoListener
	}
	return pc.AttachQueue(topic, listener)
}

func (c *RocketMQConsumerImpl) Unsubscribe(topic string) (err error) {
	return c.DetachQueue(topic)
}

func (c *RocketMQConsumerImpl) AttachQueue(queueName string, listener mesh.MessageListener, attributes ...*mesh.KeyValue) (err error) {
	pc := c.get()
	if pc == nil {
		return ErrNotInitialized
	}
	return pc.AttachQueue(queueName, listener, attributes...)
}

func (c *RocketMQConsumerImpl) DetachQueue(queueName string) (err error) {
	pc := c.get()
	if pc == nil {
		return ErrNotInitialized
	}
	return pc.DetachQueue(queueName)
}

func (c *RocketMQConsumerImpl) IsPause() bool {
	return c.IsSuspended()
}

func (c *RocketMQConsumerImpl) Pause() {
	c.Suspend()
}

func (c *RocketMQConsumerImpl) Resume() {
	if pc := c.get(); pc != nil {
		pc.Resume()
	}
}

func (c *RocketMQConsumerImpl) Suspend() {
	if pc := c.get(); pc != nil {
		pc.Suspend()
	}
}

func (c *RocketMQConsumerImpl) SuspendTimeout(timeout time.Duration) {
	if pc := c.get(); pc != nil {
		pc.SuspendTimeout(timeout)
	}
}

func (c *RocketMQConsumerImpl) IsSuspended() bool {
	if pc := c.get(); pc != nil {
		return pc.IsSuspended()
	}
	return false
}

func (c *RocketMQConsumerImpl) AddInterceptor(interceptor mesh.ConsumerInterceptor) {
	if pc := c.get(); pc != nil {
		pc.AddInterceptor(interceptor)
	}
}

func (c *RocketMQConsumerImpl) RemoveInterceptor(interceptor mesh.ConsumerInterceptor) {
	if pc := c.get(); pc != nil {
		pc.RemoveInterceptor(interceptor)
	}
}

func (c *RocketMQConsumerImpl) UpdateOffset(msgs []*mesh.Message, ctx mesh.Context) (err error) {
	pc := c.get()
	if pc == nil {
		return ErrNotInitialized
	}
	return pc.UpdateOffset(msgs, ctx)
}
