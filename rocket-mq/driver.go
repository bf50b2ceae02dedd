package rocket_mq

import (
	"sync"

	"github.com/apache/rocketmq-client-go/v2/rlog"
	"go.uber.org/zap"

	"github.com/grpc-boot/mesh"
	"github.com/grpc-boot/mesh/logger"
	"github.com/grpc-boot/mesh/oms"
)

const DriverName = "rocketmq"

var (
	loggerMu sync.RWMutex
	pkgLog   = zap.NewNop()
)

func init() {
	oms.Register(DriverName, &driver{})
}

// SetLogger sets the logger of consumers and producers created afterwards and
// routes the RocketMQ client's own logs through it.
func SetLogger(l *zap.Logger) {
	l = logger.OrNop(l)

	loggerMu.Lock()
	pkgLog = l
	loggerMu.Unlock()

	rlog.SetLogger(logger.NewRocketMQLogger(l))
}

func defaultLogger() *zap.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return pkgLog
}

type driver struct{}

func (d *driver) Open(url *oms.URL, attributes *mesh.KeyValue) (accessPoint oms.MessagingAccessPoint, err error) {
	return &messagingAccessPoint{url: url, attributes: attributes}, nil
}

type messagingAccessPoint struct {
	url        *oms.URL
	attributes *mesh.KeyValue
}

func (ap *messagingAccessPoint) Version() string {
	return oms.Version
}

func (ap *messagingAccessPoint) Attributes() *mesh.KeyValue {
	return ap.attributes
}

func (ap *messagingAccessPoint) merge(attributes ...*mesh.KeyValue) *mesh.KeyValue {
	attrs := ap.attributes.Clone()
	for _, kv := range attributes {
		attrs.Merge(kv)
	}
	return attrs
}

func (ap *messagingAccessPoint) CreatePushConsumer(attributes ...*mesh.KeyValue) (consumer mesh.PushConsumer, err error) {
	pc, err := NewPushConsumer(ap.merge(attributes...))
	if err != nil {
		return nil, err
	}
	return pc, nil
}

func (ap *messagingAccessPoint) CreateProducer(attributes ...*mesh.KeyValue) (producer mesh.Producer, err error) {
	p, err := NewProducer(ap.merge(attributes...))
	if err != nil {
		return nil, err
	}
	return p, nil
}
