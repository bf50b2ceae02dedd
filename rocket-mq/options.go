package rocket_mq

import (
	"errors"
	"strings"
	"time"

	"github.com/apache/rocketmq-client-go/v2/consumer"
	"github.com/apache/rocketmq-client-go/v2/primitive"
	"github.com/apache/rocketmq-client-go/v2/producer"

	"github.com/grpc-boot/mesh"
	"github.com/grpc-boot/mesh/oms"
)

const (
	DefaultConsumeTimeout = 15 * time.Minute
	DefaultProducerGroup  = "DEFAULT_PRODUCER"
	DefaultSendRetry      = 2
)

var (
	ErrEmptyGroup          = errors.New("CONSUMER_ID must be set")
	ErrInvalidMessageModel = errors.New("MESSAGE_MODEL must be CLUSTERING or BROADCASTING")
	ErrInvalidFromWhere    = errors.New("unknown CONSUME_FROM_WHERE")
)

type consumerConfig struct {
	group          string
	nameServers    []string
	instanceName   string
	model          consumer.MessageModel
	batchSize      int
	pullBatchSize  int
	maxReconsume   int
	fromWhere      consumer.ConsumeFromWhere
	credentials    primitive.Credentials
	consumeTimeout time.Duration
}

func parseConsumerConfig(attrs *mesh.KeyValue) (conf consumerConfig, err error) {
	if conf.group = strings.TrimSpace(attrs.GetString(mesh.ConsumerID)); conf.group == "" {
		return conf, ErrEmptyGroup
	}

	if conf.nameServers, err = oms.ParseAccessPoints(attrs.GetString(mesh.AccessPoints)); err != nil {
		return conf, err
	}

	switch strings.ToUpper(attrs.GetString(mesh.MessageModel)) {
	case "", mesh.Clustering:
		conf.model = consumer.Clustering
	case mesh.Broadcasting:
		conf.model = consumer.BroadCasting
	default:
		return conf, ErrInvalidMessageModel
	}

	switch strings.ToUpper(attrs.GetString(mesh.ConsumeFromWhere)) {
	case "", mesh.ConsumeFromLastOffset:
		conf.fromWhere = consumer.ConsumeFromLastOffset
	case mesh.ConsumeFromFirstOffset:
		conf.fromWhere = consumer.ConsumeFromFirstOffset
	case mesh.ConsumeFromTimestamp:
		conf.fromWhere = consumer.ConsumeFromTimestamp
	default:
		return conf, ErrInvalidFromWhere
	}

	conf.instanceName = attrs.GetString(mesh.InstanceName)
	conf.batchSize = attrs.GetInt(mesh.ConsumeBatchSize)
	conf.pullBatchSize = attrs.GetInt(mesh.PullBatchSize)
	conf.maxReconsume = attrs.GetInt(mesh.MaxReconsumeTimes)
	conf.credentials = primitive.Credentials{
		AccessKey: attrs.GetString(mesh.AccessKey),
		SecretKey: attrs.GetString(mesh.SecretKey),
	}

	if conf.consumeTimeout = attrs.GetDuration(mesh.ConsumeTimeout); conf.consumeTimeout <= 0 {
		conf.consumeTimeout = DefaultConsumeTimeout
	}
	return conf, nil
}

func (c consumerConfig) options() (opts []consumer.Option) {
	opts = []consumer.Option{
		consumer.WithGroupName(c.group),
		consumer.WithNsResolver(primitive.NewPassthroughResolver(c.nameServers)),
		consumer.WithConsumerModel(c.model),
		consumer.WithConsumeFromWhere(c.fromWhere),
	}

	if c.instanceName != "" {
		opts = append(opts, consumer.WithInstance(c.instanceName))
	}

	if c.batchSize > 0 {
		opts = append(opts, consumer.WithConsumeMessageBatchMaxSize(c.batchSize))
	}

	if c.pullBatchSize > 0 {
		opts = append(opts, consumer.WithPullBatchSize(int32(c.pullBatchSize)))
	}

	if c.maxReconsume > 0 {
		opts = append(opts, consumer.WithMaxReconsumeTimes(int32(c.maxReconsume)))
	}

	if c.credentials.AccessKey != "" {
		opts = append(opts, consumer.WithCredentials(c.credentials))
	}
	return
}

type producerConfig struct {
	group       string
	nameServers []string
	sendTimeout time.Duration
	credentials primitive.Credentials
}

func parseProducerConfig(attrs *mesh.KeyValue) (conf producerConfig, err error) {
	if conf.group = strings.TrimSpace(attrs.GetString(mesh.ProducerID)); conf.group == "" {
		conf.group = DefaultProducerGroup
	}

	if conf.nameServers, err = oms.ParseAccessPoints(attrs.GetString(mesh.AccessPoints)); err != nil {
		return conf, err
	}

	conf.sendTimeout = attrs.GetDuration(mesh.OperationTimeout)
	conf.credentials = primitive.Credentials{
		AccessKey: attrs.GetString(mesh.AccessKey),
		SecretKey: attrs.GetString(mesh.SecretKey),
	}
	return conf, nil
}

func (c producerConfig) options() (opts []producer.Option) {
	opts = []producer.Option{
		producer.WithGroupName(c.group),
		producer.WithNsResolver(primitive.NewPassthroughResolver(c.nameServers)),
		producer.WithRetry(DefaultSendRetry),
	}

	if c.sendTimeout > 0 {
		opts = append(opts, producer.WithSendMsgTimeout(c.sendTimeout))
	}

	if c.credentials.AccessKey != "" {
		opts = append(opts, producer.WithCredentials(c.credentials))
	}
	return
}
