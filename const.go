package mesh

// 访问点与客户端属性
const (
	DriverImpl        = "DRIVER_IMPL"
	AccessPoints      = "ACCESS_POINTS"
	Region            = "REGION"
	ConsumerID        = "CONSUMER_ID"
	ProducerID        = "PRODUCER_ID"
	MessageModel      = "MESSAGE_MODEL"
	InstanceName      = "INSTANCE_NAME"
	OperationTimeout  = "OPERATION_TIMEOUT"
	AccessKey         = "ACCESS_KEY"
	SecretKey         = "SECRET_KEY"
	ConsumeTimeout    = "CONSUME_TIMEOUT"
	ConsumeBatchSize  = "CONSUME_BATCH_SIZE"
	PullBatchSize     = "PULL_BATCH_SIZE"
	MaxReconsumeTimes = "MAX_RECONSUME_TIMES"
	ConsumeFromWhere  = "CONSUME_FROM_WHERE"
)

const (
	Clustering   = "CLUSTERING"
	Broadcasting = "BROADCASTING"
)

const (
	ConsumeFromLastOffset  = "CONSUME_FROM_LAST_OFFSET"
	ConsumeFromFirstOffset = "CONSUME_FROM_FIRST_OFFSET"
	ConsumeFromTimestamp   = "CONSUME_FROM_TIMESTAMP"
)

// 消息系统头
const (
	MessageID       = "MESSAGE_ID"
	Destination     = "DESTINATION"
	BornHost        = "BORN_HOST"
	BornTimestamp   = "BORN_TIMESTAMP"
	StoreHost       = "STORE_HOST"
	StoreTimestamp  = "STORE_TIMESTAMP"
	SearchKeys      = "SEARCH_KEYS"
	Tags            = "TAGS"
	ShardingKey     = "SHARDING_KEY"
	RedeliveryCount = "REDELIVERY_COUNT"
	BrokerName      = "BROKER_NAME"
	QueueID         = "QUEUE_ID"
	QueueOffset     = "QUEUE_OFFSET"
	// 物理队列所属 topic，重试消息为 %RETRY%<group>
	QueueTopic      = "QUEUE_TOPIC"
)

// 消费上下文
const (
	ConsumeStatus             = "CONSUME_STATUS"
	DelayLevelWhenNextConsume = "DELAY_LEVEL_WHEN_NEXT_CONSUME"

	ConsumeSuccess = "CONSUME_SUCCESS"
	ReconsumeLater = "RECONSUME_LATER"
)
