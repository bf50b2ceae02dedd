package rocket_mq

import (
	"strconv"
	"strings"

	"github.com/apache/rocketmq-client-go/v2/primitive"

	"github.com/grpc-boot/mesh"
)

const (
	propertyTags        = "TAGS"
	propertyKeys        = "KEYS"
	propertyShardingKey = "__SHARDINGKEY"
	propertyRetryTopic  = "RETRY_TOPIC"
	keySeparator        = " "
)

// 由 broker 写入的系统属性，不透传给用户头
var systemProperties = map[string]struct{}{
	"UNIQ_KEY":            {},
	"MIN_OFFSET":          {},
	"MAX_OFFSET":          {},
	"CONSUME_START_TIME":  {},
	"REAL_TOPIC":          {},
	"REAL_QID":            {},
	"RETRY_TOPIC":         {},
	"ORIGIN_MESSAGE_ID":   {},
	"RECONSUME_TIME":      {},
	"MAX_RECONSUME_TIMES": {},
	"DELAY":               {},
	"WAIT":                {},
	"PGROUP":              {},
	"CLUSTER":             {},
	"TRAN_MSG":            {},
	"MSG_REGION":          {},
	"TRACE_ON":            {},
}

// destinationOf is the topic the message was sent to. Redeliveries arrive on
// the group's retry topic and carry the original one in RETRY_TOPIC.
func destinationOf(ext *primitive.MessageExt) string {
	if topic := ext.GetProperty(propertyRetryTopic); topic != "" {
		return topic
	}
	return ext.Topic
}

func toMeshMessage(ext *primitive.MessageExt) *mesh.Message {
	key := queueKeyOf(ext)
	msg := mesh.NewMessage(destinationOf(ext), ext.Body)

	msg.SysHeaders().
		Put(mesh.MessageID, ext.MsgId).
		Put(mesh.BornHost, ext.BornHost).
		PutInt64(mesh.BornTimestamp, ext.BornTimestamp).
		Put(mesh.StoreHost, ext.StoreHost).
		PutInt64(mesh.StoreTimestamp, ext.StoreTimestamp).
		PutInt(mesh.RedeliveryCount, int(ext.ReconsumeTimes)).
		PutInt64(mesh.QueueOffset, ext.QueueOffset).
		Put(mesh.QueueTopic, key.topic).
		Put(mesh.BrokerName, key.broker).
		PutInt(mesh.QueueID, key.queueID)

	for name, value := range ext.GetProperties() {
		switch name {
		case propertyTags:
			msg.PutSysHeader(mesh.Tags, value)
		case propertyKeys:
			msg.PutSysHeader(mesh.SearchKeys, value)
		case propertyShardingKey:
			msg.PutSysHeader(mesh.ShardingKey, value)
		default:
			if _, system := systemProperties[name]; !system {
				msg.PutUserHeader(name, value)
			}
		}
	}
	return msg
}

func toRocketMessage(msg *mesh.Message) *primitive.Message {
	m := primitive.NewMessage(msg.Destination(), msg.Body())
	sys := msg.SysHeaders()

	if tags := sys.GetString(mesh.Tags); tags != "" {
		m.WithProperty(propertyTags, tags)
	}

	if keys := strings.Fields(sys.GetString(mesh.SearchKeys)); len(keys) > 0 {
		m.WithProperty(propertyKeys, strings.Join(keys, keySeparator))
	}

	if shardingKey := sys.GetString(mesh.ShardingKey); shardingKey != "" {
		m.WithProperty(propertyShardingKey, shardingKey)
	}

	for key, value := range msg.UserHeaders().Map() {
		m.WithProperty(key, value)
	}
	return m
}

type queueKey struct {
	topic   string
	broker  string
	queueID int
}

func (k queueKey) String() string {
	var b strings.Builder
	b.WriteString(k.topic)
	b.WriteByte('@')
	b.WriteString(k.broker)
	b.WriteByte('@')
	b.WriteString(strconv.Itoa(k.queueID))
	return b.String()
}

func queueKeyOf(ext *primitive.MessageExt) queueKey {
	key := queueKey{topic: ext.Topic}
	if ext.Queue != nil {
		key.broker, key.queueID = ext.Queue.BrokerName, ext.Queue.QueueId
		if ext.Queue.Topic != "" {
			key.topic = ext.Queue.Topic
		}
	}
	return key
}

func queueKeyFromMessage(msg *mesh.Message) (key queueKey, offset int64, ok bool) {
	sys := msg.SysHeaders()
	if !sys.ContainsKey(mesh.QueueID) || !sys.ContainsKey(mesh.QueueOffset) {
		return key, 0, false
	}

	topic := sys.GetString(mesh.QueueTopic)
	if topic == "" {
		topic = sys.GetString(mesh.Destination)
	}

	key = queueKey{
		topic:   topic,
		broker:  sys.GetString(mesh.BrokerName),
		queueID: sys.GetInt(mesh.QueueID),
	}
	return key, sys.GetInt64(mesh.QueueOffset), true
}
