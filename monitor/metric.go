package monitor

const (
	labelGroup = "group"
	labelTopic = "topic"
)

const (
	MetricReceived  = "messages_received_total"
	MetricAcked     = "messages_acked_total"
	MetricRetried   = "messages_retried_total"
	MetricSuspended = "consumer_suspended"
)
