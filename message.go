package mesh

// Message is the vendor-neutral envelope handed to listeners and producers.
type Message struct {
	sysHeaders  *KeyValue
	userHeaders *KeyValue
	body        []byte
}

func NewMessage(destination string, body []byte) *Message {
	msg := &Message{
		sysHeaders:  NewKeyValue(),
		userHeaders: NewKeyValue(),
		body:        body,
	}
	msg.sysHeaders.Put(Destination, destination)
	return msg
}

func (m *Message) SysHeaders() *KeyValue {
	return m.sysHeaders
}

func (m *Message) UserHeaders() *KeyValue {
	return m.userHeaders
}

func (m *Message) Body() []byte {
	return m.body
}

func (m *Message) SetBody(body []byte) *Message {
	m.body = body
	return m
}

func (m *Message) ID() string {
	return m.sysHeaders.GetString(MessageID)
}

func (m *Message) Destination() string {
	return m.sysHeaders.GetString(Destination)
}

func (m *Message) PutUserHeader(key, value string) *Message {
	m.userHeaders.Put(key, value)
	return m
}

func (m *Message) PutSysHeader(key, value string) *Message {
	m.sysHeaders.Put(key, value)
	return m
}
