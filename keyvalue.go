package mesh

import (
	"sort"
	"strconv"
	"sync"
	"time"
)

// KeyValue is a concurrency-safe property bag. Values are stored as strings
// and converted on read; a missing or malformed value reads as the zero value.
type KeyValue struct {
	mutex sync.RWMutex
	items map[string]string
}

func NewKeyValue() *KeyValue {
	return &KeyValue{items: make(map[string]string, 8)}
}

func (kv *KeyValue) Put(key, value string) *KeyValue {
	kv.mutex.Lock()
	if kv.items == nil {
		kv.items = make(map[string]string, 8)
	}
	kv.items[key] = value
	kv.mutex.Unlock()
	return kv
}

func (kv *KeyValue) PutInt(key string, value int) *KeyValue {
	return kv.Put(key, strconv.Itoa(value))
}

func (kv *KeyValue) PutInt64(key string, value int64) *KeyValue {
	return kv.Put(key, strconv.FormatInt(value, 10))
}

func (kv *KeyValue) PutBool(key string, value bool) *KeyValue {
	return kv.Put(key, strconv.FormatBool(value))
}

func (kv *KeyValue) PutDuration(key string, value time.Duration) *KeyValue {
	return kv.Put(key, value.String())
}

func (kv *KeyValue) Lookup(key string) (value string, exists bool) {
	if kv == nil {
		return
	}

	kv.mutex.RLock()
	value, exists = kv.items[key]
	kv.mutex.RUnlock()
	return
}

func (kv *KeyValue) GetString(key string) (value string) {
	value, _ = kv.Lookup(key)
	return
}

func (kv *KeyValue) GetInt(key string) (value int) {
	value, _ = strconv.Atoi(kv.GetString(key))
	return
}

func (kv *KeyValue) GetInt64(key string) (value int64) {
	value, _ = strconv.ParseInt(kv.GetString(key), 10, 64)
	return
}

func (kv *KeyValue) GetBool(key string) (value bool) {
	value, _ = strconv.ParseBool(kv.GetString(key))
	return
}

// GetDuration accepts both Go duration strings and plain integers, the latter
// read as milliseconds.
func (kv *KeyValue) GetDuration(key string) (value time.Duration) {
	raw := kv.GetString(key)
	if raw == "" {
		return 0
	}

	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.Duration(ms) * time.Millisecond
	}

	value, _ = time.ParseDuration(raw)
	return
}

func (kv *KeyValue) ContainsKey(key string) (exists bool) {
	_, exists = kv.Lookup(key)
	return
}

func (kv *KeyValue) Remove(key string) *KeyValue {
	kv.mutex.Lock()
	delete(kv.items, key)
	kv.mutex.Unlock()
	return kv
}

func (kv *KeyValue) KeySet() (keys []string) {
	if kv == nil {
		return
	}

	kv.mutex.RLock()
	keys = make([]string, 0, len(kv.items))
	for key := range kv.items {
		keys = append(keys, key)
	}
	kv.mutex.RUnlock()

	sort.Strings(keys)
	return
}

func (kv *KeyValue) Len() (length int) {
	if kv == nil {
		return
	}

	kv.mutex.RLock()
	length = len(kv.items)
	kv.mutex.RUnlock()
	return
}

func (kv *KeyValue) Map() (items map[string]string) {
	items = make(map[string]string, kv.Len())
	if kv == nil {
		return
	}

	kv.mutex.RLock()
	for key, value := range kv.items {
		items[key] = value
	}
	kv.mutex.RUnlock()
	return
}

func (kv *KeyValue) Clone() *KeyValue {
	return &KeyValue{items: kv.Map()}
}

// Merge copies every entry of other into kv, overwriting existing keys.
func (kv *KeyValue) Merge(other *KeyValue) *KeyValue {
	if other == nil || other == kv {
		return kv
	}

	for key, value := range other.Map() {
		kv.Put(key, value)
	}
	return kv
}
