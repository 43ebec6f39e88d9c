package wire

// Pair is a single (key, value) entry of a result mapping
type Pair struct {
	Key   string `json:"key"`
	Value Value  `json:"value"`
}

// KV is an ordered key-value sequence, the wire-level
// representation of a record; the destination is a mapping,
// so order matters only for human inspection
type KV []Pair

// Add appends a pair to the sequence
func (kv *KV) Add(key string, v Value) {
	*kv = append(*kv, Pair{Key: key, Value: v})
}

// AddString is a shorthand for appending a string payload
func (kv *KV) AddString(key string, s string) {
	kv.Add(key, NewString(s))
}

// AddUint64 is a shorthand for appending an unsigned 64-bit payload
func (kv *KV) AddUint64(key string, v uint64) {
	kv.Add(key, NewUint64(v))
}

// AddUint32 is a shorthand for appending an unsigned 32-bit payload
func (kv *KV) AddUint32(key string, v uint32) {
	kv.Add(key, NewUint32(v))
}

// Get returns the first value stored under a given key
func (kv KV) Get(key string) (Value, bool) {
	for _, p := range kv {
		if p.Key == key {
			return p.Value, true
		}
	}

	return Value{}, false
}

// Keys returns all keys in sequence order
func (kv KV) Keys() []string {
	keys := make([]string, 0, len(kv))
	for _, p := range kv {
		keys = append(keys, p.Key)
	}

	return keys
}
