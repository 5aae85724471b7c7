package facade

import (
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"
)

// MarshalBinary encodes a snapshot as msgpack, the wire/disk form used by
// internal/cache.
func MarshalBinary(n Node) ([]byte, error) {
	return msgpack.Marshal(n)
}

// UnmarshalBinary decodes a snapshot previously produced by MarshalBinary.
func UnmarshalBinary(data []byte) (Node, error) {
	var n Node
	if err := msgpack.Unmarshal(data, &n); err != nil {
		return Node{}, err
	}
	return n, nil
}

// MarshalJSON encodes a snapshot as indented JSON, for `confparser dump`
// and other human-facing output (spec §6.1).
func MarshalJSON(n Node) ([]byte, error) {
	return json.MarshalIndent(n, "", "  ")
}
