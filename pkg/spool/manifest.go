package spool

import (
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// manifestSuffix is appended to a stream's key to form the key of its
// manifest blob. Stream keys must not use this suffix themselves.
const manifestSuffix = ".manifest"

// Manifest describes a spooled stream. It is stored next to the stream
// data under the key with manifestSuffix appended, encoded as
// MessagePack.
type Manifest struct {
	// Key is the store key holding the stream data.
	Key string `msgpack:"key" json:"key" yaml:"key"`

	// Length is the stream length in bytes.
	Length int64 `msgpack:"length" json:"length" yaml:"length"`

	// ChunkSize is the copy buffer size the stream was drained with.
	ChunkSize int `msgpack:"chunk_size" json:"chunk_size" yaml:"chunk_size"`

	// Chunks is the number of ChunkSize pieces the stream spans,
	// counting a trailing partial piece.
	Chunks int `msgpack:"chunks" json:"chunks" yaml:"chunks"`

	// CreatedAt is when the stream was spooled, in UTC.
	CreatedAt time.Time `msgpack:"created_at" json:"created_at" yaml:"created_at"`
}

// manifestKey returns the store key of the manifest for a stream key.
func manifestKey(key string) string { return key + manifestSuffix }

func encodeManifest(m *Manifest) ([]byte, error) {
	data, err := msgpack.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("spool: encode manifest %s: %w", m.Key, err)
	}
	return data, nil
}

func decodeManifest(key string, data []byte) (*Manifest, error) {
	var m Manifest
	if err := msgpack.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("spool: decode manifest %s: %w", key, err)
	}
	return &m, nil
}
