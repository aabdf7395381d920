package codec

import (
	"encoding/json"
	"fmt"
)

// Codec converts a collection to its stored JSON form and back.
type Codec[T any] interface {
	Encode(items []T) (json.RawMessage, error)
	Decode(data json.RawMessage) ([]T, error)
}

// JSONCodec is the default Codec: plain encoding/json over the entity's
// struct tags. Decoding checks JSON shape only.
type JSONCodec[T any] struct{}

func (JSONCodec[T]) Encode(items []T) (json.RawMessage, error) {
	if items == nil {
		items = []T{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode collection: %w", err)
	}
	return b, nil
}

func (JSONCodec[T]) Decode(data json.RawMessage) ([]T, error) {
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode collection: %w", err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}
