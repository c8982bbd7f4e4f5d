package store

import (
	"fmt"

	"github.com/voidcase/reagraph/internal/graph"
)

// marshalValue converts a property value to JSON text for storage.
// Object keys are emitted sorted, so stored text is deterministic.
func marshalValue(v graph.Value) (string, error) {
	data, err := graph.EncodeValue(v)
	if err != nil {
		return "", fmt.Errorf("marshal property value: %w", err)
	}
	return string(data), nil
}

// unmarshalValue parses stored JSON text back into a property value.
// Integer numbers decode as graph.Int, not graph.Float, so values beyond
// 2^53 survive the round trip exactly.
func unmarshalValue(data string) (graph.Value, error) {
	v, err := graph.DecodeValue([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("unmarshal property value: %w", err)
	}
	return v, nil
}
