package resource

import (
	"encoding/json"
	"fmt"
)

// odataEnvelope is the wrapper the service puts around list responses.
type odataEnvelope struct {
	Value json.RawMessage `json:"value"`
}

// DecodeList decodes a list response body. Both a bare JSON array and the
// service's OData envelope {"value": [...]} are accepted; anything else is
// a shape mismatch. An empty response decodes to an empty, non-nil slice.
func DecodeList(body json.RawMessage) ([]map[string]any, error) {
	if firstByte(body) == '{' {
		var env odataEnvelope
		if err := json.Unmarshal(body, &env); err != nil {
			return nil, fmt.Errorf("decoding list envelope: %w", ErrShapeMismatch)
		}
		if env.Value == nil {
			return nil, fmt.Errorf("object response without value field: %w", ErrShapeMismatch)
		}
		body = env.Value
	}

	var items []map[string]any
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("expected a list response: %w", ErrShapeMismatch)
	}
	if items == nil {
		items = []map[string]any{}
	}
	return items, nil
}

// DecodeObject decodes a single-entity response body, failing with a
// shape mismatch on anything that is not a JSON object.
func DecodeObject(body json.RawMessage) (map[string]any, error) {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("expected an object response: %w", ErrShapeMismatch)
	}
	return raw, nil
}

func firstByte(body []byte) byte {
	for _, b := range body {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return b
	}
	return 0
}
