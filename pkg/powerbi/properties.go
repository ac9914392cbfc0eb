package powerbi

import (
	"fmt"
	"reflect"
	"time"

	"github.com/araddon/dateparse"
	"github.com/mitchellh/mapstructure"

	"github.com/powerbi-community/powerbi-go/pkg/resource"
)

// decodeProperties projects an entity's raw payload into a typed
// properties struct. Fields are pointers so a payload key that was absent
// stays nil instead of collapsing into a zero value; the map-level Attr
// accessors on the entity base remain the authority on unset-vs-empty.
func decodeProperties(e *resource.Entity, out any) error {
	raw, err := e.Raw()
	if err != nil {
		return err
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     out,
		DecodeHook: timestampHook,
	})
	if err != nil {
		return fmt.Errorf("decoding %s %s: %w", e.Kind(), e.ID(), err)
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("decoding %s %s: %w", e.Kind(), e.ID(), err)
	}
	return nil
}

// timestampHook parses string timestamps into time.Time during decode.
// The service mixes timestamp formats across endpoints, so parsing is
// format-lenient.
func timestampHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(time.Time{}) {
		return data, nil
	}
	s := data.(string)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return nil, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t, nil
}
