package neo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

type PayloadKind int

const (
	Unrecognized PayloadKind = iota
	Feed
	Lookup
)

func (k PayloadKind) String() string {
	switch k {
	case Feed:
		return "feed"
	case Lookup:
		return "lookup"
	default:
		return "unrecognized"
	}
}

// Payload is an upstream body classified into one of the known shapes.
// Records holds the raw asteroid entries in upstream order.
type Payload struct {
	Kind    PayloadKind
	Records []any
	// Detail describes why a payload was not recognized.
	Detail string
}

// Decode parses an upstream body. Numbers decode as float64.
func Decode(body []byte) (any, error) {
	var v any
	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode upstream body: %w", err)
	}
	return v, nil
}

// Classify inspects the top level of a decoded payload. A feed carries a
// "near_earth_objects" object keyed by date; a lookup is a single object
// carrying an "id".
func Classify(payload any) Payload {
	obj, ok := payload.(map[string]any)
	if !ok {
		return Payload{Kind: Unrecognized, Detail: fmt.Sprintf("top level is %T", payload)}
	}

	if raw, ok := obj["near_earth_objects"]; ok {
		byDate, ok := raw.(map[string]any)
		if !ok {
			return Payload{Kind: Unrecognized, Detail: fmt.Sprintf("near_earth_objects is %T", raw)}
		}
		// Feed dates are ISO strings, so lexical order is chronological.
		dates := make([]string, 0, len(byDate))
		for d := range byDate {
			dates = append(dates, d)
		}
		sort.Strings(dates)

		records := []any{}
		for _, d := range dates {
			list, ok := byDate[d].([]any)
			if !ok {
				continue
			}
			records = append(records, list...)
		}
		return Payload{Kind: Feed, Records: records}
	}

	if _, ok := obj["id"]; ok {
		return Payload{Kind: Lookup, Records: []any{obj}}
	}
	return Payload{Kind: Unrecognized, Detail: "object has neither near_earth_objects nor id"}
}
