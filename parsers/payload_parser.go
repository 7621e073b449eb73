package parsers

import (
	"encoding/json"
)

const keyNewsletters = "newsletters"

// Decode converts an untyped envelope payload into T.
//
// This code adds extra work to the CPU: the payload was already decoded
// into a map, and Decode marshals it back into json before unmarshalling
// it into T. The client keeps its results untyped because their shape
// belongs to the service; Decode lets callers opt into a shape of their own.
//
// Usage:
//
//	type user struct {
//	    Email       string   `json:"email"`
//	    Newsletters []string `json:"newsletters"`
//	}
//	data, err := client.Users().Get(ctx, token)
//	u, ok := parsers.Decode[user](data)
func Decode[T any](data map[string]any) (T, bool) {
	var result T
	if data == nil {
		return result, false
	}

	b, err := json.Marshal(data)
	if err != nil {
		var empty T
		return empty, false
	}
	if err = json.Unmarshal(b, &result); err != nil {
		var empty T
		return empty, false
	}
	return result, true
}

// Newsletters extracts the per-newsletter settings from the payload of
// the newsletter listing, keyed by newsletter id.
func Newsletters(data map[string]any) (map[string]map[string]any, bool) {
	raw, ok := data[keyNewsletters].(map[string]any)
	if !ok {
		return nil, false
	}

	result := make(map[string]map[string]any, len(raw))
	for id, v := range raw {
		settings, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}
		result[id] = settings
	}
	return result, true
}
