package dto

import (
	"encoding/json"
	"fmt"
)

// CreateTaskRequest deliberately has no owner field; the owner is always the
// authenticated requester, whatever the client sends.
type CreateTaskRequest struct {
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// TaskUpdate carries the permitted task mutations.
type TaskUpdate struct {
	Description *string
	Completed   *bool
}

var taskUpdateFields = map[string]bool{
	"description": true,
	"completed":   true,
}

// ParseTaskUpdate decodes a PATCH /tasks/:id body, rejecting the whole update
// on any key outside the allow-list.
func ParseTaskUpdate(body []byte) (*TaskUpdate, error) {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", ErrMalformedBody)
	}
	for key := range raw {
		if !taskUpdateFields[key] {
			return nil, fmt.Errorf("field %q: %w", key, ErrFieldNotAllowed)
		}
	}

	var upd TaskUpdate
	if err := decodeField(raw, "description", &upd.Description); err != nil {
		return nil, err
	}
	if err := decodeField(raw, "completed", &upd.Completed); err != nil {
		return nil, err
	}
	return &upd, nil
}
