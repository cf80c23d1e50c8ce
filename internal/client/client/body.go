package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// errorBody is decoded leniently: "message" and "error" may each be a string
// or an object carrying a message, and "errors" may be a field map (string or
// list of strings per field) or a list of {field, message} items.
type errorBody struct {
	Message json.RawMessage `json:"message"`
	Error   json.RawMessage `json:"error"`
	Errors  json.RawMessage `json:"errors"`
}

// decodeErrorBody extracts a human message and field annotations from a
// non-2xx body. Unparseable bodies fall back to their trimmed text when it
// looks like a short plain message.
func decodeErrorBody(b []byte) (string, map[string]string) {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 {
		return "", nil
	}

	var body errorBody
	if err := json.Unmarshal(trimmed, &body); err != nil {
		if strings.ContainsRune("<{[", rune(trimmed[0])) || len(trimmed) > 200 {
			return "", nil
		}
		return string(trimmed), nil
	}

	msg := textOf(body.Message)
	if msg == "" {
		msg = textOf(body.Error)
	}
	return msg, fieldsOf(body.Errors)
}

func textOf(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return strings.TrimSpace(obj.Message)
	}
	return ""
}

func fieldsOf(raw json.RawMessage) map[string]string {
	if len(raw) == 0 {
		return nil
	}

	out := map[string]string{}

	var byField map[string]json.RawMessage
	if err := json.Unmarshal(raw, &byField); err == nil {
		for field, v := range byField {
			var s string
			if err := json.Unmarshal(v, &s); err == nil && s != "" {
				out[field] = s
				continue
			}
			var list []string
			if err := json.Unmarshal(v, &list); err == nil && len(list) > 0 {
				out[field] = list[0]
			}
		}
	} else {
		var items []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(raw, &items); err == nil {
			for _, it := range items {
				if it.Field != "" && it.Message != "" {
					if _, dup := out[it.Field]; !dup {
						out[it.Field] = it.Message
					}
				}
			}
		}
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

// referenceOf pulls an application reference out of an acknowledgment body.
func referenceOf(b []byte) string {
	var body map[string]any
	if err := json.Unmarshal(b, &body); err != nil {
		return ""
	}
	if data, ok := body["data"].(map[string]any); ok {
		if ref := referenceFrom(data); ref != "" {
			return ref
		}
	}
	return referenceFrom(body)
}

func referenceFrom(m map[string]any) string {
	for _, key := range []string{"applicationId", "reference", "id"} {
		switch v := m[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return fmt.Sprintf("%.0f", v)
		}
	}
	return ""
}
