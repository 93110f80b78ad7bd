package shipengine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// responseError builds the *Error for a non-2xx response. A 429 is always
// a rate limit error. Otherwise the first entry of the errors array is
// classified; a body without one yields a generic "HTTP <status>" error.
func responseError(status int, data []byte, cfg Configuration) *Error {
	detail, ok := parseErrorBody(data)

	if status == http.StatusTooManyRequests {
		err := NewRateLimitError(cfg.Retries(), detail.Source, detail.RequestID)
		if detail.Message != "" {
			err.Message = detail.Message
		}
		err.StatusCode = status
		return err
	}

	if !ok || (detail.Type == "" && detail.Message == "") {
		return &Error{
			Kind:       KindUnknown,
			Message:    fmt.Sprintf("HTTP %d", status),
			Source:     DefaultSource,
			RequestID:  detail.RequestID,
			StatusCode: status,
		}
	}

	err := Classify(detail, &cfg)
	err.StatusCode = status
	if err.Message == "" {
		err.Message = fmt.Sprintf("HTTP %d", status)
	}
	return err
}

// parseErrorBody extracts the top level request_id and the first errors
// entry. Key matching ignores case, underscores and dashes, so
// "error_type", "errorType" and "ErrorType" are equivalent. ok is false
// when the body has no errors entry.
func parseErrorBody(data []byte) (ErrorDetail, bool) {
	var detail ErrorDetail
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return detail, false
	}

	var root map[string]any
	if err := json.Unmarshal(data, &root); err != nil {
		return detail, false
	}

	detail.RequestID = lookupString(root, "request_id")

	list, _ := lookup(root, "errors").([]any)
	if len(list) == 0 {
		return detail, false
	}
	first, _ := list[0].(map[string]any)
	if first == nil {
		return detail, false
	}

	detail.Source = lookupString(first, "error_source")
	detail.Type = lookupString(first, "error_type")
	detail.Code = lookupString(first, "error_code")
	detail.Message = lookupString(first, "message")
	return detail, true
}

func lookup(m map[string]any, key string) any {
	if v, ok := m[key]; ok {
		return v
	}
	want := normalizeKey(key)
	for k, v := range m {
		if normalizeKey(k) == want {
			return v
		}
	}
	return nil
}

func lookupString(m map[string]any, key string) string {
	switch v := lookup(m, key).(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func normalizeKey(k string) string {
	k = strings.ToLower(strings.TrimPrefix(k, ":"))
	return strings.NewReplacer("_", "", "-", "").Replace(k)
}
