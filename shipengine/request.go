package shipengine

import (
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Params is the input of a call: query values for GET and DELETE,
// the JSON body for POST, PUT and PATCH.
type Params map[string]any

// Body is a decoded JSON object returned by ShipEngine.
type Body map[string]any

// With returns a copy of p with key set to v.
func (p Params) With(key string, v any) Params {
	out := make(Params, len(p)+1)
	maps.Copy(out, p)
	out[key] = v
	return out
}

// Has reports whether key is set to a non-nil value.
func (p Params) Has(key string) bool {
	v, ok := p[key]
	return ok && v != nil
}

func sendsBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}

// buildTarget joins base and path and encodes input for method. Body
// methods marshal input as JSON; other methods expect a map and encode it
// as the query string. The payload is nil when no body should be sent.
func buildTarget(base, method, path string, input any) (string, []byte, error) {
	target := strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")

	if sendsBody(method) {
		if isEmptyInput(input) {
			return target, nil, nil
		}
		payload, err := json.Marshal(input)
		if err != nil {
			return "", nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		return target, payload, nil
	}

	params, err := queryParams(input)
	if err != nil {
		return "", nil, err
	}
	query := encodeQuery(params)
	if len(query) == 0 {
		return target, nil, nil
	}
	sep := "?"
	if strings.Contains(target, "?") {
		sep = "&"
	}
	return target + sep + query.Encode(), nil, nil
}

func isEmptyInput(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func queryParams(v any) (Params, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case Params:
		return x, nil
	case map[string]any:
		return Params(x), nil
	case map[string]string:
		out := make(Params, len(x))
		for k, val := range x {
			out[k] = val
		}
		return out, nil
	}
	return nil, fmt.Errorf("query parameters must be a map, got %T", v)
}

// encodeQuery turns params into query values. Slices become repeated
// keys and nil values are skipped. Encode sorts keys, so the result is
// deterministic.
func encodeQuery(params Params) url.Values {
	values := url.Values{}
	for key, v := range params {
		if v == nil {
			continue
		}
		rv := reflect.ValueOf(v)
		if (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && rv.Type().Elem().Kind() != reflect.Uint8 {
			for i := range rv.Len() {
				if s, ok := queryScalar(rv.Index(i).Interface()); ok {
					values.Add(key, s)
				}
			}
			continue
		}
		if s, ok := queryScalar(v); ok {
			values.Set(key, s)
		}
	}
	return values
}

func queryScalar(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case time.Time:
		return x.UTC().Format(time.RFC3339), true
	case fmt.Stringer:
		return x.String(), true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", false
		}
		return queryScalar(rv.Elem().Interface())
	}
	return fmt.Sprint(v), true
}
