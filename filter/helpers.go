package filter

import (
	"fmt"
	"strings"
	"time"
)

// staticHelpers returns the helpers shared by every item. Names avoid the
// expr builtins and operators (contains, startsWith, upper, lower, now).
func staticHelpers() map[string]any {
	return map[string]any{
		// String helpers, case-insensitive
		"includes": func(s, substr string) bool {
			return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
		},
		"beginsWith": func(s, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(s), strings.ToLower(prefix))
		},
		"finishesWith": func(s, suffix string) bool {
			return strings.HasSuffix(strings.ToLower(s), strings.ToLower(suffix))
		},

		// Date helpers
		"parseTime": parseTime,
		"daysSince": func(v any) (int, error) {
			t, err := toTime(v)
			if err != nil {
				return 0, err
			}
			return int(time.Since(t).Hours() / 24), nil
		},
		"daysAgo": func(days int) time.Time {
			return time.Now().AddDate(0, 0, -days)
		},

		// Placeholders so expressions type check; replaced per item
		"hasField": func(string) bool { return false },
		"hasTag":   func(string) bool { return false },
	}
}

// addItemHelpers installs helpers bound to item.
func addItemHelpers(env map[string]any, item map[string]any) {
	env["hasField"] = func(key string) bool {
		v, ok := item[key]
		return ok && v != nil
	}
	env["hasTag"] = func(tag string) bool {
		return hasTag(item["tags"], tag)
	}
}

// hasTag matches tags given either as names or as {"name": ...} objects.
func hasTag(tags any, want string) bool {
	list, _ := tags.([]any)
	for _, t := range list {
		var name string
		switch v := t.(type) {
		case string:
			name = v
		case map[string]any:
			name, _ = v["name"].(string)
		}
		if strings.EqualFold(name, want) {
			return true
		}
	}
	return false
}

// parseTime accepts RFC 3339 timestamps and plain dates.
func parseTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", s)
}

func toTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		return parseTime(t)
	case nil:
		return time.Time{}, fmt.Errorf("missing time value")
	}
	return time.Time{}, fmt.Errorf("unsupported time value %T", v)
}
