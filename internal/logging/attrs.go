package logging

import "log/slog"

func attrsToMap(attrs []slog.Attr) map[string]any {
	if len(attrs) == 0 {
		return nil
	}
	values := make(map[string]any, len(attrs))
	for _, attr := range attrs {
		if key, value, ok := flattenAttr(attr); ok {
			values[key] = value
		}
	}
	if len(values) == 0 {
		return nil
	}
	return values
}

// flattenAttr resolves LogValuers and turns groups into nested maps.
func flattenAttr(attr slog.Attr) (string, any, bool) {
	if attr.Key == "" {
		return "", nil, false
	}
	value := attr.Value.Resolve()
	if value.Kind() != slog.KindGroup {
		return attr.Key, value.Any(), true
	}
	group := map[string]any{}
	for _, member := range value.Group() {
		if key, inner, ok := flattenAttr(member); ok {
			group[key] = inner
		}
	}
	return attr.Key, group, true
}
