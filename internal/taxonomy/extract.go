package taxonomy

import "strings"

// tagSeparator splits a raw tag string into tokens.
const tagSeparator = ","

// SplitTags normalizes a raw tag field into an ordered list of trimmed, non-empty tokens.
//
// Strings are split on commas. YAML sequences are accepted too; each string
// element is split the same way so `["a, b", "c"]` yields [a b c]. Anything else
// (nil, numbers, maps) yields an empty, non-nil slice.
func SplitTags(raw any) []string {
	switch v := raw.(type) {
	case string:
		return appendTokens(make([]string, 0, strings.Count(v, tagSeparator)+1), v)
	case []string:
		out := make([]string, 0, len(v))
		for _, s := range v {
			out = appendTokens(out, s)
		}
		return out
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = appendTokens(out, s)
			}
		}
		return out
	default:
		return []string{}
	}
}

func appendTokens(dst []string, raw string) []string {
	for _, part := range strings.Split(raw, tagSeparator) {
		if tag := strings.TrimSpace(part); tag != "" {
			dst = append(dst, tag)
		}
	}
	return dst
}
