// =============================================================================
// Salesforce Permission Doc - Value Normalizer
// =============================================================================
//
// The markup parser represents text nodes loosely: a leaf may arrive as a
// bare scalar or wrapped in a single-element sequence, and a collection with
// one child may arrive as a bare mapping instead of a sequence. Everything
// that depends on that convention lives in this file, so swapping the parser
// only touches these helpers.
//
// None of these functions fail. Absent values degrade to "", false or an
// empty slice.
//
// =============================================================================

package metadata

import (
	"fmt"
	"strings"
)

// Unwrap returns the first element of a sequence, or the value itself when
// it is not a sequence. An empty sequence unwraps to nil.
func Unwrap(value any) any {
	switch v := value.(type) {
	case []any:
		if len(v) == 0 {
			return nil
		}
		return v[0]
	case []string:
		if len(v) == 0 {
			return nil
		}
		return v[0]
	case []map[string]any:
		if len(v) == 0 {
			return nil
		}
		return v[0]
	default:
		return value
	}
}

// AsBoolean reports whether the unwrapped value is exactly the string "true".
// "TRUE", true (the Go bool) and every other value yield false.
func AsBoolean(value any) bool {
	s, ok := Unwrap(value).(string)
	return ok && s == "true"
}

// Text returns the unwrapped value as a string. Nil becomes "".
func Text(value any) string {
	switch v := Unwrap(value).(type) {
	case nil:
		return ""
	case string:
		return v
	case map[string]any:
		// Elements carrying attributes keep their character data under "#text".
		return Text(v[textKey])
	default:
		return fmt.Sprint(v)
	}
}

// Items normalizes a named child collection into a slice of records.
// Accepts a sequence of mappings, a single mapping, or nothing at all.
// Entries that are not mappings are skipped.
func Items(value any) []map[string]any {
	switch v := value.(type) {
	case nil:
		return nil
	case map[string]any:
		return []map[string]any{v}
	case []map[string]any:
		return v
	case []any:
		items := make([]map[string]any, 0, len(v))
		for _, entry := range v {
			if m, ok := entry.(map[string]any); ok {
				items = append(items, m)
			}
		}
		return items
	default:
		return nil
	}
}

// SplitReference splits a dot-separated composite reference such as
// "Account.MyRecordType" into its parent and child. Only the first dot
// separates; a reference without a dot returns child == "".
func SplitReference(ref string) (parent, child string) {
	parent, child, _ = strings.Cut(ref, ".")
	return parent, child
}
