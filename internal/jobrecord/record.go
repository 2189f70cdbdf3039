// Package jobrecord locates semantic fields (description, requirements,
// skills) inside the loosely-structured job records returned by the job
// board API. The backend has gone through several schema generations, so the
// same field can live under different keys, or one level down inside a
// caption/value wrapper. Every accessor tolerates missing or oddly-typed
// values and returns an empty result instead of failing.
package jobrecord

import (
	"fmt"
	"strings"
)

// Record is one job posting as decoded from the API response. No schema is
// guaranteed; values may be scalars, nested maps, or slices of either.
type Record map[string]any

// descriptionKeys are the top-level keys that have historically held the job
// description. Order is the precedence order: the first key with a usable
// value wins, candidates are never merged.
var descriptionKeys = []string{
	"JobDescription",
	"Description",
	"job_description",
	"jobDesc",
}

// captionSubKeys are probed, in order, when a field value turns out to be a
// wrapper map instead of a plain string.
var captionSubKeys = []string{"caption", "value", "text", "description"}

// Description returns the job description text, trimmed, or "" when no
// candidate key holds a usable value.
func (r Record) Description() string {
	for _, key := range descriptionKeys {
		val, ok := r[key]
		if !ok || val == nil {
			continue
		}
		switch v := val.(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case map[string]any:
			if s := probeSubKeys(v, captionSubKeys); s != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

// Title returns the posting title, or "" when absent.
func (r Record) Title() string {
	return r.stringField("Title", "JobTitle", "title")
}

// ID returns the logical job identifier used for deduplication in the
// keyword store. Falls back to "" when the record carries no id at all.
func (r Record) ID() string {
	for _, key := range []string{"sid", "job_sid", "id", "JobID"} {
		if v, ok := r[key]; ok && v != nil {
			s := strings.TrimSpace(coerceString(v))
			if s != "" && s != "0" {
				return s
			}
		}
	}
	return ""
}

// Skills returns the posting's explicit skill list, coercing each raw value
// to a trimmed string. A scalar value yields a single-element list. Empty
// entries are dropped.
func (r Record) Skills() []string {
	val, ok := r["id_Job_Skills"]
	if !ok || val == nil {
		return nil
	}

	var out []string
	appendSkill := func(v any) {
		s := strings.TrimSpace(coerceString(v))
		if s != "" {
			out = append(out, s)
		}
	}

	switch v := val.(type) {
	case []any:
		for _, item := range v {
			appendSkill(item)
		}
	default:
		appendSkill(v)
	}
	return out
}

// stringField returns the first non-empty string value among the given keys,
// unwrapping caption-style maps.
func (r Record) stringField(keys ...string) string {
	for _, key := range keys {
		val, ok := r[key]
		if !ok || val == nil {
			continue
		}
		switch v := val.(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case map[string]any:
			if s := probeSubKeys(v, captionSubKeys); s != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

// probeSubKeys returns the first non-empty string found under the given
// sub-keys of a wrapper map.
func probeSubKeys(m map[string]any, subKeys []string) string {
	for _, sub := range subKeys {
		if s, ok := m[sub].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

// coerceString renders any scalar as a string the way the matching layer
// expects: strings pass through, numbers drop a trailing ".0" introduced by
// JSON decoding, everything else goes through fmt.
func coerceString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}
