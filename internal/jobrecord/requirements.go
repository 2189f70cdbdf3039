package jobrecord

import (
	"regexp"
	"sort"
	"strings"
)

// requirementListKeys are the current-generation keys whose values may be a
// list of requirement items, a wrapper map, or a plain string.
var requirementListKeys = []string{
	"id_Job_Requirement",
	"id_Job_Requirements",
	"Job_Requirement",
	"Job_Requirements",
}

// requirementSubKeys are probed inside requirement items and wrapper maps.
var requirementSubKeys = []string{
	"caption", "value", "text", "requirements",
	"description", "JobRequirement", "JobRequirements",
}

// legacyRequirementKeys are older string/caption-style requirement fields.
var legacyRequirementKeys = []string{
	"JobRequirement",
	"JobRequirements",
	"Requirement",
	"Requirements",
	"job_requirement",
}

// legacyRequirementSubKeys are the wrapper sub-keys used by the legacy tier.
var legacyRequirementSubKeys = []string{"caption", "value", "text", "requirements"}

// requirementIndicators mark keys that look like they hold requirement or
// qualification text, for the fuzzy recursive tier. Keys and indicators are
// compared lowercased with spaces and underscores removed, so CamelCase and
// snake_case keys like "AboutYou" or "what_you_bring" still match the
// multiword indicators.
var requirementIndicators = []string{
	"require", "qualif", "about you", "what you bring", "who you are",
}

// maxWalkDepth caps the fuzzy recursive search. Decoded JSON cannot be
// cyclic, but payloads from the backend are untrusted and may nest
// arbitrarily deep.
const maxWalkDepth = 32

// Requirements extracts the job requirement text using a four-tier fallback:
// known list-style keys, legacy string-style keys, a fuzzy recursive key
// search, and finally carving a requirements section out of the description.
// Each tier short-circuits on success. Returns "" when every tier comes up
// empty.
func (r Record) Requirements() string {
	if len(r) == 0 {
		return ""
	}

	// Tier 1: current-generation keys.
	for _, key := range requirementListKeys {
		if s := extractRequirementValue(r[key], requirementSubKeys); s != "" {
			return strings.TrimSpace(s)
		}
	}

	// Tier 2: legacy string/caption-style keys.
	for _, key := range legacyRequirementKeys {
		if s := extractRequirementValue(r[key], legacyRequirementSubKeys); s != "" {
			return strings.TrimSpace(s)
		}
	}

	// Tier 3: fuzzy recursive search over the whole record.
	if texts := collectRequirementTexts(map[string]any(r)); len(texts) > 0 {
		return strings.Join(texts, "\n")
	}

	// Tier 4: carve a section out of the description blob.
	return CarveRequirements(r.Description())
}

// extractRequirementValue unwraps one requirement field value, which may be
// a list of strings or wrapper maps, a single wrapper map, or a plain
// string. Returns "" when nothing usable is found.
func extractRequirementValue(val any, subKeys []string) string {
	switch v := val.(type) {
	case nil:
		return ""
	case []any:
		var parts []string
		for _, item := range v {
			switch it := item.(type) {
			case string:
				if s := strings.TrimSpace(it); s != "" {
					parts = append(parts, s)
				}
			case map[string]any:
				if s := probeSubKeys(it, subKeys); s != "" {
					parts = append(parts, strings.TrimSpace(s))
				}
			}
		}
		return strings.Join(parts, "\n")
	case map[string]any:
		return probeSubKeys(v, subKeys)
	case string:
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// collectRequirementTexts walks the record tree looking for keys whose name
// suggests requirement/qualification content. String values under a matching
// key are collected directly; nested structures under a matching key are
// harvested wholesale (no second filter). Non-matching keys are still
// descended into so matching keys deeper in the tree are found. Map keys are
// visited in sorted order so the collected text is deterministic, and the
// result is deduplicated preserving first-seen order.
func collectRequirementTexts(root map[string]any) []string {
	var texts []string

	var walk func(node any, depth int)
	var harvest func(node any, depth int)

	// harvest collects every string in a subtree that already matched the
	// key filter.
	harvest = func(node any, depth int) {
		if depth > maxWalkDepth {
			return
		}
		switch n := node.(type) {
		case string:
			if s := strings.TrimSpace(n); s != "" {
				texts = append(texts, s)
			}
		case map[string]any:
			for _, k := range sortedKeys(n) {
				harvest(n[k], depth+1)
			}
		case []any:
			for _, item := range n {
				harvest(item, depth+1)
			}
		}
	}

	walk = func(node any, depth int) {
		if depth > maxWalkDepth {
			return
		}
		switch n := node.(type) {
		case map[string]any:
			for _, k := range sortedKeys(n) {
				v := n[k]
				if keyLooksLikeRequirement(k) {
					switch vv := v.(type) {
					case string:
						if s := strings.TrimSpace(vv); s != "" {
							texts = append(texts, s)
						}
					case map[string]any, []any:
						harvest(vv, depth+1)
					}
				} else {
					switch v.(type) {
					case map[string]any, []any:
						walk(v, depth+1)
					}
				}
			}
		case []any:
			for _, item := range n {
				walk(item, depth+1)
			}
		}
	}

	walk(root, 0)

	seen := make(map[string]struct{}, len(texts))
	uniq := texts[:0]
	for _, t := range texts {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		uniq = append(uniq, t)
	}
	return uniq
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var keySeparators = strings.NewReplacer(" ", "", "_", "")

func keyLooksLikeRequirement(key string) bool {
	compact := keySeparators.Replace(strings.ToLower(key))
	for _, indicator := range requirementIndicators {
		if strings.Contains(compact, strings.ReplaceAll(indicator, " ", "")) {
			return true
		}
	}
	return false
}

var (
	// requirementHeading matches section headings commonly used in job
	// description blobs.
	requirementHeading = regexp.MustCompile(`(?i)(requirements|requirement|qualifications|about you|what you bring|who you are)`)

	// nextHeading matches a Title Case heading line ending with a colon,
	// which terminates a carved requirements section.
	nextHeading = regexp.MustCompile(`\n[A-Z][A-Za-z0-9 /&]{3,}:\s*\n`)
)

// CarveRequirements pulls a requirements/qualifications section out of a
// description blob. Returns "" when no known heading is present.
func CarveRequirements(description string) string {
	if description == "" {
		return ""
	}

	text := strings.ReplaceAll(description, "\r", "\n")

	// Split keeping the matched heading: [before, heading1, after1, ...].
	parts := splitKeepingMatches(requirementHeading, text)
	if len(parts) < 3 {
		return ""
	}

	section := parts[2]

	// Stop at the next heading-style line if one follows.
	if loc := nextHeading.FindStringIndex(section); loc != nil {
		section = section[:loc[0]]
	}

	return strings.TrimSpace(section)
}

// splitKeepingMatches splits text around every match of re, interleaving the
// matched text between the surrounding segments.
func splitKeepingMatches(re *regexp.Regexp, text string) []string {
	matches := re.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return []string{text}
	}
	parts := make([]string, 0, len(matches)*2+1)
	prev := 0
	for _, m := range matches {
		parts = append(parts, text[prev:m[0]], text[m[0]:m[1]])
		prev = m[1]
	}
	parts = append(parts, text[prev:])
	return parts
}
