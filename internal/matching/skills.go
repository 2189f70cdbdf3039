// Package matching compares a resume against a job posting: explicit skill
// matching via phrase-then-token containment, and coverage scoring over
// keyword and skill sets. All functions are pure.
package matching

import (
	"strings"

	"github.com/jonathan/job-gap-analyzer/internal/textproc"
)

// minTokenLength is the cutoff for the token fallback: only normalized skill
// tokens longer than this participate in substring matching.
const minTokenLength = 2

// SkillMatch partitions a job's skill list into skills found in the resume
// and skills missing from it. Order follows the input order within each
// partition; the original skill spelling is preserved.
type SkillMatch struct {
	Matched []string `json:"matched"`
	Missing []string `json:"missing"`
}

// Total returns the number of distinct usable skills that were classified.
func (m SkillMatch) Total() int {
	return len(m.Matched) + len(m.Missing)
}

// MatchSkills classifies each job skill against the resume text. A skill
// matches when its normalized form appears as a contiguous substring of the
// lowercased resume, or, failing that, when any of its whitespace-split
// tokens longer than two characters does.
//
// Matching is substring containment, not token-boundary aware: a short token
// like "excel" also matches inside "excellent". That looseness is inherited
// behavior the narrative output depends on; do not tighten it here.
func MatchSkills(jobSkills []string, resumeText string) SkillMatch {
	resumeNorm := strings.ToLower(resumeText)

	var match SkillMatch
	for _, raw := range jobSkills {
		skill := strings.TrimSpace(raw)
		if skill == "" {
			continue
		}
		norm := textproc.NormalizeSkill(skill)
		if norm == "" {
			continue
		}

		matched := strings.Contains(resumeNorm, norm)
		if !matched {
			for _, tok := range strings.Fields(norm) {
				if len(tok) > minTokenLength && strings.Contains(resumeNorm, tok) {
					matched = true
					break
				}
			}
		}

		if matched {
			match.Matched = append(match.Matched, skill)
		} else {
			match.Missing = append(match.Missing, skill)
		}
	}
	return match
}
