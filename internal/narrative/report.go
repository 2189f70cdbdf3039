package narrative

import (
	"fmt"
	"strings"
)

// Report assembles the final analysis text shown to the user: the skill
// match overview, the gap-analysis narrative, and the course recommendation.
type Report struct {
	JobSkills     []string
	MatchedSkills []string
	MissingSkills []string
	Analysis      string
	Course        string
}

// Render produces the full report text. Deterministic.
func (r Report) Render() string {
	var b strings.Builder

	b.WriteString("**SKILL MATCH OVERVIEW**\n\n")
	fmt.Fprintf(&b, "- Job skills (from posting): %s\n", listOr(r.JobSkills, "Not specified"))
	fmt.Fprintf(&b, "- Matched skills in your resume: %s\n", listOr(r.MatchedSkills, "None clearly detected"))
	fmt.Fprintf(&b, "- Skill gaps to work on: %s\n\n", listOr(r.MissingSkills, "No obvious skill gaps based on text"))

	b.WriteString("**GAP ANALYSIS**\n\n")
	b.WriteString(r.Analysis)
	b.WriteString("\n\n")

	b.WriteString("**COURSE RECOMMENDATION**\n\n")
	fmt.Fprintf(&b, "- Suggested course: %s\n", r.Course)

	return b.String()
}

func listOr(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, ", ")
}
