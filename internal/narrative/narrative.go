// Package narrative produces the deterministic, offline gap-analysis text
// and course recommendation. It is the required fallback when no LLM is
// configured, so nothing in this package can fail: every input combination
// yields complete prose, byte-identical for identical inputs.
package narrative

import (
	"fmt"
	"strings"

	"github.com/jonathan/job-gap-analyzer/internal/matching"
)

// topN caps how many strengths/gaps are named in the narrative.
const topN = 5

// Input carries everything the generator needs. Slices are used in the
// order given; callers pass sorted keyword lists for stable output.
type Input struct {
	JobTitle       string
	MatchedSkills  []string
	MissingSkills  []string
	KeywordOverlap []string
	KeywordGaps    []string
	Coverage       matching.Coverage
}

// GapAnalysis renders the structured narrative: an overview line with the
// coverage percentages, an alignment section, a gaps section, and fixed
// strengthening tips. Pure function of its input.
func GapAnalysis(in Input) string {
	title := in.JobTitle
	if title == "" {
		title = "this role"
	}

	strengths := firstN(in.MatchedSkills, topN)
	if len(strengths) == 0 {
		strengths = firstN(in.KeywordOverlap, topN)
	}
	gaps := firstN(in.MissingSkills, topN)
	if len(gaps) == 0 {
		gaps = firstN(in.KeywordGaps, topN)
	}

	var lines []string

	lines = append(lines, fmt.Sprintf(
		"For the **%s** role, your resume appears to cover roughly **%d%%** of the explicit skills and about **%d%%** of the main themes in the job description and requirements.",
		title, in.Coverage.SkillCoverage, in.Coverage.KeywordCoverage,
	))

	lines = append(lines, "", "**Where you are aligned**")
	if len(strengths) > 0 {
		lines = append(lines, fmt.Sprintf(
			"- Your profile shows solid exposure to: **%s**. These map well to what the description and requirements emphasise.",
			strings.Join(strengths, ", "),
		))
	} else {
		lines = append(lines,
			"- The text overlap is limited, but there are still some relevant experiences that could be reframed to match the posting more directly.",
		)
	}

	lines = append(lines, "", "**Key gaps or under-emphasised areas**")
	if len(gaps) > 0 {
		lines = append(lines, fmt.Sprintf(
			"- The job text and skill list highlight: **%s**. These either do not appear clearly in your resume or are only implied.",
			strings.Join(gaps, ", "),
		))
	} else {
		lines = append(lines,
			"- There are no obvious missing keywords, but you may still want to sharpen how specific tools, domains and results are described.",
		)
	}

	lines = append(lines, "", "**How to strengthen your fit**")
	if len(in.MissingSkills) > 0 {
		lines = append(lines, fmt.Sprintf(
			"- Add or expand bullet points that explicitly mention the missing skills (**%s**), ideally with metrics or outcomes (e.g. response time, revenue, cost savings, satisfaction scores).",
			strings.Join(firstN(in.MissingSkills, topN), ", "),
		))
	} else {
		lines = append(lines,
			"- Your skill set already lines up closely; focus on clearer impact statements (numbers, scale, complexity) for your strongest achievements.",
		)
	}
	if len(in.KeywordGaps) > 0 {
		lines = append(lines, fmt.Sprintf(
			"- Several concepts from the posting (e.g. **%s**) do not show up clearly. If you have experience in these, bring them forward with concrete examples; if not, consider small projects or courses to build and demonstrate them.",
			strings.Join(firstN(in.KeywordGaps, topN), ", "),
		))
	}
	lines = append(lines,
		"- Mirror some of the phrasing from the job posting (where truthful) so that applicant tracking systems can recognise the match more easily.",
	)

	return strings.Join(lines, "\n")
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
