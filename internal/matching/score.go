package matching

import (
	"math"

	"github.com/jonathan/job-gap-analyzer/internal/keywords"
)

// Coverage holds the percentage fit metrics for one job/resume pair. All
// values are integers in [0,100]; a metric whose denominator is zero is 0.
type Coverage struct {
	// KeywordCoverage is the share of job keywords present in the resume.
	KeywordCoverage int `json:"keyword_coverage"`
	// SkillCoverage is the share of explicit job skills matched.
	SkillCoverage int `json:"skill_coverage"`
	// OverallMatch averages the metrics that have a meaningful denominator.
	// When the posting lists no skills it equals KeywordCoverage.
	OverallMatch int `json:"overall_match"`
}

// Score computes coverage percentages from the keyword sets and the skill
// match partition. Rounding is half away from zero (math.Round), results are
// clamped to [0,100].
func Score(jobKW, resumeKW keywords.Set, match SkillMatch) Coverage {
	var cov Coverage

	overlap := 0
	for kw := range jobKW {
		if resumeKW.Contains(kw) {
			overlap++
		}
	}

	haveKeywords := len(jobKW) > 0
	haveSkills := match.Total() > 0

	if haveKeywords {
		cov.KeywordCoverage = roundPct(float64(overlap) / float64(len(jobKW)))
	}
	if haveSkills {
		cov.SkillCoverage = roundPct(float64(len(match.Matched)) / float64(match.Total()))
	}

	switch {
	case haveKeywords && haveSkills:
		cov.OverallMatch = clampPct(int(math.Round(float64(cov.KeywordCoverage+cov.SkillCoverage) / 2)))
	case haveKeywords:
		cov.OverallMatch = cov.KeywordCoverage
	case haveSkills:
		cov.OverallMatch = cov.SkillCoverage
	}

	return cov
}

func roundPct(ratio float64) int {
	return clampPct(int(math.Round(ratio * 100)))
}

func clampPct(pct int) int {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
