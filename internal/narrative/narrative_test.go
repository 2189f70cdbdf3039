package narrative

import (
	"strings"
	"testing"

	"github.com/jonathan/job-gap-analyzer/internal/matching"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullInput() Input {
	return Input{
		JobTitle:       "Customer Support Officer",
		MatchedSkills:  []string{"Customer Service", "MS Excel"},
		MissingSkills:  []string{"Zendesk", "Mandarin"},
		KeywordOverlap: []string{"calls", "service"},
		KeywordGaps:    []string{"crm", "escalation"},
		Coverage:       matching.Coverage{KeywordCoverage: 40, SkillCoverage: 50, OverallMatch: 45},
	}
}

func TestGapAnalysis_Deterministic(t *testing.T) {
	in := fullInput()
	assert.Equal(t, GapAnalysis(in), GapAnalysis(in))
}

func TestGapAnalysis_Sections(t *testing.T) {
	out := GapAnalysis(fullInput())

	assert.Contains(t, out, "**Customer Support Officer**")
	assert.Contains(t, out, "**50%** of the explicit skills")
	assert.Contains(t, out, "**40%** of the main themes")
	assert.Contains(t, out, "**Where you are aligned**")
	assert.Contains(t, out, "Customer Service, MS Excel")
	assert.Contains(t, out, "**Key gaps or under-emphasised areas**")
	assert.Contains(t, out, "Zendesk, Mandarin")
	assert.Contains(t, out, "**How to strengthen your fit**")
	assert.Contains(t, out, "crm, escalation")
}

func TestGapAnalysis_FallbackSentences(t *testing.T) {
	out := GapAnalysis(Input{JobTitle: "Cook"})

	assert.Contains(t, out, "The text overlap is limited")
	assert.Contains(t, out, "There are no obvious missing keywords")
	assert.Contains(t, out, "Your skill set already lines up closely")
	// The ATS tip is always present.
	assert.Contains(t, out, "applicant tracking systems")
}

func TestGapAnalysis_EmptyTitle(t *testing.T) {
	out := GapAnalysis(Input{})
	assert.Contains(t, out, "**this role**")
}

func TestGapAnalysis_KeywordsBackfillSkills(t *testing.T) {
	out := GapAnalysis(Input{
		JobTitle:       "Analyst",
		KeywordOverlap: []string{"python", "sql"},
		KeywordGaps:    []string{"tableau"},
	})
	assert.Contains(t, out, "python, sql")
	assert.Contains(t, out, "tableau")
}

func TestGapAnalysis_CapsListsAtFive(t *testing.T) {
	in := Input{
		JobTitle:      "Analyst",
		MissingSkills: []string{"a", "b", "c", "d", "e", "f", "g"},
	}
	out := GapAnalysis(in)
	assert.Contains(t, out, "a, b, c, d, e")
	assert.NotContains(t, out, "a, b, c, d, e, f")
}

func TestCourseRecommender_RuleOrder(t *testing.T) {
	rec := NewCourseRecommender(nil, "")

	// First match wins: "data" and "sales" both present, data is tested
	// first.
	got := rec.Recommend("Data-driven Sales Analyst", "", "", nil)
	assert.Contains(t, got, "Excel Skills for Business")
}

func TestCourseRecommender_ScenarioC_TitleOnly(t *testing.T) {
	rec := NewCourseRecommender(nil, "")
	got := rec.Recommend("Data Analyst", "", "", nil)
	assert.Contains(t, got, "Excel Skills for Business")
}

func TestCourseRecommender_SupportBeatsData(t *testing.T) {
	rec := NewCourseRecommender(nil, "")
	got := rec.Recommend("Customer Support and Data Entry", "", "", nil)
	assert.Contains(t, got, "Customer Service Excellence")
}

func TestCourseRecommender_GapKeywordsCount(t *testing.T) {
	rec := NewCourseRecommender(nil, "")
	got := rec.Recommend("Officer", "", "", []string{"network"})
	assert.Contains(t, got, "CompTIA")
}

func TestCourseRecommender_Default(t *testing.T) {
	rec := NewCourseRecommender(nil, "")
	got := rec.Recommend("Florist", "", "", nil)
	assert.Contains(t, got, "Career Resilience")
}

func TestCourseRecommender_CustomRules(t *testing.T) {
	rec := NewCourseRecommender([]CourseRule{
		{Keywords: []string{"driver"}, Recommendation: "Defensive Driving"},
	}, "Generic")

	assert.Equal(t, "Defensive Driving", rec.Recommend("Delivery Driver", "", "", nil))
	assert.Equal(t, "Generic", rec.Recommend("Florist", "", "", nil))
}

func TestReport_Render(t *testing.T) {
	r := Report{
		JobSkills:     []string{"Excel", "SQL"},
		MatchedSkills: []string{"Excel"},
		MissingSkills: []string{"SQL"},
		Analysis:      "analysis body",
		Course:        "Some Course",
	}
	out := r.Render()

	require.True(t, strings.HasPrefix(out, "**SKILL MATCH OVERVIEW**"))
	assert.Contains(t, out, "- Job skills (from posting): Excel, SQL")
	assert.Contains(t, out, "- Matched skills in your resume: Excel")
	assert.Contains(t, out, "- Skill gaps to work on: SQL")
	assert.Contains(t, out, "**GAP ANALYSIS**\n\nanalysis body")
	assert.Contains(t, out, "- Suggested course: Some Course")
}

func TestReport_RenderEmpty(t *testing.T) {
	out := Report{Analysis: "x", Course: "y"}.Render()
	assert.Contains(t, out, "Not specified")
	assert.Contains(t, out, "None clearly detected")
	assert.Contains(t, out, "No obvious skill gaps based on text")
}
