package analysis

import (
	"context"
	"strings"

	"github.com/jonathan/job-gap-analyzer/internal/narrative"
)

// StaticAdvisor generates the deterministic offline narrative and course
// recommendation. It never returns an error, which makes it the safe
// fallback for every other advisor.
type StaticAdvisor struct {
	courses *narrative.CourseRecommender
}

// NewStaticAdvisor builds a static advisor. A nil recommender uses the
// built-in rule table.
func NewStaticAdvisor(courses *narrative.CourseRecommender) *StaticAdvisor {
	if courses == nil {
		courses = narrative.NewCourseRecommender(nil, "")
	}
	return &StaticAdvisor{courses: courses}
}

// Name implements Advisor.
func (s *StaticAdvisor) Name() string { return "static" }

// Advise implements Advisor. The course lookup prefers missing skills over
// keyword gaps, matching how the narrative names gaps.
func (s *StaticAdvisor) Advise(_ context.Context, req AdviceRequest) (Advice, error) {
	gaps := req.MissingSkills
	if len(gaps) == 0 {
		gaps = req.KeywordGaps
	}

	analysis := narrative.GapAnalysis(narrative.Input{
		JobTitle:       req.Job.Title,
		MatchedSkills:  req.MatchedSkills,
		MissingSkills:  req.MissingSkills,
		KeywordOverlap: req.KeywordOverlap,
		KeywordGaps:    req.KeywordGaps,
		Coverage:       req.Coverage,
	})

	course := s.courses.Recommend(req.Job.Title, strings.Join(req.Job.Skills, " "), req.Job.Requirements, gaps)

	return Advice{Analysis: analysis, Courses: course}, nil
}
