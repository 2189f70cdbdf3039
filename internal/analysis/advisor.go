package analysis

import (
	"context"

	"github.com/jonathan/job-gap-analyzer/internal/jobrecord"
	"github.com/jonathan/job-gap-analyzer/internal/matching"
)

// AdviceRequest carries everything an advisor may use. Advisors must treat
// the request as read-only.
type AdviceRequest struct {
	Job            jobrecord.Summary
	ResumeText     string
	MatchedSkills  []string
	MissingSkills  []string
	KeywordOverlap []string
	KeywordGaps    []string
	Coverage       matching.Coverage
}

// Advice is an advisor's prose output: the gap analysis and the course
// recommendations, both markdown.
type Advice struct {
	Analysis string `json:"analysis"`
	Courses  string `json:"courses"`
}

// Advisor produces the advisory text for one analysis. Implementations are
// the Gemini-backed advisor and the deterministic static one.
type Advisor interface {
	// Advise generates advice for the request.
	Advise(ctx context.Context, req AdviceRequest) (Advice, error)
	// Name identifies the advisor in results and logs.
	Name() string
}
