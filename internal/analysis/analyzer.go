// Package analysis orchestrates the full gap analysis for one job/resume
// pair: skill matching, keyword overlap, coverage scoring, and the advisory
// text. Coverage numbers always come from the lexical engine; the advisor
// only ever contributes prose.
package analysis

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/job-gap-analyzer/internal/jobrecord"
	"github.com/jonathan/job-gap-analyzer/internal/keywords"
	"github.com/jonathan/job-gap-analyzer/internal/matching"
	"github.com/jonathan/job-gap-analyzer/internal/narrative"
)

// Result is the complete outcome of one analysis run.
type Result struct {
	ID             string              `json:"id"`
	Job            jobrecord.Summary   `json:"job"`
	Skills         matching.SkillMatch `json:"skills"`
	Coverage       matching.Coverage   `json:"coverage"`
	KeywordOverlap []string            `json:"keyword_overlap"`
	KeywordGaps    []string            `json:"keyword_gaps"`
	Analysis       string              `json:"analysis"`
	Course         string              `json:"course"`
	Report         string              `json:"report"`
	// Source names the advisor that produced the prose: "gemini" or "static".
	Source string `json:"source"`
}

// Analyzer runs the pipeline with a configured keyword extractor, course
// recommender and advisor. The zero-value collaborators are filled in by New.
type Analyzer struct {
	extractor *keywords.Extractor
	courses   *narrative.CourseRecommender
	advisor   Advisor
	static    *StaticAdvisor
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithExtractor substitutes the keyword extractor.
func WithExtractor(e *keywords.Extractor) Option {
	return func(a *Analyzer) { a.extractor = e }
}

// WithCourseRecommender substitutes the course rule table.
func WithCourseRecommender(c *narrative.CourseRecommender) Option {
	return func(a *Analyzer) { a.courses = c }
}

// WithAdvisor sets the primary advisor. When it fails the analyzer falls
// back to the deterministic static advisor; when it is nil the static
// advisor is the only path.
func WithAdvisor(adv Advisor) Option {
	return func(a *Analyzer) { a.advisor = adv }
}

// New builds an Analyzer with default collaborators.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		extractor: keywords.NewExtractor(nil, keywords.DefaultMinLength),
		courses:   narrative.NewCourseRecommender(nil, ""),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.static = NewStaticAdvisor(a.courses)
	return a
}

// Analyze runs the full pipeline against a flattened job summary and the
// extracted resume text. It never returns an error: when the configured
// advisor fails, the deterministic advisor takes over and the result is
// still complete.
func (a *Analyzer) Analyze(ctx context.Context, job jobrecord.Summary, resumeText string) Result {
	match := matching.MatchSkills(job.Skills, resumeText)

	// Keywords come from description, requirements and the skill list
	// combined, so a skill named only in the sidebar still counts.
	combined := strings.Join([]string{
		job.Description,
		job.Requirements,
		strings.Join(job.Skills, " "),
	}, " ")

	jobKW := a.extractor.Extract(combined)
	resumeKW := a.extractor.Extract(resumeText)
	overlap, gaps := keywords.Overlap(jobKW, resumeKW)
	cov := matching.Score(jobKW, resumeKW, match)

	req := AdviceRequest{
		Job:            job,
		ResumeText:     resumeText,
		MatchedSkills:  match.Matched,
		MissingSkills:  match.Missing,
		KeywordOverlap: overlap,
		KeywordGaps:    gaps,
		Coverage:       cov,
	}

	advice, source := a.advise(ctx, req)

	report := narrative.Report{
		JobSkills:     job.Skills,
		MatchedSkills: match.Matched,
		MissingSkills: match.Missing,
		Analysis:      advice.Analysis,
		Course:        advice.Courses,
	}

	return Result{
		ID:             uuid.NewString(),
		Job:            job,
		Skills:         match,
		Coverage:       cov,
		KeywordOverlap: overlap,
		KeywordGaps:    gaps,
		Analysis:       advice.Analysis,
		Course:         advice.Courses,
		Report:         report.Render(),
		Source:         source,
	}
}

func (a *Analyzer) advise(ctx context.Context, req AdviceRequest) (Advice, string) {
	if a.advisor != nil {
		advice, err := a.advisor.Advise(ctx, req)
		if err == nil {
			return advice, a.advisor.Name()
		}
		log.Printf("advisor %s failed, using static fallback: %v", a.advisor.Name(), err)
	}
	advice, _ := a.static.Advise(ctx, req)
	return advice, a.static.Name()
}
