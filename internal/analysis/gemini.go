package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/job-gap-analyzer/internal/llm"
	"github.com/jonathan/job-gap-analyzer/internal/schemas"
)

// Prompt size limits. The resume is the largest input and gets truncated
// hardest; keyword lists are capped so a sprawling posting cannot blow the
// prompt up.
const (
	maxResumeRunes    = 3000
	maxPromptKeywords = 20
	maxInsightRunes   = 1500
)

// GeminiAdvisor asks Gemini for the gap analysis and course recommendations
// in a single JSON response, validated against the advice schema before use.
type GeminiAdvisor struct {
	client llm.Client
	tier   llm.ModelTier
}

// NewGeminiAdvisor builds an advisor on top of an LLM client.
func NewGeminiAdvisor(client llm.Client) *GeminiAdvisor {
	return &GeminiAdvisor{client: client, tier: llm.TierStandard}
}

// Name implements Advisor.
func (g *GeminiAdvisor) Name() string { return "gemini" }

// Advise implements Advisor. Any transport, schema or parse failure is
// returned to the caller, which falls back to the static advisor.
func (g *GeminiAdvisor) Advise(ctx context.Context, req AdviceRequest) (Advice, error) {
	prompt := buildAdvicePrompt(req)

	raw, err := g.client.GenerateJSON(ctx, prompt, g.tier)
	if err != nil {
		return Advice{}, fmt.Errorf("generate advice: %w", err)
	}

	if err := schemas.ValidateAdvice([]byte(raw)); err != nil {
		return Advice{}, fmt.Errorf("advice response invalid: %w", err)
	}

	var advice Advice
	if err := json.Unmarshal([]byte(raw), &advice); err != nil {
		return Advice{}, fmt.Errorf("parse advice response: %w", err)
	}
	return advice, nil
}

// QuickInsights compares the resume and job text and returns three short
// one-line insights. Uses the lite model tier; inputs are truncated hard
// since this is meant to be a cheap call.
func (g *GeminiAdvisor) QuickInsights(ctx context.Context, resumeText, jobText string) (string, error) {
	var b strings.Builder
	b.WriteString("You are a helpful career advisor. Provide quick, actionable insights.\n\n")
	b.WriteString("Compare this resume with the job description and give 3 quick insights (each 1 sentence):\n\n")
	fmt.Fprintf(&b, "Resume: %s\n", llm.TruncateRunes(resumeText, maxInsightRunes, "..."))
	fmt.Fprintf(&b, "Job: %s\n\n", llm.TruncateRunes(jobText, maxInsightRunes, "..."))
	b.WriteString("Format:\n- Strength: ...\n- Gap: ...\n- Quick tip: ...\n")

	text, err := g.client.GenerateContent(ctx, b.String(), llm.TierLite)
	if err != nil {
		return "", fmt.Errorf("generate quick insights: %w", err)
	}
	return strings.TrimSpace(text), nil
}

func buildAdvicePrompt(req AdviceRequest) string {
	title := req.Job.Title
	if title == "" {
		title = "this position"
	}
	company := req.Job.Company
	if company == "" {
		company = "the company"
	}

	overlap := firstKeywords(req.KeywordOverlap)
	gaps := firstKeywords(req.KeywordGaps)

	var b strings.Builder
	b.WriteString("You are an expert career counselor and recruitment specialist with deep knowledge of the Singapore job market. ")
	b.WriteString("Provide a comprehensive, actionable skill gap analysis comparing a candidate's resume against a specific job posting. ")
	b.WriteString("Be honest but encouraging, focus on practical insights, highlight transferable skills, and consider Singapore's employment context.\n\n")

	fmt.Fprintf(&b, "JOB DETAILS:\nJob Title: %s\nCompany: %s\nJob Description: %s\n\n",
		title, company, llm.TruncateRunes(req.Job.Description, maxResumeRunes, "..."))
	fmt.Fprintf(&b, "RESUME TEXT:\n%s\n\n", llm.TruncateRunes(req.ResumeText, maxResumeRunes, "..."))
	fmt.Fprintf(&b, "KEYWORD OVERLAP (%d keywords):\n%s\n\n", len(req.KeywordOverlap), strings.Join(overlap, ", "))
	fmt.Fprintf(&b, "MISSING KEYWORDS (%d keywords):\n%s\n\n", len(req.KeywordGaps), strings.Join(gaps, ", "))

	b.WriteString(`Respond with a single JSON object with exactly two string fields:

"analysis": a structured markdown analysis with these sections:
1. **MATCH STRENGTH** (overall assessment in 2-3 sentences)
2. **KEY STRENGTHS** (3-5 specific points where the candidate matches well)
3. **SKILL GAPS** (3-5 areas that need development or are missing)
4. **RECOMMENDATIONS** (3-4 actionable steps to improve candidacy)

"courses": 3-4 course recommendations available in Singapore, ideally SkillsFuture claimable, from reputable institutions (SkillsFuture Singapore, NTUC LearningHub, Singapore Polytechnic, Coursera, SMU Academy, NUS/NTU continuing education). For each include the course name and provider, its relevance to the gaps in one sentence, and the delivery format. Format as a numbered list.

Return only the JSON object, no other text.`)

	return b.String()
}

func firstKeywords(kws []string) []string {
	if len(kws) <= maxPromptKeywords {
		return kws
	}
	return kws[:maxPromptKeywords]
}
