package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-gap-analyzer/internal/llm"
)

type fakeLLM struct {
	response string
	err      error
	prompt   string
}

func (f *fakeLLM) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.prompt = prompt
	return f.response, f.err
}

func (f *fakeLLM) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.prompt = prompt
	return f.response, f.err
}

func (f *fakeLLM) Close() error { return nil }

func sampleAdviceRequest() AdviceRequest {
	return AdviceRequest{
		Job:            sampleJob(),
		ResumeText:     sampleResume,
		KeywordOverlap: []string{"customer", "excel"},
		KeywordGaps:    []string{"logistics"},
	}
}

func TestGeminiAdvisor_Advise(t *testing.T) {
	client := &fakeLLM{response: `{"analysis": "Good fit overall.", "courses": "1. Excel Skills - Coursera"}`}
	adv := NewGeminiAdvisor(client)

	advice, err := adv.Advise(context.Background(), sampleAdviceRequest())
	require.NoError(t, err)
	assert.Equal(t, "Good fit overall.", advice.Analysis)
	assert.Contains(t, advice.Courses, "Excel Skills")

	// Prompt carries the job context and the keyword lists.
	assert.Contains(t, client.prompt, "Customer Support Executive")
	assert.Contains(t, client.prompt, "Acme Logistics")
	assert.Contains(t, client.prompt, "customer, excel")
	assert.Contains(t, client.prompt, "logistics")
}

func TestGeminiAdvisor_TransportError(t *testing.T) {
	adv := NewGeminiAdvisor(&fakeLLM{err: errors.New("rate limited")})
	_, err := adv.Advise(context.Background(), sampleAdviceRequest())
	assert.Error(t, err)
}

func TestGeminiAdvisor_SchemaViolation(t *testing.T) {
	// Missing the courses field.
	adv := NewGeminiAdvisor(&fakeLLM{response: `{"analysis": "Good fit."}`})
	_, err := adv.Advise(context.Background(), sampleAdviceRequest())
	assert.Error(t, err)
}

func TestGeminiAdvisor_QuickInsights(t *testing.T) {
	client := &fakeLLM{response: "  - Strength: solid excel background.\n- Gap: no SQL.\n- Quick tip: add metrics.  "}
	adv := NewGeminiAdvisor(client)

	insights, err := adv.QuickInsights(context.Background(), sampleResume, "Analyst role using excel and sql.")
	require.NoError(t, err)
	assert.Equal(t, "- Strength: solid excel background.\n- Gap: no SQL.\n- Quick tip: add metrics.", insights)
	assert.Contains(t, client.prompt, "3 quick insights")
}

func TestBuildAdvicePrompt_TruncatesResume(t *testing.T) {
	req := sampleAdviceRequest()
	req.ResumeText = strings.Repeat("x", maxResumeRunes+500)

	prompt := buildAdvicePrompt(req)
	assert.NotContains(t, prompt, strings.Repeat("x", maxResumeRunes+1))
}

func TestBuildAdvicePrompt_CapsKeywords(t *testing.T) {
	req := sampleAdviceRequest()
	for i := 0; i < maxPromptKeywords+10; i++ {
		req.KeywordGaps = append(req.KeywordGaps, "kw"+strings.Repeat("z", i+1))
	}

	prompt := buildAdvicePrompt(req)
	// The count reflects the full list even though only the head is printed.
	assert.Contains(t, prompt, "MISSING KEYWORDS (31 keywords)")
	assert.NotContains(t, prompt, req.KeywordGaps[maxPromptKeywords+5])
}
