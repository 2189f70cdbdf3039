package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-gap-analyzer/internal/analysis"
	"github.com/jonathan/job-gap-analyzer/internal/config"
	"github.com/jonathan/job-gap-analyzer/internal/fetch"
	"github.com/jonathan/job-gap-analyzer/internal/jobrecord"
	"github.com/jonathan/job-gap-analyzer/internal/keywords"
	"github.com/jonathan/job-gap-analyzer/internal/llm"
	"github.com/jonathan/job-gap-analyzer/internal/resume"
)

var analyzeCommand = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a resume against a job posting",
	Long: `Runs the full gap analysis offline: extracts the resume text, flattens the
job record, matches skills and keywords, and prints the report.

The job comes from a job record JSON file (--job) or a posting URL
(--job-url). With a Gemini API key the advisory text comes from the model;
without one a deterministic narrative is generated instead.`,
	RunE: runAnalyzeCmd,
}

var (
	analyzeConfigPath string
	analyzeResume     string
	analyzeJob        string
	analyzeJobURL     string
	analyzeJobTitle   string
	analyzeAPIKey     string
	analyzeMinKwLen   int
	analyzeOut        string
	analyzeInsights   bool
	analyzeVerbose    bool
)

func init() {
	analyzeCommand.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	analyzeCommand.Flags().StringVarP(&analyzeResume, "resume", "r", "", "Path to resume file (.txt, .pdf or .docx)")
	analyzeCommand.Flags().StringVarP(&analyzeJob, "job", "j", "", "Path to a job record JSON file (mutually exclusive with --job-url)")
	analyzeCommand.Flags().StringVar(&analyzeJobURL, "job-url", "", "URL to fetch the job posting from (mutually exclusive with --job)")
	analyzeCommand.Flags().StringVar(&analyzeJobTitle, "title", "", "Job title override (useful with --job-url)")
	analyzeCommand.Flags().IntVar(&analyzeMinKwLen, "min-keyword-len", 0, "Minimum keyword token length")
	analyzeCommand.Flags().StringVarP(&analyzeOut, "out", "o", "", "Write the full analysis result JSON to this file")
	analyzeCommand.Flags().BoolVar(&analyzeInsights, "quick-insights", false, "Also print three short model-generated fit insights (needs an API key)")
	analyzeCommand.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	analyzeCommand.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(analyzeCommand)
}

func runAnalyzeCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadMergedConfig(cmd, analyzeConfigPath, func(c *config.Config) {
		if cmd.Flags().Changed("resume") {
			c.Resume = analyzeResume
		}
		if cmd.Flags().Changed("job") {
			c.Job = analyzeJob
		}
		if cmd.Flags().Changed("job-url") {
			c.JobURL = analyzeJobURL
		}
		if cmd.Flags().Changed("api-key") {
			c.APIKey = analyzeAPIKey
		}
		if cmd.Flags().Changed("min-keyword-len") {
			c.MinKeywordLen = analyzeMinKwLen
		}
		if cmd.Flags().Changed("verbose") {
			c.Verbose = analyzeVerbose
		}
	})
	if err != nil {
		return err
	}

	if cfg.Resume == "" {
		return fmt.Errorf("a resume file is required (--resume)")
	}
	if cfg.Job == "" && cfg.JobURL == "" {
		return fmt.Errorf("a job source is required (--job or --job-url)")
	}

	resumeText, err := resume.ExtractFile(cfg.Resume)
	if err != nil {
		return fmt.Errorf("failed to extract resume text: %w", err)
	}
	if cfg.Verbose {
		fmt.Fprintf(os.Stdout, "Extracted %d characters of resume text\n", len(resumeText))
	}

	summary, err := loadJobSummary(ctx, cfg)
	if err != nil {
		return err
	}
	if analyzeJobTitle != "" {
		summary.Title = analyzeJobTitle
	}

	opts := []analysis.Option{
		analysis.WithExtractor(keywords.NewExtractor(nil, cfg.MinKeywordLen)),
	}
	var advisor *analysis.GeminiAdvisor
	if cfg.APIKey != "" {
		client, err := llm.NewClient(ctx, nil, cfg.APIKey)
		if err != nil {
			return fmt.Errorf("failed to create LLM client: %w", err)
		}
		defer func() { _ = client.Close() }()
		advisor = analysis.NewGeminiAdvisor(client)
		opts = append(opts, analysis.WithAdvisor(advisor))
	}

	result := analysis.New(opts...).Analyze(ctx, summary, resumeText)

	fmt.Fprintf(os.Stdout, "Overall match: %d%% (skills %d%%, keywords %d%%)\n\n",
		result.Coverage.OverallMatch, result.Coverage.SkillCoverage, result.Coverage.KeywordCoverage)
	fmt.Fprintln(os.Stdout, result.Report)

	if analyzeInsights {
		if advisor == nil {
			fmt.Fprintln(os.Stderr, "Skipping quick insights: no API key configured")
		} else {
			insights, err := advisor.QuickInsights(ctx, resumeText, summary.Description)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Quick insights failed: %v\n", err)
			} else {
				fmt.Fprintf(os.Stdout, "\n**QUICK INSIGHTS**\n\n%s\n", insights)
			}
		}
	}

	if analyzeOut != "" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		if err := os.WriteFile(analyzeOut, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", analyzeOut, err)
		}
		fmt.Fprintf(os.Stdout, "\nFull result written to %s\n", analyzeOut)
	}

	return nil
}

// loadJobSummary builds the flattened job view from whichever source the
// config names. A record file may hold either a bare job record or a search
// result item with job/company wrappers.
func loadJobSummary(ctx context.Context, cfg config.Config) (jobrecord.Summary, error) {
	if cfg.Job != "" {
		data, err := os.ReadFile(cfg.Job)
		if err != nil {
			return jobrecord.Summary{}, fmt.Errorf("failed to read job file: %w", err)
		}

		var item jobrecord.Item
		if err := json.Unmarshal(data, &item); err != nil || item.Job == nil {
			var rec jobrecord.Record
			if err := json.Unmarshal(data, &rec); err != nil {
				return jobrecord.Summary{}, fmt.Errorf("failed to parse job JSON: %w", err)
			}
			item = jobrecord.Item{Job: rec}
		}
		return jobrecord.Summarize(item, 0), nil
	}

	result, err := fetch.JobPosting(ctx, cfg.JobURL, nil)
	if err != nil {
		return jobrecord.Summary{}, fmt.Errorf("failed to fetch job posting: %w", err)
	}
	return jobrecord.Summary{
		JobID:       "job-0",
		Description: result.Text,
		URL:         cfg.JobURL,
	}, nil
}

// loadMergedConfig loads the optional config file, applies explicit flag
// overrides, resolves env and defaults, and validates.
func loadMergedConfig(_ *cobra.Command, configPath string, applyFlags func(*config.Config)) (config.Config, error) {
	var cfg config.Config
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	applyFlags(&cfg)

	cfg = config.Resolve(cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
