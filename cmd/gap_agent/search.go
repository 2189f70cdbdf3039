package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-gap-analyzer/internal/config"
	"github.com/jonathan/job-gap-analyzer/internal/jobsapi"
	"github.com/jonathan/job-gap-analyzer/internal/store"
)

var searchCommand = &cobra.Command{
	Use:   "search",
	Short: "Search job postings and store them locally",
	Long: `Queries the job board for postings matching the keywords, stores them in
the local SQLite store, and prints a summary table.

With --local the remote backend is skipped and only the local store is
searched.`,
	RunE: runSearchCmd,
}

var (
	searchConfigPath string
	searchKeywords   string
	searchPages      int
	searchPerPage    int
	searchStorePath  string
	searchLocal      bool
	searchLimit      int
)

func init() {
	searchCommand.Flags().StringVar(&searchConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	searchCommand.Flags().StringVarP(&searchKeywords, "keywords", "k", "", "Search keywords (required)")
	searchCommand.Flags().IntVar(&searchPages, "pages", 0, "Number of result pages to fetch")
	searchCommand.Flags().IntVar(&searchPerPage, "per-page", 0, "Results per page")
	searchCommand.Flags().StringVar(&searchStorePath, "store", "", "Path to the SQLite job store")
	searchCommand.Flags().BoolVar(&searchLocal, "local", false, "Search the local store instead of the remote backend")
	searchCommand.Flags().IntVar(&searchLimit, "limit", 0, "Maximum local results (only with --local)")

	rootCmd.AddCommand(searchCommand)
}

func runSearchCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadMergedConfig(cmd, searchConfigPath, func(c *config.Config) {
		if cmd.Flags().Changed("pages") {
			c.SearchPages = searchPages
		}
		if cmd.Flags().Changed("per-page") {
			c.PerPage = searchPerPage
		}
		if cmd.Flags().Changed("store") {
			c.StorePath = searchStorePath
		}
	})
	if err != nil {
		return err
	}

	if searchKeywords == "" {
		return fmt.Errorf("search keywords are required (--keywords)")
	}

	st, err := store.Open(cfg.StorePath)
	if err != nil {
		return fmt.Errorf("failed to open job store: %w", err)
	}
	defer func() { _ = st.Close() }()

	if searchLocal {
		return searchLocalStore(ctx, st, searchKeywords, searchLimit)
	}

	client := jobsapi.NewClient(cfg.JobsAPIBaseURL)
	items, err := client.SearchPages(ctx, jobsapi.SearchParams{
		Keywords: searchKeywords,
		PerPage:  cfg.PerPage,
	}, cfg.SearchPages)
	if err != nil {
		return fmt.Errorf("job search failed: %w", err)
	}

	summaries := jobsapi.Summarize(items)
	stored, err := st.Upsert(ctx, summaries)
	if err != nil {
		return fmt.Errorf("failed to store jobs: %w", err)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "JOB ID\tTITLE\tCOMPANY\tSALARY\tMRT")
	for _, sum := range summaries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			sum.JobID, sum.Title, sum.Company, sum.SalaryRange, sum.NearestMRT)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "\n%d jobs fetched, %d chunks stored in %s\n",
		len(summaries), stored, cfg.StorePath)
	return nil
}

func searchLocalStore(ctx context.Context, st *store.Store, keyword string, limit int) error {
	jobs, err := st.Search(ctx, keyword, limit)
	if err != nil {
		return fmt.Errorf("store search failed: %w", err)
	}
	if len(jobs) == 0 {
		fmt.Fprintln(os.Stdout, "No stored jobs match.")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "JOB ID\tTITLE\tCOMPANY\tSALARY\tLOCATION")
	for _, j := range jobs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", j.JobID, j.Title, j.Company, j.Salary, j.Location)
	}
	return tw.Flush()
}
