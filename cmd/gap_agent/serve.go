package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/job-gap-analyzer/internal/config"
	"github.com/jonathan/job-gap-analyzer/internal/server"
)

var serveCommand = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Starts the REST API server exposing job search, stored-job lookup and
resume gap analysis endpoints.`,
	RunE: runServeCmd,
}

var (
	serveConfigPath string
	servePort       int
	serveStorePath  string
	serveAPIKey     string
	serveJobsAPI    string
)

func init() {
	serveCommand.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	serveCommand.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on")
	serveCommand.Flags().StringVar(&serveStorePath, "store", "", "Path to the SQLite job store")
	serveCommand.Flags().StringVar(&serveJobsAPI, "jobs-api", "", "Job board search endpoint override")
	serveCommand.Flags().StringVar(&serveAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(serveCommand)
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadMergedConfig(cmd, serveConfigPath, func(c *config.Config) {
		if cmd.Flags().Changed("port") {
			c.Port = servePort
		}
		if cmd.Flags().Changed("store") {
			c.StorePath = serveStorePath
		}
		if cmd.Flags().Changed("jobs-api") {
			c.JobsAPIBaseURL = serveJobsAPI
		}
		if cmd.Flags().Changed("api-key") {
			c.APIKey = serveAPIKey
		}
	})
	if err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Port:           cfg.Port,
		StorePath:      cfg.StorePath,
		JobsAPIBaseURL: cfg.JobsAPIBaseURL,
		APIKey:         cfg.APIKey,
	})
	if err != nil {
		return err
	}

	return srv.Start()
}
