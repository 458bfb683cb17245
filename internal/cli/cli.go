package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	internal_http "github.com/ChrisAdan/earth/internal/http"
	"github.com/ChrisAdan/earth/internal/log"
	internal_storage "github.com/ChrisAdan/earth/internal/storage"
	"github.com/ChrisAdan/earth/pkg/models"
	"github.com/ChrisAdan/earth/pkg/storage"
	"github.com/ChrisAdan/earth/pkg/workflow"
)

func SetupCLI(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().String("db", "", "Database connection string (optional if DB_* env vars are set)")

	generateCmd := &cobra.Command{
		Use:   "generate [workflow]",
		Short: "Run a single entity workflow",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg := configFromFlags(cmd)
			count, _ := cmd.Flags().GetInt("count")
			if count <= 0 {
				count = workflow.DefaultTargetRecords(args[0])
			}
			stores := initFactory(cmd)

			runner, err := workflow.NewRunner(args[0], cfg, stores,
				workflow.WithRunnerLogger(log.GetLogger()))
			if err != nil {
				log.GetLogger().Errorf("Failed to build workflow: %v", err)
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			runAndReport(runner, count)
		},
	}
	generateCmd.Flags().Int("count", 0, "Number of records to generate (default: workflow default)")
	addConfigFlags(generateCmd)

	datasetCmd := &cobra.Command{
		Use:   "dataset",
		Short: "Run the full dataset workflow",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := configFromFlags(cmd)
			stores := initFactory(cmd)
			spec := specFromFlags(cmd)

			runner, err := workflow.NewRunner(workflow.FullDatasetWorkflow, cfg, stores,
				workflow.WithDatasetSpec(spec),
				workflow.WithRunnerLogger(log.GetLogger()))
			if err != nil {
				log.GetLogger().Errorf("Failed to build dataset workflow: %v", err)
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			sequential, _ := cmd.Flags().GetBool("sequential")
			if dw, ok := runner.(*workflow.DatasetWorkflow); ok && sequential {
				dw.SetParallel(false)
			}
			runAndReport(runner, 0)

			if dw, ok := runner.(*workflow.DatasetWorkflow); ok {
				printSummary(dw.GetExecutionSummary())
			}
		},
	}
	datasetCmd.Flags().String("template", "", "Dataset template (small_demo, medium_dev, large_production)")
	datasetCmd.Flags().Int("people", 0, "Number of people to generate")
	datasetCmd.Flags().Int("companies", 0, "Number of companies to generate")
	datasetCmd.Flags().Bool("sequential", false, "Run dependency groups without intra-group parallelism")
	addConfigFlags(datasetCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List available workflows and templates",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "Workflows:\n")
			for _, info := range workflow.DescribeWorkflows() {
				if info.DefaultCount > 0 {
					fmt.Fprintf(os.Stdout, "- %s (default %d records): %s\n",
						info.Name, info.DefaultCount, info.Description)
				} else {
					fmt.Fprintf(os.Stdout, "- %s: %s\n", info.Name, info.Description)
				}
			}
			fmt.Fprintf(os.Stdout, "\nTemplates:\n")
			for _, tpl := range workflow.ListTemplates() {
				fmt.Fprintf(os.Stdout, "- %s: %s\n", tpl.Name, tpl.Description)
				for _, wc := range tpl.Workflows {
					fmt.Fprintf(os.Stdout, "    %s: %d records\n", wc.Name, wc.Count)
				}
			}
		},
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the listing HTTP server",
		Run: func(cmd *cobra.Command, args []string) {
			port, _ := cmd.Flags().GetString("port")
			if err := internal_http.StartServer(port); err != nil {
				log.GetLogger().Errorf("Server failed: %v", err)
				os.Exit(1)
			}
		},
	}
	serveCmd.Flags().String("port", "8080", "Port to listen on")

	rootCmd.AddCommand(generateCmd, datasetCmd, listCmd, serveCmd)
}

func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().Int("batch-size", models.DefaultBatchSize, "Records generated and written per batch")
	cmd.Flags().Int64("seed", 0, "Random seed for reproducible generation (0 means random)")
	cmd.Flags().String("write-mode", string(models.AppendWriteMode), "Write mode: append or truncate")
}

func configFromFlags(cmd *cobra.Command) models.WorkflowConfig {
	cfg := models.DefaultWorkflowConfig()
	if batchSize, err := cmd.Flags().GetInt("batch-size"); err == nil && batchSize > 0 {
		cfg.BatchSize = batchSize
	}
	if seed, err := cmd.Flags().GetInt64("seed"); err == nil && seed != 0 {
		cfg.Seed = &seed
	}
	if mode, err := cmd.Flags().GetString("write-mode"); err == nil && mode != "" {
		cfg.WriteMode = models.WriteMode(mode)
	}
	if err := cfg.Validate(); err != nil {
		log.GetLogger().Errorf("Invalid configuration: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// specFromFlags resolves the dataset shape: an explicit template wins, then
// explicit people/companies counts, then the built-in default spec.
func specFromFlags(cmd *cobra.Command) *workflow.DatasetSpec {
	template, _ := cmd.Flags().GetString("template")
	people, _ := cmd.Flags().GetInt("people")
	companies, _ := cmd.Flags().GetInt("companies")

	var spec *workflow.DatasetSpec
	var err error
	switch {
	case template != "":
		spec, err = workflow.FromTemplate(template)
	case people > 0 || companies > 0:
		if people <= 0 {
			people = workflow.DefaultTargetRecords("people")
		}
		if companies <= 0 {
			companies = workflow.DefaultTargetRecords("companies")
		}
		spec, err = workflow.NewDatasetSpec(
			workflow.WithLegacyCounts(people, companies),
			workflow.WithDependencies(workflow.DefaultDependencies()),
		)
	default:
		spec, err = workflow.DefaultDatasetSpec()
	}
	if err != nil {
		log.GetLogger().Errorf("Invalid dataset spec: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if warnings, err := spec.Validate(); err == nil {
		for _, warning := range warnings {
			fmt.Fprintf(os.Stdout, "Warning: %s\n", warning)
		}
	}
	return spec
}

func runAndReport(runner workflow.Runner, count int) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result := runner.Execute(ctx, count)
	if !result.Success() {
		log.GetLogger().Errorf("Workflow '%s' failed: %s", runner.Name(), result.ErrorMsg)
		fmt.Fprintf(os.Stderr, "Error: workflow '%s' failed after %d records: %s\n",
			runner.Name(), result.RecordsGenerated, result.ErrorMsg)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, "Workflow '%s' completed: %d generated, %d stored in %s\n",
		runner.Name(), result.RecordsGenerated, result.RecordsStored, result.ExecutionTime)
}

func printSummary(summary workflow.ExecutionSummary) {
	fmt.Fprintf(os.Stdout, "\nExecution summary:\n")
	for _, step := range summary.Steps {
		fmt.Fprintf(os.Stdout, "- %s: %s, %d records in %s\n",
			step.WorkflowName, step.Status, step.RecordsGenerated, step.Duration)
	}
	fmt.Fprintf(os.Stdout, "Total: %d records in %s (%.0f records/sec, %s saved by parallelism)\n",
		summary.TotalRecordsGenerated, summary.TotalDuration,
		summary.RecordsPerSecond, summary.TimeSavedParallel)
}

func initFactory(cmd *cobra.Command) storage.Factory {
	dbConnStr, err := cmd.Flags().GetString("db")
	if err != nil {
		log.GetLogger().Errorf("Error retrieving db flag: %v", err)
		os.Exit(1)
	}
	if dbConnStr == "" {
		dbConnStr, err = internal_storage.ConnStrFromEnv()
		if err != nil {
			log.GetLogger().Errorf("No database configured: %v", err)
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	log.GetLogger().Debugf("Using database: %s", dbConnStr)
	return internal_storage.NewFactory(dbConnStr)
}
