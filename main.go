package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"confmat/adapters/excel"
	"confmat/adapters/sqlite"
	"confmat/app"
	"confmat/domain/core"
	"confmat/internal"
	"confmat/internal/config"
	"confmat/ports"
	"confmat/ui"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		internal.DefaultLogger.Debug("no .env file found, using system environment variables")
	}

	rootCmd := &cobra.Command{
		Use:   "confmat <input_path>",
		Short: "Generate a confusion-matrix workbook from classification results",
		Long: `Reads a spreadsheet of classification results, extracts the distinct
classifier labels from the true/false positive/negative columns, tallies
per-label confusion-matrix counts and writes output_confusion_matrix.xlsx
next to the input with sensitivity/specificity formulas plus a verbatim
copy of the input data.

Example: confmat results.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), args[0])
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newServeCmd(),
		newHistoryCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openLedger returns the run ledger when CONFMAT_DB is configured, else nil.
func openLedger(cfg *config.Config) (ports.RunLedgerPort, func(), error) {
	if cfg.Ledger.Path == "" {
		return nil, func() {}, nil
	}
	db, err := sqlite.Open(cfg.Ledger.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open run ledger: %w", err)
	}
	return sqlite.NewRunRepository(db), func() { db.Close() }, nil
}

func runGenerate(ctx context.Context, inputPath string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	ledger, closeLedger, err := openLedger(cfg)
	if err != nil {
		return err
	}
	defer closeLedger()

	service := app.NewReportService(excel.NewReportWriter(), ledger, cfg)
	result, err := service.Generate(ctx, app.GenerateRequest{InputPath: inputPath})
	if err != nil {
		if core.IsInputNotFound(err) {
			return fmt.Errorf("file not found: %s", inputPath)
		}
		return err
	}

	fmt.Printf("Found %d unique classifiers.\n", len(result.Report.Labels))
	for _, warning := range result.Warnings {
		fmt.Printf("Warning: %s\n", warning)
	}
	fmt.Printf("Output file created: %s\n", result.OutputPath)
	return nil
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the generation pipeline as an HTTP service",
		Long: `Serve the pipeline over HTTP.

POST /api/generate accepts a multipart workbook upload (field "file") and
responds with the generated workbook. GET /api/runs lists the run ledger.

Port comes from CONFMAT_PORT (default 8080).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
		SilenceUsage: true,
	}
	return cmd
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	ledger, closeLedger, err := openLedger(cfg)
	if err != nil {
		return err
	}
	defer closeLedger()

	service := app.NewReportService(excel.NewReportWriter(), ledger, cfg)
	httpApp := ui.NewApp(service, ledger)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return httpApp.Start(ctx, cfg.Server.Port)
}

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent generation runs from the run ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd.Context(), limit)
		},
		SilenceUsage: true,
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum runs to show")

	return cmd
}

func runHistory(ctx context.Context, limit int) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.Ledger.Path == "" {
		return fmt.Errorf("%w: set CONFMAT_DB to a SQLite path", core.ErrLedgerDisabled)
	}

	ledger, closeLedger, err := openLedger(cfg)
	if err != nil {
		return err
	}
	defer closeLedger()

	runs, err := ledger.ListRuns(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CREATED\tINPUT\tLABELS\tMEAN SENS\tMEAN SPEC")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.2f%%\t%.2f%%\n",
			run.CreatedAt.Format("2006-01-02 15:04:05"),
			run.InputPath,
			run.LabelCount,
			run.MeanSensitivity*100,
			run.MeanSpecificity*100,
		)
	}
	return w.Flush()
}
