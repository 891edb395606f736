// reportgen is the command line front end of the report pipeline: it
// reads a sales workbook and writes the ZIP bundle without running the
// HTTP server.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"salesreport/internal/app"
	"salesreport/internal/config"
	"salesreport/internal/infrastructure"
	"salesreport/internal/services"
)

var (
	cfgFile    string
	outputPath string
	extract    bool
)

var rootCmd = &cobra.Command{
	Use:   "reportgen",
	Short: "Generate sales reports from an Excel workbook",
	Long: `reportgen validates a sales workbook (columns Vendedor, Produto,
Vendas), aggregates sales per salesperson, renders charts and produces
per-salesperson workbooks, a combined workbook and a PDF report, all
packaged into a single ZIP bundle.`,
	SilenceUsage: true,
}

var generateCmd = &cobra.Command{
	Use:   "generate <workbook.xlsx>",
	Short: "Run the full pipeline and write the ZIP bundle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd.Context(), args[0])
	},
}

var templateCmd = &cobra.Command{
	Use:   "template [path]",
	Short: "Write a sample workbook with the required columns",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := "sales_template.xlsx"
		if len(args) == 1 {
			target = args[0]
		}
		return runTemplate(cmd.Context(), target)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s %s\n", app.AppName, app.Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to YAML config file (optional)")
	generateCmd.Flags().StringVarP(&outputPath, "output", "o", "", "bundle path (defaults to the configured archive name)")
	generateCmd.Flags().BoolVar(&extract, "extract", false, "also write the individual artifacts next to the bundle")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(templateCmd)
	rootCmd.AddCommand(versionCmd)
}

func newService() (*services.ReportService, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, err
	}

	return services.NewReportService(cfg.Report, logger), nil
}

func runGenerate(ctx context.Context, inputPath string) error {
	service, err := newService()
	if err != nil {
		return err
	}

	input, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open workbook: %w", err)
	}
	defer input.Close()

	bundle, err := service.Generate(ctx, input)
	if err != nil {
		return err
	}

	target := outputPath
	if target == "" {
		target = bundle.Name
	}
	if err := os.WriteFile(target, bundle.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write bundle: %w", err)
	}
	fmt.Printf("wrote %s (%d artifacts)\n", target, bundle.ArtifactCount())

	if extract {
		dir := filepath.Dir(target)
		for _, artifact := range bundle.Artifacts {
			path := filepath.Join(dir, artifact.Name)
			if err := os.WriteFile(path, artifact.Data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", artifact.Name, err)
			}
			fmt.Printf("wrote %s\n", path)
		}
	}

	return nil
}

func runTemplate(ctx context.Context, target string) error {
	service, err := newService()
	if err != nil {
		return err
	}

	artifact, err := service.TemplateWorkbook(ctx)
	if err != nil {
		return err
	}

	if err := os.WriteFile(target, artifact.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write template: %w", err)
	}
	fmt.Printf("wrote %s\n", target)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
