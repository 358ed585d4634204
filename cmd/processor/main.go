package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"amfcli/internal/config"
	"amfcli/internal/dataprocessing"
	apperrors "amfcli/internal/errors"
	"amfcli/internal/exporter"
	"amfcli/internal/files"
	"amfcli/internal/infrastructure"
	"amfcli/pkg/contracts"
)

func main() {
	os.Exit(run())
}

func run() int {
	inPath := flag.String("in", "", "input workbook path (overrides config)")
	sheet := flag.String("sheet", "", "worksheet to read (default \"AMF-BIF\")")
	outDir := flag.String("out", "", "output directory for generated CSV files (default current directory)")
	cfgFile := flag.String("config", "", "optional YAML config file")
	workers := flag.Int("workers", 0, "maximum concurrent group exports (overrides config)")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetFullVersionString())
		return 0
	}

	var cfg *config.Config
	var err error
	if *cfgFile != "" {
		cfg, err = config.LoadFrom(*cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}
	applyOverrides(cfg, *inPath, *sheet, *outDir, *workers)

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	// One trace id per run so every log line can be correlated.
	ctx := infrastructure.WithTraceID(context.Background(), uuid.NewString())

	logger.InfoContext(ctx, "Starting BIF metadata processing",
		slog.String("input_path", cfg.Input.Path),
		slog.String("sheet", cfg.Input.Sheet),
		slog.String("output_dir", cfg.Output.Dir),
		slog.Int("workers", cfg.Output.Workers))

	observations, err := dataprocessing.LoadWorkbook(ctx, cfg.Input.Path, cfg.Input.Sheet)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load workbook",
			slog.String("path", cfg.Input.Path),
			slog.String("sheet", cfg.Input.Sheet),
			slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Printf("Loaded %d observations from %s\n", len(observations), cfg.Input.Path)

	pipeline := dataprocessing.NewPipeline(logger)
	result, err := pipeline.Run(ctx, observations)
	if err != nil {
		logger.ErrorContext(ctx, "Pipeline failed", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	groupExporter := exporter.NewGroupExporter(
		files.NewManager(cfg.Output.Dir), logger, cfg.Output.Workers)
	exportErr := groupExporter.ExportAll(ctx, result.Groups)

	// Data-quality warnings and per-group failures are reported together
	// at the end of the run, one line each.
	for _, warning := range result.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", warning)
	}
	if exportErr != nil {
		var failures *apperrors.ExportFailures
		if errors.As(exportErr, &failures) {
			for _, f := range failures.Failures {
				fmt.Fprintf(os.Stderr, "Error: group %q: %v\n", f.Group, f.Err)
			}
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", exportErr)
		}
		logger.ErrorContext(ctx, "Export finished with failures",
			slog.String("error", exportErr.Error()))
		return 1
	}

	fmt.Printf("Processing complete: %d groups\n", len(result.Groups))
	return 0
}

// applyOverrides layers CLI flags over the loaded configuration.
func applyOverrides(cfg *config.Config, inPath, sheet, outDir string, workers int) {
	if inPath != "" {
		cfg.Input.Path = inPath
	}
	if sheet != "" {
		cfg.Input.Sheet = sheet
	}
	if outDir != "" {
		cfg.Output.Dir = outDir
	}
	if workers > 0 {
		cfg.Output.Workers = workers
	}
}
