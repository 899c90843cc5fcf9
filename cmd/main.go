package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/UnknownOlympus/sheetmap/internal/config"
	"github.com/UnknownOlympus/sheetmap/internal/export"
	"github.com/UnknownOlympus/sheetmap/internal/loader"
	"github.com/UnknownOlympus/sheetmap/internal/metrics"
	"github.com/UnknownOlympus/sheetmap/internal/models"
	"github.com/UnknownOlympus/sheetmap/internal/repository"
	"github.com/UnknownOlympus/sheetmap/internal/summary"
	"github.com/prometheus/client_golang/prometheus"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

const usage = `Usage: sheetmap <excel_file> [output_format] [output_file]

Options:
  excel_file: Path to Excel file (.xlsx or .xls)
  output_format: 'json', 'ts' or 'postgres' (default: json)
  output_file: Output file path (default: data.json or data.ts)

Example:
  sheetmap data.xlsx json output.json
  sheetmap data.xlsx ts data.ts
`

var errUsage = errors.New("missing excel file argument")

// main is the entry point of the application.
func main() {
	// Ctrl+C aborts a running database load.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	err := run(ctx, os.Args[1:], os.Stdout)
	stop()

	switch {
	case errors.Is(err, errUsage):
		os.Exit(1)
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run parses arguments, converts the workbook and writes the requested output.
// Progress and the final summary go to stdout.
func run(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) < 1 {
		fmt.Fprint(stdout, usage)
		return errUsage
	}

	excelFile := args[0]
	format := export.FormatJSON
	if len(args) > 1 {
		format = export.NormalizeFormat(args[1])
	}
	outputFile := export.DefaultPath(format)
	if len(args) > 2 {
		outputFile = args[2]
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Env, stdout)

	reg := prometheus.NewRegistry()
	appMetrics := metrics.NewMetrics(reg)

	ldr := loader.NewLoader(logger, appMetrics)
	result, err := ldr.Load(ctx, excelFile, loader.Options{Sheets: cfg.Sheets, Columns: cfg.Columns})
	if err != nil {
		return err
	}

	startTime := time.Now()
	if err = write(ctx, logger, cfg, format, outputFile, result.Data); err != nil {
		return err
	}
	appMetrics.StageSeconds.WithLabelValues("export").Observe(time.Since(startTime).Seconds())

	sum := summary.Of(result.Data)
	fmt.Fprintf(stdout, "\n✓ Successfully parsed Excel file!\n")
	fmt.Fprintf(stdout, "  - Book data points: %d (%d books)\n", sum.BookPoints, sum.TotalBooks)
	fmt.Fprintf(stdout, "  - Volunteers: %d\n", sum.Volunteers)
	fmt.Fprintf(stdout, "  - Schools: %d (%d students)\n", sum.Schools, sum.TotalStudents)
	if len(result.Warnings) > 0 {
		fmt.Fprintf(stdout, "  - Skipped rows: %d\n", len(result.Warnings))
	}

	if cfg.MetricsFile != "" {
		if err = metrics.WriteTextfile(cfg.MetricsFile, reg); err != nil {
			logger.ErrorContext(ctx, "Failed to write metrics file", "path", cfg.MetricsFile, "error", err)
		}
	}

	return nil
}

// write sends data to the destination selected by format.
func write(
	ctx context.Context,
	log *slog.Logger,
	cfg *config.Config,
	format export.Format,
	outputFile string,
	data *models.Dataset,
) error {
	switch format {
	case export.FormatPostgres:
		pool, err := repository.NewDatabase(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		if err = export.Postgres(ctx, repository.NewRepository(pool, log), data); err != nil {
			return err
		}
		log.InfoContext(ctx, "Data exported to PostgreSQL", "host", cfg.Database.Host, "database", cfg.Database.Name)
	case export.FormatTypeScript:
		if err := export.WriteTypeScript(outputFile, data); err != nil {
			return err
		}
		log.InfoContext(ctx, "Data exported to TypeScript", "path", outputFile)
	default:
		if err := export.WriteJSON(outputFile, data); err != nil {
			return err
		}
		log.InfoContext(ctx, "Data exported to JSON", "path", outputFile)
	}

	return nil
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string, out io.Writer) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(out, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewTextHandler(out, &slog.HandlerOptions{
				Level: slog.LevelInfo,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(out, &slog.HandlerOptions{
				Level: slog.LevelInfo,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(out, &slog.HandlerOptions{
				Level: slog.LevelError,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}
