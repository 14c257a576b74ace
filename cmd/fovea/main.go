package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/ivlev/fovea/internal/analyzer"
	"github.com/ivlev/fovea/internal/config"
	"github.com/ivlev/fovea/internal/engine"
	"github.com/ivlev/fovea/internal/report"
	"github.com/ivlev/fovea/internal/source"
	"github.com/ivlev/fovea/internal/system"
)

var buildVersion = "dev"

const outputDir = "output"

func main() {
	if err := run(); err != nil {
		logrus.Fatal(err)
	}
}

func run() error {
	defaults := config.Default()

	configPtr := flag.String("config", "", "YAML config file (flags override its values)")
	inputPtr := flag.String("input", "", "PDF or frame directory/file (default: newest PDF in input/pdf/)")
	reportPtr := flag.String("report", "", "Report path (default: generated in output/)")
	overlayPtr := flag.String("overlay-dir", "", "Write PNG overlays of changed frames to this directory")
	thresholdPtr := flag.Uint("threshold", uint(defaults.Threshold), "Minimum combined RGB delta counted as a change (0-255)")
	classifierPtr := flag.String("classifier", defaults.Classifier, "Pixel classifier: "+strings.Join(analyzer.Variants(), ", "))
	workersPtr := flag.Int("workers", defaults.Workers, "Worker goroutines")
	bandsPtr := flag.Int("bands", defaults.Bands, "Horizontal bands per frame (0 = one per worker)")
	dpiPtr := flag.Int("dpi", defaults.DPI, "PDF render DPI")
	logLevelPtr := flag.String("log-level", defaults.LogLevel, "Log level: debug, info, warn, error")
	statsPtr := flag.Bool("stats", false, "Print a performance report")
	lastPtr := flag.Bool("last", false, "Print the summary of the newest report in output/ and exit")

	flag.Parse()

	if *lastPtr {
		return showLatest(os.Stdout, outputDir)
	}

	cfg := defaults
	if *configPtr != "" {
		loaded, err := config.Load(*configPtr)
		if err != nil {
			return fmt.Errorf("config error: %w", err)
		}
		cfg = loaded
	}

	// Explicit flags win over the config file.
	var thresholdErr error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.InputPath = *inputPtr
		case "report":
			cfg.ReportPath = *reportPtr
		case "overlay-dir":
			cfg.OverlayDir = *overlayPtr
		case "threshold":
			if *thresholdPtr > 255 {
				thresholdErr = fmt.Errorf("threshold must be 0-255, got %d", *thresholdPtr)
			}
			cfg.Threshold = uint8(*thresholdPtr)
		case "classifier":
			cfg.Classifier = *classifierPtr
		case "workers":
			cfg.Workers = *workersPtr
		case "bands":
			cfg.Bands = *bandsPtr
		case "dpi":
			cfg.DPI = *dpiPtr
		case "log-level":
			cfg.LogLevel = *logLevelPtr
		case "stats":
			cfg.ShowStats = *statsPtr
		}
	})
	if thresholdErr != nil {
		return thresholdErr
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cfg.BuildVersion = buildVersion

	level, _ := logrus.ParseLevel(cfg.LogLevel)
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if cfg.InputPath == "" {
		latest, err := system.FindLatestFile(filepath.Join("input", "pdf"), ".pdf")
		if err != nil {
			return fmt.Errorf("no input given: %w. Put a PDF into input/pdf/ or pass -input", err)
		}
		cfg.InputPath = latest
		logrus.WithField("input", cfg.InputPath).Info("Selected newest input")
	}

	src, err := source.Open(cfg.InputPath)
	if err != nil {
		return fmt.Errorf("source error: %w", err)
	}
	defer src.Close()

	if cfg.ReportPath == "" {
		cfg.ReportPath = report.GenerateReportPath(outputDir, filepath.Base(cfg.InputPath))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	project, err := engine.NewDiffProject(cfg, src)
	if err != nil {
		return fmt.Errorf("engine error: %w", err)
	}

	rep, err := project.Run(ctx)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	if err := report.WriteReport(rep, cfg.ReportPath); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	printSummary(os.Stdout, rep)
	fmt.Printf("Report: %s\n", cfg.ReportPath)
	return nil
}

// showLatest prints the summary of the newest report in dir
func showLatest(w io.Writer, dir string) error {
	path, err := report.FindLatestReport(dir)
	if err != nil {
		return err
	}
	rep, err := report.ReadReport(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	fmt.Fprintf(w, "Report: %s\nSource: %s (%dx%d, threshold %d, %s)\n",
		path, rep.Source, rep.Width, rep.Height, rep.Threshold, rep.Classifier)
	printSummary(w, rep)
	return nil
}

func printSummary(w io.Writer, rep *report.Report) {
	fmt.Fprintf(w, "Pairs: %d | Changed: %d | Mean savings: %.1f%% | Union: %dx%d at (%d,%d)\n",
		rep.Summary.Pairs, rep.Summary.ChangedPairs, rep.Summary.MeanSavings,
		rep.Summary.Union.W, rep.Summary.Union.H, rep.Summary.Union.X, rep.Summary.Union.Y)
}
