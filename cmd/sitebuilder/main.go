package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/sitebuilder/internal/build"
	"git.home.luguber.info/inful/sitebuilder/internal/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/load"
	"git.home.luguber.info/inful/sitebuilder/internal/metrics"
	"git.home.luguber.info/inful/sitebuilder/internal/term"
	"git.home.luguber.info/inful/sitebuilder/internal/watch"
)

var CLI struct {
	Verbose bool `short:"v" help:"Enable verbose logging"`

	Build struct {
		Path        string `arg:"" optional:"" default:"." help:"Project directory"`
		Project     string `short:"p" help:"Project directory (the positional path takes precedence)"`
		Concurrency int    `help:"Bound parallel phase workers (0 = one worker per item)"`
	} `cmd:"" help:"Build the site once"`

	Watch struct {
		Path        string `arg:"" optional:"" default:"." help:"Project directory"`
		Project     string `short:"p" help:"Project directory (the positional path takes precedence)"`
		Concurrency int    `help:"Bound parallel phase workers (0 = one worker per item)"`
		MetricsAddr string `help:"Serve Prometheus metrics on this address while watching"`
	} `cmd:"" help:"Build the site and rebuild on file changes"`

	Init struct {
		Path  string `arg:"" optional:"" default:"." help:"Project directory"`
		Force bool   `help:"Overwrite an existing configuration file"`
	} `cmd:"" help:"Scaffold a new site project"`
}

func main() {
	// Optional .env overlay; absence is fine.
	_ = godotenv.Load()

	ctx := kong.Parse(&CLI,
		kong.Name("sitebuilder"),
		kong.Description("Static-site build orchestrator"))

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	formatter := term.ColorFormatter{}
	adapter := errors.NewCLIErrorAdapter(CLI.Verbose, nil)

	switch ctx.Command() {
	case "build", "build <path>":
		path := projectPath(CLI.Build.Path, CLI.Build.Project)
		report, err := runBuild(path, CLI.Build.Concurrency, metrics.NoopRecorder{})
		if err != nil {
			fmt.Println(formatter.Error(adapter.FormatError(err)))
			os.Exit(adapter.ExitCodeFor(err))
		}
		fmt.Println(formatter.Success("Site built: ") + formatter.Highlight(outputDirOf(report, path)))
	case "watch", "watch <path>":
		path := projectPath(CLI.Watch.Path, CLI.Watch.Project)
		if err := runWatch(path, CLI.Watch.Concurrency, CLI.Watch.MetricsAddr); err != nil {
			fmt.Println(formatter.Error(adapter.FormatError(err)))
			os.Exit(adapter.ExitCodeFor(err))
		}
	case "init", "init <path>":
		if err := load.Init(CLI.Init.Path, CLI.Init.Force); err != nil {
			fmt.Println(formatter.Error(adapter.FormatError(err)))
			os.Exit(adapter.ExitCodeFor(err))
		}
		fmt.Println(formatter.Success("Project initialized: ") + formatter.Highlight(CLI.Init.Path))
	}
}

// projectPath resolves the project directory; the positional path is
// primary, the -p option covers invocations that prefer a flag.
func projectPath(positional, flag string) string {
	if positional == "." && flag != "" {
		return flag
	}
	return positional
}

func runBuild(path string, concurrency int, recorder metrics.Recorder) (*build.Report, error) {
	s, err := load.LoadSite(path)
	if err != nil {
		return nil, err
	}

	builder := build.New(s,
		build.WithConcurrency(pickConcurrency(concurrency, s.Config.Build.Concurrency)),
		build.WithRecorder(recorder))

	return builder.Run(context.Background())
}

func runWatch(path string, concurrency int, metricsAddr string) error {
	var recorder metrics.Recorder = metrics.NoopRecorder{}
	if metricsAddr != "" {
		reg := prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(reg)
		go func() {
			slog.Info("Serving metrics", "addr", metricsAddr)
			if err := http.ListenAndServe(metricsAddr, metrics.HTTPHandler(reg)); err != nil {
				slog.Error("Metrics server failed", "error", err)
			}
		}()
	}

	// Initial build; a missing project is fatal, a failing build is not.
	report, err := runBuild(path, concurrency, recorder)
	if err != nil {
		if errors.IsCategory(err, errors.CategoryPath) {
			return err
		}
		slog.Error("Build failed", "error", err)
	}

	outDir := outputDirOf(report, path)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	watcher, err := watch.New(path, outDir, func() {
		if _, err := runBuild(path, concurrency, recorder); err != nil {
			slog.Error("Rebuild failed", "error", err)
			return
		}
		slog.Info("Site rebuilt")
	})
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, errors.SeverityFatal, "failed to start watcher")
	}

	return watcher.Start(ctx)
}

func pickConcurrency(flag, configured int) int {
	if flag > 0 {
		return flag
	}
	return configured
}

// outputDirOf names the output directory for the final line, falling back to
// the project path when the build never got far enough to know it.
func outputDirOf(report *build.Report, path string) string {
	if report != nil && report.OutputDir != "" {
		return report.OutputDir
	}
	return path
}
