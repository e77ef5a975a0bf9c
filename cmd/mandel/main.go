// mandel explores the Mandelbrot set interactively.
// The same renderer backs a terminal viewer, a websocket server for
// browsers, a one-shot snapshot writer and a frame-time benchmark.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/go-errors/errors"
	"github.com/spf13/cobra"

	"github.com/marben/live_mandel/config"
	"github.com/marben/live_mandel/render"
)

var rootCmd = &cobra.Command{
	Use:           "mandel",
	Short:         "mandel renders the Mandelbrot set in real time",
	Long:          "mandel renders the Mandelbrot set in real time.\nArrows pan, z/x zoom in/out, r resets, Esc or q quits.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var flags struct {
	configPath string
	debug      bool
	logLevel   string
	logFile    string
	maxIter    int
	width      int
	height     int
	workers    int
	preset     string
}

// logFile is the open --log-file, if any.
var logFile *os.File

// closeLog closes the log file opened by the last setup.
func closeLog() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// logger is the command's own logger; setup replaces it and shares it with render.
var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

func init() {
	cobra.EnablePrefixMatching = true
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "YAML config file")
	pf.BoolVar(&flags.debug, "debug", false, "print error stacks")
	pf.StringVar(&flags.logLevel, "log-level", "", "debug, info, warn or error")
	pf.StringVar(&flags.logFile, "log-file", "", "write logs to this file instead of stderr")
	pf.IntVar(&flags.maxIter, "max-iter", 0, "iteration cap per pixel")
	pf.IntVar(&flags.width, "width", 0, "frame width in pixels")
	pf.IntVar(&flags.height, "height", 0, "frame height in pixels")
	pf.IntVar(&flags.workers, "workers", 0, "render workers, 0 for one per CPU")
	pf.StringVar(&flags.preset, "preset", "", "starting landmark: "+fmt.Sprint(config.PresetNames()))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	closeLog()
	if err != nil {
		var stackErr *errors.Error
		if flags.debug && errors.As(err, &stackErr) {
			fmt.Fprintln(os.Stderr, stackErr.ErrorStack())
			os.Exit(1)
		}
		log.Fatalf("run: %v", err)
	}
}

// setup loads the config, applies command line overrides and installs the logger.
// quiet discards log output unless a log file was given.
func setup(cmd *cobra.Command, quiet bool) (config.Config, error) {
	closeLog()
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return cfg, err
	}

	fs := cmd.Flags()
	if fs.Changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
	if fs.Changed("max-iter") {
		cfg.MaxIter = flags.maxIter
	}
	if fs.Changed("width") {
		cfg.Width = flags.width
	}
	if fs.Changed("height") {
		cfg.Height = flags.height
	}
	if fs.Changed("workers") {
		cfg.Workers = flags.workers
	}
	if fs.Changed("preset") {
		cfg.Preset = flags.preset
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	level, err := cfg.Level()
	if err != nil {
		return cfg, err
	}
	var w io.Writer = os.Stderr
	switch {
	case flags.logFile != "":
		f, err := os.OpenFile(flags.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return cfg, errors.WrapPrefix(err, "open log file", 0)
		}
		logFile = f
		w = f
	case quiet:
		w = io.Discard
	}
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	render.SetLogger(logger)
	return cfg, nil
}

// newCompositor builds the compositor for cfg on top of exec.
func newCompositor(cfg config.Config, exec *render.Pool) *render.Compositor {
	return render.New(append(cfg.CompositorOptions(), render.WithExecutor(exec))...)
}
