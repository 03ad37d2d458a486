// Command classrepair repairs utility-class strings whose hyphens gained
// stray surrounding whitespace (e.g. "px - 2" instead of "px-2").
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/baditaflorin/l"

	adapterlogger "github.com/utilfix/go_class_repair/internal/adapters/logger"
	"github.com/utilfix/go_class_repair/internal/ports"
	"github.com/utilfix/go_class_repair/internal/rewrite"
	"github.com/utilfix/go_class_repair/internal/watcher"
	"github.com/utilfix/go_class_repair/pkg/repair"
	"github.com/utilfix/go_class_repair/pkg/streaming"
)

const version = "0.2.0"

// CLI defines the command-line interface for classrepair.
var CLI struct {
	Repair  RepairCmd  `cmd:"" default:"withargs" help:"Repair files in place, or stdin to stdout with '-'"`
	Watch   WatchCmd   `cmd:"" help:"Watch files and repair them on every change"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// appContext carries shared state into command Run methods.
type appContext struct {
	logger l.Logger
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("classrepair"),
		kong.Description("Repair utility-class strings corrupted by stray spaces around hyphens."),
		kong.UsageOnError(),
	)

	logger, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	err = ctx.Run(&appContext{logger: logger})
	ctx.FatalIfErrorf(err)
}

// newLogger builds the CLI logger. Output goes to stderr so that stdin
// repair mode can write repaired text to stdout undisturbed.
func newLogger() (l.Logger, error) {
	return l.NewStandardFactory().CreateLogger(l.Config{
		Output:     os.Stderr,
		JsonFormat: false,
		AsyncWrite: false,
		AddSource:  false,
	})
}

// RepairCmd repairs one or more files in place.
type RepairCmd struct {
	Paths  []string `arg:"" help:"Files to repair, or '-' to read stdin and write stdout"`
	DryRun bool     `name:"dry-run" help:"Report what would change without writing"`
	Scoped bool     `name:"scoped" help:"Confine generic fallback rules to class-attribute values"`
}

// Run repairs each path in order.
func (c *RepairCmd) Run(app *appContext) error {
	if len(c.Paths) == 1 && c.Paths[0] == "-" {
		return c.repairStdin(app)
	}

	repairer, err := newRepairer(app.logger, c.Scoped)
	if err != nil {
		return err
	}

	rw := rewrite.NewRewriter(repairer, adapterlogger.FromExisting(app.logger), c.DryRun)
	results, err := rw.RepairFiles(context.Background(), c.Paths)
	if err != nil {
		return err
	}

	changed := 0
	for _, res := range results {
		if res.Changed {
			changed++
		}
	}
	app.logger.Info("Repair complete",
		"files", len(results),
		"changed", changed,
		"dry_run", c.DryRun,
	)
	return nil
}

// repairStdin streams stdin to stdout line by line.
func (c *RepairCmd) repairStdin(app *appContext) error {
	opts := []streaming.Option{streaming.WithLogger(app.logger)}
	if c.Scoped {
		opts = append(opts, streaming.WithScopedFallback())
	}
	sr, err := streaming.New(opts...)
	if err != nil {
		return err
	}
	_, err = sr.RepairStream(context.Background(), os.Stdin, os.Stdout)
	return err
}

// WatchCmd watches files and repairs them on every change.
type WatchCmd struct {
	Paths    []string      `arg:"" help:"Files to watch"`
	Scoped   bool          `name:"scoped" help:"Confine generic fallback rules to class-attribute values"`
	Debounce time.Duration `name:"debounce" default:"500ms" help:"Delay between a change and the repair pass"`
}

// Run repairs every path once, then keeps watching until interrupted.
func (c *WatchCmd) Run(app *appContext) error {
	repairer, err := newRepairer(app.logger, c.Scoped)
	if err != nil {
		return err
	}
	portLogger := adapterlogger.FromExisting(app.logger)
	rw := rewrite.NewRewriter(repairer, portLogger, false)

	// Initial pass so already-corrupted files are fixed before watching.
	if _, err := rw.RepairFiles(context.Background(), c.Paths); err != nil {
		return err
	}

	w := watcher.New(portLogger, func(path string) (bool, error) {
		res, err := rw.RepairFile(context.Background(), path)
		if err != nil {
			return false, err
		}
		return res.Changed, nil
	}, c.Debounce)

	if err := w.Start(c.Paths); err != nil {
		return err
	}

	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
	<-sigint

	summary := w.Stop()
	app.logger.Info("Watch session ended",
		"repaired", summary.FilesRepaired,
		"unchanged", summary.FilesUnchanged,
		"errors", summary.Errors,
		"duration", summary.Duration,
	)
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

// Run prints the version.
func (c *VersionCmd) Run(app *appContext) error {
	fmt.Println("classrepair " + version)
	return nil
}

// newRepairer builds the configured whole-text repairer.
func newRepairer(logger l.Logger, scoped bool) (ports.Repairer, error) {
	opts := []repair.Option{repair.WithLogger(logger)}
	if scoped {
		opts = append(opts, repair.WithScopedFallback())
	}
	return repair.New(opts...)
}
