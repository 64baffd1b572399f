package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"masterbatch"
	"masterbatch/recipe"
	"masterbatch/slack"
	"masterbatch/tools"
)

// app is everything a command needs once configuration has been read.
type app struct {
	cfg      masterbatch.Config
	store    *recipe.Store
	runner   masterbatch.Runner
	notifier masterbatch.SlackClient
	debug    bool

	closers []func() error
	flush   func() error
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: "+err.Error()))
		os.Exit(1)
	}
}

// run executes one command line and releases storage and telemetry whether or
// not the command succeeded.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	a := &app{}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	return errors.Join(err, a.close())
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "masterbatch",
		Short: "Masterbatch recipe book and weight calculator",
		Long: `Keeps a book of masterbatch recipes and computes ingredient weights for a batch.

Each recipe lists explicit ingredient percentages; the base material fills the
rest up to 100%. Storage is selected with MASTERBATCH_STORE_DRIVER (file, s3,
sqlite).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd.Context(), cmd)
		},
	}
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "log setup details and dump raw tool output")

	root.AddCommand(
		newInitCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newSaveCmd(a),
		newDeleteCmd(a),
		newCalcCmd(a),
	)
	return root
}

func (a *app) open(ctx context.Context, cmd *cobra.Command) error {
	level := slog.LevelWarn
	if a.debug {
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

	cfg, err := masterbatch.LoadConfig()
	if err != nil {
		return err
	}
	a.cfg = cfg

	state, closeState, err := masterbatch.OpenRecipeState(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("open recipe storage: %w", err)
	}
	a.closers = append(a.closers, closeState)
	a.store = recipe.NewStore(state)

	registry, err := tools.NewRegistry(a.store, tools.Settings{
		Tolerance:   cfg.Calculator.Tolerance,
		DefaultBase: cfg.Calculator.DefaultBase,
	})
	if err != nil {
		return err
	}

	var logger masterbatch.ActionLogger = masterbatch.NewNoOpActionLogger()
	if dir := cfg.Calculator.ActionLog; dir != "" {
		logger, err = a.fileActionLogger(dir)
		if err != nil {
			return err
		}
	}

	runner, shutdown, err := masterbatch.NewRunner(ctx, registry, logger, masterbatch.TracerNameCLI)
	if err != nil {
		return err
	}
	a.runner = runner
	a.closers = append(a.closers, func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return shutdown(ctx)
	})

	if cfg.Notify.SlackWebhookURL != "" {
		var hc masterbatch.HTTPClient = &http.Client{Timeout: 10 * time.Second}
		a.notifier = slack.NewClient(cfg.Notify.SlackWebhookURL, hc)
	}

	slog.Info("SETUP: Ready", "driver", cfg.Store.Driver)
	return nil
}

func (a *app) fileActionLogger(dir string) (masterbatch.ActionLogger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create action log dir: %w", err)
	}
	f, err := os.Create(filepath.Clean(masterbatch.NewActionLogFilePath(dir, time.Now())))
	if err != nil {
		return nil, fmt.Errorf("create action log: %w", err)
	}
	logger := masterbatch.NewFileActionLogger(f)
	a.flush = logger.Flush
	a.closers = append(a.closers, f.Close)
	return logger, nil
}

func (a *app) close() error {
	var firstErr error
	if a.flush != nil {
		if err := a.flush(); err != nil {
			firstErr = err
		}
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers, a.flush = nil, nil
	return firstErr
}

// call runs one tool and dumps its raw output when --debug is set.
func (a *app) call(cmd *cobra.Command, name string, input map[string]any) (map[string]any, error) {
	out, err := a.runner.Run(cmd.Context(), tools.Call{Name: name, Input: input})
	if err != nil {
		return nil, err
	}
	if a.debug {
		masterbatch.Fdump(cmd.ErrOrStderr(), out)
	}
	return out, nil
}
