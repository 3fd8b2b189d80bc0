// Command eventchat is a terminal client for an event site's recommendation
// assistant.
//
// Usage:
//
//	eventchat [flags]                  interactive chat
//	eventchat ask [flags] <question>   one question, answer on stdout
//	eventchat prune                    delete expired conversation history
//
// Configuration is read from ~/.eventchat/config.toml and EVENTCHAT_*
// environment variables; flags take precedence.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	a := &app{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		home:   home,
		now:    time.Now,
	}
	err = newRootCmd(a).ExecuteContext(ctx)
	a.close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "eventchat: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// app holds process-wide dependencies shared by the commands.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	home   string
	now    func() time.Time

	cfg     config
	logger  *slog.Logger
	logFile io.Closer
}

func newRootCmd(a *app) *cobra.Command {
	var fresh bool
	root := &cobra.Command{
		Use:           "eventchat",
		Short:         "Ask an event site's assistant for recommendations",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runTUI(cmd.Context(), fresh)
		},
	}
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	addFlags(root)
	root.Flags().BoolVar(&fresh, "new", false, "Start a new conversation instead of resuming the latest one")

	root.AddCommand(newAskCmd(a), newPruneCmd(a))
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	v, err := initViper(a.home)
	if err != nil {
		return err
	}
	if err := bindFlags(v, cmd); err != nil {
		return err
	}
	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	f, err := openLogFile(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	a.logFile = f
	a.logger = newLogger(f, cfg.Debug)
	a.logger.Debug("config loaded", "base_url", cfg.BaseURL, "only_future", cfg.OnlyFuture, "session_dir", cfg.SessionDir)
	return nil
}

func (a *app) close() {
	if a.logFile == nil {
		return
	}
	_ = a.logFile.Close()
	a.logFile = nil
}
