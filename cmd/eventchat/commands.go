package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	xterm "github.com/charmbracelet/x/term"
	"github.com/fwojciec/eventchat"
	"github.com/fwojciec/eventchat/api"
	bt "github.com/fwojciec/eventchat/bubbletea"
	"github.com/fwojciec/eventchat/goldmark"
	ecjson "github.com/fwojciec/eventchat/json"
	"github.com/fwojciec/eventchat/term"
	"github.com/spf13/cobra"
)

func newAskCmd(a *app) *cobra.Command {
	var noStream bool
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask one question and print the answer",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.ask(cmd.Context(), strings.Join(args, " "), noStream)
		},
	}
	cmd.Flags().BoolVar(&noStream, "no-stream", false, "Use the non-streaming endpoint")
	return cmd
}

func newPruneCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Delete conversations idle for 15 days or more",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			removed, err := a.store().Prune(a.now())
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "Removed %d expired conversation(s).\n", removed)
			return nil
		},
	}
}

func (a *app) client() *api.Client {
	return api.New(api.WithBaseURL(a.cfg.BaseURL))
}

func (a *app) store() *ecjson.Store {
	return &ecjson.Store{Dir: a.cfg.SessionDir, Logger: a.logger}
}

func (a *app) ask(ctx context.Context, question string, noStream bool) error {
	theme := eventchat.DefaultTheme()
	width, tty := terminal(a.stdout)
	display := term.NewDisplay(a.stdout, theme,
		term.WithAnswerRenderer(goldmark.New(theme, goldmark.WithBaseURL(a.cfg.BaseURL))),
		term.WithBaseURL(a.cfg.BaseURL),
		term.WithWidth(width),
		term.WithErase(tty),
	)
	req := eventchat.Request{Message: question, OnlyFuture: a.cfg.OnlyFuture}
	if err := req.Validate(); err != nil {
		return err
	}
	display.ShowQuestion(strings.TrimSpace(question))

	if noStream {
		reply, err := a.client().Reply(ctx, req)
		if err != nil {
			a.logger.Error("reply failed", "err", err)
			display.ShowFailure(eventchat.FailureText)
			return err
		}
		display.ShowEvents(reply.Events)
		display.ShowAnswer(reply.Answer)
		return nil
	}

	assistant := eventchat.NewAssistant(a.client(), display, nil, eventchat.WithLogger(a.logger))
	_, err := assistant.Send(ctx, req)
	return err
}

func (a *app) runTUI(ctx context.Context, fresh bool) error {
	store := a.store()
	session, err := a.resumeSession(store, fresh)
	if err != nil {
		return err
	}

	theme := eventchat.DefaultTheme()
	display := bt.NewDisplay()
	assistant := eventchat.NewAssistant(a.client(), display, &session,
		eventchat.WithLogger(a.logger.With("session", session.ID)),
		eventchat.WithSessionStore(store),
	)
	m := bt.New(assistant.Send, display, &session, theme,
		bt.WithOnlyFuture(a.cfg.OnlyFuture),
		bt.WithAnswerRenderer(goldmark.New(theme, goldmark.WithBaseURL(a.cfg.BaseURL))),
		bt.WithBaseURL(a.cfg.BaseURL),
	)
	if err := bt.Run(ctx, m); err != nil {
		return fmt.Errorf("TUI: %w", err)
	}
	if len(session.Messages) > 0 {
		fmt.Fprintf(a.stderr, "Conversation saved to %s\n", store.Path(session.ID))
	}
	return nil
}

// resumeSession returns the latest unexpired session, or a new one when
// fresh is set or none exists.
func (a *app) resumeSession(store *ecjson.Store, fresh bool) (eventchat.Session, error) {
	now := a.now()
	if !fresh {
		s, ok, err := store.Latest(now)
		if err != nil {
			return eventchat.Session{}, fmt.Errorf("load history: %w", err)
		}
		if ok {
			a.logger.Info("resuming session", "id", s.ID, "messages", len(s.Messages))
			return s, nil
		}
	}
	s := eventchat.NewSession(now)
	a.logger.Info("new session", "id", s.ID)
	return s, nil
}

// terminal reports the wrap width for w and whether it is a terminal.
func terminal(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok || !xterm.IsTerminal(f.Fd()) {
		return 80, false
	}
	width, _, err := xterm.GetSize(f.Fd())
	if err != nil || width <= 0 {
		return 80, true
	}
	return width, true
}
