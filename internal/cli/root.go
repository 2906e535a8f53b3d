// Package cli is the quotectl command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"go-quote-desk/internal/client"
	"go-quote-desk/internal/config"
	"go-quote-desk/internal/i18n"
	"go-quote-desk/internal/quote"
	"go-quote-desk/internal/session"

	"github.com/spf13/cobra"
)

// App is everything a command needs.
type App struct {
	Config     *config.ClientConfig
	ConfigPath string
	API        *client.Client
	Quotes     *client.Store
	Sessions   *session.Store
	Session    *session.Session
}

// NewApp wires the API client and restores a saved login for the configured
// server, if there is one.
func NewApp(cfg *config.ClientConfig, configPath string, sessions *session.Store) *App {
	api := client.New(cfg.BaseURL, cfg.Timeout())
	api.SetLanguage(i18n.Normalize(cfg.Language))

	a := &App{
		Config:     cfg,
		ConfigPath: configPath,
		API:        api,
		Quotes:     client.NewStore(api),
		Sessions:   sessions,
	}

	sess, err := sessions.Load()
	switch {
	case err == nil && sess.BaseURL == cfg.BaseURL:
		a.Session = sess
		api.SetToken(sess.Token)
	case err != nil && !errors.Is(err, session.ErrNoSession):
		log.Printf("⚠️ Could not restore session: %v", err)
	}
	return a
}

// Close cancels in-flight loads.
func (a *App) Close() {
	a.Quotes.Close()
}

func (a *App) lang() string {
	return i18n.Normalize(a.Config.Language)
}

// NewRootCmd builds the command tree for a.
func NewRootCmd(a *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "quotectl",
		Short: "Create, view and export price quotations",
		Long: `quotectl talks to a quote desk server.

Sign in with "quotectl login", then manage quotes with "quotectl quotes".
Settings live in ~/.config/quotedesk/config.yaml.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newLoginCmd(a))
	rootCmd.AddCommand(newLogoutCmd(a))
	rootCmd.AddCommand(newQuotesCmd(a))
	rootCmd.AddCommand(newCompanyCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	return rootCmd
}

// Execute runs the command line and returns the process exit code. Failures
// print one localized line; the detail goes to the log.
func Execute(ctx context.Context, a *App, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, failureMessage(a.lang(), err))
		log.Printf("❌ %v", err)
		return 1
	}
	return 0
}

// failureMessage is what the user sees for err: the server's own localized
// message when there is one, otherwise a generic line.
func failureMessage(lang string, err error) string {
	generic := i18n.T(lang, "operation_failed")

	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return generic + ": " + apiErr.Message
	}
	var invalid *quote.ValidationError
	if errors.As(err, &invalid) {
		msg := i18n.T(lang, invalid.Code)
		if invalid.Index >= 0 {
			msg = fmt.Sprintf("%s (#%d)", msg, invalid.Index+1)
		}
		return generic + ": " + msg
	}
	var usage *usageError
	if errors.As(err, &usage) {
		return generic + ": " + usage.Error()
	}
	if errors.Is(err, session.ErrNoSession) {
		return generic + ": " + i18n.T(lang, "unauthorized")
	}
	return generic
}

// usageError is a mistake on the command line, shown to the user as is.
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...interface{}) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}
