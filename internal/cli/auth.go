package cli

import (
	"bufio"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"go-quote-desk/internal/i18n"
	"go-quote-desk/internal/session"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newLoginCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login [username]",
		Short: "Sign in and remember the session",
		Long: `Sign in to the configured server. The password is read from --password
or, when omitted, from the first line of standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, _ := cmd.Flags().GetString("password")
			if password == "" {
				var err error
				if password, err = readPassword(cmd); err != nil {
					return err
				}
			}

			s, err := a.API.Login(cmd.Context(), args[0], password)
			if err != nil {
				return fmt.Errorf("login: %w", err)
			}

			a.Session = &session.Session{
				BaseURL:   a.Config.BaseURL,
				Token:     s.Token,
				Username:  s.Username,
				Role:      s.Role,
				ExpiresAt: s.ExpiresAt,
			}
			if err := a.Sessions.Save(a.Session); err != nil {
				return fmt.Errorf("failed to save session: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Signed in as %s (%s)\n", s.Username, s.Role)
			return nil
		},
	}
	cmd.Flags().StringP("password", "p", "", "Password (read from stdin when empty)")
	return cmd
}

func newLogoutCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.Session == nil {
				return session.ErrNoSession
			}
			// The token is forgotten locally even if the server is unreachable.
			if err := a.API.Logout(cmd.Context()); err != nil {
				log.Printf("⚠️ Server logout failed: %v", err)
			}
			if err := a.Sessions.Clear(); err != nil {
				return err
			}
			a.Session = nil
			a.API.SetToken("")

			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", i18n.T(a.lang(), "logged_out"))
			return nil
		},
	}
}

// readPassword prompts without echo on a terminal and otherwise reads the
// first line of stdin.
func readPassword(cmd *cobra.Command) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", usagef("password is required")
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// requireSession fails early when nobody is signed in.
func requireSession(a *App) error {
	if a.Session == nil {
		return errors.Join(session.ErrNoSession, errors.New("run \"quotectl login\" first"))
	}
	return nil
}
