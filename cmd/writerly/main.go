package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"writerly/internal/bootstrap"
	"writerly/internal/platform/config"
	apperrors "writerly/internal/platform/errors"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type globalFlags struct {
	configPath string
	apiURL     string
	stateDir   string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "writerly",
		Short:         "Terminal client for the writerly writing community",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default <state-dir>/config.yaml)")
	root.PersistentFlags().StringVar(&flags.apiURL, "api-url", "", "API base URL (overrides "+config.APIURLEnv+")")
	root.PersistentFlags().StringVar(&flags.stateDir, "state-dir", "", "directory for session, history and logs")

	root.AddCommand(newTUICmd(flags))
	root.AddCommand(newAuthCmd(flags))
	root.AddCommand(newWorkCmd(flags))
	root.AddCommand(newBrowseCmd(flags))
	root.AddCommand(newBookmarkCmd(flags))
	root.AddCommand(newCommentCmd(flags))
	root.AddCommand(newRateCmd(flags))
	root.AddCommand(newReadingCmd(flags))
	root.AddCommand(newNotificationsCmd(flags))
	root.AddCommand(newDashboardCmd(flags))
	root.AddCommand(newProfileCmd(flags))
	root.AddCommand(newProCmd(flags))
	root.AddCommand(newPluginCmd(flags))
	return root
}

func loadApp(flags *globalFlags) (*bootstrap.App, error) {
	cfg, err := config.New(config.Options{
		ConfigPath: flags.configPath,
		APIURL:     flags.apiURL,
		StateDir:   flags.stateDir,
	})
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

// loadAuthedApp is loadApp for commands that need a stored login.
func loadAuthedApp(flags *globalFlags) (*bootstrap.App, error) {
	app, err := loadApp(flags)
	if err != nil {
		return nil, err
	}
	if !app.AuthCLI.IsAuthenticated() {
		_ = app.Close()
		return nil, fmt.Errorf("%w: run `writerly auth login` first", apperrors.ErrNotAuthenticated)
	}
	return app, nil
}

func newTUICmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui [path]",
		Short: "Run the writerly terminal UI",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			start := "/"
			if len(args) == 1 {
				start = args[0]
			}
			return bootstrap.RunTUI(start, app)
		},
	}
}

func newAuthCmd(flags *globalFlags) *cobra.Command {
	auth := &cobra.Command{Use: "auth", Short: "Register, log in and out"}

	var username, email, password string
	registerCmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(username) == "" || strings.TrimSpace(email) == "" {
				return fmt.Errorf("--username and --email are required")
			}
			secret, err := resolvePassword(cmd, password)
			if err != nil {
				return err
			}
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			user, err := app.AuthCLI.Register(context.Background(), username, email, secret)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "registered %s (%s); log in to continue\n", user.Username, user.Email)
			return nil
		},
	}
	registerCmd.Flags().StringVar(&username, "username", "", "username")
	registerCmd.Flags().StringVar(&email, "email", "", "email address")
	registerCmd.Flags().StringVar(&password, "password", "", "password (prompted when empty)")
	auth.AddCommand(registerCmd)

	var loginEmail, loginPassword string
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(loginEmail) == "" {
				return fmt.Errorf("--email is required")
			}
			secret, err := resolvePassword(cmd, loginPassword)
			if err != nil {
				return err
			}
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			user, err := app.AuthCLI.Login(context.Background(), loginEmail, secret)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s\n", user.Username)
			return nil
		},
	}
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "email address")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "password (prompted when empty)")
	auth.AddCommand(loginCmd)

	auth.AddCommand(&cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.AuthCLI.Logout(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	})

	auth.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.AuthCLI.Status(context.Background())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if !out.Authenticated {
				_, _ = fmt.Fprintln(w, "not logged in")
				return nil
			}
			_, _ = fmt.Fprintf(w, "user:    %s <%s>\n", out.User.Username, out.User.Email)
			if out.TokenOpaque {
				_, _ = fmt.Fprintln(w, "token:   opaque")
				return nil
			}
			_, _ = fmt.Fprintf(w, "subject: %s\n", out.Subject)
			if !out.ExpiresAt.IsZero() {
				_, _ = fmt.Fprintf(w, "expires: %s\n", out.ExpiresAt.Local().Format("2006-01-02 15:04"))
			}
			return nil
		},
	})

	return auth
}

// resolvePassword returns the flag value, or prompts with echo disabled.
// Piped stdin is read as one line.
func resolvePassword(cmd *cobra.Command, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("read password: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
	_, _ = fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	b, err := term.ReadPassword(fd)
	_, _ = fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}
