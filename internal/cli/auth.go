package cli

import (
	"errors"
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newLoginCmd(e *env) *cobra.Command {
	var (
		email    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := resolvePassword(cmd, password)
			if err != nil {
				return err
			}

			if err := e.app.Auth.Login(cmd.Context(), email, pw); err != nil {
				return loginError(e)
			}

			route, err := e.app.Landing(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (landing: %s)\n", email, route)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prompted if omitted)")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newRegisterCmd(e *env) *cobra.Command {
	var (
		email    string
		password string
		name     string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := resolvePassword(cmd, password)
			if err != nil {
				return err
			}

			if err := e.app.Auth.Register(cmd.Context(), email, pw, name); err != nil {
				return loginError(e)
			}

			route, err := e.app.Landing(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s (landing: %s)\n", email, route)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prompted if omitted)")
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newLogoutCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			e.app.Auth.Logout()
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

// loginError surfaces the auth container's user-facing message instead of
// the raw transport error.
func loginError(e *env) error {
	if msg := e.app.Auth.State().ErrorMessage; msg != "" {
		return errors.New(msg)
	}
	return errors.New("authentication failed")
}

// resolvePassword returns the flag value or prompts on the terminal without
// echo. Falls back to a plain line read when stdin is not a terminal.
func resolvePassword(cmd *cobra.Command, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}

	fmt.Fprint(cmd.OutOrStdout(), "Password: ")
	if term.IsTerminal(int(syscall.Stdin)) {
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(raw), nil
	}

	var pw string
	if _, err := fmt.Fscanln(cmd.InOrStdin(), &pw); err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return pw, nil
}
