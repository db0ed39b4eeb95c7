// Package cli implements the symptomfy command line client. Each invocation
// builds a full client session; tokens are carried between invocations
// through a session file so refresh and expiry behave the same as in a
// long-lived session.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/3ricLu/Symptomfy-sub001/internal/app"
	"github.com/3ricLu/Symptomfy-sub001/internal/config"
	"github.com/3ricLu/Symptomfy-sub001/pkg/logger"
)

const appName = "symptomfy"

// env is the per-invocation state shared by all subcommands.
type env struct {
	app         *app.App
	cfg         *config.Config
	sessionPath string
}

// NewRootCmd builds the symptomfy command tree.
func NewRootCmd(version string) *cobra.Command {
	var (
		apiURL      string
		logLevel    string
		sessionPath string
	)

	e := &env{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Symptomfy command line client",
		Long: `Symptomfy is a symptom checking and appointment booking client.

Log in or register first; the session tokens are stored in a local
session file and reused by subsequent commands until they expire.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if apiURL != "" {
				cfg.APIURL = apiURL
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}

			log := logger.NewWithWriter(appName, cfg.LogLevel, os.Stderr)

			e.cfg = cfg
			e.app = app.New(cfg, log)

			path := sessionPath
			if path == "" {
				path, err = defaultSessionPath()
				if err != nil {
					return err
				}
			}
			e.sessionPath = path

			if err := loadSessionFile(path, e.app.Sessions); err != nil {
				return fmt.Errorf("load session file: %w", err)
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if e.app == nil {
				return nil
			}
			if err := saveSessionFile(e.sessionPath, e.app.Sessions); err != nil {
				return fmt.Errorf("save session file: %w", err)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend base URL (overrides SYMPTOMFY_API_URL)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&sessionPath, "session-file", "", "Path to the session token file")

	cmd.AddCommand(
		newLoginCmd(e),
		newRegisterCmd(e),
		newLogoutCmd(e),
		newWhoamiCmd(e),
		newCheckCmd(e),
		newAppointmentsCmd(e),
		newVersionCmd(version),
	)

	return cmd
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, version)
		},
	}
}
