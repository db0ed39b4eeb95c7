package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/3ricLu/Symptomfy-sub001/internal/profile"
	"github.com/3ricLu/Symptomfy-sub001/internal/transport"
)

func newWhoamiCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the profile behind the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			prof, err := e.app.ActiveProfile(cmd.Context())
			if err != nil {
				if errors.Is(err, transport.ErrSessionExpired) {
					return errors.New("not logged in")
				}
				return err
			}

			out := cmd.OutOrStdout()
			switch prof.Role {
			case profile.RolePatient:
				p := prof.Patient
				fmt.Fprintf(out, "patient\t%s\t%s\n", p.Name, p.Email)
			case profile.RoleDoctor:
				d := prof.Doctor
				fmt.Fprintf(out, "doctor\t%s\t%s", d.Name, d.Email)
				if d.Specialty != "" {
					fmt.Fprintf(out, "\t%s", d.Specialty)
				}
				fmt.Fprintln(out)
			case profile.RoleAdmin:
				a := prof.Admin
				fmt.Fprintf(out, "admin\t%s\t%s\n", a.Name, a.Email)
			default:
				return errors.New("no profile for this session")
			}
			return nil
		},
	}
}
