package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func newAppointmentsCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "appointments",
		Aliases: []string{"appt"},
		Short:   "Browse and book appointment slots",
	}

	cmd.AddCommand(
		newAppointmentsFreeCmd(e),
		newAppointmentsListCmd(e),
		newAppointmentsBookCmd(e),
	)

	return cmd
}

func newAppointmentsFreeCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "free",
		Short: "List free slots",
		RunE: func(cmd *cobra.Command, args []string) error {
			slots, err := e.app.Appointments.FreeSlots(cmd.Context())
			if err != nil {
				return err
			}
			if len(slots) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No free slots")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SLOT ID\tDOCTOR\tSTARTS\tENDS")
			for _, s := range slots {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					s.ID, s.DoctorName,
					s.StartsAt.Local().Format(time.RFC3339),
					s.EndsAt.Local().Format("15:04"))
			}
			return w.Flush()
		},
	}
}

func newAppointmentsListCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your booked appointments",
		RunE: func(cmd *cobra.Command, args []string) error {
			appts, err := e.app.Appointments.Mine(cmd.Context())
			if err != nil {
				return err
			}
			if len(appts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No appointments")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDOCTOR\tSTARTS\tSTATUS")
			for _, a := range appts {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					a.ID, a.DoctorName,
					a.StartsAt.Local().Format(time.RFC3339),
					a.Status)
			}
			return w.Flush()
		},
	}
}

func newAppointmentsBookCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "book <slot-id>",
		Short: "Book a free slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			appt, err := e.app.Appointments.Book(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Booked %s with %s at %s\n",
				appt.ID, appt.DoctorName, appt.StartsAt.Local().Format(time.RFC3339))
			return nil
		},
	}
}
