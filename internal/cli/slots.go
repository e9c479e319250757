package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-TutorBooking/internal/domain"
	"github.com/m04kA/SMC-TutorBooking/pkg/types"
)

func newSlotsCmd(configPath *string) *cobra.Command {
	var (
		tutorID int64
		dateStr string
	)

	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Show a tutor's slots for a date with availability reasons",
		RunE: func(cmd *cobra.Command, _ []string) error {
			date, err := parseDateFlag(dateStr)
			if err != nil {
				return err
			}

			a, log, err := buildApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer log.Close()
			defer a.Close()

			slots, err := a.Calendar(tutorID).SelectDate(cmd.Context(), date)
			if err != nil {
				return err
			}
			return printSlots(cmd, date, slots)
		},
	}

	cmd.Flags().Int64Var(&tutorID, "tutor", 0, "tutor id")
	cmd.Flags().StringVar(&dateStr, "date", "", "date YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("tutor")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func newBookCmd(configPath *string) *cobra.Command {
	var (
		tutorID   int64
		studentID int64
		dateStr   string
		slotStr   string
	)

	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book a slot for a student",
		RunE: func(cmd *cobra.Command, _ []string) error {
			date, err := parseDateFlag(dateStr)
			if err != nil {
				return err
			}
			slot, err := types.NewTimeStringFromString(slotStr)
			if err != nil {
				return err
			}

			a, log, err := buildApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer log.Close()
			defer a.Close()

			ctrl := a.Calendar(tutorID)
			if _, err := ctrl.SelectDate(cmd.Context(), date); err != nil {
				return err
			}
			if err := ctrl.SelectSlot(slot); err != nil {
				return err
			}

			booking, err := ctrl.Confirm(cmd.Context(), studentID)
			if err != nil {
				if reason, ok := domain.UnavailableReason(err); ok {
					return fmt.Errorf("slot %s is no longer available: %s", slot.Label(), reason)
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "booked #%d: tutor %d, student %d, %s %s\n",
				booking.ID, booking.TutorID, booking.StudentID, booking.Date, booking.StartTime.Label())
			return printSlots(cmd, date, ctrl.State().Slots)
		},
	}

	cmd.Flags().Int64Var(&tutorID, "tutor", 0, "tutor id")
	cmd.Flags().Int64Var(&studentID, "student", 0, "student id")
	cmd.Flags().StringVar(&dateStr, "date", "", "date YYYY-MM-DD")
	cmd.Flags().StringVar(&slotStr, "slot", "", `slot, e.g. "09:00" or "9:00 AM"`)
	for _, name := range []string{"tutor", "student", "date", "slot"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func parseDateFlag(s string) (types.Date, error) {
	if s == "" {
		return types.Date{}, errors.New("--date is required")
	}
	return types.ParseDate(s)
}

func printSlots(cmd *cobra.Command, date types.Date, slots []domain.ResolvedSlot) error {
	out := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(out, "%s (%s)\n", date, date.Weekday())
	fmt.Fprintln(out, "SLOT\tOFFERED\tREASON")
	for _, s := range slots {
		offered := "-"
		if s.IsOfferable() {
			offered = "yes"
		}
		fmt.Fprintf(out, "%s\t%s\t%s\n", s.StartTime.Label(), offered, s.Reason)
	}
	return out.Flush()
}
