package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-TutorBooking/internal/app"
	"github.com/m04kA/SMC-TutorBooking/internal/domain"
	"github.com/m04kA/SMC-TutorBooking/internal/service/availability/models"
	"github.com/m04kA/SMC-TutorBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-TutorBooking/pkg/types"
)

// seedOptions параметры генерации демо-данных
type seedOptions struct {
	tutors   int
	bookings int
	days     int
	seed     uint64
}

func newSeedCmd(configPath *string) *cobra.Command {
	var opts seedOptions

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill storage with demo tutors, weekly availability and bookings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, log, err := buildApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer log.Close()
			defer a.Close()

			if !a.Config.Database.Enabled {
				log.Warn("seed: database is disabled, generated data lives only until the command exits")
			}

			return runSeed(cmd, a, opts)
		},
	}

	cmd.Flags().IntVar(&opts.tutors, "tutors", 10, "number of demo tutors (ids 1..N)")
	cmd.Flags().IntVar(&opts.bookings, "bookings", 50, "number of booking attempts")
	cmd.Flags().IntVar(&opts.days, "days", 14, "bookings are spread over this many days from today")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed (0 = random)")

	return cmd
}

func runSeed(cmd *cobra.Command, a *app.App, opts seedOptions) error {
	if opts.tutors <= 0 || opts.days <= 0 || opts.bookings < 0 {
		return errors.New("seed: tutors and days must be positive, bookings non-negative")
	}

	ctx := cmd.Context()
	faker := gofakeit.New(opts.seed)
	catalogue := a.SlotsConfig.Catalogue()

	out := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(out, "TUTOR\tNAME\tSUBJECT\tWEEKDAYS")

	for tutorID := int64(1); tutorID <= int64(opts.tutors); tutorID++ {
		// Случайное подмножество дней недели и слотов каталога
		weekdays := 0
		for d := time.Sunday; d <= time.Saturday; d++ {
			if faker.Number(0, 99) < 30 {
				continue
			}
			slots := make([]string, 0, len(catalogue))
			for _, s := range catalogue {
				if faker.Bool() {
					slots = append(slots, s.String())
				}
			}
			if _, err := a.AvailabilityService.SetWeekly(ctx, &models.SetWeeklyRequest{
				RequesterID: tutorID,
				TutorID:     tutorID,
				Weekday:     d,
				Slots:       slots,
			}); err != nil {
				return fmt.Errorf("seed availability for tutor %d: %w", tutorID, err)
			}
			weekdays++
		}
		fmt.Fprintf(out, "%d\t%s\t%s\t%d\n", tutorID, faker.Name(), faker.RandomString(subjects), weekdays)
	}
	if err := out.Flush(); err != nil {
		return err
	}

	// Бронирования идут через обычный use case, недоступные слоты пропускаются
	today := types.NewDate(a.Clock.Now())
	created, rejected := 0, 0
	for i := 0; i < opts.bookings; i++ {
		tutorID := int64(faker.Number(1, opts.tutors))
		studentID := int64(opts.tutors + faker.Number(1, 1000))

		_, err := a.CreateBooking.Execute(ctx, &create_booking.Request{
			TutorID:   tutorID,
			StudentID: studentID,
			Date:      today.AddDays(faker.Number(0, opts.days-1)),
			StartTime: catalogue[faker.Number(0, len(catalogue)-1)],
		})
		switch {
		case err == nil:
			created++
		case errors.Is(err, domain.ErrSlotUnavailable):
			rejected++
		default:
			return fmt.Errorf("seed booking: %w", err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "bookings: %d created, %d slots unavailable\n", created, rejected)
	return nil
}

var subjects = []string{
	"Mathematics",
	"Physics",
	"Chemistry",
	"English",
	"History",
	"Programming",
	"Music",
	"Biology",
}
