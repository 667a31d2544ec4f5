package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/studioflow/internal/calendar"
)

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Business-day calendar helpers",
	Long: `Business-day arithmetic as used for due dates. Weekends and the fixed
national holidays are not business days.

Subcommands:
  business-days    Add business days to a date
  is-business-day  Check a date
  between          Count business days between two dates
  holidays         List the fixed holidays

Examples:
  studioflow calendar business-days 2026-01-15 45
  studioflow calendar is-business-day 2026-04-21
  studioflow calendar between 2026-03-02 2026-03-09`,
	Annotations: noStore,
}

var calendarAddCmd = &cobra.Command{
	Use:   "business-days <date> <n>",
	Short: "Add n business days to a date",
	Args:  cobra.ExactArgs(2),
	RunE:  runCalendarAdd,
}

var calendarIsCmd = &cobra.Command{
	Use:   "is-business-day <date>",
	Short: "Report whether a date is a business day",
	Args:  cobra.ExactArgs(1),
	RunE:  runCalendarIs,
}

var calendarBetweenCmd = &cobra.Command{
	Use:   "between <from> <to>",
	Short: "Count business days after <from> up to and including <to>",
	Args:  cobra.ExactArgs(2),
	RunE:  runCalendarBetween,
}

var calendarHolidaysCmd = &cobra.Command{
	Use:   "holidays",
	Short: "List the fixed holidays",
	Args:  cobra.NoArgs,
	RunE:  runCalendarHolidays,
}

func init() {
	calendarCmd.AddCommand(calendarAddCmd)
	calendarCmd.AddCommand(calendarIsCmd)
	calendarCmd.AddCommand(calendarBetweenCmd)
	calendarCmd.AddCommand(calendarHolidaysCmd)
}

func parseDateArg(s string) (time.Time, error) {
	d, ok := calendar.Parse(s)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return d, nil
}

func runCalendarAdd(cmd *cobra.Command, args []string) error {
	start, err := parseDateArg(args[0])
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid day count %q", args[1])
	}
	fmt.Fprintln(cmd.OutOrStdout(), calendar.Format(calendar.AddBusinessDays(start, n)))
	return nil
}

func runCalendarIs(cmd *cobra.Command, args []string) error {
	d, err := parseDateArg(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	switch {
	case calendar.IsBusinessDay(d):
		fmt.Fprintf(out, "%s (%s) is a business day\n", calendar.Format(d), d.Weekday())
	case calendar.IsHoliday(d):
		fmt.Fprintf(out, "%s (%s) is a holiday\n", calendar.Format(d), d.Weekday())
	default:
		fmt.Fprintf(out, "%s (%s) is a weekend day\n", calendar.Format(d), d.Weekday())
	}
	return nil
}

func runCalendarBetween(cmd *cobra.Command, args []string) error {
	from, err := parseDateArg(args[0])
	if err != nil {
		return err
	}
	to, err := parseDateArg(args[1])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), calendar.BusinessDaysBetween(from, to))
	return nil
}

func runCalendarHolidays(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, h := range calendar.Holidays() {
		fmt.Fprintf(out, "%02d-%02d  %s\n", int(h.Month), h.Day, h.Name)
	}
	return nil
}
