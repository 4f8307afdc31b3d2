package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/dateutil"
	"github.com/spf13/cobra"
)

func newLanesCmd() *cobra.Command {
	var (
		query    calendar.LeaveLaneQuery
		employee string
	)

	cmd := &cobra.Command{
		Use:   "lanes",
		Short: "Show leave requests stacked into non-overlapping lanes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if employee != "" {
				query.EmployeeID = &employee
			}
			a, err := openApp(commandContext(cmd))
			if err != nil {
				return err
			}
			defer a.close()
			return runLanes(commandContext(cmd), cmd.OutOrStdout(), a.calendar, query)
		},
	}
	cmd.Flags().StringVar(&query.StartDate, "from", "", "first date, YYYY-MM-DD")
	cmd.Flags().StringVar(&query.EndDate, "to", "", "last date, YYYY-MM-DD")
	cmd.Flags().StringVar(&employee, "employee", "", "only this employee's requests")
	cmd.Flags().StringVar(&query.Status, "status", "", "approved (default) or pending")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func runLanes(ctx context.Context, w io.Writer, svc calendar.CalendarService, query calendar.LeaveLaneQuery) error {
	resp, err := svc.GetLeaveLanes(ctx, query)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "%s %s .. %s  %s %d\n\n",
		Silent("Range:"), resp.StartDate, resp.EndDate,
		Silent("lanes:"), resp.LaneCount,
	)
	if len(resp.Items) == 0 {
		_, _ = fmt.Fprintln(w, Silent("No leave requests in range."))
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "LANE\tEMPLOYEE\tTYPE\tSTART\tEND")
	for _, item := range resp.Items {
		name := item.EmployeeName
		if name == "" {
			name = item.EmployeeID
		}
		leaveType := item.LeaveTypeName
		if item.HalfDay != "" {
			leaveType += " (" + item.HalfDay + ")"
		}
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", item.Lane, name, leaveType, item.StartDate, item.EndDate)
	}
	_ = tw.Flush()

	_, _ = fmt.Fprintln(w)
	for _, line := range laneTimeline(resp) {
		_, _ = fmt.Fprintln(w, line)
	}
	return nil
}

// laneTimeline draws one row per lane with a cell per day in the range;
// '#' marks a day covered by a request in that lane.
func laneTimeline(resp calendar.LeaveLaneResponse) []string {
	from, err := dateutil.Parse(resp.StartDate)
	if err != nil {
		return nil
	}
	to, err := dateutil.Parse(resp.EndDate)
	if err != nil {
		return nil
	}
	days := dateutil.Range(from, to)

	rows := make([][]byte, resp.LaneCount)
	for i := range rows {
		rows[i] = []byte(strings.Repeat(".", len(days)))
	}
	for _, item := range resp.Items {
		if item.Lane < 0 || item.Lane >= len(rows) {
			continue
		}
		start, err := dateutil.Parse(item.StartDate)
		if err != nil {
			continue
		}
		end, err := dateutil.Parse(item.EndDate)
		if err != nil {
			continue
		}
		for i, d := range days {
			if dateutil.Within(d, start, end) {
				rows[item.Lane][i] = '#'
			}
		}
	}

	lines := make([]string, 0, len(rows))
	for i, row := range rows {
		lines = append(lines, fmt.Sprintf("lane %d |%s|", i, row))
	}
	return lines
}
