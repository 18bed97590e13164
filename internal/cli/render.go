package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// renderText prints the headline numbers and then one table per chart.
func renderText(w io.Writer, r Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Repository:\t%s\n", r.Repo)
	fmt.Fprintf(tw, "Health score:\t%.1f (%s)\n", r.HealthScore, r.Band)
	fmt.Fprintf(tw, "Commits analyzed:\t%d\n", r.CommitsStored)
	fmt.Fprintf(tw, "Contributors:\t%d\n", r.Summary.Contributors)
	fmt.Fprintf(tw, "Active days:\t%d\n", r.Summary.ActiveDays)
	fmt.Fprintf(tw, "Weekend ratio:\t%.0f%%\n", r.Summary.WeekendRatio*100)
	if r.Summary.WeekendVerdict != "" {
		fmt.Fprintf(tw, "Work pattern:\t%s\n", r.Summary.WeekendVerdict)
	}
	if r.Summary.Trend != "" {
		fmt.Fprintf(tw, "Trend:\t%s (%.1f commits/week recently)\n", r.Summary.Trend, r.Summary.RecentWeeklyAverage)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(r.Points) == 0 {
		_, err := fmt.Fprintln(w, "\nNo commit history.")
		return err
	}

	fmt.Fprintln(w, "\nCode churn")
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "DATE\tADDITIONS\tDELETIONS\t")
	for _, p := range r.Churn {
		fmt.Fprintf(tw, "%s\t%d\t%d\t\n", p.Label, p.Additions, p.Deletions)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w, "\nCommit impact")
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tCHURN\tAUTHOR")
	for _, p := range r.Impact {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", p.Label, p.Churn, p.Author)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w, "\nWeekly activity")
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "WEEK ENDING\tCOMMITS\t")
	for _, wk := range r.Summary.Weekly {
		fmt.Fprintf(tw, "%s\t%d\t\n", wk.WeekEnding, wk.Commits)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(r.Summary.TopContributors) > 0 {
		fmt.Fprintln(w, "\nTop contributors")
		tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, c := range r.Summary.TopContributors {
			fmt.Fprintf(tw, "%s\t%d\n", c.Author, c.Commits)
		}
		return tw.Flush()
	}
	return nil
}
