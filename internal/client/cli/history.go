package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
)

func (a *App) History(ctx context.Context) error {
	list, err := a.applications.History(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No applications submitted yet.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SUBMITTED\tJOB\tROLE\tRESUME\tREFERENCE")
	for _, r := range list {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n",
			r.SubmittedAt.Local().Format("2006-01-02 15:04"), r.JobID, r.Role, r.ResumeName, r.Reference)
	}
	return tw.Flush()
}
