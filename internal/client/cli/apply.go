package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/jobintake/internal/client/flow"
	"github.com/dmitrijs2005/jobintake/internal/client/models"
)

var fieldLabels = map[string]string{
	models.FieldFullName:           "Full name",
	models.FieldEmail:              "Email",
	models.FieldPhone:              "Phone (10 digits)",
	models.FieldCity:               "City",
	models.FieldState:              "State",
	models.FieldPincode:            "Pincode (6 digits)",
	models.FieldWorkMode:           "Work mode (REMOTE, ONSITE, HYBRID)",
	models.FieldPreferredLocation:  "Preferred location",
	models.FieldCurrentCompany:     "Current company",
	models.FieldTotalExperience:    "Total experience (years)",
	models.FieldRelevantExperience: "Relevant experience (years)",
	models.FieldNoticePeriod:       "Notice period",
	models.FieldResume:             "Resume",
	models.FieldLinkedInURL:        "LinkedIn URL",
	models.FieldGitHubURL:          "GitHub URL",
	models.FieldPortfolioURL:       "Portfolio URL",
	models.FieldAdditionalInfo:     "Additional information",
}

var optionalFields = map[string]struct{}{
	models.FieldLinkedInURL:    {},
	models.FieldGitHubURL:      {},
	models.FieldPortfolioURL:   {},
	models.FieldAdditionalInfo: {},
}

const formHelp = "Form commands: show, edit <field>, resume, submit, cancel"

// clearValue empties an optional field. An empty answer keeps the current one.
const clearValue = "-"

type cliNavigator struct {
	a *App
}

func (n *cliNavigator) Leave(_ context.Context, notice string) {
	fmt.Fprintln(n.a.out, notice)
}

// Apply runs one application flow for the job id in args.
func (a *App) Apply(ctx context.Context, args []string) error {
	if len(args) != 1 {
		printlnFn("Usage: apply <jobId>")
		return nil
	}
	jobID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || jobID <= 0 {
		printlnFn("Job id must be a positive number")
		return nil
	}

	f, err := flow.Enter(ctx, jobID, flow.Deps{
		Jobs:         a.jobs,
		Applications: a.applications,
		Navigator:    &cliNavigator{a: a},
		Logger:       a.logger,
	})
	if errors.Is(err, flow.ErrPostingUnavailable) {
		fmt.Fprintln(a.out, flow.MsgPostingUnavailable)
		return nil
	}
	if err != nil {
		return err
	}

	a.printPosting(f.Posting())

	for _, field := range models.TextFields {
		if err := a.editField(f, field); err != nil {
			return err
		}
	}
	if err := a.chooseResume(ctx, f); err != nil {
		return err
	}

	return a.formLoop(ctx, f)
}

func (a *App) formLoop(ctx context.Context, f *flow.Flow) error {
	fmt.Fprintln(a.out, formHelp)
	for {
		line, err := GetSimpleText(a.reader, fmt.Sprintf("apply #%d", f.Posting().ID), a.out)
		if err != nil {
			return err
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "help":
			fmt.Fprintln(a.out, formHelp)

		case "show":
			a.printForm(f)

		case "edit":
			if len(parts) != 2 {
				fmt.Fprintln(a.out, "Usage: edit <field>. Fields: "+strings.Join(models.TextFields, ", "))
				continue
			}
			if parts[1] == models.FieldResume {
				err = a.chooseResume(ctx, f)
			} else {
				err = a.editField(f, parts[1])
			}
			if err != nil {
				return err
			}

		case "resume":
			if err := a.chooseResume(ctx, f); err != nil {
				return err
			}

		case "submit":
			done, err := a.submit(ctx, f)
			if err != nil || done {
				return err
			}

		case "cancel":
			fmt.Fprintln(a.out, "Application discarded.")
			return nil

		default:
			fmt.Fprintln(a.out, "Unknown form command:", parts[0])
		}
	}
}

// submit returns true once the flow is finished.
func (a *App) submit(ctx context.Context, f *flow.Flow) (bool, error) {
	draft := f.Form().Draft()
	if draft.Resume != nil {
		prev, err := a.applications.PreviousSubmission(ctx, f.Posting().ID, draft.Resume)
		if err != nil {
			a.logger.Warn(ctx, "duplicate check failed", "error", err)
		}
		if prev != nil {
			ok, err := Confirm(a.reader, fmt.Sprintf(
				"You already applied for this job with this resume on %s. Submit again?",
				prev.SubmittedAt.Local().Format("2 Jan 2006 15:04")), a.out)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
	}

	fmt.Fprintln(a.out, "Submitting...")
	outcome, err := f.Submit(ctx)
	if errors.Is(err, flow.ErrFlowClosed) {
		return true, nil
	}
	if err != nil {
		fmt.Fprintln(a.out, err)
		return false, nil
	}
	if outcome.Succeeded() {
		return true, nil
	}

	a.printErrors(f)
	return false, nil
}

func (a *App) editField(f *flow.Flow, field string) error {
	label, ok := fieldLabels[field]
	if !ok || field == models.FieldResume {
		fmt.Fprintf(a.out, "Unknown field %q\n", field)
		return nil
	}
	_, optional := optionalFields[field]
	if optional {
		label += " (optional, - clears)"
	}

	for {
		current, _ := f.Form().Draft().Value(field)
		prompt := label
		if current != "" {
			prompt += fmt.Sprintf(" [%s]", current)
		}

		value, err := GetSimpleText(a.reader, prompt, a.out)
		if err != nil {
			return err
		}
		if value == "" && current != "" {
			return nil
		}
		if optional && value == clearValue {
			value = ""
		}

		if err := f.Form().SetField(field, value); err != nil {
			fmt.Fprintln(a.out, err)
			continue
		}
		return nil
	}
}

// chooseResume asks for a file until one is accepted or the input is left
// empty.
func (a *App) chooseResume(ctx context.Context, f *flow.Flow) error {
	for {
		ref, err := GetSimpleText(a.reader, "Resume file (path or s3://bucket/key, .pdf/.doc/.docx up to 5 MB, empty to skip)", a.out)
		if err != nil {
			return err
		}
		if ref == "" {
			return nil
		}

		file, err := a.picker.Pick(ctx, ref)
		if err != nil {
			fmt.Fprintln(a.out, "Could not open file:", err)
			continue
		}

		if err := f.Form().SelectResume(file); err != nil {
			a.logger.Debug(ctx, "resume rejected", "name", file.Name, "error", err)
			fmt.Fprintln(a.out, f.Form().GlobalError())
			f.Form().ClearGlobalError()
			continue
		}
		fmt.Fprintf(a.out, "Selected %s (%s)\n", file.Name, humanSize(file.Size))
		return nil
	}
}

func (a *App) printPosting(p models.JobPosting) {
	fmt.Fprintf(a.out, "\nApplying for: %s\n", p.Role)
	for _, kv := range [][2]string{
		{"Department", p.Department},
		{"Location", p.Location},
		{"Employment type", p.EmploymentType},
		{"Mode", p.Mode},
	} {
		if kv[1] != "" {
			fmt.Fprintf(a.out, "  %s: %s\n", kv[0], kv[1])
		}
	}
	fmt.Fprintln(a.out)
}

func (a *App) printForm(f *flow.Flow) {
	d := f.Form().Draft()
	errs := f.Form().Errors()
	for _, field := range models.TextFields {
		v, _ := d.Value(field)
		a.printLine(fieldLabels[field], v, errs[field])
	}
	resume := ""
	if d.Resume != nil {
		resume = fmt.Sprintf("%s (%s)", d.Resume.Name, humanSize(d.Resume.Size))
	}
	a.printLine(fieldLabels[models.FieldResume], resume, errs[models.FieldResume])
	if msg := f.Form().GlobalError(); msg != "" {
		fmt.Fprintln(a.out, "!", msg)
	}
}

func (a *App) printLine(label, value, errMsg string) {
	if errMsg != "" {
		fmt.Fprintf(a.out, "  %-30s %s  <- %s\n", label+":", value, errMsg)
		return
	}
	fmt.Fprintf(a.out, "  %-30s %s\n", label+":", value)
}

func (a *App) printErrors(f *flow.Flow) {
	if msg := f.Form().GlobalError(); msg != "" {
		fmt.Fprintln(a.out, "!", msg)
	}
	errs := f.Form().Errors()
	for _, field := range errs.Keys() {
		label, ok := fieldLabels[field]
		if !ok {
			label = field
		}
		fmt.Fprintf(a.out, "  %s: %s\n", label, errs[field])
	}
	if len(errs) > 0 {
		fmt.Fprintln(a.out, "Use 'edit <field>' to fix, then 'submit' again.")
	}
}

func humanSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%d B", n)
}
