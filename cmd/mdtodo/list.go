package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"

	"github.com/amonks/mdtodo/internal/age"
	"github.com/amonks/mdtodo/internal/listflags"
	"github.com/amonks/mdtodo/internal/markdown"
	"github.com/amonks/mdtodo/internal/ui"
	"github.com/amonks/mdtodo/todo"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the todos in view",
	Long: `List the todos in view, numbered for use with the other commands.

Completed todos drop out of view five minutes after completion. Todos that
start more than 12 hours from now, or started more than 14 days ago, are
hidden too. Use --all to see everything in the file.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var (
	listAll  bool
	listJSON bool
)

var showCmd = &cobra.Command{
	Use:   "show <row>",
	Short: "Show one todo in detail",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var showJSON bool

var catCmd = &cobra.Command{
	Use:   "cat",
	Short: "Print the list file",
	Args:  cobra.NoArgs,
	RunE:  runCat,
}

var catPretty bool

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List the projects for the user and year",
	Args:  cobra.NoArgs,
	RunE:  runProjects,
}

var projectsJSON bool

func init() {
	rootCmd.AddCommand(listCmd, showCmd, catCmd, projectsCmd)

	listflags.AddAllFlag(listCmd, &listAll)
	listflags.AddJSONFlag(listCmd, &listJSON)
	listflags.AddJSONFlag(showCmd, &showJSON)
	listflags.AddJSONFlag(projectsCmd, &projectsJSON)
	catCmd.Flags().BoolVar(&catPretty, "pretty", false, "Render as markdown")
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	records, err := a.records()
	if err != nil {
		return err
	}

	shown := todo.Visible(records, a.now)
	if listAll {
		shown = records
	}

	out := cmd.OutOrStdout()
	if listJSON {
		if shown == nil {
			shown = []todo.Record{}
		}
		return encodeJSON(out, shown)
	}

	if len(shown) == 0 {
		fmt.Fprintln(out, emptyListMessage(len(records), listAll))
		return nil
	}

	_, err = fmt.Fprint(out, formatRecordTable(shown, a))
	return err
}

func formatRecordTable(records []todo.Record, a *app) string {
	builder := ui.NewTableBuilder([]string{
		ui.StyleHeader("#"),
		ui.StyleHeader(" "),
		ui.StyleHeader("CREATED"),
		ui.StyleHeader("AGE"),
		ui.StyleHeader("TODO"),
	}, len(records))

	row := 0
	for _, record := range records {
		number := "-"
		if todo.IsVisible(record, a.now) {
			row++
			number = strconv.Itoa(row)
		}

		created, age := "-", "-"
		if record.CreateDate != nil {
			created = record.CreateDate.String()
			age = ui.FormatRelative(record.CreateDate.In(a.now.Location()), a.now)
		}

		state := rowState(record, a.now)
		builder.AddRow([]string{
			number,
			checkbox(record),
			created,
			age,
			ui.StyleRow(state, ui.TruncateTableCell(record.Description)),
		})
	}
	return builder.String()
}

func runShow(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	rows, err := a.visible()
	if err != nil {
		return err
	}
	idx, err := parseRow(args[0], len(rows))
	if err != nil {
		return err
	}
	record := rows[idx]

	out := cmd.OutOrStdout()
	if showJSON {
		return encodeJSON(out, record)
	}
	_, err = fmt.Fprint(out, formatRecordDetail(record, a, outputWidth()))
	return err
}

func formatRecordDetail(record todo.Record, a *app, width int) string {
	var b strings.Builder
	b.WriteString(wordwrap.String(record.Description, max(width-2, 20)))
	b.WriteString("\n\n")

	field := func(name, value string) {
		fmt.Fprintf(&b, "%-10s %s\n", name+":", value)
	}

	status := "open"
	if record.IsComplete {
		status = "done"
	}
	field("Status", status)
	if record.CreateDate != nil {
		field("Created", fmt.Sprintf("%s (%s)", record.CreateDate, ui.FormatRelative(record.CreateDate.In(a.now.Location()), a.now)))
	}
	if record.IsComplete && record.CompleteDate != nil {
		field("Completed", fmt.Sprintf("%s (%s)", record.CompleteDate, ui.FormatRelative(record.CompleteDate.In(a.now.Location()), a.now)))
	}
	if open, ok := openDuration(record, a.now); ok {
		field("Open for", ui.FormatDurationShort(open))
	}
	if record.Link != nil {
		field("Link", fmt.Sprintf("%s -> %s", record.Link.Text, record.Link.TargetKey))
	}
	if record.Recurring != nil {
		field("Repeats", record.RecurringMarker())
		if !record.IsComplete {
			var created todo.DateSpec
			if record.CreateDate != nil {
				created = *record.CreateDate
			}
			next := todo.NextOccurrence(*record.Recurring, todo.DateOf(a.now), created)
			field("Next", "when done now, returns "+next.String())
		}
	}
	return b.String()
}

func openDuration(record todo.Record, now time.Time) (time.Duration, bool) {
	var created, completed time.Time
	if record.CreateDate != nil {
		created = record.CreateDate.In(now.Location())
	}
	if record.CompleteDate != nil {
		completed = record.CompleteDate.In(now.Location())
	}
	return age.OpenDuration(created, completed, record.IsComplete, now)
}

func runCat(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	data, err := a.store.Raw(a.key)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !catPretty {
		_, err = out.Write(data)
		return err
	}
	rendered := markdown.SafeRender(outputWidth(), 0, data)
	if len(rendered) == 0 {
		return nil
	}
	_, err = fmt.Fprintln(out, string(rendered))
	return err
}

func runProjects(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	projects, err := a.store.Projects(a.key.User, a.key.Year)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if projectsJSON {
		if projects == nil {
			projects = []string{}
		}
		return encodeJSON(out, projects)
	}
	if len(projects) == 0 {
		fmt.Fprintf(out, "No projects for %s in %d.\n", a.key.User, a.key.Year)
		return nil
	}
	for _, project := range projects {
		fmt.Fprintln(out, project)
	}
	return nil
}
