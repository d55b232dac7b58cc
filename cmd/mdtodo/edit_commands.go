package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amonks/mdtodo/internal/editor"
	"github.com/amonks/mdtodo/internal/listflags"
	"github.com/amonks/mdtodo/todo"
)

var addCmd = &cobra.Command{
	Use:   "add <text>...",
	Short: "Add a todo",
	Long: `Add a todo to the list. The text may start with a date such as
"04-nov-2025" or "09:00:00 04-nov-2025"; otherwise the todo starts now.
End the text with a marker such as #d, #w:mon:fri or #m:1,15 to make it
repeat when completed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var doneCmd = &cobra.Command{
	Use:   "done <row>...",
	Short: "Mark todos as done",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDone,
}

var undoCmd = &cobra.Command{
	Use:   "undo <row>...",
	Short: "Mark done todos as open again",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runUndo,
}

var editCmd = &cobra.Command{
	Use:   "edit <row>",
	Short: "Edit a todo",
	Long: `Edit a todo. Without flags, opens $EDITOR on the todo when run
interactively.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var (
	editDescription string
	editCreated     string
	editOpenEditor  bool
	editNoEditor    bool
)

var reorderCmd = &cobra.Command{
	Use:   "reorder <from> <to>",
	Short: "Move a todo to another row",
	Long: `Move a todo to another row of the view. The list keeps its canonical
order (linked todos, then done todos, then open todos by start date), so this
only changes the order of todos that sort the same.`,
	Args: cobra.ExactArgs(2),
	RunE: runReorder,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <row>",
	Short: "Delete a todo",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

var moveCmd = &cobra.Command{
	Use:   "move <row> <project>",
	Short: "Move a todo to another project",
	Args:  cobra.ExactArgs(2),
	RunE:  runMove,
}

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply a JSON list of proposed edits read from stdin",
	Long: `Apply reads a JSON array of proposed edits from stdin and merges it
into the list the way an editing client's save would. Each edit carries the
key the row was loaded with plus its current values.`,
	Args: cobra.NoArgs,
	RunE: runApply,
}

var applyJSON bool

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an empty list for the project",
	Args:  cobra.NoArgs,
	RunE:  runCreate,
}

func init() {
	rootCmd.AddCommand(addCmd, doneCmd, undoCmd, editCmd, reorderCmd, deleteCmd, moveCmd, applyCmd, createCmd)

	editCmd.Flags().StringVar(&editDescription, "description", "", "New description")
	editCmd.Flags().StringVar(&editCreated, "created", "", "New start date, e.g. 04-nov-2025 or \"09:00:00 04-nov-2025\"")
	editCmd.Flags().BoolVarP(&editOpenEditor, "edit", "e", false, "Open $EDITOR even when flags are given")
	editCmd.Flags().BoolVar(&editNoEditor, "no-edit", false, "Never open $EDITOR")
	addDescriptionFlagAliases(editCmd)

	listflags.AddJSONFlag(applyCmd, &applyJSON)
}

func runAdd(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	record, err := a.store.Add(a.key, strings.Join(args, " "), a.now)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added to %s: %s\n", a.key, todo.FormatLine(record, todo.DayOf(a.now)))
	return nil
}

func runDone(cmd *cobra.Command, args []string) error {
	return setComplete(cmd, args, true)
}

func runUndo(cmd *cobra.Command, args []string) error {
	return setComplete(cmd, args, false)
}

func setComplete(cmd *cobra.Command, args []string, complete bool) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	rows, err := a.visible()
	if err != nil {
		return err
	}
	indexes, err := parseRows(args, len(rows))
	if err != nil {
		return err
	}

	edits := todo.EditsFromRecords(rows)
	for _, idx := range indexes {
		edits[idx].IsComplete = complete
		edits[idx].CompleteDate = nil
	}
	if _, err := a.save(edits); err != nil {
		return err
	}

	verb := "Done"
	if !complete {
		verb = "Reopened"
	}
	out := cmd.OutOrStdout()
	for _, idx := range indexes {
		fmt.Fprintf(out, "%s: %s\n", verb, rows[idx].Description)
		if complete && !rows[idx].IsComplete && rows[idx].Recurring != nil {
			fmt.Fprintf(out, "Repeats %s\n", rows[idx].RecurringMarker())
		}
	}
	return nil
}

func runEdit(cmd *cobra.Command, args []string) error {
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

	edits := todo.EditsFromRecords(rows)
	hasFlags := hasChangedFlags(cmd, "description", "created")
	if shouldUseEditor(hasFlags, editOpenEditor, editNoEditor, editor.IsInteractive()) {
		parsed, err := editor.EditRecord(rows[idx])
		if err != nil {
			return err
		}
		edits[idx] = parsed.Apply(edits[idx])
	} else {
		if !hasFlags {
			return fmt.Errorf("nothing to change: pass --description or --created, or --edit to open $EDITOR")
		}
		if edits[idx], err = applyEditFlags(cmd, edits[idx]); err != nil {
			return err
		}
	}

	if _, err := a.save(edits); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated: %s\n", edits[idx].Description)
	return nil
}

func applyEditFlags(cmd *cobra.Command, edit todo.ProposedEdit) (todo.ProposedEdit, error) {
	if cmd.Flags().Changed("description") {
		description := strings.TrimSpace(editDescription)
		if description == "" {
			return edit, todo.ErrEmptyDescription
		}
		edit.Description = description
		edit.Link = todo.FindLink(description)
		edit.RecurringMarker = ""
		if rule := todo.ParseRecurrence(description); rule != nil {
			edit.RecurringMarker = rule.Marker()
		}
	}
	if cmd.Flags().Changed("created") {
		created, ok := todo.ParseDate(editCreated)
		if !ok {
			return edit, fmt.Errorf("%w: %q", todo.ErrInvalidDate, editCreated)
		}
		edit.CreateDate = &created
	}
	return edit, nil
}

func runReorder(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	rows, err := a.visible()
	if err != nil {
		return err
	}
	from, err := parseRow(args[0], len(rows))
	if err != nil {
		return err
	}
	to, err := parseRow(args[1], len(rows))
	if err != nil {
		return err
	}
	if from == to {
		return nil
	}

	if _, err := a.save(moveEdit(todo.EditsFromRecords(rows), from, to)); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Moved %q to row %d\n", rows[from].Description, to+1)
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
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

	removed, err := a.store.Delete(a.key, rows[idx].Key(), a.now)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted: %s\n", removed.Description)
	return nil
}

func runMove(cmd *cobra.Command, args []string) error {
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

	target := a.key.WithProject(args[1])
	moved, err := a.store.Move(a.key, rows[idx].Key(), target.Project, a.now)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Moved to %s: %s\n", target, moved.Description)
	return nil
}

func runApply(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	edits, err := decodeEdits(cmd.InOrStdin())
	if err != nil {
		return err
	}
	if _, err := a.records(); err != nil {
		return err
	}

	merged, err := a.save(edits)
	if err != nil {
		return err
	}
	if applyJSON {
		return encodeJSON(cmd.OutOrStdout(), merged)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %d todos to %s\n", len(merged), a.key)
	return nil
}

func decodeEdits(r io.Reader) ([]todo.ProposedEdit, error) {
	var edits []todo.ProposedEdit
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&edits); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read edits: no input")
		}
		return nil, fmt.Errorf("read edits: %w", err)
	}
	return edits, nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	if err := a.store.Create(a.key); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created list %s\n", a.key)
	return nil
}
