package format

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"momentum-cli/internal/model"
)

var (
	bold      = color.New(color.Bold).SprintFunc()
	faint     = color.New(color.Faint).SprintFunc()
	green     = color.New(color.FgGreen).SprintFunc()
	underline = color.New(color.Underline).SprintFunc()
)

func mark(completed bool) string {
	if completed {
		return green("x")
	}
	return "·"
}

// Collections renders task lists as one table per list, habits first.
func Collections(w io.Writer, cols []model.Collection) {
	for i, c := range cols {
		if i > 0 {
			fmt.Fprintln(w)
		}
		Collection(w, c)
	}
}

func Collection(w io.Writer, c model.Collection) {
	title := bold(underline(c.Title))
	if c.Locked {
		title += " " + faint("(locked)")
	}
	fmt.Fprintln(w, title)

	if len(c.Items) == 0 {
		fmt.Fprintln(w, faint("  no tasks"))
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, it := range c.Items {
		tbl.AddRow(" "+mark(it.Completed), it.Text, faint(it.ID))
	}
	fmt.Fprintln(w, tbl)
}

// Goals renders the goal overview table.
func Goals(w io.Writer, goals []model.Goal) {
	if len(goals) == 0 {
		fmt.Fprintln(w, faint("no goals"))
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold(""), bold("Goal"), bold("Deadline"), bold("Subgoals"), bold("ID"))
	for _, g := range goals {
		done := 0
		for _, sg := range g.Subgoals {
			if sg.Completed {
				done++
			}
		}
		tbl.AddRow(mark(g.Completed), g.Name, g.Deadline, fmt.Sprintf("%d/%d", done, len(g.Subgoals)), faint(g.ID))
	}
	fmt.Fprintln(w, tbl)
}

// Goal renders one goal in full, SMART fields included.
func Goal(w io.Writer, g model.Goal) {
	fmt.Fprintf(w, "%s %s  %s\n", mark(g.Completed), bold(underline(g.Name)), faint("due "+g.Deadline))
	if g.Description != "" {
		fmt.Fprintln(w, g.Description)
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, f := range []struct{ label, value string }{
		{"Specifics", g.Specifics},
		{"Measure", g.Measure},
		{"Resources", g.Resources},
		{"Alignment", g.Alignment},
	} {
		if f.value != "" {
			tbl.AddRow(faint(f.label), f.value)
		}
	}
	if len(tbl.Rows) > 0 {
		fmt.Fprintln(w, tbl)
	}

	if len(g.Subgoals) > 0 {
		fmt.Fprintln(w, bold("Subgoals"))
		sub := uitable.New()
		sub.Separator = "  "
		for _, sg := range g.Subgoals {
			sub.AddRow(" "+mark(sg.Completed), sg.Text, faint(sg.ID))
		}
		fmt.Fprintln(w, sub)
	}
	if len(g.Habits) > 0 {
		fmt.Fprintln(w, bold("Habits"))
		hab := uitable.New()
		hab.Separator = "  "
		for _, h := range g.Habits {
			hab.AddRow(" -", h.Text, faint(h.ID))
		}
		fmt.Fprintln(w, hab)
	}
}

// Journals renders the journal index. Trashed entries are marked, not hidden;
// filtering is the caller's business.
func Journals(w io.Writer, entries []model.Journal) {
	if len(entries) == 0 {
		fmt.Fprintln(w, faint("no journal entries"))
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold("Title"), bold("Created"), bold(""), bold("ID"))
	for _, j := range entries {
		note := ""
		if j.Trashed {
			note = faint("trashed")
		}
		tbl.AddRow(j.Title, j.CreatedAt.Format("2006-01-02"), note, faint(j.ID))
	}
	fmt.Fprintln(w, tbl)
}

// Journal renders one entry with the content as markdown.
func Journal(w io.Writer, j model.Journal, width int) {
	title := bold(underline(j.Title))
	if j.Trashed {
		title += " " + faint("(trashed)")
	}
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, faint(j.CreatedAt.Format("2006-01-02 15:04")))
	if body := RenderMarkdown(j.Content, width); body != "" {
		fmt.Fprintln(w, body)
	}
}

// Reflection renders a day's reflection with its three ratings.
func Reflection(w io.Writer, r model.Reflection) {
	fmt.Fprintln(w, bold(underline(r.Date)))
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(faint("Satisfaction"), ratingBar(r.Satisfaction))
	tbl.AddRow(faint("Productivity"), ratingBar(r.Productivity))
	tbl.AddRow(faint("Mood"), ratingBar(r.Mood))
	fmt.Fprintln(w, tbl)
	if r.Analysis != "" {
		fmt.Fprintln(w, r.Analysis)
	}
}

// ratingBar turns a 1-5 rating into "●●●○○". Zero means unset.
func ratingBar(n int) string {
	if n < 1 {
		return faint("unset")
	}
	if n > 5 {
		n = 5
	}
	out := ""
	for i := 1; i <= 5; i++ {
		if i <= n {
			out += "●"
		} else {
			out += "○"
		}
	}
	return out + faint(fmt.Sprintf(" %d/5", n))
}
