package callback

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/maa-cli/maa-go/internal/ui"
)

// FormatText renders the full summary text returned by Subscriber.Snapshot:
// a colored section header per task followed by a tabwriter-aligned detail
// block.
func FormatText(s *Summary) string {
	var b strings.Builder
	if len(s.order) == 0 {
		return ui.Dim("(no tasks)")
	}
	for i, id := range s.order {
		t, ok := s.tasks[id]
		if !ok {
			continue
		}
		if i > 0 {
			b.WriteString("\n")
		}
		writeTaskSummary(&b, t)
	}
	return b.String()
}

func writeTaskSummary(b *strings.Builder, t *TaskSummary) {
	title := t.TaskType
	if t.Name != "" {
		title = fmt.Sprintf("%s (%s)", t.TaskType, t.Name)
	}
	fmt.Fprintf(b, "%s #%d %s\n", ui.Bold(title), t.TaskID, stateLabel(t.State))

	w := tabwriter.NewWriter(b, 0, 0, 1, ' ', 0)
	if t.StartTime != nil {
		fmt.Fprintf(w, "  %s\t=\t%s\n", ui.Dim("start"), t.StartTime.Format("15:04:05"))
	}
	if t.EndTime != nil {
		fmt.Fprintf(w, "  %s\t=\t%s\n", ui.Dim("end"), t.EndTime.Format("15:04:05"))
	}
	switch t.DetailKind {
	case DetailFight:
		writeFight(w, t.Fight)
	case DetailInfrast:
		writeInfrast(w, t.Infrast)
	case DetailRecruit:
		writeRecruit(w, t.Recruit)
	case DetailRoguelike:
		writeRoguelike(w, t.Roguelike)
	}
	_ = w.Flush()
}

func stateLabel(s TaskState) string {
	switch s {
	case Completed:
		return ui.OK(s.String())
	case Error:
		return ui.Err(s.String())
	case Stopped, Unfinished:
		return ui.Warn(s.String())
	default:
		return s.String()
	}
}

func writeFight(w *tabwriter.Writer, f *FightDetail) {
	if f == nil {
		return
	}
	if f.Stage != "" {
		fmt.Fprintf(w, "  %s\t=\t%s\n", ui.Dim("stage"), f.Stage)
	}
	fmt.Fprintf(w, "  %s\t=\t%d\n", ui.Dim("times"), f.Times)
	if f.MedicineUsed > 0 {
		line := fmt.Sprintf("%d", f.MedicineUsed)
		if f.ExpiringUsed > 0 {
			line += fmt.Sprintf(" (%d expiring)", f.ExpiringUsed)
		}
		fmt.Fprintf(w, "  %s\t=\t%s\n", ui.Dim("medicine used"), line)
	}
	if f.StonesUsed > 0 {
		fmt.Fprintf(w, "  %s\t=\t%d\n", ui.Dim("originium stones used"), f.StonesUsed)
	}
	fmt.Fprintf(w, "  %s\t=\t%s\n", ui.Dim("total drops"), formatDrops(f.Drops))
}

func formatDrops(drops map[string]int) string {
	if len(drops) == 0 {
		return "none"
	}
	names := make([]string, 0, len(drops))
	for name := range drops {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s × %d", name, drops[name]))
	}
	return strings.Join(parts, ", ")
}

func writeInfrast(w *tabwriter.Writer, d *InfrastDetail) {
	if d == nil {
		return
	}
	for _, r := range d.Rooms {
		label := fmt.Sprintf("%s #%d", r.Facility, r.RoomIndex)
		detail := strings.Join(r.Operators, ", ")
		if r.Product != "" {
			detail = fmt.Sprintf("%s (%s)", r.Product, detail)
		}
		fmt.Fprintf(w, "  %s\t=\t%s\n", ui.Dim(label), detail)
	}
}

func writeRecruit(w *tabwriter.Writer, d *RecruitDetail) {
	if d == nil {
		return
	}
	fmt.Fprintf(w, "  %s\t=\t%d\n", ui.Dim("refreshes"), d.Refreshes)
	fmt.Fprintf(w, "  %s\t=\t%d\n", ui.Dim("recruits"), d.Recruits)
	for i, e := range d.Entries {
		fmt.Fprintf(w, "  %s\t=\t%d★ %s [%s]\n", ui.Dim(fmt.Sprintf("tags[%d]", i)), e.StarLevel, strings.Join(e.Tags, "/"), recruitStateLabel(e.State))
	}
}

func recruitStateLabel(s RecruitState) string {
	switch s {
	case RecruitRefreshed:
		return "refreshed"
	case RecruitRecruited:
		return "recruited"
	default:
		return "none"
	}
}

func writeRoguelike(w *tabwriter.Writer, d *RoguelikeDetail) {
	if d == nil {
		return
	}
	for i, e := range d.Explorations {
		line := roguelikeStateLabel(e.State)
		if e.Invest != nil {
			line += fmt.Sprintf(" invest=%d", *e.Invest)
		}
		if e.Exp != nil {
			line += fmt.Sprintf(" exp=%d", *e.Exp)
		}
		fmt.Fprintf(w, "  %s\t=\t%s\n", ui.Dim(fmt.Sprintf("exploration[%d]", i)), line)
	}
}

func roguelikeStateLabel(s RoguelikeOutcome) string {
	switch s {
	case RoguelikePassed:
		return "passed"
	case RoguelikeFailed:
		return "failed"
	case RoguelikeAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}
