package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Chitresh-code/aiexplorer-sub002/internal/app"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/domain"
)

const stampLayout = "2006-01-02 15:04:05"

func stamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(stampLayout)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func flagOrDash(v *bool) string {
	switch {
	case v == nil:
		return "-"
	case *v:
		return "yes"
	default:
		return "no"
	}
}

func intOrDash(v *int64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatInt(*v, 10)
}

func floatOrDash(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// FormatBatchSummary is the one-line result of a committed batch.
func FormatBatchSummary(entity string, c app.BatchCounts) string {
	return fmt.Sprintf("%s: %s inserted, %s updated (%s ids)\n",
		StyleBold.Render(entity),
		StyleGreen.Render(strconv.Itoa(c.Inserted)),
		StyleBlue.Render(strconv.Itoa(c.Updated)),
		ModeLabel(c.Mode))
}

func FormatPlanTable(entries []domain.PlanEntry) string {
	if len(entries) == 0 {
		return StyleDim.Render("No plan entries.") + "\n"
	}
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{
			strconv.FormatInt(e.ID, 10),
			strconv.FormatInt(e.PhaseID, 10),
			orDash(e.StartDate),
			orDash(e.EndDate),
			stamp(e.Modified),
			orDash(e.EditorEmail),
		}
	}
	return RenderTable([]string{"ID", "PHASE", "START", "END", "MODIFIED", "EDITOR"}, rows)
}

func FormatStakeholderTable(list []domain.Stakeholder) string {
	if len(list) == 0 {
		return StyleDim.Render("No stakeholders.") + "\n"
	}
	rows := make([][]string, len(list))
	for i, s := range list {
		rows[i] = []string{
			strconv.FormatInt(s.ID, 10),
			orDash(s.RoleName),
			s.Email,
			stamp(s.Modified),
			orDash(s.EditorEmail),
		}
	}
	return RenderTable([]string{"ID", "ROLE", "EMAIL", "MODIFIED", "EDITOR"}, rows)
}

// FormatUpdateList prints notes newest first, one block per note.
func FormatUpdateList(list []domain.ProgressUpdate) string {
	if len(list) == 0 {
		return StyleDim.Render("No updates.") + "\n"
	}
	var b strings.Builder
	for _, u := range list {
		fmt.Fprintf(&b, "%s  %s  phase %s  status %s\n",
			StyleHeader.Render("#"+strconv.FormatInt(u.ID, 10)),
			StyleDim.Render(stamp(u.Created)+" "+orDash(u.EditorEmail)),
			intOrDash(u.PhaseID),
			intOrDash(u.StatusID))
		fmt.Fprintf(&b, "  %s\n", u.Text)
	}
	return b.String()
}

func FormatPrioritization(p domain.Prioritization) string {
	rows := [][]string{
		{"reach", floatOrDash(p.Reach)},
		{"impact", floatOrDash(p.Impact)},
		{"confidence", floatOrDash(p.Confidence)},
		{"effort", floatOrDash(p.Effort)},
		{"rice score", StyleBold.Render(floatOrDash(p.RICEScore))},
		{"priority", intOrDash(p.Priority)},
		{"gallery", flagOrDash(p.DisplayInGallery)},
		{"slt reporting", flagOrDash(p.SLTReporting)},
		{"user base", intOrDash(p.TotalUserBase)},
		{"timespan", intOrDash(p.TimespanID)},
		{"reporting frequency", intOrDash(p.ReportingFrequencyID)},
		{"modified", stamp(p.Modified)},
		{"editor", orDash(p.EditorEmail)},
	}
	return RenderTable([]string{"FIELD", "VALUE"}, rows)
}

func FormatImportResult(r app.ImportResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Use case %d\n", r.UseCaseID)
	if r.Stakeholders.Mode != "" {
		b.WriteString("  " + FormatBatchSummary("stakeholder", r.Stakeholders))
	}
	if r.Plan.Mode != "" {
		b.WriteString("  " + FormatBatchSummary("plan", r.Plan))
	}
	if r.Prioritized {
		b.WriteString("  prioritization updated\n")
	}
	if r.Updates > 0 {
		fmt.Fprintf(&b, "  %d updates added\n", r.Updates)
	}
	return b.String()
}
