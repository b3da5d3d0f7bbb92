package render

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/mcoot/issue-battleships/internal/model"
)

// RejectionReportRecent is how many refused moves the report lists
const RejectionReportRecent = 5

// RejectionReport summarises the rejected move log for admins: totals by
// reason and the most recent refusals
func RejectionReport(log []model.Rejection) string {
	var b strings.Builder
	b.WriteString("📋 Rejected Move Report\n\n")
	fmt.Fprintf(&b, "**Total:** %d\n", len(log))
	if len(log) == 0 {
		return b.String()
	}

	counts := make(map[model.RejectionReason]int)
	for _, r := range log {
		counts[r.Reason]++
	}
	reasons := make([]model.RejectionReason, 0, len(counts))
	for reason := range counts {
		reasons = append(reasons, reason)
	}
	slices.SortFunc(reasons, func(a, b model.RejectionReason) int {
		if c := cmp.Compare(counts[b], counts[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	b.WriteString("\n**By reason:**\n")
	for _, reason := range reasons {
		fmt.Fprintf(&b, "- %s: %d\n", reason, counts[reason])
	}

	b.WriteString("\n**Recent:**\n")
	for i := len(log) - 1; i >= 0 && i >= len(log)-RejectionReportRecent; i-- {
		r := log[i]
		fmt.Fprintf(&b, "- @%s: %s (%s) %s\n", r.Player, r.Coordinate, r.Reason, r.At.UTC().Format("2006-01-02 15:04"))
	}
	return b.String()
}
