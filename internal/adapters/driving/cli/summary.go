package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/reposift/internal/core/domain"
)

// summaryLimit is the number of top repositories printed after a run.
const summaryLimit = 10

// printSummary prints stage counts and the top ranked repositories.
func printSummary(w io.Writer, report *domain.CrawlReport) {
	st := NewStyles(DefaultTheme(), isTerminal(w))

	suitable := 0
	for i := range report.Records {
		if report.Records[i].Verdict.IsSuitable() {
			suitable++
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, st.Title.Render("Run summary"))
	fmt.Fprintf(w, "  %s %d discovered, %d unique, %d after filtering\n",
		st.Label.Render("Repositories:"), report.Discovered, report.Unique, report.Filtered)
	fmt.Fprintf(w, "  %s %s\n", st.Label.Render("Backend:"), report.Run.Backend)
	fmt.Fprintf(w, "  %s %d of %d suitable\n", st.Label.Render("Classified:"), suitable, len(report.Records))
	if report.CheckpointFailures > 0 {
		fmt.Fprintf(w, "  %s %d\n", st.Fallback.Render("Checkpoint failures:"), report.CheckpointFailures)
	}

	top := report.Records
	if len(top) > summaryLimit {
		top = top[:summaryLimit]
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, st.Title.Render(fmt.Sprintf("Top %d repositories", len(top))))
	for i := range top {
		r := &top[i]
		fmt.Fprintf(w, "\n%d. %s (%d stars)\n", i+1, st.Label.Render(r.FullName), r.Stars)
		fmt.Fprintf(w, "   Keywords: %d (%s)\n", r.MatchCount, strings.Join(r.MatchingKeywords, ", "))
		fmt.Fprintf(w, "   URL: %s\n", st.Muted.Render(r.HTMLURL))
		if r.Description != "" {
			fmt.Fprintf(w, "   Description: %s\n", truncate(r.Description, 100))
		}
		fmt.Fprintf(w, "   Assessment: %s\n", verdictStyle(st, r.Verdict).Render(r.Verdict.String()))
	}
}

func verdictStyle(st Styles, v domain.Verdict) lipgloss.Style {
	switch {
	case v.Fallback:
		return st.Fallback
	case v.IsSuitable():
		return st.Suitable
	default:
		return st.Unsuitable
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
