package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/testgraph/pkg/errors"
	"github.com/matzehuels/testgraph/pkg/pipeline"
	"github.com/matzehuels/testgraph/pkg/similarity"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleKey = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func printKeyValue(w io.Writer, key, value string) {
	fmt.Fprintln(w, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// PrintError writes the user-facing message for err.
func PrintError(w io.Writer, err error) {
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+errors.UserMessage(err))
}

// =============================================================================
// Stats Display
// =============================================================================

// printSummary prints a one-line run summary such as "3 nodes · 5 edges · cached".
func printSummary(w io.Writer, parts []string, cached bool) {
	status, statusStyle := iconFresh, styleComputed
	if cached {
		status, statusStyle = iconCached, styleCached
	}

	rendered := make([]string, 0, len(parts)+1)
	for _, p := range parts {
		rendered = append(rendered, StyleDim.Render(p))
	}
	rendered = append(rendered, statusStyle.Render(status))
	fmt.Fprintln(w, "  "+strings.Join(rendered, StyleDim.Render(" · ")))
}

// printGraphStats prints the per-metric breakdown for --stats.
func printGraphStats(w io.Writer, s *similarity.Stats) {
	fmt.Fprintln(w, StyleTitle.Render("Similarity graph"))
	printKeyValue(w, "nodes", StyleNumber.Render(fmt.Sprint(s.Nodes)))
	printKeyValue(w, "edges", StyleNumber.Render(fmt.Sprint(s.Edges)))
	printKeyValue(w, "self-loops", StyleNumber.Render(fmt.Sprint(s.SelfLoops)))
	for _, m := range s.ByMetric {
		if m.Edges == 0 {
			printKeyValue(w, string(m.Report), StyleDim.Render("no edges"))
			continue
		}
		printKeyValue(w, string(m.Report), fmt.Sprintf("%d edges  min %.2f  max %.2f  mean %.2f",
			m.Edges, m.Min, m.Max, m.Mean))
	}
}

// printTreeStats prints the before/after node counts for --stats.
func printTreeStats(w io.Writer, s *pipeline.TreeStats) {
	fmt.Fprintln(w, StyleTitle.Render("Journey tree"))
	printKeyValue(w, "journeys", StyleNumber.Render(fmt.Sprint(s.Journeys)))
	printKeyValue(w, "nodes", fmt.Sprintf("%d → %d", s.InputNodes, s.OutputNodes))
	printKeyValue(w, "depth", StyleNumber.Render(fmt.Sprint(s.Depth)))
}
