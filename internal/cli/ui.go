package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/eolscan/eolscan/pkg/report"
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

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(colorGray)

	styleStateOK        = lipgloss.NewStyle().Foreground(colorGreen)
	styleStateSupported = lipgloss.NewStyle().Foreground(colorGreen)
	styleStateExpiring  = lipgloss.NewStyle().Foreground(colorYellow)
	styleStateExpired   = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	styleStateUnknown   = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconInfo    = "›"
)

// stateStyle returns the display style for a support state.
func stateStyle(s report.State) lipgloss.Style {
	switch s {
	case report.StateOK:
		return styleStateOK
	case report.StateSupported:
		return styleStateSupported
	case report.StateExpiring:
		return styleStateExpiring
	case report.StateExpired:
		return styleStateExpired
	default:
		return styleStateUnknown
	}
}

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// =============================================================================
// Dashboard Table
// =============================================================================

var dashboardHeader = []string{"PROJECT", "TECH", "VERSION", "EOL", "DAYS", "STATUS"}

// renderDashboard renders tracked projects as a fixed-width table grouped by
// primary ecosystem. Column widths are computed from content so long project
// names never truncate. Projects without a primary ecosystem (datastore-only
// records) are not tabulated; they stay visible through export and the API,
// and the table notes how many were left out.
func renderDashboard(statuses []report.ProjectStatus) string {
	rows := dashboardRows(statuses)
	widths := make([]int, len(dashboardHeader))
	for i, h := range dashboardHeader {
		widths[i] = len(h)
	}
	for _, r := range rows {
		for i, cell := range r.cells {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	groups := report.ByEcosystem(statuses)
	for _, eco := range report.Ecosystems(groups) {
		if eco == "" {
			continue
		}
		b.WriteString(StyleTitle.Render(eco) + "\n")
		b.WriteString("  " + renderRow(dashboardHeader, widths, styleHeader) + "\n")
		for _, r := range rows {
			if r.ecosystem != eco {
				continue
			}
			b.WriteString("  " + renderRow(r.cells, widths, stateStyle(r.state)) + "\n")
		}
		b.WriteString("\n")
	}
	if hidden := len(groups[""]); hidden > 0 {
		b.WriteString(StyleDim.Render(fmt.Sprintf("%d projects without a primary ecosystem (use export to see them)", hidden)) + "\n")
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

type dashboardRow struct {
	ecosystem string
	state     report.State
	cells     []string
}

func dashboardRows(statuses []report.ProjectStatus) []dashboardRow {
	var rows []dashboardRow
	for _, p := range statuses {
		if p.Ecosystem == "" {
			continue
		}
		for i, c := range p.Components {
			name := p.Name
			if i > 0 {
				name = ""
			}
			rows = append(rows, dashboardRow{
				ecosystem: p.Ecosystem,
				state:     c.State,
				cells:     []string{name, c.Tech, c.Version, orDash(c.EOLDate), daysCell(c.DaysLeft), c.State.String()},
			})
		}
	}
	return rows
}

// renderRow pads cells to column width before styling, so ANSI escape
// sequences never count against alignment.
func renderRow(cells []string, widths []int, style lipgloss.Style) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		parts[i] = style.Render(cell + strings.Repeat(" ", widths[i]-len(cell)))
	}
	return strings.Join(parts, "  ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func daysCell(days *int) string {
	if days == nil {
		return "-"
	}
	return strconv.Itoa(*days)
}
