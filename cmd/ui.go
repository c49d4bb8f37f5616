package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleError   = lipgloss.NewStyle().Foreground(colorRed)
	styleKey     = lipgloss.NewStyle().Foreground(colorGray).Width(22)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconArrow   = "→"
)

// printHeader prints a section title between double rules.
func printHeader(title string) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     " + styleTitle.Render(title))
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()
}

// printSection prints a sub-section title with a single rule.
func printSection(title string) {
	fmt.Println(title)
	fmt.Println("───────────────────────────────────────────────────────────────")
}

func printSuccess(format string, args ...any) {
	fmt.Println(styleSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Println(styleWarning.Render(iconWarning) + " " + styleWarning.Render(fmt.Sprintf(format, args...)))
}

func printError(format string, args ...any) {
	fmt.Fprintln(os.Stderr, styleError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func printFile(path string) {
	fmt.Println("  " + styleDim.Render(iconArrow) + " " + path)
}

func printKeyValue(key, value string) {
	fmt.Println("  " + styleKey.Render(key) + " " + value)
}
