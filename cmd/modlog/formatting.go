package modlog

import (
	"strings"
	"text/template"

	"github.com/arthur-debert/modlog/pkg/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// colorEnabled is decided once per process in the root command's pre-run
var colorEnabled bool

// formatBold returns the string formatted as bold using pterm
func formatBold(s string) string {
	if !colorEnabled {
		return s
	}
	return pterm.Bold.Sprint(s)
}

// formatUpper returns the string in uppercase
func formatUpper(s string) string {
	return strings.ToUpper(s)
}

// formatBoldUpper returns the string in uppercase and bold
func formatBoldUpper(s string) string {
	return formatBold(strings.ToUpper(s))
}

// initTemplateFormatting adds custom formatting functions to Cobra templates
func initTemplateFormatting() {
	cobra.AddTemplateFuncs(template.FuncMap{
		"bold":      formatBold,
		"upper":     formatUpper,
		"boldUpper": formatBoldUpper,
	})
}

// setColor switches pterm, lipgloss styles and templates together
func setColor(enabled bool) {
	colorEnabled = enabled
	if enabled {
		pterm.EnableStyling()
	} else {
		pterm.DisableStyling()
	}
	ui.SetColor(enabled)
}
