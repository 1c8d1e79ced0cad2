// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#4ECDC4")
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#FFE66D")
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#FF6B6B")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#95E1D3")).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// AmountStyle formats monetary values.
	AmountStyle = lipgloss.NewStyle().
			Bold(true)
)

// FormatAmount renders a signed amount for a transaction list.
func FormatAmount(amount float64, income bool) string {
	if income {
		return SuccessStyle.Render(fmt.Sprintf("+%.2f", amount))
	}
	return AmountStyle.Render(fmt.Sprintf("-%.2f", amount))
}

// FormatConfidence renders a confidence score as a percentage, colored by
// how complete the extraction was.
func FormatConfidence(confidence float64) string {
	pct := fmt.Sprintf("%.0f%%", confidence*100)
	switch {
	case confidence >= 0.7:
		return SuccessStyle.Render(pct)
	case confidence > 0.3:
		return WarningStyle.Render(pct)
	default:
		return SubtleStyle.Render(pct)
	}
}
