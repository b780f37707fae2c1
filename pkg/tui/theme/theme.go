// Package theme holds the Lip Gloss styles of the sleep diary UI.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Footer   FooterTheme
	Panel    PanelTheme
	Calendar CalendarTheme
	Form     FormTheme
	Modal    ModalTheme
}

// FooterTheme groups styles used by the bottom status/help bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// PanelTheme styles framed panels and headings.
type PanelTheme struct {
	Frame       lipgloss.Style
	FocusFrame  lipgloss.Style
	Title       lipgloss.Style
	Body        lipgloss.Style
	Muted       lipgloss.Style
	Selected    lipgloss.Style
	Duration    lipgloss.Style
	Placeholder lipgloss.Style
}

// CalendarTheme styles the month grid.
type CalendarTheme struct {
	Title    lipgloss.Style
	Header   lipgloss.Style
	Outside  lipgloss.Style
	Empty    lipgloss.Style
	Entry    lipgloss.Style
	Future   lipgloss.Style
	Today    lipgloss.Style
	Selected lipgloss.Style
}

// FormTheme styles the note form.
type FormTheme struct {
	Label        lipgloss.Style
	FocusedLabel lipgloss.Style
	Invalid      lipgloss.Style
	Save         lipgloss.Style
	SaveDisabled lipgloss.Style
}

// ModalTheme styles centered overlays such as the delete confirmation.
type ModalTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
}

// Default returns the built-in night palette.
func Default() Theme {
	accent := lipgloss.Color("111")
	muted := lipgloss.Color("244")

	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("238")).
		Padding(0, 1)

	return Theme{
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(muted),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		},
		Panel: PanelTheme{
			Frame:       frame,
			FocusFrame:  frame.BorderForeground(accent),
			Title:       lipgloss.NewStyle().Bold(true),
			Body:        lipgloss.NewStyle(),
			Muted:       lipgloss.NewStyle().Foreground(muted),
			Selected:    lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(accent),
			Duration:    lipgloss.NewStyle().Foreground(accent),
			Placeholder: lipgloss.NewStyle().Foreground(muted).Italic(true),
		},
		Calendar: CalendarTheme{
			Title:    lipgloss.NewStyle().Bold(true),
			Header:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true),
			Outside:  lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
			Empty:    lipgloss.NewStyle().Foreground(muted),
			Entry:    lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
			Future:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Italic(true),
			Today:    lipgloss.NewStyle().Underline(true),
			Selected: lipgloss.NewStyle().Background(accent).Foreground(lipgloss.Color("0")),
		},
		Form: FormTheme{
			Label:        lipgloss.NewStyle().Foreground(muted),
			FocusedLabel: lipgloss.NewStyle().Foreground(accent).Bold(true),
			Invalid:      lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
			Save:         lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(accent).Padding(0, 1),
			SaveDisabled: lipgloss.NewStyle().Foreground(muted).Background(lipgloss.Color("236")).Padding(0, 1),
		},
		Modal: ModalTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("203")).
				Padding(1, 2),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle(),
		},
	}
}
