package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the program in the alternate screen and blocks until the
// visitor quits. The model is torn down however the program ends.
func Run(m *Model) error {
	prog := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	m.alert.Subscribe(func(visible bool) {
		// Show is called from inside Update, where a blocking Send would deadlock.
		go prog.Send(AlertMsg{Visible: visible})
	})
	defer m.Close()

	_, err := prog.Run()
	return err
}
