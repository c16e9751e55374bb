package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zachkp/portfolio/internal/contact"
)

// formHeight is the number of lines the form pane takes.
const formHeight = 9

// inputForm is the contact form pane. It implements contact.Form.
type inputForm struct {
	name    textinput.Model
	email   textinput.Model
	message textarea.Model
	focused int
}

func newInputForm(width int) *inputForm {
	name := textinput.New()
	name.Prompt = "Name:    "
	name.Placeholder = "Your name"
	name.CharLimit = 200

	email := textinput.New()
	email.Prompt = "Email:   "
	email.Placeholder = "you@example.com"
	email.CharLimit = 254

	msg := textarea.New()
	msg.Placeholder = "Your message"
	msg.ShowLineNumbers = false
	msg.CharLimit = 5000
	msg.SetHeight(4)

	f := &inputForm{name: name, email: email, message: msg}
	f.setWidth(width)
	return f
}

func (f *inputForm) setWidth(w int) {
	if w < 20 {
		w = 20
	}
	f.name.Width = w - len(f.name.Prompt) - 2
	f.email.Width = w - len(f.email.Prompt) - 2
	f.message.SetWidth(w - 2)
}

func (f *inputForm) Values() map[string]string {
	return map[string]string{
		contact.FieldName:    strings.TrimSpace(f.name.Value()),
		contact.FieldEmail:   strings.TrimSpace(f.email.Value()),
		contact.FieldMessage: f.message.Value(),
	}
}

func (f *inputForm) Reset() {
	f.name.Reset()
	f.email.Reset()
	f.message.Reset()
}

// focus moves the cursor to field i, wrapping around.
func (f *inputForm) focus(i int) tea.Cmd {
	const fields = 3
	f.focused = ((i % fields) + fields) % fields
	f.name.Blur()
	f.email.Blur()
	f.message.Blur()
	switch f.focused {
	case 0:
		return f.name.Focus()
	case 1:
		return f.email.Focus()
	default:
		return f.message.Focus()
	}
}

func (f *inputForm) blur() {
	f.name.Blur()
	f.email.Blur()
	f.message.Blur()
}

func (f *inputForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.focused {
	case 0:
		f.name, cmd = f.name.Update(msg)
	case 1:
		f.email, cmd = f.email.Update(msg)
	default:
		f.message, cmd = f.message.Update(msg)
	}
	return cmd
}

func (f *inputForm) view() string {
	return strings.Join([]string{
		f.name.View(),
		f.email.View(),
		"Message:",
		f.message.View(),
	}, "\n")
}
