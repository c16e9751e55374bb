// Package tui renders the portfolio in the terminal. The viewport is the
// scrollable page; scrolling it keeps the highlighted tab in step.
package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/nav"
)

// chromeHeight is the tab bar, alert line and help line.
const chromeHeight = 3

var errNoRelay = errors.New("no mail relay configured")

// Options configures the terminal model.
type Options struct {
	Width  int
	Height int
	// Style is a glamour style name or JSON style path.
	Style     string
	Submitter *contact.Submitter
	Alert     *contact.Alert
	Logger    *zap.Logger
}

type (
	scrollTickMsg struct{}
	frameMsg      struct{}
	deliveredMsg  struct {
		sub contact.Submission
		err error
	}
	// AlertMsg tells the model the success alert changed visibility.
	AlertMsg struct{ Visible bool }
)

// Model is the bubbletea model for the terminal portfolio.
type Model struct {
	opts      Options
	log       *zap.Logger
	state     *nav.State
	sync      *nav.Synchronizer
	submitter *contact.Submitter
	alert     *contact.Alert
	unsub     func()

	view   viewport.Model
	doc    document
	width  int
	height int
	ready  bool
	tabBar string

	// smooth scroll animator
	target    int
	animating bool
	ticking   bool

	form      *inputForm
	formFocus bool
	sending   bool
	notice    string

	keys keyMap
	help help.Model
	err  error
}

// New returns a model over the five portfolio sections.
func New(opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Alert == nil {
		opts.Alert = contact.NewAlert(0, nil)
	}
	if opts.Submitter == nil {
		opts.Submitter = contact.NewSubmitter(contact.RelayFunc(func(context.Context, contact.Submission) error {
			return errNoRelay
		}), opts.Alert)
	}

	m := &Model{
		opts:      opts,
		log:       opts.Logger,
		state:     nav.NewState(nav.Sections),
		submitter: opts.Submitter,
		alert:     opts.Alert,
		view:      viewport.New(0, 0),
		form:      newInputForm(opts.Width),
		keys:      defaultKeyMap(),
		help:      help.New(),
	}
	m.sync = nav.NewSynchronizer(m.state)
	m.view.YPosition = 2
	for _, sec := range nav.Sections {
		m.state.Register(sec.ID, lineRegion{m: m, id: sec.ID})
	}
	m.unsub = m.state.Subscribe(func(ch nav.Change) {
		m.tabBar = m.renderTabs()
		m.log.Debug("active section changed",
			zap.String("from", ch.From),
			zap.String("to", ch.To),
			zap.Stringer("cause", ch.Cause),
		)
	})
	m.tabBar = m.renderTabs()

	if opts.Width > 0 && opts.Height > 0 {
		m.resize(opts.Width, opts.Height)
	}
	return m
}

// Active returns the highlighted section id.
func (m *Model) Active() string { return m.state.Active() }

// Close tears the page down: the scroll listener is detached and the alert
// timer released. It is safe to call more than once.
func (m *Model) Close() {
	m.sync.Detach()
	m.alert.Close()
	if m.unsub != nil {
		m.unsub()
		m.unsub = nil
	}
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	before := m.view.YOffset
	cmd := m.update(msg)
	if m.view.YOffset != before && m.sync.Scrolled() {
		cmd = tea.Batch(cmd, frameCmd())
	}
	return m, cmd
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return nil

	case frameMsg:
		m.sync.Frame()
		return nil

	case scrollTickMsg:
		m.ticking = false
		m.stepScroll()
		return m.tick()

	case deliveredMsg:
		m.sending = false
		if m.submitter.Finish(context.Background(), m.form, msg.sub, msg.err) == contact.PhaseFailed {
			m.notice = contact.FailureNotice
		}
		return nil

	case AlertMsg:
		// View reads the alert directly; the message only forces a redraw.
		return nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.notice != "" {
			return nil
		}
		m.animating = false
		var cmd tea.Cmd
		m.view, cmd = m.view.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	// The failure notice blocks everything until acknowledged.
	if m.notice != "" {
		if key.Matches(msg, m.keys.Dismiss) {
			m.notice = ""
		}
		return nil
	}

	if m.formFocus {
		switch {
		case key.Matches(msg, m.keys.Back):
			m.blurForm()
			return nil
		case key.Matches(msg, m.keys.Submit):
			return m.submit()
		case key.Matches(msg, m.keys.NextFld):
			return m.form.focus(m.form.focused + 1)
		case key.Matches(msg, m.keys.PrevFld):
			return m.form.focus(m.form.focused - 1)
		}
		return m.form.update(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Prev):
		m.selectOffset(-1)
	case key.Matches(msg, m.keys.Next):
		m.selectOffset(1)
	case key.Matches(msg, m.keys.Jump):
		i := int(msg.String()[0] - '1')
		if i >= 0 && i < len(nav.Sections) {
			m.state.Select(nav.Sections[i].ID)
		}
	case key.Matches(msg, m.keys.Top):
		m.animating = false
		m.view.SetYOffset(0)
	case key.Matches(msg, m.keys.Bottom):
		m.animating = false
		m.view.SetYOffset(m.maxOffset())
	case key.Matches(msg, m.keys.Form):
		return m.focusForm()
	default:
		m.animating = false
		var cmd tea.Cmd
		m.view, cmd = m.view.Update(msg)
		return cmd
	}
	return m.tick()
}

func (m *Model) selectOffset(delta int) {
	secs := m.state.Sections()
	for i, s := range secs {
		if s.ID == m.state.Active() {
			j := i + delta
			if j >= 0 && j < len(secs) {
				m.state.Select(secs[j].ID)
			}
			return
		}
	}
}

func (m *Model) quit() tea.Cmd {
	m.Close()
	return tea.Quit
}

func (m *Model) focusForm() tea.Cmd {
	m.formFocus = true
	m.layout()
	return m.form.focus(0)
}

func (m *Model) blurForm() {
	m.formFocus = false
	m.form.blur()
	m.layout()
}

// submit hands the form to the relay off the event loop. The outcome comes
// back as a deliveredMsg.
func (m *Model) submit() tea.Cmd {
	if m.sending {
		return nil
	}
	sub, err := m.submitter.Begin(m.form)
	if err != nil {
		m.log.Warn("contact form submit ignored", zap.Error(err))
		return nil
	}
	m.sending = true
	submitter := m.submitter
	return func() tea.Msg {
		err := submitter.Deliver(context.Background(), sub)
		return deliveredMsg{sub: sub, err: err}
	}
}

func frameCmd() tea.Cmd {
	return tea.Tick(nav.FrameInterval, func(time.Time) tea.Msg { return frameMsg{} })
}

func scrollTicker() tea.Cmd {
	return tea.Tick(time.Second/60, func(time.Time) tea.Msg { return scrollTickMsg{} })
}

// tick keeps exactly one animation tick in flight while scrolling.
func (m *Model) tick() tea.Cmd {
	if !m.animating || m.ticking {
		return nil
	}
	m.ticking = true
	return scrollTicker()
}

// scrollTo starts a smooth scroll to line target.
func (m *Model) scrollTo(target int) {
	if target < 0 {
		target = 0
	}
	if limit := m.maxOffset(); target > limit {
		target = limit
	}
	m.target = target
	m.animating = m.view.YOffset != target
}

func (m *Model) stepScroll() {
	if !m.animating {
		return
	}
	cur, tgt := m.view.YOffset, m.target
	diff := tgt - cur
	if diff == 0 {
		m.animating = false
		return
	}
	step := diff / 5
	if step == 0 {
		if diff > 0 {
			step = 1
		} else {
			step = -1
		}
	}
	m.view.SetYOffset(cur + step)
	if m.view.YOffset == tgt {
		m.animating = false
	}
}

func (m *Model) maxOffset() int {
	return max(0, m.view.TotalLineCount()-m.view.Height)
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	doc, err := renderDocument(m.state.Sections(), width, m.opts.Style)
	if err != nil {
		m.err = err
		m.log.Error("rendering page", zap.Error(err))
		return
	}
	m.doc = doc
	m.form.setWidth(width)
	m.help.Width = width
	m.layout()
	m.tabBar = m.renderTabs()
	if !m.ready {
		m.ready = true
		m.sync.Attach()
	}
}

// layout sizes the viewport around the chrome and the form pane.
func (m *Model) layout() {
	body := m.height - chromeHeight
	if m.formFocus {
		body -= formHeight
	}
	if body < 1 {
		body = 1
	}
	offset := m.view.YOffset
	m.view.Width = m.width
	m.view.Height = body
	m.view.SetContent(m.doc.padded(body))
	m.view.SetYOffset(offset)
}

// lineRegion is a section's first line in the rendered page.
type lineRegion struct {
	m  *Model
	id string
}

func (r lineRegion) Top() (float64, bool) {
	start, ok := r.m.doc.starts[r.id]
	if !ok || !r.m.ready {
		return 0, false
	}
	return float64(start - r.m.view.YOffset), true
}

func (r lineRegion) ScrollIntoView() {
	if start, ok := r.m.doc.starts[r.id]; ok {
		r.m.scrollTo(start)
	}
}

var (
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("250"))
	activeTabStyle = tabStyle.Bold(true).Underline(true).Foreground(lipgloss.Color("39"))
	alertStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("28")).Padding(0, 2)
	noticeStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("160")).Padding(1, 3)
	formStyle      = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), true, false, false, false).BorderForeground(lipgloss.Color("240"))
	sendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
)

func (m *Model) renderTabs() string {
	tabs := make([]string, 0, len(m.state.Sections()))
	for _, s := range m.state.Sections() {
		if s.ID == m.state.Active() {
			tabs = append(tabs, activeTabStyle.Render(s.Label))
		} else {
			tabs = append(tabs, tabStyle.Render(s.Label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *Model) View() string {
	if m.err != nil {
		return "error: " + m.err.Error() + "\n"
	}
	if !m.ready {
		return "loading…"
	}

	var b strings.Builder
	b.WriteString(m.tabBar)
	b.WriteString("\n")
	if m.alert.Visible() {
		b.WriteString(alertStyle.Render("📬 " + contact.SuccessNotice))
	}
	b.WriteString("\n")

	if m.notice != "" {
		box := noticeStyle.Render(m.notice + "\n\n" + m.help.View(noticeHelp(m.keys)))
		b.WriteString(lipgloss.Place(m.width, m.view.Height, lipgloss.Center, lipgloss.Center, box))
	} else {
		b.WriteString(m.view.View())
	}
	b.WriteString("\n")

	if m.formFocus {
		pane := m.form.view()
		if m.sending {
			pane += "\n" + sendingStyle.Render("sending…")
		}
		b.WriteString(formStyle.Width(m.width).Render(pane))
		b.WriteString("\n")
		b.WriteString(m.help.View(formHelp(m.keys)))
	} else {
		b.WriteString(m.help.View(browseHelp(m.keys)))
	}
	return b.String()
}

type noticeHelp keyMap

func (k noticeHelp) ShortHelp() []key.Binding  { return []key.Binding{k.Dismiss} }
func (k noticeHelp) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }
