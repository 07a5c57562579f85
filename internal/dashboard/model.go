package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/san-kum/qwalk/internal/chart"
	"github.com/san-kum/qwalk/internal/storage"
	"github.com/san-kum/qwalk/internal/walk"
)

const (
	title    = "Quantum Walk"
	subtitle = "Simulation of a Discrete Quantum walk"

	barWidth    = 20
	minChartW   = 20
	chartHeight = 12
)

// Options configures a dashboard.
type Options struct {
	Registry *walk.Registry
	// Store receives saved runs; nil disables saving.
	Store *storage.Store
	// Params seeds the controls and supplies bias, start and seed.
	Params walk.Params
	Log    zerolog.Logger
}

// resultMsg carries a finished computation. gen identifies the control state
// it was started from; results for older states are dropped.
type resultMsg struct {
	gen     int
	params  walk.Params
	dist    *walk.Distribution
	err     error
	elapsed time.Duration
}

type savedMsg struct {
	id  string
	err error
}

type Model struct {
	controls []Control
	cursor   int
	base     walk.Params

	registry *walk.Registry
	store    *storage.Store
	log      zerolog.Logger

	gen       int
	computing bool
	params    walk.Params
	dist      *walk.Distribution
	err       error
	status    string

	spinner spinner.Model
	help    help.Model
	keys    keyMap

	width, height int
}

func New(opts Options) Model {
	reg := opts.Registry
	if reg == nil {
		reg = walk.NewRegistry()
	}
	return Model{
		controls:  newControls(opts.Params),
		base:      opts.Params,
		registry:  reg,
		store:     opts.Store,
		log:       opts.Log,
		computing: true,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(selectedStyle)),
		help:      help.New(),
		keys:      defaultKeys(),
		width:     80,
		height:    24,
	}
}

// Params returns the walk parameters the controls currently describe.
func (m Model) Params() walk.Params {
	return paramsFrom(m.controls, m.base)
}

func (m Model) Distribution() *walk.Distribution { return m.dist }

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.compute(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil
	case resultMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.computing = false
		m.err = msg.err
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Str("walk", string(msg.params.Kind)).Msg("walk failed")
			m.dist = nil
			return m, nil
		}
		m.params, m.dist = msg.params, msg.dist
		m.status = fmt.Sprintf("%s walk in %s", msg.params.Kind, msg.elapsed.Round(time.Millisecond))
		m.log.Debug().
			Str("walk", string(msg.params.Kind)).
			Int("steps", msg.params.Steps).
			Dur("elapsed", msg.elapsed).
			Msg("walk computed")
		return m, nil
	case savedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.status = "saved run " + msg.id
		return m, nil
	case spinner.TickMsg:
		if !m.computing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.controls)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Left):
		if m.controls[m.cursor].Dec() {
			return m.recompute()
		}
	case key.Matches(msg, m.keys.Right):
		if m.controls[m.cursor].Inc() {
			return m.recompute()
		}
	case key.Matches(msg, m.keys.Reseed):
		m.base.Seed++
		return m.recompute()
	case key.Matches(msg, m.keys.Save):
		cmd := m.save()
		return m, cmd
	}
	return m, nil
}

// recompute starts a walk for the current controls, superseding any walk
// still in flight.
func (m Model) recompute() (Model, tea.Cmd) {
	m.gen++
	m.computing = true
	m.err = nil
	return m, tea.Batch(m.compute(), m.spinner.Tick)
}

func (m Model) compute() tea.Cmd {
	gen, p, reg := m.gen, m.Params(), m.registry
	return func() tea.Msg {
		start := time.Now()
		d, err := reg.Run(context.Background(), p)
		return resultMsg{gen: gen, params: p, dist: d, err: err, elapsed: time.Since(start)}
	}
}

func (m *Model) save() tea.Cmd {
	switch {
	case m.store == nil:
		m.status = "saving disabled"
		return nil
	case m.computing || m.dist.Empty():
		m.status = "nothing to save yet"
		return nil
	}
	store, p, d := m.store, m.params, m.dist
	return func() tea.Msg {
		id, err := store.Save(p, d)
		return savedMsg{id: id, err: err}
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(gradientText(title, accent, lipgloss.Color("#00ccff"))))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(subtitle))
	b.WriteString("\n\n")

	menus := lipgloss.JoinHorizontal(lipgloss.Top,
		menuStyle.Render(m.renderControls(ctrlType, ctrlCoin)),
		" ",
		menuStyle.Render(m.renderControls(ctrlQubits, ctrlSteps, ctrlRepetitions)),
	)
	b.WriteString(menus)
	b.WriteString("\n")

	b.WriteString(cardStyle.Render(m.renderChart()))
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(separator(min(m.width, 72)))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderControls(idx ...int) string {
	kind := m.Params().Kind
	lines := make([]string, 0, len(idx))
	for _, i := range idx {
		c := &m.controls[i]
		marker := "  "
		label := labelStyle.Render(fmt.Sprintf("%-12s", c.Label))
		if i == m.cursor {
			marker = selectedStyle.Render("▸ ")
			label = selectedStyle.Render(fmt.Sprintf("%-12s", c.Label))
		}

		var value string
		if c.IsDropdown() {
			value = "◂ " + valueStyle.Render(fmt.Sprintf("%-9s", c.String())) + " ▸"
		} else {
			value = sliderBar(c.Value, c.Min, c.Max, barWidth) + " " + valueStyle.Render(fmt.Sprintf("%5d", c.Value))
		}
		line := marker + label + value
		if !applies(i, kind) {
			line = marker + inactiveStyle.Render(fmt.Sprintf("%-12s", c.Label)+"n/a")
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderChart() string {
	if m.dist.Empty() {
		if m.computing {
			return m.spinner.View() + " computing..."
		}
		return subtle.Render("no walk type selected")
	}
	w := max(minChartW, m.width-16)
	return chart.ASCII(m.dist, w, chartHeight)
}

func (m Model) renderStatus() string {
	var parts []string
	if m.computing {
		parts = append(parts, m.spinner.View()+" computing")
	}
	if m.err != nil {
		parts = append(parts, errorStyle.Render("error: "+m.err.Error()))
	}
	if !m.dist.Empty() {
		s := m.dist.Stats()
		parts = append(parts, fmt.Sprintf("%s %s  %s %s  %s %s",
			labelStyle.Render("mean"), valueStyle.Render(fmt.Sprintf("%.2f", s.Mean)),
			labelStyle.Render("σ"), valueStyle.Render(fmt.Sprintf("%.2f", s.StdDev)),
			labelStyle.Render("mode"), valueStyle.Render(fmt.Sprintf("%d", s.Mode)),
		))
	}
	if m.status != "" && m.err == nil {
		parts = append(parts, okStyle.Render(m.status))
	}
	parts = append(parts, subtle.Render(fmt.Sprintf("seed %d", m.base.Seed)))
	return strings.Join(parts, "   ")
}

// Run starts the dashboard on the alternate screen and blocks until quit.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
