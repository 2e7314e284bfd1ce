package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/powerlab/steamsim/internal/plant"
	"github.com/powerlab/steamsim/internal/session"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

const tickInterval = 100 * time.Millisecond

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

type model struct {
	sess    *session.Session
	cursor  int
	history []float64
	width   int
	height  int
}

func NewDashboard(sess *session.Session) *model {
	return &model{
		sess:    sess,
		history: make([]float64, 0, 120),
		width:   100,
		height:  32,
	}
}

func (m model) Init() tea.Cmd { return tick() }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		m.sess.Tick(time.Time(msg))
		snap := m.sess.Snapshot()
		m.history = append(m.history, snap.Load)
		if len(m.history) > 120 {
			m.history = m.history[1:]
		}
		return m, tick()
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	levers := m.sess.Levers()
	cur := levers[m.cursor]

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(levers)-1 {
			m.cursor++
		}
	case "left", "h":
		m.sess.SetLeverTarget(cur.ID, cur.Target-5)
	case "right", "l":
		m.sess.SetLeverTarget(cur.ID, cur.Target+5)
	case "shift+left", "H":
		m.sess.SetLeverTarget(cur.ID, cur.Target-1)
	case "shift+right", "L":
		m.sess.SetLeverTarget(cur.ID, cur.Target+1)
	case " ":
		snap := m.sess.Snapshot()
		if snap.Running {
			m.sess.Stop()
		} else {
			m.sess.Start()
		}
	case "s":
		m.sess.Shutdown()
	case "r":
		m.sess.Reset()
		m.history = m.history[:0]
	default:
		// 0-9 quick-set the selected lever in 10% steps
		if len(msg.String()) == 1 {
			c := msg.String()[0]
			if c >= '0' && c <= '9' {
				m.sess.SetLeverTarget(cur.ID, float64(c-'0')*10)
			}
		}
	}
	return m, nil
}

func (m model) View() string {
	snap := m.sess.Snapshot()
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("  ╺━━━━━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("       " + cyan.Render("s t e a m s i m") + "\n")
	b.WriteString(dimmer.Render("  ╺━━━━━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n\n")

	b.WriteString("  " + m.statusLine(snap) + "\n\n")

	leverPane := m.leverPane()
	gaugePane := m.gaugePane(snap)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, leverPane, "    ", gaugePane))
	b.WriteString("\n")

	if len(m.history) > 1 {
		b.WriteString("  " + dim.Render("load") + " " + cyan.Render(sparkline(m.history, 48)) + "\n\n")
	}

	b.WriteString(dim.Render("  ↑↓ lever  ←→ ±5  0-9 set  space run/stop  s shutdown  r reset  q quit") + "\n")
	return b.String()
}

func (m model) statusLine(snap plant.SystemState) string {
	icon := dim.Render("○")
	label := dim.Render("stopped")
	if snap.Running {
		icon = green.Render("●")
		label = green.Render("running")
	}
	out := fmt.Sprintf("%s %s   %s %s   %s %s",
		icon, label,
		dim.Render("run"), white.Render(formatDuration(snap.RunSeconds)),
		dim.Render("earnings"), green.Render(fmt.Sprintf("%.2f", snap.TotalEarnings)))

	if snap.Tripped {
		cause := string(snap.TripCause)
		if snap.ShutdownRemaining > 0 {
			cause = fmt.Sprintf("%s %.1fs", cause, snap.ShutdownRemaining)
		}
		out += "   " + red.Render("▲ TRIP "+cause)
	}
	return out
}

func (m model) leverPane() string {
	var b strings.Builder
	levers := m.sess.Levers()
	for i, l := range levers {
		bar := leverBar(l.Current, l.Target, 20)
		val := fmt.Sprintf("%5.1f", l.Current)
		if i == m.cursor {
			b.WriteString("  " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-17s", l.Label)) + bar + " " + yellow.Render(val) + "\n")
		} else {
			b.WriteString("    " + dim.Render(fmt.Sprintf("%-17s", l.Label)) + bar + " " + dim.Render(val) + "\n")
		}
	}
	return b.String()
}

func (m model) gaugePane(snap plant.SystemState) string {
	row := func(label string, value, warn float64, format string) string {
		style := white
		if warn > 0 && value >= warn {
			style = red
		}
		return "  " + dim.Render(fmt.Sprintf("%-16s", label)) + style.Render(fmt.Sprintf(format, value)) + "\n"
	}

	var b strings.Builder
	p := m.sess.Params()
	b.WriteString(row("steam temp °C", snap.MainSteamTemp, p.MaxBoilerTemp, "%8.1f"))
	b.WriteString(row("pressure MPa", snap.MainSteamPressure, 0, "%8.2f"))
	b.WriteString(row("steam flow t/h", snap.MainSteamFlow, 0, "%8.0f"))
	b.WriteString(row("speed RPM", snap.TurbineSpeed, p.OverspeedTrip, "%8.0f"))
	b.WriteString(row("load MW", snap.Load, 0, "%8.1f"))
	b.WriteString(row("frequency Hz", snap.Frequency, 0, "%8.2f"))
	b.WriteString(row("efficiency", snap.ThermalEfficiency, 0, "%8.3f"))
	b.WriteString(row("drum level mm", snap.DrumLevel, 0, "%8.0f"))
	b.WriteString(row("vacuum kPa", snap.CondenserVacuum, 0, "%8.1f"))
	b.WriteString(row("feedwater t/h", snap.FeedwaterFlow, 0, "%8.0f"))
	b.WriteString(row("CO₂ t/h", snap.CO2Rate, 0, "%8.1f"))
	b.WriteString(row("oil tank %", snap.LubeOilTankLevel, 0, "%8.1f"))
	return b.String()
}

func leverBar(current, target float64, width int) string {
	filled := int(current / 100 * float64(width))
	if filled > width {
		filled = width
	}
	mark := int(target / 100 * float64(width))
	if mark >= width {
		mark = width - 1
	}
	var b strings.Builder
	for i := 0; i < width; i++ {
		switch {
		case i == mark && i >= filled:
			b.WriteString(yellow.Render("┆"))
		case i < filled:
			b.WriteString(cyan.Render("━"))
		default:
			b.WriteString(dimmer.Render("─"))
		}
	}
	return b.String()
}

func sparkline(data []float64, width int) string {
	if len(data) == 0 {
		return ""
	}
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	minVal, maxVal := data[0], data[0]
	for _, v := range data {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	rang := maxVal - minVal
	if rang == 0 {
		rang = 1
	}
	step := len(data) / width
	if step < 1 {
		step = 1
	}
	var sb strings.Builder
	for i := 0; i < width && i*step < len(data); i++ {
		idx := int((data[i*step] - minVal) / rang * 7)
		if idx > 7 {
			idx = 7
		}
		if idx < 0 {
			idx = 0
		}
		sb.WriteRune(chars[idx])
	}
	return sb.String()
}

func formatDuration(seconds float64) string {
	d := time.Duration(seconds) * time.Second
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func Run(sess *session.Session) error {
	p := tea.NewProgram(NewDashboard(sess), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
