package sim

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/drewsortega/bonnaroo-led/internal/display"
	"github.com/drewsortega/bonnaroo-led/internal/remote"
)

// frameInterval is the render cadence. The control loop runs on its own
// goroutine; the view only snapshots the framebuffer.
const frameInterval = 33 * time.Millisecond

type frameMsg time.Time

// Status is the playback summary shown in the footer and broadcast over
// the websocket surface.
type Status struct {
	Index      int    `json:"index"`
	Total      int    `json:"total"`
	Brightness int    `json:"brightness"`
	ItemName   string `json:"item"`
	Halted     bool   `json:"halted"`
}

// StatusFunc supplies the current playback summary. It is called from the
// render goroutine, so implementations must be safe for concurrent use.
type StatusFunc func() Status

var (
	borderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))
	overlayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Bold(true)
	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
)

// Model is the terminal front end. Keyboard presses become injected raw
// codes; each frame renders a snapshot of the framebuffer, two panel rows
// per terminal row using half blocks.
type Model struct {
	fb     *display.Framebuffer
	queue  *remote.Queue
	status StatusFunc

	scale int
	gap   bool

	marquee int
}

// New returns a simulator model over the given framebuffer and injection
// queue. scale is terminal columns per pixel; gap adds a blank column
// between pixels.
func New(fb *display.Framebuffer, queue *remote.Queue, status StatusFunc, scale int, gap bool) Model {
	if scale < 1 {
		scale = 1
	}
	return Model{fb: fb, queue: queue, status: status, scale: scale, gap: gap}
}

func (m Model) Init() tea.Cmd {
	return nextFrame()
}

func nextFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
		if code, ok := CodeForKey(msg.String()); ok {
			m.queue.Inject(code)
		}
		return m, nil

	case frameMsg:
		m.marquee++
		return m, nextFrame()
	}
	return m, nil
}

func (m Model) View() string {
	snap := m.fb.Snapshot()

	var b strings.Builder
	b.WriteString(m.renderGrid(snap))
	b.WriteByte('\n')
	b.WriteString(m.renderOverlay(snap))
	b.WriteByte('\n')
	b.WriteString(m.renderFooter())
	return b.String()
}

// renderGrid draws the panel, two rows per line with "▀": foreground is
// the upper pixel, background the lower one.
func (m Model) renderGrid(snap display.Snapshot) string {
	cell := strings.Repeat("▀", m.scale)
	pad := ""
	if m.gap {
		pad = " "
	}

	var b strings.Builder
	for y := 0; y < snap.Height; y += 2 {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < snap.Width; x++ {
			top := scaleColor(snap.Pixels[y*snap.Width+x], snap.Brightness, snap.MaxBrightness)
			bottom := display.RGB{}
			if y+1 < snap.Height {
				bottom = scaleColor(snap.Pixels[(y+1)*snap.Width+x], snap.Brightness, snap.MaxBrightness)
			}
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(hexColor(top))).
				Background(lipgloss.Color(hexColor(bottom)))
			b.WriteString(style.Render(cell))
			b.WriteString(pad)
		}
	}
	return borderStyle.Render(b.String())
}

func (m Model) renderOverlay(snap display.Snapshot) string {
	if !snap.StatusShown {
		return ""
	}
	text := snap.StatusText
	width := snap.Width * m.scale
	if snap.StatusScroll && len(text) > width {
		// Rotate through "text   " so the tail wraps back to the head.
		padded := text + "   "
		off := (m.marquee / 3) % len(padded)
		text = (padded + padded)[off : off+width]
	}
	return overlayStyle.Render(text)
}

func (m Model) renderFooter() string {
	line := "-/+ brightness · arrows navigate · q quit"
	if m.status != nil {
		st := m.status()
		if st.Halted {
			line = "HALTED · q quit"
		} else {
			line = fmt.Sprintf("item %d/%d %s · brightness %d · %s",
				st.Index+1, st.Total, st.ItemName, st.Brightness, line)
		}
	}
	return footerStyle.Render(line)
}

// scaleColor applies scan-out brightness the way the panel driver does:
// linear scale toward black.
func scaleColor(c display.RGB, brightness, maxBrightness int) display.RGB {
	if maxBrightness <= 0 {
		return c
	}
	return display.RGB{
		R: uint8(int(c.R) * brightness / maxBrightness),
		G: uint8(int(c.G) * brightness / maxBrightness),
		B: uint8(int(c.B) * brightness / maxBrightness),
	}
}

func hexColor(c display.RGB) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
