// Package panel draws the console log on a terminal. It follows the log's
// change and rebuild notifications: appended records are printed as they
// arrive, and a rebuild clears the screen and reprints what is left.
package panel

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/google/uuid"
	"github.com/muesli/termenv"

	"devconsole/pkg/consoletypes"
)

// Source is the part of the console a panel reads from.
type Source interface {
	Logs() []consoletypes.LogRecord
	LogTotal() int64
	OnLogChanged(fn func()) uuid.UUID
	OnRebuild(fn func()) uuid.UUID
	Unsubscribe(id uuid.UUID) bool
}

// Options configures a Panel.
type Options struct {
	// Theme names an embedded theme.
	Theme string
	// Width truncates lines to this many cells; zero disables truncation.
	Width int
	// TabWidth is the number of spaces a tab expands to.
	TabWidth int
}

// Panel renders log records to a writer.
type Panel struct {
	mu       sync.Mutex
	out      io.Writer
	src      Source
	theme    *Theme
	plain    bool
	width    int
	tab      string
	rendered int64
	subs     []uuid.UUID
}

// New creates a panel writing to out. Styling is disabled when out does not
// support colors.
func New(out io.Writer, src Source, opts Options) *Panel {
	tabWidth := opts.TabWidth
	if tabWidth <= 0 {
		tabWidth = 4
	}
	renderer := lipgloss.NewRenderer(out)
	return &Panel{
		out:   out,
		src:   src,
		theme: LoadTheme(opts.Theme, renderer),
		plain: termenv.NewOutput(out).Profile == termenv.Ascii,
		width: opts.Width,
		tab:   strings.Repeat(" ", tabWidth),
	}
}

// Attach subscribes the panel to its source. Records already in the log are
// treated as rendered.
func (p *Panel) Attach() {
	p.mu.Lock()
	p.rendered = p.src.LogTotal()
	p.mu.Unlock()

	p.subs = append(p.subs,
		p.src.OnLogChanged(p.renderNew),
		p.src.OnRebuild(p.Redraw),
	)
}

// Detach removes the panel's subscriptions.
func (p *Panel) Detach() {
	for _, id := range p.subs {
		p.src.Unsubscribe(id)
	}
	p.subs = nil
}

// Width returns the truncation width.
func (p *Panel) Width() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.width
}

// SetWidth changes the truncation width for subsequent lines.
func (p *Panel) SetWidth(width int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.width = width
}

// Prompt renders the prompt text in the theme's prompt style.
func (p *Panel) Prompt(text string) string {
	if p.plain {
		return text
	}
	return p.theme.Prompt.Render(text)
}

// Redraw clears the screen and prints every record in the log.
func (p *Panel) Redraw() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.plain {
		_, _ = io.WriteString(p.out, ansi.EraseEntireScreen+ansi.CursorHomePosition)
	}
	for _, rec := range p.src.Logs() {
		p.writeLocked(rec)
	}
	p.rendered = p.src.LogTotal()
}

func (p *Panel) renderNew() {
	p.mu.Lock()
	defer p.mu.Unlock()

	total := p.src.LogTotal()
	fresh := total - p.rendered
	if fresh <= 0 {
		return
	}
	logs := p.src.Logs()
	if fresh > int64(len(logs)) {
		fresh = int64(len(logs))
	}
	for _, rec := range logs[len(logs)-int(fresh):] {
		p.writeLocked(rec)
	}
	p.rendered = total
}

func (p *Panel) writeLocked(rec consoletypes.LogRecord) {
	fmt.Fprintln(p.out, p.format(rec))
}

func (p *Panel) format(rec consoletypes.LogRecord) string {
	line := strings.ReplaceAll(rec.Message, "\t", p.tab)
	if !p.plain {
		line = p.theme.Style(rec.Severity).Render(line)
	}
	if p.width > 0 {
		line = ansi.Truncate(line, p.width, "…")
	}
	return line
}
