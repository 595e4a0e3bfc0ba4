package render

import (
	"bufio"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/gdamore/tcell/v2"
)

// Painter is the terminal surface the render goroutine writes to.
// Put only stages a cell; nothing is guaranteed visible before Flush.
// An empty glyph clears the cell.
type Painter interface {
	Clear() error
	Put(x, y int, glyph string)
	Flush() error
}

// ANSIPainter writes cursor-addressed glyphs as raw escape sequences.
// It works on any writer: a local tty, an SSH session or a test buffer.
type ANSIPainter struct {
	w      *bufio.Writer
	styles map[string]lipgloss.Style
}

// NewANSIPainter creates a painter on w. Glyph colours follow colors;
// the renderer drops them when w does not support colour.
func NewANSIPainter(w io.Writer, colors map[string]string) *ANSIPainter {
	return &ANSIPainter{
		w:      bufio.NewWriter(w),
		styles: lipglossStyles(lipgloss.NewRenderer(w), colors),
	}
}

// Clear erases the whole screen.
func (p *ANSIPainter) Clear() error {
	_, err := p.w.WriteString(ansi.EraseEntireScreen)
	return err
}

// Put moves the cursor to (x, y) and writes the glyph.
// Write errors are sticky in the buffer and surface on Flush.
func (p *ANSIPainter) Put(x, y int, glyph string) {
	// Terminal coordinates are 1-based
	_, _ = p.w.WriteString(ansi.CursorPosition(x+1, y+1))
	if glyph == "" {
		_ = p.w.WriteByte(' ')
		return
	}
	if style, ok := p.styles[glyph]; ok {
		_, _ = p.w.WriteString(style.Render(glyph))
		return
	}
	_, _ = p.w.WriteString(glyph)
}

// Flush pushes everything staged so far to the writer.
func (p *ANSIPainter) Flush() error {
	return p.w.Flush()
}

// TcellPainter draws into a tcell screen.
type TcellPainter struct {
	screen tcell.Screen
	styles map[string]tcell.Style
}

// NewTcellPainter creates a painter on an initialised screen.
func NewTcellPainter(screen tcell.Screen, colors map[string]string) *TcellPainter {
	return &TcellPainter{
		screen: screen,
		styles: tcellStyles(colors),
	}
}

// Clear blanks the screen buffer.
func (p *TcellPainter) Clear() error {
	p.screen.Clear()
	return nil
}

// Put sets one cell; multi-rune glyphs keep their combining runes.
func (p *TcellPainter) Put(x, y int, glyph string) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		p.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault)
		return
	}
	style, ok := p.styles[glyph]
	if !ok {
		style = tcell.StyleDefault
	}
	p.screen.SetContent(x, y, runes[0], runes[1:], style)
}

// Flush shows the staged cells on the terminal.
func (p *TcellPainter) Flush() error {
	p.screen.Show()
	return nil
}
