package main

import (
	"io"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"chessy/board"
	"chessy/render"
)

const messageLines = 8

// tui is the full-screen frontend: the board on top, recent messages below
// it, and an input line. Keys are collected into lines that the human player
// reads through Input.
type tui struct {
	screen tcell.Screen
	view   render.Screen
	lines  chan string
	quit   func()
	closed sync.Once
	inputOnce sync.Once
	done   chan struct{}

	mu       sync.Mutex
	pos      *board.Board
	last     board.Move
	messages []string
	partial  string // written text not yet ended by a newline, e.g. a prompt
	typed    []rune
	over     bool
}

func newTUI(unicode bool, quit func()) (*tui, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	t := &tui{
		screen: s,
		view:   render.Screen{S: s, Unicode: unicode},
		lines:  make(chan string, 16),
		quit:   quit,
		done:   make(chan struct{}),
	}
	go t.poll()
	return t, nil
}

func (t *tui) Input() io.Reader { return &lineReader{lines: t.lines} }

func (t *tui) Show(b *board.Board, last board.Move) {
	t.mu.Lock()
	t.pos, t.last = b, last
	t.mu.Unlock()
	t.redraw()
}

func (t *tui) Write(p []byte) (int, error) {
	t.mu.Lock()
	parts := strings.Split(t.partial+string(p), "\n")
	t.partial = parts[len(parts)-1]
	t.messages = append(t.messages, parts[:len(parts)-1]...)
	if n := len(t.messages); n > messageLines {
		t.messages = t.messages[n-messageLines:]
	}
	t.mu.Unlock()
	t.redraw()
	return len(p), nil
}

// Close waits for a key so the final position stays readable, then gives
// the terminal back.
func (t *tui) Close() {
	t.mu.Lock()
	t.over = true
	t.partial = "Press any key to exit."
	t.mu.Unlock()
	t.redraw()
	<-t.done
	t.screen.Fini()
}

func (t *tui) redraw() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Clear()
	if t.pos != nil {
		t.view.Draw(t.pos, t.last)
	}
	y := render.Height + 1
	for _, m := range t.messages {
		render.Puts(t.screen, 0, y, m, tcell.StyleDefault)
		y++
	}
	x := render.Puts(t.screen, 0, y, t.partial+string(t.typed), tcell.StyleDefault)
	t.screen.ShowCursor(x, y)
	t.screen.Show()
}

func (t *tui) poll() {
	for {
		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return
		case *tcell.EventResize:
			t.screen.Sync()
			t.redraw()
		case *tcell.EventKey:
			t.key(ev)
		}
	}
}

func (t *tui) key(ev *tcell.EventKey) {
	t.mu.Lock()
	if t.over {
		t.mu.Unlock()
		t.closed.Do(func() { close(t.done) })
		return
	}
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		t.mu.Unlock()
		t.quit()
		t.closeInput()
		return
	case tcell.KeyEnter:
		line := string(t.typed)
		t.messages = append(t.messages, t.partial+line)
		t.partial, t.typed = "", nil
		select {
		case t.lines <- line:
		default:
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if n := len(t.typed); n > 0 {
			t.typed = t.typed[:n-1]
		}
	case tcell.KeyRune:
		t.typed = append(t.typed, ev.Rune())
	}
	t.mu.Unlock()
	t.redraw()
}

func (t *tui) closeInput() {
	t.inputOnce.Do(func() { close(t.lines) })
}

// lineReader turns submitted lines back into a byte stream; a closed channel
// reads as end of input.
type lineReader struct {
	lines   <-chan string
	pending []byte
}

func (r *lineReader) Read(p []byte) (int, error) {
	if len(r.pending) == 0 {
		line, ok := <-r.lines
		if !ok {
			return 0, io.EOF
		}
		r.pending = []byte(line + "\n")
	}
	n := copy(p, r.pending)
	r.pending = r.pending[n:]
	return n, nil
}
