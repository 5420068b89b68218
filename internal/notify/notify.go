package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"
)

// Level classifies a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Message is one user-facing notification.
type Message struct {
	Level Level
	Text  string
}

// Sink receives notifications. Implementations must be safe for concurrent use.
type Sink interface {
	Notify(Message)
}

// Success, Warning and Error are shorthands for Sink.Notify.
func Success(s Sink, format string, args ...any) {
	s.Notify(Message{Level: LevelSuccess, Text: fmt.Sprintf(format, args...)})
}

func Warning(s Sink, format string, args ...any) {
	s.Notify(Message{Level: LevelWarning, Text: fmt.Sprintf(format, args...)})
}

func Error(s Sink, format string, args ...any) {
	s.Notify(Message{Level: LevelError, Text: fmt.Sprintf(format, args...)})
}

// Queue collects messages until they are drained, typically by the next
// page render.
type Queue struct {
	mu   sync.Mutex
	msgs []Message
}

func (q *Queue) Notify(m Message) {
	q.mu.Lock()
	q.msgs = append(q.msgs, m)
	q.mu.Unlock()
}

// Drain returns and clears the queued messages.
func (q *Queue) Drain() []Message {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.msgs
	q.msgs = nil
	return out
}

// Logged mirrors notifications to a logger.
type Logged struct {
	Log zerolog.Logger
}

func (l Logged) Notify(m Message) {
	var ev *zerolog.Event
	switch m.Level {
	case LevelError:
		ev = l.Log.Error()
	case LevelWarning:
		ev = l.Log.Warn()
	default:
		ev = l.Log.Info()
	}
	ev.Str("level_ui", string(m.Level)).Msg(m.Text)
}

// Writer prints notifications, one per line, for terminal use.
type Writer struct {
	mu  sync.Mutex
	Out io.Writer
}

func (w *Writer) Notify(m Message) {
	prefix := map[Level]string{
		LevelSuccess: "ok",
		LevelWarning: "warning",
		LevelError:   "error",
	}[m.Level]
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintf(w.Out, "%s: %s\n", prefix, m.Text)
}

// Fanout delivers each message to every sink.
type Fanout []Sink

func (f Fanout) Notify(m Message) {
	for _, s := range f {
		s.Notify(m)
	}
}
