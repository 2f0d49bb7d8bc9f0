// Package notify is the surface that shows the running study timer outside
// of any screen.
package notify

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notifier shows one persistent notification per timer session
type Notifier interface {
	// Show creates the notification with its first text
	Show(text string)
	// SetText replaces the text of the shown notification
	SetText(text string)
	// Dismiss removes the notification
	Dismiss()
}

// Nop discards every call
type Nop struct{}

func (Nop) Show(string)    {}
func (Nop) SetText(string) {}
func (Nop) Dismiss()       {}

// Log writes the notification lifecycle to a zap logger. Every Show starts a
// new notification id so the lines of one session can be grouped.
type Log struct {
	log *zap.Logger

	mu sync.Mutex
	id uuid.UUID
}

// NewLog creates a notifier logging at debug level, info for show and dismiss
func NewLog(log *zap.Logger) *Log {
	if log == nil {
		log = zap.NewNop()
	}
	return &Log{log: log.Named("notify")}
}

func (l *Log) Show(text string) {
	l.mu.Lock()
	l.id = uuid.New()
	id := l.id
	l.mu.Unlock()
	l.log.Info("study session started", zap.Stringer("notification", id), zap.String("text", text))
}

func (l *Log) SetText(text string) {
	l.log.Debug("study session tick", zap.Stringer("notification", l.current()), zap.String("text", text))
}

func (l *Log) Dismiss() {
	l.mu.Lock()
	id := l.id
	l.id = uuid.Nil
	l.mu.Unlock()
	if id == uuid.Nil {
		return
	}
	l.log.Info("study session notification dismissed", zap.Stringer("notification", id))
}

func (l *Log) current() uuid.UUID {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.id
}

// Multi fans every call out to several notifiers
type Multi []Notifier

func (m Multi) Show(text string) {
	for _, n := range m {
		n.Show(text)
	}
}

func (m Multi) SetText(text string) {
	for _, n := range m {
		n.SetText(text)
	}
}

func (m Multi) Dismiss() {
	for _, n := range m {
		n.Dismiss()
	}
}

// Recorder keeps every call in memory
type Recorder struct {
	mu     sync.Mutex
	shown  int
	texts  []string
	closed int
}

func (r *Recorder) Show(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shown++
	r.texts = append(r.texts, text)
}

func (r *Recorder) SetText(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.texts = append(r.texts, text)
}

func (r *Recorder) Dismiss() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed++
}

// Counts returns how often Show and Dismiss were called
func (r *Recorder) Counts() (shown, dismissed int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.shown, r.closed
}

// Texts returns every text passed to Show or SetText, in order
func (r *Recorder) Texts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.texts...)
}
