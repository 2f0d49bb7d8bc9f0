package tui

import "sync"

const appTitle = "StudySmart"

// TitleNotifier shows the running study timer in the terminal window title.
// It implements notify.Notifier; the app model applies the titles.
type TitleNotifier struct {
	titles *latest[string]

	mu     sync.Mutex
	active bool
}

// NewTitleNotifier creates a notifier that is idle until a session starts
func NewTitleNotifier() *TitleNotifier {
	return &TitleNotifier{titles: newLatest[string]()}
}

func (n *TitleNotifier) Show(text string) {
	n.mu.Lock()
	n.active = true
	n.mu.Unlock()
	n.titles.put(sessionTitle(text))
}

func (n *TitleNotifier) SetText(text string) {
	n.mu.Lock()
	active := n.active
	n.mu.Unlock()
	if active {
		n.titles.put(sessionTitle(text))
	}
}

func (n *TitleNotifier) Dismiss() {
	n.mu.Lock()
	n.active = false
	n.mu.Unlock()
	n.titles.put(appTitle)
}

func sessionTitle(clock string) string {
	return "⏱ " + clock + " · " + appTitle
}

// titleMsg asks the app to set the window title
type titleMsg string
