package notifications

import "sync"

type Variant string

const (
	Success Variant = "success"
	Error   Variant = "error"
)

const (
	successAutoHide = 5000
	errorAutoHide   = 8000
)

type Anchor struct {
	Vertical   string `json:"vertical"`
	Horizontal string `json:"horizontal"`
}

// Notification is a toast shown to the user once an operation settles.
// AutoHideDuration is in milliseconds.
type Notification struct {
	Message          string  `json:"message"`
	Variant          Variant `json:"variant"`
	AutoHideDuration int     `json:"autoHideDuration"`
	AnchorOrigin     Anchor  `json:"anchorOrigin"`
}

func NewSuccess(message string) Notification {
	return Notification{
		Message:          message,
		Variant:          Success,
		AutoHideDuration: successAutoHide,
		AnchorOrigin:     Anchor{Vertical: "bottom", Horizontal: "right"},
	}
}

func NewError(message string) Notification {
	return Notification{
		Message:          message,
		Variant:          Error,
		AutoHideDuration: errorAutoHide,
		AnchorOrigin:     Anchor{Vertical: "bottom", Horizontal: "right"},
	}
}

type Notifier interface {
	Notify(n Notification)
}

// Collector keeps notifications in the order they were raised so they can be
// handed back to the caller that triggered them.
type Collector struct {
	mu    sync.Mutex
	items []Notification
}

func NewCollector() *Collector {
	return &Collector{items: []Notification{}}
}

func (c *Collector) Notify(n Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, n)
}

func (c *Collector) Notifications() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notification, len(c.items))
	copy(out, c.items)
	return out
}

// Fanout delivers every notification to each notifier in turn. Nil entries
// are skipped.
type Fanout []Notifier

func (f Fanout) Notify(n Notification) {
	for _, notifier := range f {
		if notifier != nil {
			notifier.Notify(n)
		}
	}
}
