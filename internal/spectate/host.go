package spectate

import (
	"time"

	"github.com/vovakirdan/tui-whackamole/internal/session"
)

// Event types.
const (
	EventSpawn     = "spawn"
	EventDespawn   = "despawn"
	EventEffect    = "effect"
	EventCountdown = "countdown"
	EventState     = "state"
)

// Event is one session notification as spectators receive it.
type Event struct {
	Session string    `json:"session"`
	Type    string    `json:"type"`
	Time    time.Time `json:"time"`
	MoleID  uint64    `json:"mole_id,omitempty"`
	Slot    *int      `json:"slot,omitempty"`
	Kind    string    `json:"kind,omitempty"`
	Reason  string    `json:"reason,omitempty"`
	Effect  string    `json:"effect,omitempty"`
	Text    *string   `json:"text,omitempty"`
	From    string    `json:"from,omitempty"`
	To      string    `json:"to,omitempty"`
}

// Publisher accepts events. Hub is the production implementation.
type Publisher interface {
	Publish(ev Event)
}

// Host adapts a session's host calls into events for one session id.
type Host struct {
	pub     Publisher
	session string
	now     func() time.Time
}

var _ session.Host = (*Host)(nil)

// NewHost returns a session.Host that publishes to pub.
func NewHost(pub Publisher, sessionID string) *Host {
	return &Host{pub: pub, session: sessionID, now: time.Now}
}

// Host returns a session.Host that broadcasts through the hub.
func (h *Hub) Host(sessionID string) *Host {
	return NewHost(h, sessionID)
}

func (h *Host) event(typ string) Event {
	return Event{Session: h.session, Type: typ, Time: h.now().UTC()}
}

func slotPtr(slot int) *int {
	return &slot
}

func (h *Host) SpawnMole(m session.Mole) {
	ev := h.event(EventSpawn)
	ev.MoleID = m.ID
	ev.Slot = slotPtr(m.Slot)
	ev.Kind = m.Kind.String()
	h.pub.Publish(ev)
}

func (h *Host) DespawnMole(m session.Mole, reason session.DespawnReason) {
	ev := h.event(EventDespawn)
	ev.MoleID = m.ID
	ev.Slot = slotPtr(m.Slot)
	ev.Kind = m.Kind.String()
	ev.Reason = reason.String()
	h.pub.Publish(ev)
}

func (h *Host) PlayEffect(e session.Effect) {
	ev := h.event(EventEffect)
	ev.Effect = e.Kind.String()
	if e.Slot != session.NoSlot {
		ev.Slot = slotPtr(e.Slot)
	}
	h.pub.Publish(ev)
}

// ShowCountdown publishes the text as is; an empty text means hidden.
func (h *Host) ShowCountdown(text string) {
	ev := h.event(EventCountdown)
	ev.Text = &text
	h.pub.Publish(ev)
}

func (h *Host) StateChanged(from, to session.State) {
	ev := h.event(EventState)
	ev.From = from.String()
	ev.To = to.String()
	h.pub.Publish(ev)
}
