package eventsink

import (
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/spatialnav/pkg/navigator"
)

// Envelope is the wire form of a navigator event.
type Envelope struct {
	ID    string    `json:"id"`
	Time  time.Time `json:"time"`
	Scene string    `json:"scene,omitempty"`

	Type       string `json:"type"`
	Target     string `json:"target,omitempty"`
	Cancelable bool   `json:"cancelable,omitempty"`

	Direction     string `json:"direction,omitempty"`
	SectionID     string `json:"section_id,omitempty"`
	Next          string `json:"next,omitempty"`
	NextSectionID string `json:"next_section_id,omitempty"`
	Previous      string `json:"previous,omitempty"`
	Native        bool   `json:"native,omitempty"`
	Cause         string `json:"cause,omitempty"`
}

// FromEvent flattens ev into an envelope stamped with a fresh id.
func FromEvent(scene string, ev navigator.Event) Envelope {
	return Envelope{
		ID:            uuid.NewString(),
		Time:          time.Now().UTC(),
		Scene:         scene,
		Type:          string(ev.Type),
		Target:        nodeID(ev.Target),
		Cancelable:    ev.Cancelable,
		Direction:     string(ev.Direction),
		SectionID:     ev.SectionID,
		Next:          nodeID(ev.Next),
		NextSectionID: ev.NextSectionID,
		Previous:      nodeID(ev.Previous),
		Native:        ev.Native,
		Cause:         ev.Cause,
	}
}

func nodeID(n navigator.Node) string {
	if n == nil {
		return ""
	}
	return n.ID()
}
