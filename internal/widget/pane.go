package widget

import (
	"github.com/diogo/chatwidget/internal/models"
)

// BubbleID identifies a bubble in a Pane. NoBubble is never issued.
type BubbleID uint64

// NoBubble is the zero BubbleID
const NoBubble BubbleID = 0

// Pane is the scrollable list of message bubbles.
type Pane interface {
	Append(role models.Role, text string) BubbleID
	// Remove deletes the bubble with id; unknown ids are ignored.
	Remove(id BubbleID)
	ScrollToBottom()
}

// Bubble is one rendered entry of a MemoryPane
type Bubble struct {
	ID   BubbleID
	Role models.Role
	Text string
}

// MemoryPane is a Pane that keeps bubbles in a slice for a renderer to draw.
type MemoryPane struct {
	bubbles []Bubble
	nextID  BubbleID
	// OnScroll, when set, runs on every ScrollToBottom.
	OnScroll func()
}

// NewMemoryPane creates an empty MemoryPane
func NewMemoryPane() *MemoryPane {
	return &MemoryPane{}
}

// Append adds a bubble at the end of the pane
func (p *MemoryPane) Append(role models.Role, text string) BubbleID {
	p.nextID++
	p.bubbles = append(p.bubbles, Bubble{ID: p.nextID, Role: role, Text: text})
	return p.nextID
}

// Remove deletes the bubble with id
func (p *MemoryPane) Remove(id BubbleID) {
	for i, b := range p.bubbles {
		if b.ID == id {
			p.bubbles = append(p.bubbles[:i], p.bubbles[i+1:]...)
			return
		}
	}
}

// ScrollToBottom notifies the renderer that the newest bubble should be visible
func (p *MemoryPane) ScrollToBottom() {
	if p.OnScroll != nil {
		p.OnScroll()
	}
}

// Bubbles returns a copy of the bubbles in display order
func (p *MemoryPane) Bubbles() []Bubble {
	out := make([]Bubble, len(p.bubbles))
	copy(out, p.bubbles)
	return out
}

// Len returns the number of bubbles
func (p *MemoryPane) Len() int {
	return len(p.bubbles)
}
