package tui

import (
	"github.com/diogo/chatwidget/internal/widget"
)

// bubblePane is the widget's message pane. Scroll requests are latched and
// applied to the viewport on the next refresh.
type bubblePane struct {
	*widget.MemoryPane
	follow bool
}

func newBubblePane() *bubblePane {
	p := &bubblePane{MemoryPane: widget.NewMemoryPane()}
	p.OnScroll = func() { p.follow = true }
	return p
}

// takeFollow reports and clears a pending scroll-to-bottom
func (p *bubblePane) takeFollow() bool {
	f := p.follow
	p.follow = false
	return f
}
