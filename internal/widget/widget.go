// Package widget implements the chat widget controller: it keeps the
// conversation history, mirrors it into a message pane, drives the loading
// state of the input form and fills the model picker from a catalog.
//
// A Widget is not safe for concurrent use. All methods that change state are
// meant to run on one goroutine (the UI event loop); the network halves of a
// request (Pending.Send, ModelLoad.Fetch) work on snapshots and may run
// anywhere.
package widget

import (
	"context"
	"strings"

	"github.com/diogo/chatwidget/internal/models"
)

// ChatService answers one chat turn
type ChatService interface {
	Chat(ctx context.Context, req models.ChatRequest) (string, error)
}

// ModelCatalog lists the models available for a provider
type ModelCatalog interface {
	Models(ctx context.Context, provider string) ([]string, error)
}

// Form is the text input together with its submit control.
type Form interface {
	// Value returns the current, untrimmed input text.
	Value() string
	// Clear empties the input field.
	Clear()
	// SetDisabled toggles the input field and the submit control together.
	SetDisabled(disabled bool)
}

// ModelPicker is the optional provider/model selector pair.
type ModelPicker interface {
	Provider() string
	Model() string
	// SetOptions replaces the model options. A nil or empty slice clears them.
	SetOptions(names []string)
}

// Widget is the chat controller
type Widget struct {
	pane    Pane
	form    Form
	chat    ChatService
	picker  ModelPicker
	catalog ModelCatalog
	text    Messages

	history     []models.Turn
	loading     bool
	placeholder BubbleID
	modelLoad   uint64
	errors      map[BubbleID]struct{}
}

// Option configures a Widget
type Option func(*Widget)

// WithModelPicker enables the model-selection capability. Without it the
// widget sends the default provider and an empty model, and never loads models.
func WithModelPicker(picker ModelPicker, catalog ModelCatalog) Option {
	return func(w *Widget) {
		if picker == nil || catalog == nil {
			return
		}
		w.picker = picker
		w.catalog = catalog
	}
}

// WithMessages sets the localized strings used for error bubbles
func WithMessages(m Messages) Option {
	return func(w *Widget) {
		w.text = m
	}
}

// New creates a Widget bound to pane and form, sending turns to chat
func New(pane Pane, form Form, chat ChatService, opts ...Option) *Widget {
	w := &Widget{
		pane: pane,
		form: form,
		chat: chat,
		text: MessagesFor(""),

		errors: make(map[BubbleID]struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// History returns a copy of the conversation so far
func (w *Widget) History() []models.Turn {
	return models.CloneTurns(w.history)
}

// Loading reports whether a chat request is in flight
func (w *Widget) Loading() bool {
	return w.loading
}

// IsError reports whether the bubble with id was added to show a failure
func (w *Widget) IsError(id BubbleID) bool {
	_, ok := w.errors[id]
	return ok
}

func (w *Widget) appendError(text string) {
	id := w.pane.Append(models.RoleModel, text)
	w.errors[id] = struct{}{}
	w.pane.ScrollToBottom()
}

// HasModelPicker reports whether the widget was built with a picker
func (w *Widget) HasModelPicker() bool {
	return w.picker != nil
}

// SetLoading enters or leaves the loading state. Entering disables the form
// and shows the placeholder bubble; leaving re-enables the form and removes
// the placeholder added by the matching entry, if it is still there.
func (w *Widget) SetLoading(loading bool) {
	w.form.SetDisabled(loading)
	w.loading = loading

	if loading {
		if w.placeholder != NoBubble {
			w.pane.Remove(w.placeholder)
		}
		w.placeholder = w.pane.Append(models.RoleModel, models.PlaceholderText)
		w.pane.ScrollToBottom()
		return
	}

	if w.placeholder != NoBubble {
		w.pane.Remove(w.placeholder)
		w.placeholder = NoBubble
	}
}

// Pending is a chat request that has been shown in the UI but not yet sent.
type Pending struct {
	chat    ChatService
	request models.ChatRequest
}

// Request returns the payload that Send will post
func (p Pending) Request() models.ChatRequest {
	return p.request
}

// Outcome is the result of sending a Pending request
type Outcome struct {
	Reply string
	Err   error
}

// Send performs the network call. It reads nothing from the widget, so it is
// safe to run off the UI goroutine.
func (p Pending) Send(ctx context.Context) Outcome {
	reply, err := p.chat.Chat(ctx, p.request)
	return Outcome{Reply: reply, Err: err}
}

// Begin handles the UI half of a submission: it appends the user turn and
// bubble, clears the input and enters the loading state. It returns false for
// empty or whitespace-only text, in which case nothing changed.
func (w *Widget) Begin(text string) (Pending, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Pending{}, false
	}

	w.appendTurn(models.UserTurn(text))
	w.form.Clear()
	w.SetLoading(true)

	provider, model := models.DefaultProvider, ""
	if w.picker != nil {
		provider, model = w.picker.Provider(), w.picker.Model()
	}

	return Pending{
		chat: w.chat,
		request: models.ChatRequest{
			Message:  text,
			History:  w.History(),
			Provider: provider,
			Model:    model,
		},
	}, true
}

// Finish leaves the loading state and shows the outcome: a model turn on
// success, an error bubble (not recorded in history) on failure.
func (w *Widget) Finish(out Outcome) {
	w.SetLoading(false)

	if out.Err != nil {
		w.appendError(w.text.ChatError(out.Err))
		return
	}

	w.appendTurn(models.ModelTurn(out.Reply))
}

// Submit sends the form's current text and blocks until the reply is shown.
func (w *Widget) Submit(ctx context.Context) {
	w.SubmitText(ctx, w.form.Value())
}

// SubmitText is Submit for text that did not come from the form.
func (w *Widget) SubmitText(ctx context.Context, text string) {
	pending, ok := w.Begin(text)
	if !ok {
		return
	}
	w.Finish(pending.Send(ctx))
}

func (w *Widget) appendTurn(turn models.Turn) {
	w.history = append(w.history, turn)
	w.pane.Append(turn.Role, turn.Content)
	w.pane.ScrollToBottom()
}
