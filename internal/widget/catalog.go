package widget

import (
	"context"
)

// ModelLoad is a model-list request for the provider selected when it began.
type ModelLoad struct {
	seq      uint64
	provider string
	catalog  ModelCatalog
}

// ModelList is the result of fetching a ModelLoad
type ModelList struct {
	seq      uint64
	Provider string
	Models   []string
	Err      error
}

// Fetch performs the network call. Safe to run off the UI goroutine.
func (l ModelLoad) Fetch(ctx context.Context) ModelList {
	if l.catalog == nil {
		return ModelList{seq: l.seq, Provider: l.provider}
	}
	names, err := l.catalog.Models(ctx, l.provider)
	return ModelList{seq: l.seq, Provider: l.provider, Models: names, Err: err}
}

// BeginLoadModels clears the model options and starts a load for the
// currently selected provider. It returns false when the widget has no picker.
// Any load still in flight is superseded.
func (w *Widget) BeginLoadModels() (ModelLoad, bool) {
	if w.picker == nil {
		return ModelLoad{}, false
	}

	w.modelLoad++
	w.picker.SetOptions(nil)

	return ModelLoad{
		seq:      w.modelLoad,
		provider: w.picker.Provider(),
		catalog:  w.catalog,
	}, true
}

// FinishLoadModels fills the picker from list, or shows an error bubble and
// leaves the options empty. Results of a superseded load are dropped and
// FinishLoadModels reports false.
func (w *Widget) FinishLoadModels(list ModelList) bool {
	if w.picker == nil || list.seq != w.modelLoad {
		return false
	}

	if list.Err != nil {
		w.picker.SetOptions(nil)
		w.appendError(w.text.ModelsError(list.Err))
		return true
	}

	w.picker.SetOptions(list.Models)
	return true
}

// LoadModels refreshes the model options and blocks until they are shown.
func (w *Widget) LoadModels(ctx context.Context) {
	load, ok := w.BeginLoadModels()
	if !ok {
		return
	}
	w.FinishLoadModels(load.Fetch(ctx))
}

// Init performs the widget's startup work: the first model load when a
// picker is attached.
func (w *Widget) Init(ctx context.Context) {
	w.LoadModels(ctx)
}
