package app

import (
	"github.com/bethropolis/poxi/internal/event"
	"github.com/bethropolis/poxi/internal/logger"
)

// subscribeHandlers wires the notification bus into the emitter.
func (a *App) subscribeHandlers() {
	a.eventManager.Subscribe(event.TypeHistoryChanged, a.handleHistoryChanged)
	a.eventManager.Subscribe(event.TypeCursorLoaded, a.handleCursorLoaded)
}

// handleHistoryChanged forwards history changes to the "history" handler.
func (a *App) handleHistoryChanged(e event.Event) bool {
	if data, ok := e.Data.(event.HistoryChangedData); ok {
		logger.DebugTagf("app", "App: history %s, batch %d/%d rev %d", data.Action, data.Index+1, data.Len, data.Revision)
	}
	a.emitter.Emit(event.KindHistoryChanged)
	return false
}

func (a *App) handleCursorLoaded(e event.Event) bool {
	if data, ok := e.Data.(event.CursorLoadedData); ok && data.Err != nil {
		a.setStatus("Cursor %s failed to load", data.Kind)
	}
	return false
}
