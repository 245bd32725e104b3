package registry

import (
	"context"
	"sync"

	"github.com/annel0/blockverse/internal/assets"
	"github.com/annel0/blockverse/internal/logging"
	"github.com/annel0/blockverse/internal/state"
)

// LoadStateQuerier агрегированный статус загрузки группы ресурсов (assets.Server)
type LoadStateQuerier interface {
	GroupLoadState(ids []assets.HandleID) assets.LoadState
}

// AssetTracker множество ресурсов, от загрузки которых зависит переход в Running.
// Повторный Track одного и того же ресурса не увеличивает счётчик.
type AssetTracker struct {
	mu      sync.RWMutex
	handles map[assets.HandleID]struct{}
}

// NewAssetTracker создаёт пустой трекер
func NewAssetTracker() *AssetTracker {
	return &AssetTracker{
		handles: make(map[assets.HandleID]struct{}),
	}
}

// Track добавляет ресурс в отслеживаемые
func (t *AssetTracker) Track(h assets.Handle) {
	t.mu.Lock()
	t.handles[h.ID] = struct{}{}
	t.mu.Unlock()
}

// Len возвращает количество отслеживаемых ресурсов
func (t *AssetTracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.handles)
}

// IsEmpty возвращает true, если ничего не отслеживается
func (t *AssetTracker) IsEmpty() bool {
	return t.Len() == 0
}

// Handles возвращает снимок отслеживаемых ресурсов
func (t *AssetTracker) Handles() []assets.HandleID {
	t.mu.RLock()
	defer t.mu.RUnlock()

	ids := make([]assets.HandleID, 0, len(t.handles))
	for id := range t.handles {
		ids = append(ids, id)
	}
	return ids
}

// Poll опрашивает статус загрузки и ставит переход в Running, когда всё загружено.
//
// После Running (или уже поставленного перехода) опрос ничего не делает.
// Незавершённая загрузка - штатное состояние, а не ошибка. Ресурс, который
// никогда не загрузится (Failed), оставляет игру в Loading навсегда.
func (t *AssetTracker) Poll(server LoadStateQuerier, machine *state.Machine) (assets.LoadState, bool) {
	if machine.Current() == state.Running {
		return assets.Loaded, false
	}
	if next, pending := machine.Pending(); pending && next == state.Running {
		return assets.Loaded, false
	}

	handles := t.Handles()
	switch loadState := server.GroupLoadState(handles); loadState {
	case assets.Loaded:
		logging.Info("✅ All %d tracked assets have been loaded, setting the game to running", len(handles))
		machine.Set(state.Running)
		return loadState, true
	default:
		logging.Debug("Asset state was: %s", loadState)
		return loadState, false
	}
}

// MoveStateToRunningWhenAllAssetsLoaded система опроса трекера.
// Планировщик запускает её в конце тика и только в состоянии Loading.
func MoveStateToRunningWhenAllAssetsLoaded(server LoadStateQuerier, tracker *AssetTracker, machine *state.Machine) func(ctx context.Context) {
	return func(ctx context.Context) {
		tracker.Poll(server, machine)
	}
}
