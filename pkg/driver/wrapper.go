package driver

import (
	"sync"

	"github.com/google/uuid"

	"github.com/pion/depthcolor/pkg/io/video"
	"github.com/pion/depthcolor/pkg/prop"
)

func wrapAdapter(a Adapter, info Info) Driver {
	generator, ok := a.(VideoRecorder)
	if !ok {
		return nil
	}

	d := &adapterWrapper{
		Adapter:  a,
		recorder: generator,
		id:       uuid.NewString(),
		info:     info,
		state:    StateClosed,
	}
	return d
}

type adapterWrapper struct {
	Adapter
	recorder VideoRecorder

	mu    sync.Mutex
	id    string
	info  Info
	state State
}

func (w *adapterWrapper) ID() string {
	return w.id
}

func (w *adapterWrapper) Info() Info {
	return w.info
}

func (w *adapterWrapper) Status() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *adapterWrapper) Open() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.Update(StateOpened, w.Adapter.Open)
}

func (w *adapterWrapper) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.Update(StateClosed, w.Adapter.Close)
}

func (w *adapterWrapper) Properties() []prop.Media {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == StateClosed {
		return nil
	}

	return w.Adapter.Properties()
}

// VideoRecord starts the source. If the source fails to start, the driver is
// closed so that it can be opened again.
func (w *adapterWrapper) VideoRecord(p prop.Media) (video.Reader, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	var r video.Reader
	err := w.state.Update(StateRunning, func() error {
		var err error
		r, err = w.recorder.VideoRecord(p)
		return err
	})
	if err != nil && w.state != StateClosed && w.state != StateRunning {
		_ = w.state.Update(StateClosed, w.Adapter.Close)
	}
	return r, err
}
