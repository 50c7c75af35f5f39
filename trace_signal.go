package utrace

import (
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
)

// signalWatcher turns toggle signals into a pending-toggle flag. It never
// touches the log itself; the flag is consumed under the log mutex.
type signalWatcher struct {
	ch       chan os.Signal
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
}

func startSignalWatcher(flag *atomic.Bool) *signalWatcher {
	if len(toggleSignals) == 0 {
		return nil
	}
	w := &signalWatcher{
		ch:     make(chan os.Signal, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
	signal.Notify(w.ch, toggleSignals...)
	go func() {
		defer close(w.doneCh)
		for {
			select {
			case <-w.ch:
				flag.Store(true)
			case <-w.stopCh:
				return
			}
		}
	}()
	return w
}

func (w *signalWatcher) stop() {
	if w == nil {
		return
	}
	w.stopOnce.Do(func() {
		signal.Stop(w.ch)
		close(w.stopCh)
		<-w.doneCh
	})
}
