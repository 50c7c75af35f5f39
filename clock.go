package utrace

import (
	"sync"
	"sync/atomic"
	"time"
)

// clock caches the broken-down "now" so %D does not convert the wall clock
// on every render. A ticker goroutine refreshes it once a second; it is
// started on first use and stopped by close.
type clock struct {
	now       func() time.Time
	loc       *time.Location
	newTicker func(time.Duration) tickerControl
	value     atomic.Pointer[clockEntry]

	startOnce sync.Once
	stopCh    chan struct{}
	doneCh    chan struct{}
	stopOnce  sync.Once
}

type clockEntry struct {
	t  time.Time
	tm BrokenDownTime
}

type tickerControl struct {
	C    <-chan time.Time
	Stop func()
}

func (t tickerControl) stop() {
	if t.Stop != nil {
		t.Stop()
	}
}

func defaultTicker(d time.Duration) tickerControl {
	t := time.NewTicker(d)
	return tickerControl{
		C:    t.C,
		Stop: t.Stop,
	}
}

func newClock(now func() time.Time, loc *time.Location) *clock {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return &clock{
		now:       now,
		loc:       loc,
		newTicker: defaultTicker,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

func (c *clock) current() *clockEntry {
	c.startOnce.Do(c.start)
	if e := c.value.Load(); e != nil {
		return e
	}
	t := c.now().In(c.loc)
	return &clockEntry{t: t, tm: BrokenDown(t)}
}

func (c *clock) start() {
	c.store(c.now())
	var ticker tickerControl
	if c.newTicker != nil {
		ticker = c.newTicker(time.Second)
	}
	if ticker.C == nil {
		close(c.doneCh)
		return
	}
	go c.refresh(ticker)
}

func (c *clock) store(t time.Time) {
	t = t.In(c.loc)
	c.value.Store(&clockEntry{t: t, tm: BrokenDown(t)})
}

func (c *clock) refresh(ticker tickerControl) {
	defer ticker.stop()
	defer close(c.doneCh)
	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			// The tick value is ignored; c.now is authoritative.
			c.store(c.now())
		}
	}
}

func (c *clock) close() {
	c.stopOnce.Do(func() {
		close(c.stopCh)
	})
	// Nothing to wait for when the clock was never started.
	c.startOnce.Do(func() { close(c.doneCh) })
}

func (c *clock) waitStopped(timeout time.Duration) bool {
	select {
	case <-c.doneCh:
		return true
	case <-time.After(timeout):
		return false
	}
}
