package draft

import (
	"math/rand"
	"sync"
	"time"
)

// CoinFlipper is the coin-flip randomness source. Inject a fixed one in
// tests to force either outcome.
type CoinFlipper interface {
	Flip() bool
}

// Delayer schedules the pacing callbacks (coin reveal animation). The
// production implementation fires on a timer goroutine; tests inject a
// synchronous one.
type Delayer interface {
	After(d time.Duration, fn func())
}

type randFlipper struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func newRandFlipper() *randFlipper {
	return &randFlipper{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (f *randFlipper) Flip() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rnd.Intn(2) == 0
}

type timerDelayer struct{}

func (timerDelayer) After(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}
