package queue

import (
	"math/rand"
	"sync"
	"time"

	"github.com/voidshard/pipewright/pkg/structs"
)

const (
	jitterMin = 100 * time.Millisecond
	jitterMax = 300 * time.Millisecond

	// runIn is capped at 24h, which is longer than anything should be sat in a queue
	maxRunIn = 24 * time.Hour
)

var (
	rndLock sync.Mutex
	rnd     = rand.New(rand.NewSource(time.Now().UnixNano()))
)

func randInt63n(n int64) int64 {
	rndLock.Lock()
	defer rndLock.Unlock()
	return rnd.Int63n(n)
}

// Jitter returns a random delay in [100ms, 300ms)
func Jitter() time.Duration {
	return jitterMin + time.Duration(randInt63n(int64(jitterMax-jitterMin)))
}

// Delay returns how long the task should wait before delivery.
func Delay(t *structs.Task, explicit time.Duration) time.Duration {
	if explicit > 0 {
		return explicit
	}
	if t.Document != nil {
		if v, ok := t.Document.Get(structs.KeyRunIn); ok {
			if secs, ok := structs.AsFloat(v); ok && secs > 0 {
				d := time.Duration(secs * float64(time.Second))
				if d > maxRunIn {
					d = maxRunIn
				}
				return d
			}
		}
	}
	return Jitter()
}

// Backoff is the delay schedule applied between retries of a task.
//
// Attempt n (1 based) waits Base * 2^(n-1), capped at Max, plus up to Jitter.
type Backoff struct {
	Base   time.Duration `yaml:"base" validate:"gte=0"`
	Max    time.Duration `yaml:"max" validate:"gte=0"`
	Jitter time.Duration `yaml:"jitter" validate:"gte=0"`
}

// DefaultBackoff waits 1s, 2s, 4s, 8s, 16s (plus jitter) over the 5 permitted retries
func DefaultBackoff() Backoff {
	return Backoff{Base: time.Second, Max: time.Minute, Jitter: 200 * time.Millisecond}
}

// Delay returns the wait before the given retry attempt
func (b Backoff) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	d := b.Base
	for i := 1; i < attempt && i < 32 && (b.Max <= 0 || d < b.Max); i++ {
		d *= 2
	}
	if b.Max > 0 && d > b.Max {
		d = b.Max
	}
	if b.Jitter > 0 {
		d += time.Duration(randInt63n(int64(b.Jitter)))
	}
	if d <= 0 {
		return Jitter()
	}
	return d
}
