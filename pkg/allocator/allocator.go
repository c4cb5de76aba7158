package allocator

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/voidshard/pipewright/pkg/structs"
)

const (
	defPort          = 9898
	defStartInterval = 10 * time.Second
)

type Options struct {
	// Port boxes serve on
	Port int

	// StartInterval is the minimum time between two start commands issued by
	// this allocator.
	StartInterval time.Duration
}

func (o *Options) SetDefaults() {
	if o.Port <= 0 {
		o.Port = defPort
	}
	if o.StartInterval <= 0 {
		o.StartInterval = defStartInterval
	}
}

// Allocator picks a healthy box for a GPU bound processor, or starts one.
type Allocator struct {
	opts    *Options
	inv     Inventory
	starter Starter
	prober  Prober

	group singleflight.Group

	// lock guards rnd & the per kind start limiters
	lock     sync.Mutex
	rnd      *rand.Rand
	limiters map[string]*rate.Limiter
}

type allocation struct {
	needsStart bool
	box        *structs.Box
}

func New(inv Inventory, starter Starter, prober Prober, opts *Options) *Allocator {
	if opts == nil {
		opts = &Options{}
	}
	opts.SetDefaults()
	return &Allocator{
		opts:     opts,
		inv:      inv,
		starter:  starter,
		prober:   prober,
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
		limiters: map[string]*rate.Limiter{},
	}
}

// Port returns the port boxes serve on
func (a *Allocator) Port() int {
	return a.opts.Port
}

// Allocate returns a box of the given kind to use.
//
//   - (false, box): box is up & serving, use it
//   - (true, box):  box was halted & we've just started it; try again later
//   - (true, nil):  either a box is already starting (try again later) or there are
//     no boxes of this kind at all (if err is nil & the caller retries, the answer
//     will not change unless the inventory does)
//
// Concurrent calls for the same kind share one inventory pass.
func (a *Allocator) Allocate(ctx context.Context, kind string) (bool, *structs.Box, error) {
	v, err, _ := a.group.Do(kind, func() (interface{}, error) {
		return a.allocate(ctx, kind)
	})
	if err != nil {
		return true, nil, err
	}
	alloc := v.(*allocation)
	return alloc.needsStart, alloc.box, nil
}

// Empty reports if the inventory holds no boxes of this kind, letting callers tell
// "starting" from "no capacity" when Allocate returns (true, nil).
func (a *Allocator) Empty(ctx context.Context, kind string) (bool, error) {
	boxes, err := a.inv.Boxes(ctx, kind)
	return len(boxes) == 0, err
}

func (a *Allocator) allocate(ctx context.Context, kind string) (*allocation, error) {
	boxes, err := a.inv.Boxes(ctx, kind)
	if err != nil {
		return nil, err
	}

	active, starting, halted := a.classify(ctx, boxes)
	slog.Debug("classified boxes", "component", "allocator", "kind", kind,
		"active", len(active), "starting", len(starting), "halted", len(halted))

	if len(active) > 0 {
		return &allocation{needsStart: false, box: a.choose(active)}, nil
	}
	if len(starting) > 0 {
		return &allocation{needsStart: true}, nil
	}
	if len(halted) == 0 {
		return &allocation{needsStart: true}, nil
	}
	if !a.limiter(kind).Allow() {
		// we started something very recently; the inventory just hasn't caught up
		return &allocation{needsStart: true}, nil
	}

	box := a.choose(halted)
	err = a.starter.Start(ctx, box)
	if err != nil {
		return nil, err
	}
	err = a.inv.SetBoxStatus(ctx, box.ID, structs.BoxStart)
	if err != nil {
		return nil, err
	}
	box.Status = structs.BoxStart
	slog.Info("started box", "component", "allocator", "kind", kind, "box", box.ID, "zone", box.Zone)
	return &allocation{needsStart: true, box: box}, nil
}

// classify sorts boxes into active, starting & halted. Anything else (eg. STOPPING) is ignored.
func (a *Allocator) classify(ctx context.Context, boxes []*structs.Box) (active, starting, halted []*structs.Box) {
	for _, b := range boxes {
		switch b.Status {
		case structs.BoxRunning:
			if b.IPAddress != "" && a.prober.Reachable(ctx, b.IPAddress) && a.prober.Accepts(ctx, b.IPAddress, a.opts.Port) {
				active = append(active, b)
			} else {
				starting = append(starting, b)
			}
		case structs.BoxStart, structs.BoxProvisioning, structs.BoxStaging:
			starting = append(starting, b)
		case structs.BoxTerminated:
			halted = append(halted, b)
		}
	}
	return
}

// limiter throttles start commands for boxes of one kind
func (a *Allocator) limiter(kind string) *rate.Limiter {
	a.lock.Lock()
	defer a.lock.Unlock()
	l, ok := a.limiters[kind]
	if !ok {
		l = rate.NewLimiter(rate.Every(a.opts.StartInterval), 1)
		a.limiters[kind] = l
	}
	return l
}

func (a *Allocator) choose(in []*structs.Box) *structs.Box {
	a.lock.Lock()
	defer a.lock.Unlock()
	return in[a.rnd.Intn(len(in))]
}
