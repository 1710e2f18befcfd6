package tracking

import (
	"errors"
	"maps"
	"math"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/TradeStacksInc/sleek-purchase-order-genius-sub001/internal/timeutil"
	"github.com/TradeStacksInc/sleek-purchase-order-genius-sub001/route"
	"github.com/TradeStacksInc/sleek-purchase-order-genius-sub001/utils"
)

// ErrEngineClosed is returned by StartTracking after Close.
var ErrEngineClosed = errors.New("tracking engine closed")

// Engine owns every tracking record, the task that advances it, and the
// subscriber lists samples are published to.
type Engine struct {
	cfg   Config
	clock timeutil.Clock

	// lifecycle serializes Start/Stop/Close so that cancelling a task and
	// waiting for it never races another lifecycle change for the same truck.
	lifecycle sync.Mutex
	closed    bool

	mu       sync.RWMutex
	records  map[string]*Record
	tasks    map[string]*task
	updates  listenerList[UpdateFunc]
	perTruck map[string]listenerList[UpdateFunc]
	arrivals listenerList[ArrivalFunc]

	rngMu sync.Mutex
	rng   *rand.Rand
}

// task is the scheduled ticker of one truck.
type task struct {
	ticker timeutil.Ticker
	stop   chan struct{}
	done   chan struct{}
	once   sync.Once
}

func newTask(t timeutil.Ticker) *task {
	return &task{ticker: t, stop: make(chan struct{}), done: make(chan struct{})}
}

func (t *task) cancel() {
	t.once.Do(func() {
		t.ticker.Stop()
		close(t.stop)
	})
}

func (t *task) cancelled() bool {
	select {
	case <-t.stop:
		return true
	default:
		return false
	}
}

// NewEngine creates an engine with cfg; zero fields take their defaults.
func NewEngine(cfg Config) *Engine {
	cfg = cfg.withDefaults()
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(cfg.Clock.Now().UnixNano())
	}
	return &Engine{
		cfg:      cfg,
		clock:    cfg.Clock,
		records:  map[string]*Record{},
		tasks:    map[string]*task{},
		perTruck: map[string]listenerList[UpdateFunc]{},
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Config returns the effective configuration.
func (e *Engine) Config() Config { return e.cfg }

// Now returns the time of the engine's clock.
func (e *Engine) Now() time.Time { return e.clock.Now() }

// StartTracking begins simulating truck id from origin. An existing run for the
// same id is cancelled first. One tick runs before StartTracking returns, so
// subscribers see an initial sample immediately; the returned record reflects it.
func (e *Engine) StartTracking(id string, origin utils.Coordinate, totalDistanceKM float64, opts StartOptions) (Record, error) {
	e.lifecycle.Lock()
	defer e.lifecycle.Unlock()

	if e.closed {
		Logf("[tracking] start %s ignored: engine closed", id)
		return Record{}, ErrEngineClosed
	}
	if e.cancelTask(id) {
		Logf("[tracking] restarting %s", id)
	}

	var dest utils.Coordinate
	if opts.Destination != nil {
		dest = *opts.Destination
	} else {
		dest = e.randomDestination(origin)
	}
	r := e.generateRoute(origin, dest)

	now := e.clock.Now()
	rec := &Record{
		TruckID:          id,
		Position:         origin,
		SpeedKMH:         e.randomSpeed(),
		HeadingDeg:       e.randomFloat() * 360,
		LastUpdate:       now,
		StartedAt:        now,
		EstimatedArrival: now.Add(hoursToDuration(totalDistanceKM / e.cfg.AverageSpeedKMH)),
		TotalDistanceKM:  totalDistanceKM,
		RemainingKM:      totalDistanceKM,
		OriginLabel:      opts.OriginLabel,
		DestinationLabel: opts.DestinationLabel,
		Status:           StatusTracking,
		Route:            r,
		startFuel:        60 + e.randomFloat()*40,
	}
	rec.FuelLevel = fuelLevel(rec)

	e.mu.Lock()
	e.records[id] = rec
	e.mu.Unlock()

	// The ticker exists before the first tick so the first interval is measured
	// from the start, and the goroutine starts only after the synchronous tick so
	// the two can never overlap.
	t := newTask(e.clock.NewTicker(e.cfg.TickInterval))
	e.tick(id, t)

	e.mu.Lock()
	e.tasks[id] = t
	out := *e.records[id]
	e.mu.Unlock()

	go e.run(id, t)

	Logf("[tracking] started %s: %d route points, %.1f km", id, r.Len(), totalDistanceKM)
	return out, nil
}

// StopTracking cancels the task for id, waits for it to exit and deletes the
// record. No callback for id runs after StopTracking returns. Unknown ids are a
// no-op.
func (e *Engine) StopTracking(id string) {
	e.lifecycle.Lock()
	defer e.lifecycle.Unlock()

	stopped := e.cancelTask(id)

	e.mu.Lock()
	_, had := e.records[id]
	delete(e.records, id)
	e.mu.Unlock()

	if stopped || had {
		Logf("[tracking] stopped %s", id)
	}
}

// Close stops every task and drops every record. Further StartTracking calls
// return ErrEngineClosed. Close is idempotent.
func (e *Engine) Close() {
	e.lifecycle.Lock()
	defer e.lifecycle.Unlock()

	if e.closed {
		return
	}
	e.closed = true

	e.mu.Lock()
	tasks := e.tasks
	e.tasks = map[string]*task{}
	e.mu.Unlock()

	for _, t := range tasks {
		t.cancel()
	}
	for _, t := range tasks {
		<-t.done
	}

	e.mu.Lock()
	n := len(e.records)
	e.records = map[string]*Record{}
	e.mu.Unlock()

	Logf("[tracking] engine closed, dropped %d records", n)
}

// cancelTask removes the task for id and waits for its goroutine to exit.
// Callers must hold e.lifecycle and must not hold e.mu.
func (e *Engine) cancelTask(id string) bool {
	e.mu.Lock()
	t, ok := e.tasks[id]
	delete(e.tasks, id)
	e.mu.Unlock()

	if !ok {
		return false
	}
	t.cancel()
	<-t.done
	return true
}

func (e *Engine) run(id string, t *task) {
	defer close(t.done)
	for {
		select {
		case <-t.stop:
			return
		case <-t.ticker.C():
			e.tick(id, t)
		}
	}
}

// IsTracking reports whether id has a live record.
func (e *Engine) IsTracking(id string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.records[id]
	return ok
}

// GetTrackingInfo returns a copy of the record for id.
func (e *Engine) GetTrackingInfo(id string) (Record, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	rec, ok := e.records[id]
	if !ok {
		return Record{}, false
	}
	return *rec, true
}

// GetPathHistory returns the route owned by id's record, or an empty slice.
func (e *Engine) GetPathHistory(id string) []utils.Coordinate {
	e.mu.RLock()
	defer e.mu.RUnlock()
	rec, ok := e.records[id]
	if !ok {
		return []utils.Coordinate{}
	}
	return rec.Route.Points()
}

// TrackedIDs returns the ids of all tracked trucks in lexical order.
func (e *Engine) TrackedIDs() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return slices.Sorted(maps.Keys(e.records))
}

// Snapshot returns a copy of every record ordered by truck id.
func (e *Engine) Snapshot() []Record {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]Record, 0, len(e.records))
	for _, id := range slices.Sorted(maps.Keys(e.records)) {
		out = append(out, *e.records[id])
	}
	return out
}

func (e *Engine) randomFloat() float64 {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	return e.rng.Float64()
}

func (e *Engine) randomSpeed() float64 {
	return e.cfg.MinSpeedKMH + e.randomFloat()*(e.cfg.MaxSpeedKMH-e.cfg.MinSpeedKMH)
}

func (e *Engine) randomDestination(origin utils.Coordinate) utils.Coordinate {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	return route.RandomDestination(origin, e.rng)
}

func (e *Engine) generateRoute(origin, dest utils.Coordinate) route.Route {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	return route.Generate(origin, dest, e.cfg.PointCount, e.cfg.JitterDeg, e.rng)
}

// maxHours is the longest span a time.Duration can hold.
const maxHours = float64(math.MaxInt64) / float64(time.Hour)

// hoursToDuration converts h, saturating at the largest Duration. NaN and
// non-positive inputs give zero.
func hoursToDuration(h float64) time.Duration {
	if !(h > 0) {
		return 0
	}
	if h >= maxHours {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(h * float64(time.Hour))
}
