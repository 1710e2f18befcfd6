package tracking

import (
	"slices"
	"sync"

	"github.com/google/uuid"
)

type listener[F any] struct {
	id string
	fn F
}

// listenerList is copy-on-write: snapshot hands the current slice to a tick
// without copying, and add/remove always build a new backing array.
type listenerList[F any] []listener[F]

func (l listenerList[F]) add(id string, fn F) listenerList[F] {
	return append(slices.Clip(l), listener[F]{id: id, fn: fn})
}

func (l listenerList[F]) remove(id string) listenerList[F] {
	i := slices.IndexFunc(l, func(x listener[F]) bool { return x.id == id })
	if i < 0 {
		return l
	}
	return slices.Delete(slices.Clone(l), i, i+1)
}

func (l listenerList[F]) snapshot() []F {
	out := make([]F, len(l))
	for i, x := range l {
		out[i] = x.fn
	}
	return out
}

// Subscription is the handle returned by every registration method.
type Subscription struct {
	id     string
	once   sync.Once
	cancel func()
}

// ID returns the unique id of the subscription.
func (s *Subscription) ID() string { return s.id }

// Unsubscribe removes the callback. It is safe to call more than once and from
// inside the callback itself; a tick already in flight may still deliver one
// last sample.
func (s *Subscription) Unsubscribe() {
	s.once.Do(s.cancel)
}

// RegisterUpdateCallback subscribes fn to the samples of every truck. Callbacks
// run synchronously on the ticking goroutine in registration order and must not
// call StartTracking, StopTracking or Close.
func (e *Engine) RegisterUpdateCallback(fn UpdateFunc) *Subscription {
	id := uuid.NewString()
	e.mu.Lock()
	e.updates = e.updates.add(id, fn)
	e.mu.Unlock()

	return &Subscription{id: id, cancel: func() {
		e.mu.Lock()
		e.updates = e.updates.remove(id)
		e.mu.Unlock()
	}}
}

// SubscribeEntity subscribes fn to the samples of truckID only. The
// subscription outlives stop/start cycles of that truck.
func (e *Engine) SubscribeEntity(truckID string, fn UpdateFunc) *Subscription {
	id := uuid.NewString()
	e.mu.Lock()
	e.perTruck[truckID] = e.perTruck[truckID].add(id, fn)
	e.mu.Unlock()

	return &Subscription{id: id, cancel: func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		l := e.perTruck[truckID].remove(id)
		if len(l) == 0 {
			delete(e.perTruck, truckID)
			return
		}
		e.perTruck[truckID] = l
	}}
}

// OnArrival subscribes fn to arrivals. It is called once per tracking run,
// after the sample of the arriving tick has been published.
func (e *Engine) OnArrival(fn ArrivalFunc) *Subscription {
	id := uuid.NewString()
	e.mu.Lock()
	e.arrivals = e.arrivals.add(id, fn)
	e.mu.Unlock()

	return &Subscription{id: id, cancel: func() {
		e.mu.Lock()
		e.arrivals = e.arrivals.remove(id)
		e.mu.Unlock()
	}}
}
