package tracking

import (
	"math"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TradeStacksInc/sleek-purchase-order-genius-sub001/internal/timeutil"
	"github.com/TradeStacksInc/sleek-purchase-order-genius-sub001/utils"
)

var (
	lagos   = utils.Coordinate{Lat: 6.5, Lng: 3.4}
	ibadan  = utils.Coordinate{Lat: 7.3775, Lng: 3.947}
	t0      = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	waitFor = 2 * time.Second
)

func TestMain(m *testing.M) {
	SetLogger(nil)
	os.Exit(m.Run())
}

func newTestEngine(t *testing.T) (*Engine, *timeutil.MockClock) {
	t.Helper()
	clock := timeutil.NewMockClock(t0)
	e := NewEngine(Config{Seed: 7, Clock: clock})
	t.Cleanup(e.Close)
	return e, clock
}

func collect(e *Engine) (chan Sample, *Subscription) {
	ch := make(chan Sample, 128)
	sub := e.RegisterUpdateCallback(func(s Sample) { ch <- s })
	return ch, sub
}

func nextSample(t *testing.T, ch <-chan Sample) Sample {
	t.Helper()
	select {
	case s := <-ch:
		return s
	case <-time.After(waitFor):
		t.Fatal("no sample published")
		return Sample{}
	}
}

func expectNoSample(t *testing.T, ch <-chan Sample) {
	t.Helper()
	select {
	case s := <-ch:
		t.Fatalf("unexpected sample %+v", s)
	case <-time.After(50 * time.Millisecond):
	}
}

// step advances the clock one interval and waits for the resulting sample.
func step(t *testing.T, clock *timeutil.MockClock, ch <-chan Sample) Sample {
	t.Helper()
	clock.Advance(DefaultTickInterval)
	return nextSample(t, ch)
}

func TestStartTracking_PublishesInitialSampleSynchronously(t *testing.T) {
	e, _ := newTestEngine(t)
	ch, _ := collect(e)

	rec, err := e.StartTracking("truck-1", lagos, 100, StartOptions{})
	require.NoError(t, err)

	// the sample must already be buffered when StartTracking returns
	select {
	case s := <-ch:
		assert.Equal(t, "truck-1", s.TruckID)
		assert.Equal(t, rec.Position, s.Position)
		assert.Equal(t, StatusTracking, s.Status)
		assert.Equal(t, t0, s.Timestamp)
	default:
		t.Fatal("StartTracking returned before publishing a sample")
	}

	assert.True(t, e.IsTracking("truck-1"))
	assert.Len(t, e.GetPathHistory("truck-1"), 11)
	assert.Equal(t, 1, rec.RouteIndex)
	assert.Equal(t, lagos, e.GetPathHistory("truck-1")[0])
	assert.Equal(t, t0.Add(2*time.Hour), rec.EstimatedArrival)
	assert.InDelta(t, 100, rec.CoveredKM+rec.RemainingKM, 1e-9)
	assert.Greater(t, rec.CoveredKM, 0.0)
	assert.GreaterOrEqual(t, rec.SpeedKMH, DefaultMinSpeedKMH)
	assert.LessOrEqual(t, rec.SpeedKMH, DefaultMaxSpeedKMH)
}

func TestStartTracking_UsesGivenDestination(t *testing.T) {
	e, _ := newTestEngine(t)

	_, err := e.StartTracking("truck-1", lagos, 130, StartOptions{
		Destination:      &ibadan,
		OriginLabel:      "Apapa depot",
		DestinationLabel: "Ibadan station",
	})
	require.NoError(t, err)

	path := e.GetPathHistory("truck-1")
	require.Len(t, path, 11)
	assert.Equal(t, lagos, path[0])
	assert.Equal(t, ibadan, path[len(path)-1])

	rec, ok := e.GetTrackingInfo("truck-1")
	require.True(t, ok)
	assert.Equal(t, "Apapa depot", rec.OriginLabel)
	assert.Equal(t, "Ibadan station", rec.DestinationLabel)
}

func TestTick_WalksRouteUntilArrived(t *testing.T) {
	e, clock := newTestEngine(t)
	ch, _ := collect(e)

	var arrivals []Record
	var mu sync.Mutex
	e.OnArrival(func(r Record) {
		mu.Lock()
		arrivals = append(arrivals, r)
		mu.Unlock()
	})

	_, err := e.StartTracking("truck-1", lagos, 100, StartOptions{DestinationLabel: "Ikeja"})
	require.NoError(t, err)
	first := nextSample(t, ch)
	assert.Contains(t, first.Location, "en route to Ikeja")

	path := e.GetPathHistory("truck-1")
	prev, _ := e.GetTrackingInfo("truck-1")

	for i := 2; i < len(path); i++ {
		s := step(t, clock, ch)
		rec, ok := e.GetTrackingInfo("truck-1")
		require.True(t, ok)

		assert.Equal(t, StatusTracking, s.Status, "tick %d", i)
		assert.Equal(t, path[i], rec.Position, "tick %d", i)
		assert.Equal(t, i, rec.RouteIndex)
		assert.InDelta(t, rec.TotalDistanceKM, rec.CoveredKM+rec.RemainingKM, 1e-9, "tick %d", i)
		assert.GreaterOrEqual(t, rec.CoveredKM, prev.CoveredKM, "tick %d", i)
		assert.InDelta(t, utils.BearingDeg(path[i-1], path[i]), rec.HeadingDeg, 1e-9)
		assert.InDelta(t, utils.DistanceKM(path[i-1], path[i]), prev.RemainingKM-rec.RemainingKM, 1e-9)
		assert.LessOrEqual(t, rec.FuelLevel, prev.FuelLevel)
		prev = rec
	}

	s := step(t, clock, ch)
	assert.Equal(t, StatusArrived, s.Status)
	assert.Equal(t, "Arrived at Ikeja", s.Location)
	assert.Zero(t, s.SpeedKMH)

	rec, _ := e.GetTrackingInfo("truck-1")
	assert.True(t, rec.Arrived())
	assert.Zero(t, rec.RemainingKM)
	assert.Equal(t, 100.0, rec.CoveredKM)
	assert.Equal(t, path[len(path)-1], rec.Position)

	// arrived trucks keep publishing, pinned in place
	for range 3 {
		s := step(t, clock, ch)
		assert.Equal(t, StatusArrived, s.Status)
		assert.Zero(t, s.SpeedKMH)
		assert.Equal(t, rec.Position, s.Position)
	}
	after, _ := e.GetTrackingInfo("truck-1")
	assert.Zero(t, after.RemainingKM)
	assert.Equal(t, rec.HeadingDeg, after.HeadingDeg)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, arrivals, 1)
	assert.Equal(t, "truck-1", arrivals[0].TruckID)
	assert.Equal(t, StatusArrived, arrivals[0].Status)
}

func TestTick_RemainingNeverNegative(t *testing.T) {
	e, clock := newTestEngine(t)
	ch, _ := collect(e)

	// the route is far longer than the nominal distance
	_, err := e.StartTracking("truck-1", lagos, 5, StartOptions{Destination: &ibadan})
	require.NoError(t, err)
	nextSample(t, ch)

	for range 12 {
		step(t, clock, ch)
		rec, _ := e.GetTrackingInfo("truck-1")
		assert.GreaterOrEqual(t, rec.RemainingKM, 0.0)
		assert.InDelta(t, 5, rec.CoveredKM+rec.RemainingKM, 1e-9)
	}
	rec, _ := e.GetTrackingInfo("truck-1")
	assert.True(t, rec.Arrived())
}

func TestStopTracking_RemovesRecordAndSilencesCallbacks(t *testing.T) {
	e, clock := newTestEngine(t)
	ch, _ := collect(e)

	_, err := e.StartTracking("truck-1", lagos, 100, StartOptions{})
	require.NoError(t, err)
	nextSample(t, ch)
	step(t, clock, ch)

	e.StopTracking("truck-1")

	assert.False(t, e.IsTracking("truck-1"))
	_, ok := e.GetTrackingInfo("truck-1")
	assert.False(t, ok)
	assert.Empty(t, e.GetPathHistory("truck-1"))
	assert.NotNil(t, e.GetPathHistory("truck-1"))
	assert.Zero(t, clock.ActiveTickers())

	clock.Advance(DefaultTickInterval)
	expectNoSample(t, ch)

	// unknown ids are a no-op
	e.StopTracking("truck-1")
	e.StopTracking("never-started")
}

func TestStartTracking_RestartReplacesTask(t *testing.T) {
	e, clock := newTestEngine(t)
	ch, _ := collect(e)

	_, err := e.StartTracking("truck-1", lagos, 100, StartOptions{})
	require.NoError(t, err)
	nextSample(t, ch)
	step(t, clock, ch)
	step(t, clock, ch)

	rec, err := e.StartTracking("truck-1", ibadan, 40, StartOptions{})
	require.NoError(t, err)
	nextSample(t, ch)

	assert.Equal(t, 1, clock.ActiveTickers())
	assert.Equal(t, 1, rec.RouteIndex)
	assert.Equal(t, 40.0, rec.TotalDistanceKM)
	assert.Equal(t, ibadan, e.GetPathHistory("truck-1")[0])
	assert.Equal(t, []string{"truck-1"}, e.TrackedIDs())

	// one interval yields exactly one sample
	step(t, clock, ch)
	expectNoSample(t, ch)
}

func TestSubscribeEntity_OnlyReceivesOwnTruck(t *testing.T) {
	e, clock := newTestEngine(t)
	all, _ := collect(e)

	own := make(chan Sample, 64)
	e.SubscribeEntity("truck-2", func(s Sample) { own <- s })

	_, err := e.StartTracking("truck-1", lagos, 100, StartOptions{})
	require.NoError(t, err)
	_, err = e.StartTracking("truck-2", ibadan, 100, StartOptions{})
	require.NoError(t, err)

	s := nextSample(t, own)
	assert.Equal(t, "truck-2", s.TruckID)

	clock.Advance(DefaultTickInterval)
	s = nextSample(t, own)
	assert.Equal(t, "truck-2", s.TruckID)
	expectNoSample(t, own)

	// global subscribers saw both trucks: two initial and two ticked samples
	seen := map[string]int{}
	for range 4 {
		seen[nextSample(t, all).TruckID]++
	}
	assert.Equal(t, map[string]int{"truck-1": 2, "truck-2": 2}, seen)
}

func TestCallbacks_GlobalBeforeEntityInRegistrationOrder(t *testing.T) {
	e, _ := newTestEngine(t)

	var mu sync.Mutex
	var order []string
	record := func(name string) UpdateFunc {
		return func(Sample) {
			mu.Lock()
			order = append(order, name)
			mu.Unlock()
		}
	}
	e.SubscribeEntity("truck-1", record("entity"))
	e.RegisterUpdateCallback(record("global-a"))
	e.RegisterUpdateCallback(record("global-b"))

	_, err := e.StartTracking("truck-1", lagos, 10, StartOptions{})
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"global-a", "global-b", "entity"}, order)
}

func TestSubscription_Unsubscribe(t *testing.T) {
	e, clock := newTestEngine(t)
	ch, sub := collect(e)
	keep, _ := collect(e)

	other := e.RegisterUpdateCallback(func(Sample) {})
	assert.NotEqual(t, sub.ID(), other.ID())

	_, err := e.StartTracking("truck-1", lagos, 100, StartOptions{})
	require.NoError(t, err)
	nextSample(t, ch)
	nextSample(t, keep)

	sub.Unsubscribe()
	sub.Unsubscribe()

	step(t, clock, keep)
	expectNoSample(t, ch)
}

func TestSubscribeEntity_SurvivesRestart(t *testing.T) {
	e, _ := newTestEngine(t)

	own := make(chan Sample, 64)
	sub := e.SubscribeEntity("truck-1", func(s Sample) { own <- s })

	_, err := e.StartTracking("truck-1", lagos, 100, StartOptions{})
	require.NoError(t, err)
	nextSample(t, own)
	e.StopTracking("truck-1")

	_, err = e.StartTracking("truck-1", lagos, 100, StartOptions{})
	require.NoError(t, err)
	nextSample(t, own)

	sub.Unsubscribe()
	e.StopTracking("truck-1")
	_, err = e.StartTracking("truck-1", lagos, 100, StartOptions{})
	require.NoError(t, err)
	expectNoSample(t, own)
}

func TestCallback_MayReadEngine(t *testing.T) {
	e, _ := newTestEngine(t)

	var got Record
	var ok bool
	e.RegisterUpdateCallback(func(s Sample) {
		got, ok = e.GetTrackingInfo(s.TruckID)
	})

	_, err := e.StartTracking("truck-1", lagos, 100, StartOptions{})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "truck-1", got.TruckID)
}

func TestClose_StopsEverything(t *testing.T) {
	e, clock := newTestEngine(t)
	ch, _ := collect(e)

	for _, id := range []string{"truck-1", "truck-2", "truck-3"} {
		_, err := e.StartTracking(id, lagos, 50, StartOptions{})
		require.NoError(t, err)
		nextSample(t, ch)
	}
	assert.Equal(t, 3, clock.ActiveTickers())

	e.Close()
	e.Close()

	assert.Zero(t, clock.ActiveTickers())
	assert.Empty(t, e.TrackedIDs())
	clock.Advance(DefaultTickInterval)
	expectNoSample(t, ch)

	_, err := e.StartTracking("truck-4", lagos, 50, StartOptions{})
	assert.ErrorIs(t, err, ErrEngineClosed)
	assert.False(t, e.IsTracking("truck-4"))
}

func TestSnapshot_SortedCopies(t *testing.T) {
	e, _ := newTestEngine(t)

	for _, id := range []string{"truck-c", "truck-a", "truck-b"} {
		_, err := e.StartTracking(id, lagos, 50, StartOptions{})
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"truck-a", "truck-b", "truck-c"}, e.TrackedIDs())

	snap := e.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, "truck-a", snap[0].TruckID)

	snap[0].RemainingKM = -1
	rec, _ := e.GetTrackingInfo("truck-a")
	assert.NotEqual(t, -1.0, rec.RemainingKM)
}

func TestNewEngine_SeedIsReproducible(t *testing.T) {
	run := func() []utils.Coordinate {
		e := NewEngine(Config{Seed: 99, Clock: timeutil.NewMockClock(t0)})
		defer e.Close()
		_, err := e.StartTracking("truck-1", lagos, 80, StartOptions{})
		require.NoError(t, err)
		return e.GetPathHistory("truck-1")
	}

	if diff := cmp.Diff(run(), run()); diff != "" {
		t.Errorf("seeded routes differ (-first +second):\n%s", diff)
	}
}

func TestStartTracking_ZeroDistanceDegradesQuietly(t *testing.T) {
	e, _ := newTestEngine(t)

	rec, err := e.StartTracking("truck-1", lagos, 0, StartOptions{})
	require.NoError(t, err)
	assert.Zero(t, rec.RemainingKM)
	assert.Zero(t, rec.CoveredKM)
	assert.Equal(t, t0, rec.EstimatedArrival)

	p, ok := e.Progress("truck-1")
	require.True(t, ok)
	assert.Zero(t, p.Percent)
	assert.False(t, math.IsNaN(p.Percent))
}

func TestConfig_WithDefaults(t *testing.T) {
	c := Config{}.withDefaults()
	assert.Equal(t, DefaultTickInterval, c.TickInterval)
	assert.Equal(t, DefaultMinSpeedKMH, c.MinSpeedKMH)
	assert.Equal(t, DefaultMaxSpeedKMH, c.MaxSpeedKMH)
	assert.NotNil(t, c.Clock)

	c = Config{MinSpeedKMH: 70, JitterDeg: -1}.withDefaults()
	assert.Equal(t, 70.0, c.MaxSpeedKMH)
	assert.Zero(t, c.JitterDeg)
}

func TestStartTracking_HugeDistanceKeepsETAInFuture(t *testing.T) {
	e, _ := newTestEngine(t)

	rec, err := e.StartTracking("truck-1", lagos, 1e9, StartOptions{})
	require.NoError(t, err)
	assert.True(t, rec.EstimatedArrival.After(rec.StartedAt), "eta %s before start %s", rec.EstimatedArrival, rec.StartedAt)

	p, ok := e.Progress("truck-1")
	require.True(t, ok)
	assert.True(t, p.ETA.After(e.Now()))
	assert.NotEqual(t, "< 1 min", p.ETAText)
}

func TestHoursToDuration(t *testing.T) {
	tests := []struct {
		in   float64
		want time.Duration
	}{
		{in: 0, want: 0},
		{in: -3, want: 0},
		{in: math.NaN(), want: 0},
		{in: 1.5, want: 90 * time.Minute},
		{in: 1e12, want: time.Duration(math.MaxInt64)},
		{in: math.Inf(1), want: time.Duration(math.MaxInt64)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, hoursToDuration(tt.in), "hours %v", tt.in)
	}
}
