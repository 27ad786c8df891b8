package ledboard

import (
	"context"
	"log"
	"time"

	"github.com/theoremus-urban-solutions/gtfsrt-led-board/aggregate"
	"github.com/theoremus-urban-solutions/gtfsrt-led-board/feed"
	"github.com/theoremus-urban-solutions/gtfsrt-led-board/ledframe"
	"github.com/theoremus-urban-solutions/gtfsrt-led-board/stations"
)

// Driver runs the poll loop: fetch all feeds, aggregate vehicle positions,
// resolve colors, encode one frame, transmit. One cycle runs to completion
// before the next begins; the fetch phase is the only parallel part.
type Driver struct {
	index  *stations.Index
	layout map[string]uint16
	cache  *feed.SourceCache
	agg    *aggregate.Aggregator

	strategy feed.Strategy
	fallback feed.Strategy
	fellBack bool

	transport Transport
	sendEmpty bool
	period    time.Duration

	snapshot   *Snapshot
	afterCycle func(CycleStats)
}

// DriverOptions wires a Driver.
type DriverOptions struct {
	Index    *stations.Index
	Layout   map[string]uint16
	Cache    *feed.SourceCache
	Strategy feed.Strategy
	// Fallback is switched to permanently after a systemic failure of the
	// primary strategy. Optional.
	Fallback  feed.Strategy
	Transport Transport
	// SendEmptyFrames transmits an all-off frame on cycles with no occupied
	// stations so the board clears stale pixels.
	SendEmptyFrames bool
	Period          time.Duration
	Snapshot        *Snapshot
	// AfterCycle, when set, runs at the end of every cycle with its stats.
	AfterCycle func(CycleStats)
}

// NewDriver creates a Driver. The snapshot is optional; when nil a private
// one is kept for the preview output.
func NewDriver(opts DriverOptions) *Driver {
	snap := opts.Snapshot
	if snap == nil {
		snap = NewSnapshot()
	}
	return &Driver{
		index:      opts.Index,
		layout:     opts.Layout,
		cache:      opts.Cache,
		agg:        aggregate.New(opts.Index),
		strategy:   opts.Strategy,
		fallback:   opts.Fallback,
		transport:  opts.Transport,
		sendEmpty:  opts.SendEmptyFrames,
		period:     opts.Period,
		snapshot:   snap,
		afterCycle: opts.AfterCycle,
	}
}

// Snapshot returns the driver's status snapshot.
func (d *Driver) Snapshot() *Snapshot { return d.snapshot }

// Run executes poll cycles until the context is cancelled. The period is
// measured start-to-start: the sleep after each cycle is the period minus
// the cycle's own duration, floored at zero.
func (d *Driver) Run(ctx context.Context) error {
	for {
		start := time.Now()
		d.RunCycle(ctx, start)

		elapsed := time.Since(start)
		wait := d.period - elapsed
		if wait < 0 {
			wait = 0
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// RunCycle executes exactly one fetch-aggregate-encode-transmit cycle. No
// error is returned: every failure mode inside a cycle is isolated, logged
// and absorbed so the next cycle always runs.
func (d *Driver) RunCycle(ctx context.Context, now time.Time) CycleStats {
	// FETCHING
	reqs := d.cache.Plan(now)
	var results []feed.Result
	if len(reqs) > 0 {
		results = d.strategy.FetchAll(ctx, reqs)
		if !d.fellBack && d.fallback != nil && feed.AllTransportFailures(results) {
			log.Printf("driver: %s strategy failed for every source, switching to %s for good",
				d.strategy.Name(), d.fallback.Name())
			d.strategy = d.fallback
			d.fellBack = true
			results = d.strategy.FetchAll(ctx, reqs)
		}
		d.cache.Apply(results, now)
	}
	payloads := d.cache.Payloads()

	// AGGREGATING
	res := d.agg.Aggregate(payloads)

	// ENCODING
	entries := BuildEntries(res.Stations, d.layout)
	var frame []byte
	if len(entries) > 0 || d.sendEmpty {
		frame = ledframe.Encode(entries)
	}

	// TRANSMITTING
	transmitted := false
	if frame != nil && d.transport != nil {
		if err := d.transport.Send(frame); err != nil {
			log.Printf("driver: transmit failed: %v", err)
		} else {
			transmitted = true
		}
	}

	elapsed := time.Since(now)
	stats := CycleStats{
		Payloads:    len(payloads),
		Vehicles:    res.Vehicles,
		ParseErrors: res.ParseErrors,
		Unmapped:    res.Unmapped,
		Entries:     len(entries),
		FrameBytes:  len(frame),
		Transmitted: transmitted,
		Strategy:    d.strategy.Name(),
		Elapsed:     elapsed,
		ElapsedMS:   float64(elapsed.Microseconds()) / 1000.0,
	}
	d.snapshot.Update(res, d.index, stats, now)

	if res.ParseErrors > 0 {
		log.Printf("driver: failed to parse %d/%d feed payloads", res.ParseErrors, len(payloads))
	}
	log.Printf("driver: %d payloads, %d vehicles, %d stations lit, %d bytes in %.1f ms",
		len(payloads), res.Vehicles, len(entries), len(frame), stats.ElapsedMS)

	if d.afterCycle != nil {
		d.afterCycle(stats)
	}
	return stats
}
