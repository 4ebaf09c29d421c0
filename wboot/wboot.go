// Package wboot decides when a wren node should ask the DHT
// for more peers, and how often to keep asking.
//
// The controller here never touches the network.
// It only answers two questions for the loop that owns it:
// "should a bootstrap query be dispatched right now?" and
// "should the periodic timer be re-armed with a new interval?".
package wboot

import (
	"context"
	"log/slog"
	"time"

	"github.com/benbjohnson/clock"
)

// BootstrapInterval is the starting interval between bootstrap checks.
const BootstrapInterval = 5 * time.Second

// Every connectedPeersStep peers in the routing table,
// the interval between bootstrap queries widens by one BootstrapInterval.
// More peers known means less urgency to find more.
const connectedPeersStep = 50

// If no peer has been added to the routing table within
// lastPeerAddedTimeLimit, growth has stalled and the pacing
// backs off hard to noPeerAddedSlowdownInterval,
// so a network that is not absorbing queries is not flooded with them.
const (
	lastPeerAddedTimeLimit      = 180 * time.Second
	noPeerAddedSlowdownInterval = 300 * time.Second
)

// stoppedInterval is the inert heartbeat recommended once
// the controller has been stopped.
const stoppedInterval = 24 * time.Hour

// Bootstrapper dispatches a single peer-discovery query to the DHT.
// It is the network-facing collaborator the bootstrap loop drives;
// no code in this module performs the query itself.
type Bootstrapper interface {
	// Bootstrap starts one query, returning once it has been dispatched.
	// The returned channel closes when the query finishes,
	// whether it succeeded or failed.
	Bootstrap(ctx context.Context) (<-chan struct{}, error)
}

// RoutingTable exposes the one fact the bootstrap loop needs
// from the node's (external) routing table.
type RoutingTable interface {
	// PeerCount returns the number of peers currently in the table.
	PeerCount() uint32
}

// ContinuousBootstrap tracks the state of the continuous bootstrap process.
//
// It is owned by a single driving loop and is not safe for concurrent use;
// every method assumes serialized access.
type ContinuousBootstrap struct {
	log *slog.Logger
	clk clock.Clock

	// True while a dispatched query is in flight.
	// Set only by Initiated, cleared only by Completed.
	isOngoing bool

	// Latched true once the first peer has ever been observed.
	initialBootstrapDone bool

	// One-way latch disabling all future automatic bootstrapping.
	stopBootstrapping bool

	lastPeerAdded time.Time
}

// New returns a controller using the given clock.
// A nil clock means the real one.
func New(log *slog.Logger, clk clock.Clock) *ContinuousBootstrap {
	if clk == nil {
		clk = clock.New()
	}

	return &ContinuousBootstrap{
		log: log,
		clk: clk,

		lastPeerAdded: clk.Now(),
	}
}

// Initiated records that a bootstrap query was successfully dispatched.
func (cb *ContinuousBootstrap) Initiated() {
	cb.isOngoing = true
}

// Completed records that a previously dispatched query finished,
// successfully or not, allowing the next cycle to dispatch.
func (cb *ContinuousBootstrap) Completed() {
	cb.isOngoing = false
}

// NotifyNewPeer must be called on every routing table insertion.
//
// It returns true exactly once, on the very first call ever:
// the periodic check may have already run before any peer existed,
// so the first peer triggers an immediate bootstrap
// rather than stalling until the next tick.
func (cb *ContinuousBootstrap) NotifyNewPeer() bool {
	cb.lastPeerAdded = cb.clk.Now()

	if cb.initialBootstrapDone {
		return false
	}
	cb.initialBootstrapDone = true
	return true
}

// Stop permanently disables further automatic bootstrapping.
// There is no way to resume.
func (cb *ContinuousBootstrap) Stop() {
	cb.stopBootstrapping = true
}

// Decide is the per-tick control decision.
//
// It reports whether the owning loop should dispatch one bootstrap
// query now, and optionally recommends a new timer interval;
// a zero recommendation means "keep the current interval".
//
// Decide performs no I/O and never blocks.
// The owning loop is responsible for re-arming its timer
// and for bracketing any dispatch with Initiated and Completed.
func (cb *ContinuousBootstrap) Decide(
	peersInRT uint32, currentInterval time.Duration,
) (shouldBootstrap bool, newInterval time.Duration) {
	if cb.stopBootstrapping {
		cb.log.Info(
			"Bootstrapping has been stopped; recommending inert heartbeat interval",
		)
		return false, stoppedInterval
	}

	// A query needs at least one known peer to be worth dispatching,
	// and two queries never overlap.
	shouldBootstrap = !cb.isOngoing && peersInRT >= 1

	// If no peer has joined the table in a while, growth has stalled:
	// back off hard, skipping the step-based pacing below.
	// An empty table doesn't count as stalled growth.
	if cb.clk.Since(cb.lastPeerAdded) > lastPeerAddedTimeLimit && peersInRT != 0 {
		cb.log.Info(
			"No peer added to the routing table recently; slowing down continuous bootstrap",
			"limit", lastPeerAddedTimeLimit,
		)
		return shouldBootstrap, noPeerAddedSlowdownInterval
	}

	// Otherwise pace by table size.
	// Through this branch the interval only ever widens.
	step := peersInRT / connectedPeersStep
	step = max(1, step)

	candidate := BootstrapInterval * time.Duration(step)
	if candidate > currentInterval {
		cb.log.Info(
			"Routing table has grown; slowing down continuous bootstrap",
			"new_interval", candidate,
		)
		return shouldBootstrap, candidate
	}

	return shouldBootstrap, 0
}
