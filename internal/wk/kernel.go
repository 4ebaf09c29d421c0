// Package wk contains the wren kernel:
// the single goroutine that owns the continuous bootstrap state
// and the periodic timer that paces it.
package wk

import (
	"context"
	"log/slog"

	"github.com/benbjohnson/clock"
	"github.com/wrennet/wren/wboot"
)

// Kernel owns the bootstrap controller and its timer.
//
// All controller state is confined to the kernel's main loop;
// other goroutines only communicate with it over channels.
type Kernel struct {
	log *slog.Logger

	clk clock.Clock

	boot *wboot.ContinuousBootstrap

	bootstrapper wboot.Bootstrapper
	rt           wboot.RoutingTable

	// NewPeers receives one signal per routing table insertion.
	NewPeers chan struct{}

	done chan struct{}
}

// KernelConfig is the configuration for a [Kernel].
// The node validates it before construction,
// so fields here are assumed non-nil.
type KernelConfig struct {
	Clock clock.Clock

	Bootstrapper wboot.Bootstrapper
	RoutingTable wboot.RoutingTable
}

// NewKernel starts a kernel whose lifecycle is bound to ctx.
func NewKernel(ctx context.Context, log *slog.Logger, cfg KernelConfig) *Kernel {
	k := &Kernel{
		log: log,

		clk: cfg.Clock,

		boot: wboot.New(log.With("kernel_sys", "bootstrap"), cfg.Clock),

		bootstrapper: cfg.Bootstrapper,
		rt:           cfg.RoutingTable,

		NewPeers: make(chan struct{}),

		done: make(chan struct{}),
	}

	go k.mainLoop(ctx)

	return k
}

// Wait blocks until the kernel's main loop has returned.
func (k *Kernel) Wait() {
	<-k.done
}

func (k *Kernel) mainLoop(ctx context.Context) {
	defer close(k.done)

	interval := wboot.BootstrapInterval
	ticker := k.clk.Ticker(interval)
	defer ticker.Stop()

	// Non-nil only while a dispatched query is in flight.
	// A nil channel never receives, so the select arm is inert
	// whenever there is nothing outstanding.
	var inflight <-chan struct{}

	for {
		select {
		case <-ctx.Done():
			k.log.Info("Stopping due to context cancellation", "cause", context.Cause(ctx))
			k.boot.Stop()
			return

		case <-k.NewPeers:
			if k.boot.NotifyNewPeer() && inflight == nil {
				// Very first peer observed: bootstrap immediately,
				// rather than waiting out the current tick.
				inflight = k.dispatchBootstrap(ctx)
			}

		case <-inflight:
			inflight = nil
			k.boot.Completed()

		case <-ticker.C:
			shouldBootstrap, newInterval := k.boot.Decide(k.rt.PeerCount(), interval)

			if newInterval != 0 && newInterval != interval {
				k.log.Debug(
					"Re-arming bootstrap timer",
					"old_interval", interval,
					"new_interval", newInterval,
				)
				interval = newInterval
				ticker.Reset(interval)
			}

			if shouldBootstrap {
				inflight = k.dispatchBootstrap(ctx)
			}
		}
	}
}

// dispatchBootstrap issues exactly one bootstrap query.
// On dispatch failure it returns nil without retrying;
// the next scheduled tick is the retry.
func (k *Kernel) dispatchBootstrap(ctx context.Context) <-chan struct{} {
	done, err := k.bootstrapper.Bootstrap(ctx)
	if err != nil {
		k.log.Warn(
			"Failed to dispatch bootstrap query; retrying on a later tick",
			"err", err,
		)
		return nil
	}

	k.boot.Initiated()
	return done
}
