package wren

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/benbjohnson/clock"
	"github.com/wrennet/wren/internal/wk"
	"github.com/wrennet/wren/wboot"
	"github.com/wrennet/wren/wrec"
	"github.com/wrennet/wren/wspend"
)

// SpendSink receives spends that passed admission.
//
// Implementations must keep every distinct spend offered for a key:
// more than one distinct spend for the same unique pubkey
// is double-spend evidence, not a storage error.
// Add reports whether the key now shows that evidence.
//
// Implementations are called from concurrent record admissions
// and must be safe for concurrent use.
type SpendSink interface {
	Add(ss wspend.SignedSpend) (doubleSpend bool, err error)
}

// RecordSink receives non-spend records that passed admission.
type RecordSink interface {
	Put(key, value []byte, kind wrec.Kind) error
}

// Node is the admission and membership-maintenance engine of a wren node.
//
// It owns no sockets. The routing table and query dispatch are injected
// collaborators; the node decides, the collaborators act.
type Node struct {
	log *slog.Logger

	k *wk.Kernel

	spends  SpendSink
	records RecordSink
}

// NodeConfig is the configuration for a [Node].
type NodeConfig struct {
	// Dispatches bootstrap queries to the DHT.
	Bootstrapper wboot.Bootstrapper

	// The node's view of the DHT routing table.
	RoutingTable wboot.RoutingTable

	// Receives admitted spends. See [SpendSink] for the
	// plurality requirement implementations must honor.
	Spends SpendSink

	// Receives admitted non-spend records.
	// May be nil, in which case callers of [Node.AdmitRecord]
	// are expected to act on the returned verdict themselves.
	Records RecordSink

	// The clock driving bootstrap pacing.
	// Nil means the real clock; tests inject a mock.
	Clock clock.Clock
}

// validate panics if there are any illegal settings in the configuration.
func (c NodeConfig) validate() {
	// If there are multiple reasons we could panic,
	// collect them all in one go
	// so we can give a maximally helpful error.
	var panicErrs error

	if c.Bootstrapper == nil {
		panicErrs = errors.Join(
			panicErrs,
			errors.New("NodeConfig.Bootstrapper may not be nil"),
		)
	}

	if c.RoutingTable == nil {
		panicErrs = errors.Join(
			panicErrs,
			errors.New("NodeConfig.RoutingTable may not be nil"),
		)
	}

	if c.Spends == nil {
		panicErrs = errors.Join(
			panicErrs,
			errors.New("NodeConfig.Spends may not be nil"),
		)
	}

	if panicErrs != nil {
		panic(panicErrs)
	}
}

// NewNode returns a new Node with the given configuration.
// The ctx parameter controls the lifecycle of the Node;
// cancel the context to stop it, which permanently disables
// automatic bootstrapping, and then use [Node.Wait] to block
// until background work has completed.
//
// Configuration errors cause a panic.
func NewNode(ctx context.Context, log *slog.Logger, cfg NodeConfig) *Node {
	cfg.validate()

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	k := wk.NewKernel(ctx, log.With("node_sys", "kernel"), wk.KernelConfig{
		Clock: clk,

		Bootstrapper: cfg.Bootstrapper,
		RoutingTable: cfg.RoutingTable,
	})

	return &Node{
		log: log,

		k: k,

		spends:  cfg.Spends,
		records: cfg.Records,
	}
}

// Wait blocks until the node has finished all background work.
func (n *Node) Wait() {
	n.k.Wait()
}

// NotifyNewPeer must be called every time the routing table gains a peer.
// The very first peer ever observed triggers an immediate bootstrap query;
// later peers only feed the pacing logic.
func (n *Node) NotifyNewPeer(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf(
			"context canceled while notifying kernel of new peer: %w",
			context.Cause(ctx),
		)
	case n.k.NewPeers <- struct{}{}:
		return nil
	}
}

// AdmitRecord decides whether the raw stored value for key
// may enter the node's storage layer.
//
// A nil return means the record was admitted and handed to the
// configured sinks. A non-nil return carries one of the typed
// errors from [wrec] or [wspend]; the record is inadmissible
// and retrying cannot succeed.
//
// AdmitRecord is pure apart from the sink hand-off and safe to call
// from many goroutines at once, one per inbound record.
// It never blocks on the kernel.
func (n *Node) AdmitRecord(key, value []byte) error {
	header, err := wrec.HeaderFromRecord(value)
	if err != nil {
		return fmt.Errorf("inadmissible record %s: %w", wrec.PrettyKey(key), err)
	}

	if header.Kind != wrec.KindSpend {
		if n.records != nil {
			if err := n.records.Put(key, value, header.Kind); err != nil {
				return fmt.Errorf(
					"record sink refused %v record %s: %w",
					header.Kind, wrec.PrettyKey(key), err,
				)
			}
		}
		return nil
	}

	return n.admitSpendRecord(key, value)
}

// admitSpendRecord validates and stores the spends within a spend record.
//
// The stored payload is a list of signed spends, not a single one:
// a record holding two distinct valid spends for one key is exactly
// how double-spend evidence travels the network.
func (n *Node) admitSpendRecord(key, value []byte) error {
	var spends []wspend.SignedSpend
	if err := wrec.UnmarshalRecord(value, &spends); err != nil {
		return fmt.Errorf("inadmissible spend record %s: %w", wrec.PrettyKey(key), err)
	}

	if len(spends) == 0 {
		return fmt.Errorf(
			"inadmissible spend record %s: %w", wrec.PrettyKey(key), ErrEmptySpendRecord,
		)
	}

	// Every spend in the record must be internally valid on its own.
	// Each is checked against the transaction it claims to be spent in;
	// rebinding protection against other transactions is the concern
	// of whoever resolves transactions, not of record admission.
	for _, ss := range spends {
		if err := ss.Verify(ss.SpentTxHash()); err != nil {
			return fmt.Errorf("inadmissible spend record %s: %w", wrec.PrettyKey(key), err)
		}
	}

	for _, ss := range spends {
		doubleSpend, err := n.spends.Add(ss)
		if err != nil {
			return fmt.Errorf(
				"spend sink refused spend record %s: %w", wrec.PrettyKey(key), err,
			)
		}
		if doubleSpend {
			// Still admitted: the evidence must be preserved, not dropped.
			n.log.Warn(
				"Admitted spend with double-spend evidence",
				"record_key", wrec.PrettyKey(key),
				"unique_pubkey", ss.UniquePubkey().Hex(),
			)
		}
	}

	return nil
}
