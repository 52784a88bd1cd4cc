package tree

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/mcastlab/resilmcast/forwarding"
	"github.com/mcastlab/resilmcast/pathjoin"
	"github.com/mcastlab/resilmcast/topology"
)

// workItem is one entry of the join algorithm's work queue (§4.3.1 step 3).
type workItem struct {
	path   []string
	handle Handle
	down   pathjoin.EdgeSet
}

// TreeBuilder is the Per-Link Protector: it orchestrates AddSubscriber and
// RemoveSubscriber against a Registry, a Path Strategy, and a Forwarding
// Compiler, recursively constructing backup trees up to depth F.
type TreeBuilder struct {
	registry *Registry
	net      *topology.Graph
	strategy pathjoin.Strategy
	compiler *forwarding.Compiler
	f        int
	log      logrus.FieldLogger
}

// NewTreeBuilder returns a TreeBuilder protecting against f simultaneous
// link failures per primary edge.
func NewTreeBuilder(registry *Registry, net *topology.Graph, strategy pathjoin.Strategy, compiler *forwarding.Compiler, f int, log logrus.FieldLogger) *TreeBuilder {
	return &TreeBuilder{registry: registry, net: net, strategy: strategy, compiler: compiler, f: f, log: log}
}

func flowKeyOf(t *Tree, group, source string) forwarding.FlowKey {
	return forwarding.FlowKey{GroupIP: group, SourceIP: source, Tag: t.Tag(), InboundSwitch: t.PredecessorSwitch()}
}

// installPath walks path from tail to head, adding any edge not already in
// the target tree and installing the corresponding flow, stopping as soon
// as it reaches an edge already present (the tree invariant guarantees
// everything further toward the root is already installed too).
func (tb *TreeBuilder) installPath(ctx context.Context, handle Handle, path []string, group, source string) error {
	t, err := tb.registry.Get(handle)
	if err != nil {
		return err
	}
	key := flowKeyOf(t, group, source)
	for i := len(path) - 1; i > 0; i-- {
		prev, cur := path[i-1], path[i]
		if t.HasEdge(prev, cur) {
			break
		}
		t.addEdge(prev, cur)
		if err := tb.compiler.AddFlow(ctx, prev, key, []string{cur}, false); err != nil {
			return err
		}
	}
	return nil
}

// AddSubscriber implements the join algorithm (§4.3.1). Idempotent: already
// present subscribers are a logged no-op.
func (tb *TreeBuilder) AddSubscriber(ctx context.Context, group, source, subscriber string) error {
	handle, ok := tb.registry.Lookup(group, source)
	if !ok {
		tb.log.WithFields(logrus.Fields{"group_ip": group, "source_ip": source}).Warn("add_subscriber: unknown group")
		return ErrUnknownGroup
	}

	primary, err := tb.registry.Get(handle)
	if err != nil {
		return err
	}
	if primary.HasNode(subscriber) {
		tb.log.WithFields(logrus.Fields{"group_ip": group, "source_ip": source, "subscriber": subscriber}).Warn("add_subscriber: duplicate")
		return ErrDuplicateRequest
	}

	path := tb.strategy.Join(tb.net, pathjoin.NewEdgeSet(), primary, subscriber)
	if len(path) == 0 {
		tb.log.WithFields(logrus.Fields{"group_ip": group, "source_ip": source, "subscriber": subscriber}).Warn("add_subscriber: no path")
		return ErrNoPath
	}

	if err := tb.installPath(ctx, handle, path, group, source); err != nil {
		return err
	}

	queue := []workItem{{path: path, handle: handle, down: pathjoin.NewEdgeSet()}}
	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		currentTree, err := tb.registry.Get(item.handle)
		if err != nil {
			return err
		}

		for i := 1; i < len(item.path); i++ {
			x, y := item.path[i-1], item.path[i]

			var predecessor string
			if i >= 2 {
				predecessor = item.path[i-2]
			} else {
				predecessor = currentTree.PredecessorSwitch()
			}

			backupHandle := currentTree.Backup(x, y)
			allocated := false
			if backupHandle == 0 {
				h, err := tb.registry.NewBackup(item.handle, x, predecessor)
				if err != nil {
					return err
				}
				backupHandle = h
				currentTree.SetBackup(x, y, backupHandle)
				allocated = true
			}

			down := item.down.WithUndirected(x, y)
			backup, err := tb.registry.Get(backupHandle)
			if err != nil {
				return err
			}

			bPath := tb.strategy.Join(tb.net, down, backup, subscriber)
			if len(bPath) > 0 {
				notDone := down.Len()/2 < tb.f
				next := bPath[1]

				if !backup.HasEdge(x, next) {
					originKey := flowKeyOf(currentTree, group, source)
					if err := tb.compiler.AddBackup(ctx, x, originKey, y, next, backup.Tag(), notDone); err != nil &&
						err != forwarding.ErrAlreadyInstalled {
						return err
					}
					backup.addEdge(x, next)
				}

				if err := tb.installPath(ctx, backupHandle, bPath, group, source); err != nil {
					return err
				}

				if notDone {
					queue = append(queue, workItem{path: bPath, handle: backupHandle, down: down})
				}
			} else if allocated {
				currentTree.SetBackup(x, y, 0)
				_ = tb.registry.UndoBackup(backupHandle)
			}
		}
	}

	return nil
}

// RemoveSubscriber implements the leave algorithm (§4.3.2): prune the
// forward-only chain up to the first shared branch, recurse the same
// removal into any backup trees encountered along the way, then garbage
// collect emptied nodes.
func (tb *TreeBuilder) RemoveSubscriber(ctx context.Context, group, source, subscriber string) error {
	handle, ok := tb.registry.Lookup(group, source)
	if !ok {
		return ErrUnknownGroup
	}
	return tb.leave(ctx, handle, group, source, subscriber)
}

func (tb *TreeBuilder) leave(ctx context.Context, handle Handle, group, source, subscriber string) error {
	t, err := tb.registry.Get(handle)
	if err != nil {
		return err
	}
	if subscriber == t.Root() || !t.HasNode(subscriber) {
		return nil
	}

	key := flowKeyOf(t, group, source)

	// Phase 1: prune the forward-only chain.
	cur := subscriber
	for cur != t.Root() {
		if t.OutDegree(cur) > 1 {
			break
		}
		pred, _ := t.predecessorOf(cur)

		if pred == t.Root() && !t.IsPrimary() {
			parent, err := tb.registry.Get(t.Parent())
			if err != nil {
				return err
			}
			origin := flowKeyOf(parent, group, source)
			if err := tb.compiler.RemoveBackup(ctx, pred, origin, cur, t.Tag()); err != nil &&
				err != forwarding.ErrNoSuchGroup {
				return err
			}
		} else {
			if err := tb.compiler.RemoveFlow(ctx, pred, key, []string{cur}); err != nil &&
				err != forwarding.ErrNoSuchFlow {
				return err
			}
		}
		cur = pred
	}

	// Phase 2: recurse into backups along the full path to root.
	cur = subscriber
	for cur != t.Root() {
		pred, _ := t.predecessorOf(cur)
		if b := t.Backup(pred, cur); b != 0 {
			if err := tb.leave(ctx, b, group, source, subscriber); err != nil {
				return err
			}
		}
		cur = pred
	}

	// Phase 3: garbage-collect zero-out-degree nodes walking up from v. The
	// root is never removed here; an emptied primary tree is a caller-level
	// group-teardown decision.
	cur = subscriber
	for cur != t.Root() {
		pred, _ := t.predecessorOf(cur)
		if t.OutDegree(cur) == 0 {
			t.removeEdge(pred, cur)
			t.removeNode(cur)
		}
		cur = pred
	}

	return nil
}

// Repair is an explicit no-op (§4.3.3, §9): the switch's local fast-failover
// bucket selection handles immediate recovery, and higher-level
// recomputation is deliberately deferred to future implementers.
func (tb *TreeBuilder) Repair(brokenLinks [][2]string) {
	tb.log.WithField("broken_links", len(brokenLinks)).Warn("repair: no-op, deferring to local fast-failover")
}
