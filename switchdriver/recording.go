package switchdriver

import (
	"context"
	"sync"
)

// Command records a single call made against a RecordingDriver, for test
// assertions.
type Command struct {
	Op       string // "add_flow", "modify_flow_strict", "delete_flow_strict", "add_group", "modify_group", "delete_group", "barrier"
	Switch   string
	TableID  int
	Priority int
	Match    FieldPredicate
	Actions  []Action
	GotoNext bool
	GroupID  uint32
	Buckets  []Bucket
}

// RecordingDriver is an in-memory Driver implementation that stores every
// command it receives, for assertions in tests.
type RecordingDriver struct {
	mu  sync.Mutex
	log []Command
}

// NewRecordingDriver returns an empty RecordingDriver.
func NewRecordingDriver() *RecordingDriver {
	return &RecordingDriver{}
}

// Commands returns a copy of every command recorded so far, in call order.
func (d *RecordingDriver) Commands() []Command {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Command, len(d.log))
	copy(out, d.log)
	return out
}

func (d *RecordingDriver) record(c Command) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.log = append(d.log, c)
}

func (d *RecordingDriver) AddFlow(_ context.Context, swtch string, tableID, priority int, match FieldPredicate, actions []Action, gotoNext bool) error {
	d.record(Command{Op: "add_flow", Switch: swtch, TableID: tableID, Priority: priority, Match: match, Actions: actions, GotoNext: gotoNext})
	return nil
}

func (d *RecordingDriver) ModifyFlowStrict(_ context.Context, swtch string, tableID, priority int, match FieldPredicate, actions []Action, gotoNext bool) error {
	d.record(Command{Op: "modify_flow_strict", Switch: swtch, TableID: tableID, Priority: priority, Match: match, Actions: actions, GotoNext: gotoNext})
	return nil
}

func (d *RecordingDriver) DeleteFlowStrict(_ context.Context, swtch string, tableID, priority int, match FieldPredicate) error {
	d.record(Command{Op: "delete_flow_strict", Switch: swtch, TableID: tableID, Priority: priority, Match: match})
	return nil
}

func (d *RecordingDriver) AddGroup(_ context.Context, swtch string, groupID uint32, buckets []Bucket) error {
	d.record(Command{Op: "add_group", Switch: swtch, GroupID: groupID, Buckets: buckets})
	return nil
}

func (d *RecordingDriver) ModifyGroup(_ context.Context, swtch string, groupID uint32, buckets []Bucket) error {
	d.record(Command{Op: "modify_group", Switch: swtch, GroupID: groupID, Buckets: buckets})
	return nil
}

func (d *RecordingDriver) DeleteGroup(_ context.Context, swtch string, groupID uint32) error {
	d.record(Command{Op: "delete_group", Switch: swtch, GroupID: groupID})
	return nil
}

func (d *RecordingDriver) Barrier(_ context.Context, swtch string) error {
	d.record(Command{Op: "barrier", Switch: swtch})
	return nil
}
