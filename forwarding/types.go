package forwarding

import "errors"

// Sentinel errors for Forwarding Compiler operations.
var (
	// ErrAlreadyInstalled indicates add_backup raced itself: the
	// (backup_port, backup_key) pair already has a registered bucket.
	ErrAlreadyInstalled = errors.New("forwarding: backup already installed")

	// ErrNoSuchFlow indicates RemoveFlow/RemoveAllFlows referenced a flow
	// key with no installed state.
	ErrNoSuchFlow = errors.New("forwarding: no such flow")

	// ErrNoSuchGroup indicates a bucket lookup referenced a fast-failover
	// group that does not exist.
	ErrNoSuchGroup = errors.New("forwarding: no such group")

	// ErrSwitchAbsent indicates an operation referenced a switch not
	// present in the topology. Per the error-handling design, this is
	// allowed to fail silently at the Switch Driver boundary since
	// switch_leave has already marked the switch's edges dead.
	ErrSwitchAbsent = errors.New("forwarding: switch absent")
)

// Priority levels for installed flows (§4.4.1).
const (
	PriorityLow  = 10 // per-source controller-punt drop flow
	PriorityMed  = 20 // untagged multicast flow
	PriorityHigh = 30 // tagged multicast flow
	// PriorityInPortBump is added when the match also constrains in_port.
	PriorityInPortBump = 1
)

// InPortAlias is the logical output port alias substituted whenever a
// bucket's output port equals the flow's inbound port — the only way a
// switch can reflect traffic back out its arrival port.
const InPortAlias = -1

// Table indices of the three-stage pipeline (§4.4.1).
const (
	TableGroups  = 0 // fast-failover group outputs
	TableDirect  = 1 // direct unprotected switch/host outputs
	TablePopVlan = 2 // pop-VLAN-then-output for tagged host ports
)

// FlowKey is the composite identifier a switch-local flow table entry
// matches on: (group_ip, source_ip, tag, inbound_switch). Tag is 0 for
// untagged (primary) traffic.
type FlowKey struct {
	GroupIP       string
	SourceIP      string
	Tag           int
	InboundSwitch string
}

// ActionKind tags the variants of the abstract action pipeline (§9).
type ActionKind int

const (
	ActOutput ActionKind = iota
	ActOutputGroup
	ActPushVlan
	ActSetVlanVid
	ActPopVlan
)

// Action is one element of an ordered action list.
type Action struct {
	Kind    ActionKind
	Port    int    // ActOutput: output port, or InPortAlias
	GroupID uint32 // ActOutputGroup
	VlanVid uint16 // ActSetVlanVid
}

// Bucket is one entry of a fast-failover group's ordered bucket list.
type Bucket struct {
	// Ports holds one output port normally, or several when coalesced
	// (Case B) into a shared port-list bucket.
	Ports []int
	// Tag is the VLAN tag this bucket's traffic carries; 0 if untagged.
	Tag int
	// Drop marks a bucket that emits no output actions — it exists only
	// to hold index accounting for a cloned group's earlier levels.
	Drop bool
}

// flowState is the installed state for one FlowKey on one switch.
type flowState struct {
	switchDsts map[string]bool // destination node -> true (switch-side)
	hostDsts   map[string]bool // destination node -> true (host-side)
	tableCount int
}

// ffLoc locates a bucket: which group, and its index within that group's
// bucket list.
type ffLoc struct {
	groupID uint32
	index   int
}

// ffKey is the reverse-index key: an outbound port plus the flow key that
// bucket serves.
type ffKey struct {
	port int
	key  FlowKey
}
