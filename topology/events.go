package topology

// EventKind classifies a topology change notification (§6).
type EventKind int

const (
	// SwitchEnter announces a new switch joining the network.
	SwitchEnter EventKind = iota
	// SwitchLeave announces a switch departing; all its edges go dead.
	SwitchLeave
	// LinkAdd announces a link coming up (fresh or reviving).
	LinkAdd
	// LinkDelete announces a link going down.
	LinkDelete
	// HostFound announces a newly observed host attachment.
	HostFound
)

// Event is a single Topology Oracle notification. Only the fields relevant
// to Kind are populated; the rest are zero.
type Event struct {
	Kind EventKind

	// Switch carries the node ID for SwitchEnter/SwitchLeave/HostFound.
	Switch string

	// DatapathID carries the switch's datapath ID for SwitchEnter.
	DatapathID uint64

	// From, To, SrcPort, DstPort describe the link for LinkAdd/LinkDelete.
	From    string
	To      string
	SrcPort int
	DstPort int

	// Host and HostMAC describe the attachment for HostFound.
	Host    string
	HostMAC string
}
