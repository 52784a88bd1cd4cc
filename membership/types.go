package membership

// Mode distinguishes the two IGMPv3 change-record kinds this system reacts
// to (§6); filter-mode or other record types are out of scope.
type Mode int

const (
	// ModeInclude is CHANGE_TO_INCLUDE_MODE: Sources lists the sources the
	// subscriber now wants to include.
	ModeInclude Mode = iota
	// ModeExclude is CHANGE_TO_EXCLUDE_MODE: Sources lists the sources the
	// subscriber now wants to exclude.
	ModeExclude
)

// ChangeEvent is one already-decoded IGMPv3 membership record: a
// subscriber's change of interest in the sources of one group.
type ChangeEvent struct {
	// Subscriber is the reporting host's MAC address.
	Subscriber string
	// GroupIP is the multicast group this record concerns.
	GroupIP string
	// SourceIP is the reporting host's own source address, excluded from
	// Resolve's expansion (a host is never its own subscriber).
	SourceIP string
	// Mode selects how Sources is interpreted.
	Mode Mode
	// Sources is the record's address list (srcs_included or
	// srcs_excluded, depending on Mode).
	Sources []string
}

// ActionKind distinguishes the two Tree Builder calls Resolve can produce.
type ActionKind int

const (
	ActionAdd ActionKind = iota
	ActionRemove
)

// Action is one Resolve result: a single add_subscriber/remove_subscriber
// call the Controller should issue against the Tree Builder.
type Action struct {
	Kind       ActionKind
	GroupIP    string
	SourceIP   string
	Subscriber string
}

// Resolve expands a ChangeEvent into per-source Tree Builder actions: for
// each source of GroupIP already known to the controller (knownSources)
// other than the event's own SourceIP, ModeInclude adds a subscriber for
// sources present in the record and removes it for sources absent from it;
// ModeExclude is the exact inverse.
func Resolve(ev ChangeEvent, knownSources []string) []Action {
	inRecord := make(map[string]bool, len(ev.Sources))
	for _, s := range ev.Sources {
		inRecord[s] = true
	}

	actions := make([]Action, 0, len(knownSources))
	for _, src := range knownSources {
		if src == ev.SourceIP {
			continue
		}

		listed := inRecord[src]
		add := (ev.Mode == ModeInclude && listed) || (ev.Mode == ModeExclude && !listed)

		kind := ActionRemove
		if add {
			kind = ActionAdd
		}
		actions = append(actions, Action{Kind: kind, GroupIP: ev.GroupIP, SourceIP: src, Subscriber: ev.Subscriber})
	}
	return actions
}

// Source is the external Membership Source interface (§6): a stream of
// already-decoded change events. The IGMPv3 wire parser that produces these
// events is out of scope; Source only carries the decoded result.
type Source interface {
	// Events returns the channel of incoming change events. Closed when
	// the source has no further events to deliver.
	Events() <-chan ChangeEvent
}
