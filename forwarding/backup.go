package forwarding

import (
	"context"

	"github.com/mcastlab/resilmcast/switchdriver"
)

// AddBackup builds (or extends) the fast-failover group protecting output
// to dst on sw under flow key origin (origin.Tag is the origin tag,
// origin.InboundSwitch is the predecessor switch), adding an alternative
// output to backupDst tagged newTag. needsMore signals that this backup
// itself will need a deeper nested level (the Tree Builder's notDone flag),
// forcing the divergent Case C path even when a shallower coalesce would
// otherwise apply (§4.4.4).
func (c *Compiler) AddBackup(ctx context.Context, sw string, origin FlowKey, dst, backupDst string, newTag int, needsMore bool) error {
	dstPort, _, err := c.resolvePort(sw, dst)
	if err != nil {
		return ErrSwitchAbsent
	}
	backupPort, _, err := c.resolvePort(sw, backupDst)
	if err != nil {
		return ErrSwitchAbsent
	}

	backupKey := origin
	backupKey.Tag = newTag

	ffg := c.ffGroupsOn(sw)
	if _, exists := ffg[ffKey{port: backupPort, key: backupKey}]; exists {
		return ErrAlreadyInstalled
	}

	baseLoc, hasBase := ffg[ffKey{port: dstPort, key: origin}]
	if !hasBase {
		groupID := c.allocGroupID(sw)
		c.bucketsOn(sw)[groupID] = []Bucket{{Ports: []int{dstPort}, Tag: origin.Tag}}
		baseLoc = ffLoc{groupID: groupID, index: 0}
		ffg[ffKey{port: dstPort, key: origin}] = baseLoc
		if err := c.installGroup(ctx, sw, baseLoc.groupID, false); err != nil {
			return err
		}
		if err := c.recompile(ctx, sw, origin); err != nil {
			return err
		}
	}

	buckets := c.bucketsOn(sw)[baseLoc.groupID]
	index := len(buckets) - 1

	switch {
	case index == baseLoc.index: // Case A: fresh level, nothing appended past the base yet.
		buckets = append(buckets, Bucket{Ports: []int{backupPort}, Tag: newTag})
		c.bucketsOn(sw)[baseLoc.groupID] = buckets
		ffg[ffKey{port: backupPort, key: backupKey}] = ffLoc{groupID: baseLoc.groupID, index: index + 1}
		return c.installGroup(ctx, sw, baseLoc.groupID, true)

	case !needsMore: // Case B: coalesce into the existing next-level bucket.
		next := &buckets[index]
		next.Ports = append(next.Ports, backupPort)
		ffg[ffKey{port: backupPort, key: backupKey}] = ffLoc{groupID: baseLoc.groupID, index: index}
		return c.installGroup(ctx, sw, baseLoc.groupID, true)

	default: // Case C: divergent deeper backup — clone the prefix as drop markers.
		clone := make([]Bucket, index+1)
		for i := 0; i <= index; i++ {
			b := buckets[i]
			clone[i] = Bucket{Ports: append([]int(nil), b.Ports...), Tag: b.Tag, Drop: true}
		}
		clone = append(clone, Bucket{Ports: []int{backupPort}, Tag: newTag})

		newGroupID := c.allocGroupID(sw)
		c.bucketsOn(sw)[newGroupID] = clone
		ffg[ffKey{port: dstPort, key: origin}] = ffLoc{groupID: newGroupID, index: 0}
		ffg[ffKey{port: backupPort, key: backupKey}] = ffLoc{groupID: newGroupID, index: index + 1}
		return c.installGroup(ctx, sw, newGroupID, false)
	}
}

// recompile rebuilds and reinstalls key's flow pipeline on sw, used after
// AddBackup installs the first fast-failover group for a previously direct
// output (so Table 0 now references the group).
func (c *Compiler) recompile(ctx context.Context, sw string, key FlowKey) error {
	fs, ok := c.flowsOn(sw)[key]
	if !ok {
		return nil
	}
	return c.compile(ctx, sw, key, fs)
}

// installGroup emits GROUP_ADD (fresh) or GROUP_MODIFY (existing) with the
// group's current bucket list translated to driver buckets, substituting
// IN_PORT_ALIAS and prepending push-vlan for every tagged bucket beyond the
// first, unless the group's base bucket (buckets[0]) already carries a tag
// itself — in which case the packet reaching this switch is already
// 802.1Q-tagged and no bucket needs to push a new header, only set_field the
// vid. A drop-marked prefix bucket never executes on the wire, so it cannot
// have tagged anything; it is skipped here exactly as it is in bucket
// construction, and does not change whether later buckets need push_vlan
// (§4.4.4).
func (c *Compiler) installGroup(ctx context.Context, sw string, groupID uint32, modify bool) error {
	buckets := c.bucketsOn(sw)[groupID]
	out := make([]switchdriver.Bucket, 0, len(buckets))
	tagged := len(buckets) > 0 && buckets[0].Tag != 0
	inboundPort := noInPort
	for k, l := range c.ffGroupsOn(sw) {
		if l.groupID == groupID {
			inboundPort = c.inboundPortOf(sw, k.key)
			break
		}
	}
	for i, b := range buckets {
		var actions []Action
		if !b.Drop {
			if b.Tag != 0 && i > 0 {
				if !tagged {
					actions = append(actions, Action{Kind: ActPushVlan})
				}
				actions = append(actions, Action{Kind: ActSetVlanVid, VlanVid: uint16(vlanBase | b.Tag)})
			}
			for _, p := range b.Ports {
				actions = append(actions, Action{Kind: ActOutput, Port: substituteInPort(p, inboundPort)})
			}
		}
		watch := noInPort
		if len(b.Ports) > 0 {
			watch = b.Ports[0]
		}
		out = append(out, switchdriver.Bucket{WatchPort: watch, Ports: append([]int(nil), b.Ports...), Actions: toDriverActions(actions)})
	}

	if modify {
		return c.driver.ModifyGroup(ctx, sw, groupID, out)
	}
	return c.driver.AddGroup(ctx, sw, groupID, out)
}

// RemoveBackup tears down the bucket for (backupDst, backupKey) built by a
// prior AddBackup, collapsing or deleting the owning group (§4.4.5).
func (c *Compiler) RemoveBackup(ctx context.Context, sw string, origin FlowKey, backupDst string, newTag int) error {
	backupPort, _, err := c.resolvePort(sw, backupDst)
	if err != nil {
		return ErrSwitchAbsent
	}
	backupKey := origin
	backupKey.Tag = newTag

	ffg := c.ffGroupsOn(sw)
	loc, ok := ffg[ffKey{port: backupPort, key: backupKey}]
	if !ok {
		return ErrNoSuchGroup
	}

	buckets := c.bucketsOn(sw)[loc.groupID]
	lastIndex := len(buckets) - 1

	if loc.index != lastIndex {
		// Not the deepest bucket: truncate from loc.index onward and
		// unregister every live key that pointed past it.
		c.bucketsOn(sw)[loc.groupID] = buckets[:loc.index]
		for k, l := range ffg {
			if l.groupID == loc.groupID && l.index >= loc.index {
				delete(ffg, k)
			}
		}
		return c.installGroup(ctx, sw, loc.groupID, true)
	}

	if loc.index == 0 || buckets[loc.index-1].Drop {
		delete(c.bucketsOn(sw), loc.groupID)
		for k, l := range ffg {
			if l.groupID == loc.groupID {
				delete(ffg, k)
			}
		}
		if err := c.driver.DeleteGroup(ctx, sw, loc.groupID); err != nil {
			return err
		}
		return c.recompile(ctx, sw, origin)
	}

	bucket := &buckets[loc.index]
	if len(bucket.Ports) > 1 {
		for i, p := range bucket.Ports {
			if p == backupPort {
				bucket.Ports = append(bucket.Ports[:i], bucket.Ports[i+1:]...)
				break
			}
		}
		delete(ffg, ffKey{port: backupPort, key: backupKey})
		return c.installGroup(ctx, sw, loc.groupID, true)
	}

	c.bucketsOn(sw)[loc.groupID] = buckets[:loc.index]
	delete(ffg, ffKey{port: backupPort, key: backupKey})
	return c.installGroup(ctx, sw, loc.groupID, true)
}
