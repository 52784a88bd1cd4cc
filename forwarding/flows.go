package forwarding

import "context"

func newFlowState() *flowState {
	return &flowState{switchDsts: make(map[string]bool), hostDsts: make(map[string]bool)}
}

// inboundPortOf resolves the numeric port on sw where traffic from
// key.InboundSwitch arrives, or noInPort if the key carries no inbound
// switch.
func (c *Compiler) inboundPortOf(sw string, key FlowKey) int {
	if key.InboundSwitch == "" {
		return noInPort
	}
	e, err := c.net.Edge(key.InboundSwitch, sw)
	if err != nil {
		return noInPort
	}
	return e.DstPort
}

// AddFlow resolves dsts to output ports, unions them with any existing
// output set for key on sw, and (re)compiles the pipeline. A no-op when the
// resulting output set is unchanged and forced is false (§4.4.2).
func (c *Compiler) AddFlow(ctx context.Context, sw string, key FlowKey, dsts []string, forced bool) error {
	flows := c.flowsOn(sw)
	fs, existed := flows[key]
	if !existed {
		fs = newFlowState()
	}

	changed := false
	for _, dst := range dsts {
		port, isHost, err := c.resolvePort(sw, dst)
		if err != nil {
			continue // SwitchAbsent: silently skipped per §7
		}
		_ = port
		if isHost {
			if !fs.hostDsts[dst] {
				fs.hostDsts[dst] = true
				changed = true
			}
		} else {
			if !fs.switchDsts[dst] {
				fs.switchDsts[dst] = true
				changed = true
			}
		}
	}

	if existed && !changed && !forced {
		return nil
	}

	flows[key] = fs
	return c.compile(ctx, sw, key, fs)
}

// RemoveFlow removes the listed destinations from key's installed output
// set on sw and recompiles (or tears down entirely if the set becomes
// empty). dsts == nil tears down the whole entry, equivalent to
// RemoveAllFlows (§4.4.3, dsts=="all").
func (c *Compiler) RemoveFlow(ctx context.Context, sw string, key FlowKey, dsts []string) error {
	if dsts == nil {
		return c.RemoveAllFlows(ctx, sw, key)
	}

	flows := c.flowsOn(sw)
	fs, ok := flows[key]
	if !ok {
		return ErrNoSuchFlow
	}

	for _, dst := range dsts {
		delete(fs.switchDsts, dst)
		delete(fs.hostDsts, dst)
	}

	if len(fs.switchDsts) == 0 && len(fs.hostDsts) == 0 {
		return c.RemoveAllFlows(ctx, sw, key)
	}

	return c.compile(ctx, sw, key, fs)
}

// RemoveAllFlows tears down every table of key's entry on sw and any
// fast-failover groups whose primary output port this flow owned, together
// with every bucket key still registered against those groups.
func (c *Compiler) RemoveAllFlows(ctx context.Context, sw string, key FlowKey) error {
	flows := c.flowsOn(sw)
	fs, ok := flows[key]
	if !ok {
		return ErrNoSuchFlow
	}

	match := buildMatch(key, c.inboundPortOf(sw, key))
	prio := priority(key, key.InboundSwitch != "")
	for id := 0; id < fs.tableCount; id++ {
		if err := c.driver.DeleteFlowStrict(ctx, sw, id, prio, match); err != nil {
			return err
		}
	}

	ffg := c.ffGroupsOn(sw)
	seen := make(map[uint32]bool)
	for dst := range fs.switchDsts {
		port, _, err := c.resolvePort(sw, dst)
		if err != nil {
			continue
		}
		if loc, ok := ffg[ffKey{port: port, key: key}]; ok && !seen[loc.groupID] {
			seen[loc.groupID] = true
			delete(c.bucketsOn(sw), loc.groupID)
			_ = c.driver.DeleteGroup(ctx, sw, loc.groupID)
			for k, l := range ffg {
				if l.groupID == loc.groupID {
					delete(ffg, k)
				}
			}
		}
		delete(ffg, ffKey{port: port, key: key})
	}

	delete(flows, key)
	return nil
}

// compile rebuilds and (re)installs the pipeline for key on sw from fs's
// current output set, per the table layout in §4.4.1.
func (c *Compiler) compile(ctx context.Context, sw string, key FlowKey, fs *flowState) error {
	matchInPort := key.InboundSwitch != ""
	inboundPort := c.inboundPortOf(sw, key)
	ffg := c.ffGroupsOn(sw)

	var groupActions, directActions, popActions []Action
	for dst := range fs.switchDsts {
		port, _, err := c.resolvePort(sw, dst)
		if err != nil {
			continue
		}
		if loc, ok := ffg[ffKey{port: port, key: key}]; ok {
			groupActions = append(groupActions, Action{Kind: ActOutputGroup, GroupID: loc.groupID})
			continue
		}
		directActions = append(directActions, Action{Kind: ActOutput, Port: substituteInPort(port, inboundPort)})
	}
	for dst := range fs.hostDsts {
		port, _, err := c.resolvePort(sw, dst)
		if err != nil {
			continue
		}
		if key.Tag == 0 {
			directActions = append(directActions, Action{Kind: ActOutput, Port: substituteInPort(port, inboundPort)})
		} else {
			popActions = append(popActions, Action{Kind: ActPopVlan}, Action{Kind: ActOutput, Port: substituteInPort(port, inboundPort)})
		}
	}

	tables := make(map[int][]Action)
	if len(groupActions) > 0 {
		tables[TableGroups] = groupActions
	}
	if len(directActions) > 0 {
		tables[TableDirect] = directActions
	}
	if len(popActions) > 0 {
		tables[TablePopVlan] = popActions
	}

	newCount, err := c.installPipeline(ctx, sw, key, matchInPort, inboundPort, tables, fs.tableCount)
	if err != nil {
		return err
	}
	fs.tableCount = newCount
	return nil
}
