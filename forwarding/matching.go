package forwarding

import "github.com/mcastlab/resilmcast/switchdriver"

// vlanBase is OR'd with a tag to form vlan_vid, mirroring the OpenFlow
// "VLAN present" bit convention (§4.4.6: vlan_vid = 0x1000 | tag).
const vlanBase = 0x1000

// noInPort signals buildMatch to omit the in_port predicate.
const noInPort = -1

// buildMatch constructs the field predicate for a flow key. group_ip and
// source_ip stand in directly for eth_dst/eth_src: MAC resolution from IP is
// the Controller Façade's concern (the ip_2_mac cache), not the compiler's.
// inPort is the numeric inbound port to match, or noInPort to omit it.
func buildMatch(key FlowKey, inPort int) switchdriver.FieldPredicate {
	m := switchdriver.FieldPredicate{EthDst: key.GroupIP, EthSrc: key.SourceIP}
	if key.Tag != 0 {
		m.HasVlan = true
		m.VlanVid = vlanBase | uint16(key.Tag)
	}
	if inPort != noInPort {
		m.HasPort = true
		m.InPort = inPort
	}
	return m
}

// priority returns the installed priority for a flow key, bumped by one
// when the match also constrains in_port (§4.4.1).
func priority(key FlowKey, matchInPort bool) int {
	p := PriorityMed
	if key.Tag != 0 {
		p = PriorityHigh
	}
	if matchInPort {
		p += PriorityInPortBump
	}
	return p
}
