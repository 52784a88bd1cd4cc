package controller

import (
	"github.com/sirupsen/logrus"

	"github.com/mcastlab/resilmcast/topology"
)

// HandleTopologyEvent dispatches one topology.Event (§6: switch_enter,
// switch_leave, link_add, link_delete, host_found) to the matching handler.
func (c *Controller) HandleTopologyEvent(ev topology.Event) error {
	switch ev.Kind {
	case topology.SwitchEnter:
		return c.SwitchEnter(ev.Switch, ev.DatapathID)
	case topology.SwitchLeave:
		c.SwitchLeave(ev.Switch)
		return nil
	case topology.LinkAdd:
		return c.LinkAdd(ev.From, ev.To, ev.SrcPort, ev.DstPort)
	case topology.LinkDelete:
		return c.LinkDelete(ev.From, ev.To)
	case topology.HostFound:
		return c.HostFound(ev.Switch, ev.Host, ev.HostMAC, ev.SrcPort)
	default:
		return nil
	}
}

// SwitchEnter registers a newly connected switch.
func (c *Controller) SwitchEnter(switchID string, datapathID uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.net.AddNode(&topology.Node{ID: switchID, Kind: topology.Switch, DatapathID: datapathID})
	c.opLogger("switch_enter").WithField("switch", switchID).Info("switch entered")
	return err
}

// SwitchLeave marks every edge touching switchID dead and hands the
// touched links to the Tree Builder's repair hook (§4.3.3, a documented
// no-op beyond logging).
func (c *Controller) SwitchLeave(switchID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var broken [][2]string
	for _, id := range c.net.Nodes() {
		for _, e := range c.net.Edges(id) {
			if !e.Live {
				continue
			}
			if e.From == switchID || e.To == switchID {
				broken = append(broken, [2]string{e.From, e.To})
			}
		}
	}

	c.net.MarkSwitchDead(switchID)
	c.opLogger("switch_leave").WithField("switch", switchID).Warn("switch left")
	c.builder.Repair(broken)
}

// LinkAdd installs or revives a live switch-switch link.
func (c *Controller) LinkAdd(from, to string, srcPort, dstPort int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.net.AddEdge(from, to, srcPort, dstPort, true); err != nil {
		return err
	}
	c.opLogger("link_add").WithFields(logrus.Fields{"from": from, "to": to}).Info("link added")
	return nil
}

// LinkDelete marks a link dead and hands it to the Tree Builder's repair
// hook.
func (c *Controller) LinkDelete(from, to string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.net.SetLive(from, to, false); err != nil {
		return err
	}
	c.opLogger("link_delete").WithFields(logrus.Fields{"from": from, "to": to}).Warn("link deleted")
	c.builder.Repair([][2]string{{from, to}})
	return nil
}

// HostFound registers a newly observed host attached to switchID's port.
func (c *Controller) HostFound(switchID, hostID, mac string, port int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.net.HasNode(hostID) {
		if err := c.net.AddNode(&topology.Node{ID: hostID, Kind: topology.Host, MAC: mac}); err != nil {
			return err
		}
	}
	if err := c.net.AddEdge(switchID, hostID, port, topology.PortLocal, true); err != nil {
		return err
	}
	c.opLogger("host_found").WithFields(logrus.Fields{"switch": switchID, "host": hostID}).Info("host found")
	return nil
}
