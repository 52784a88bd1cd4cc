// Package topology provides a directed, thread-safe in-memory graph of
// switches and hosts, standing in for the Topology Oracle described by the
// control plane: a live network graph with per-edge port numbers and
// liveness, plus a switch/host node classifier.
//
// Nodes carry a Kind (Switch or Host) and their own identifying metadata
// (a switch's datapath ID, a host's MAC). Edges carry (SrcPort, DstPort,
// Live); a host-attachment edge uses PortLocal for the port on the host's
// side.
//
// Graph uses two separate sync.RWMutex locks — one for nodes, one for edges
// and adjacency. Only AddNode holds both, taking muNode before muEdge; no
// method takes muNode while holding muEdge.
package topology
