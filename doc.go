// Package resilmcast implements a per-link-protected multicast control
// plane: primary delivery trees grown by a pluggable shortest-path join
// strategy, recursively nested backup trees bounded by a configurable
// protection depth F, and a forwarding-state compiler that turns tree
// edges into per-switch flow tables and fast-failover group tables.
//
// Subpackages:
//
//	topology/    — the live network graph (switches, hosts, ports, link liveness)
//	pathjoin/    — SPT/DST join strategies over topology.Graph (container/heap Dijkstra)
//	tree/        — the Tree Registry and the Tree Builder's join/leave/repair algorithms
//	forwarding/  — the Forwarding Compiler: flows, fast-failover groups, VLAN tagging
//	switchdriver/— the abstract switch command sink and a recording test implementation
//	membership/  — the Membership Source event model and a channel-backed test fixture
//	controller/  — the Controller Façade wiring topology/membership events into the builder
//	config/      — YAML-backed configuration (protection level, logging)
//	topofixture/ — deterministic topology.Graph fixtures for tests
//
// The Controller Façade is the single entry point: it holds the network
// graph, the tree registry and builder, and the forwarding compiler behind
// one mutex, and turns topology and membership notifications into tree
// joins, leaves, repairs, and flow-table changes.
package resilmcast
