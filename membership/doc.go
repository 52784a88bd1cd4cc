// Package membership defines the Membership Source external interface: the
// stream of per-subscriber include/exclude change events the Controller
// reacts to by calling tree.TreeBuilder.AddSubscriber/RemoveSubscriber.
//
// Events carry IGMPv3-style change records (CHANGE_TO_INCLUDE_MODE and
// CHANGE_TO_EXCLUDE_MODE) already decoded to a source address list; the
// wire-level IGMPv3 parser itself is out of scope. This package models only
// the decoded event stream and a minimal channel-backed fixture for driving
// a Controller in tests.
package membership
