// Package controller implements the Controller Façade: the single actor
// that wires a membership.Source and topology events into
// tree.TreeBuilder/forwarding.Compiler calls, owns the group/source
// discovery table and the ip-to-MAC resolution cache, and mints a
// correlation ID for every externally observable operation.
package controller
