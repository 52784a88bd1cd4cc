// Package forwarding implements the Forwarding-State Compiler: the
// deterministic mapping from tree/backup edges to per-switch flow-table
// entries and fast-failover group tables, including the incremental
// add_flow/remove_flow/add_backup/remove_backup edits the Tree Builder
// drives as subscribers join and leave.
//
// Forwarding state lives in a three-table pipeline per switch, and backup
// protection is expressed as fast-failover group buckets that clone or
// coalesce as nested backups are added (Case A/B/C), each bucket carrying
// its own VLAN tag.
package forwarding
