// Package tree implements Tree Registry and the Tree Builder (Per-Link
// Protector): primary delivery trees keyed by (group_ip, source_ip), their
// recursively nested backup-tree hierarchy, and the join/leave algorithms
// that grow and prune them as subscribers come and go.
//
// Trees are arena-allocated: Registry owns a map[Handle]*Tree, and
// cross-tree references (a tree's parent, its primary, and an edge's
// backup) are Handle values rather than direct pointers, avoiding a pointer
// cycle between a backup tree and the primary whose tag cursor it draws
// from.
package tree
