// Package walk visits the entities of a message tree.
//
// Entities do not know their parents, so every callback here is handed the
// position of the entity in the tree: either its depth and index, or the full
// list of its ancestors.
package walk
