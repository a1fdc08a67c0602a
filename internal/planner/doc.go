// Package planner turns a directory listing into an ordered list of
// planned moves. It decides each file's destination (by type or by
// modification date), drops entries that must not move, and reserves
// collision-free destination names. Planning reads the destination tree
// but never modifies it.
package planner
