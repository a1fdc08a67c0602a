// Package naming decides where a file belongs and what it will be called
// there.
//
//   - rules.go: the category table ([Rules]), immutable after construction.
//   - load.go: YAML overrides for the category table.
//   - classify.go: [Classify], the pure name → category decision.
//   - collision.go: [Resolver], collision-free destination names.
//   - outputpath.go: destination directory layout (by type or by date).
//
// Nothing in classify.go or rules.go touches the filesystem; all disk
// probing lives in collision.go.
package naming
