// Package fileutil walks the search tree and decides which names are pruned.
//
// # PathFilter
//
// PathFilter is tested against bare names (never full paths). A name is
// excluded when hidden search is disabled and the name starts with ".", or
// when any exclude pattern matches somewhere inside the name:
//
//	filter, err := fileutil.NewPathFilter([]string{`^node_modules$`, `\.min\.js$`}, false)
//
// # Walker
//
// Walker enumerates a tree top-down and yields one models.SearchTask per
// visited directory, holding the directory's non-excluded file names.
// Excluded directories are never opened, so their whole subtree is pruned.
// The sequence is lazy: the next directory is only read when the consumer
// asks for the next task.
//
//	w := fileutil.NewWalker(root, fileutil.WalkOptions{Filter: filter})
//	for task := range w.Tasks() {
//	    ...
//	}
//
// Symbolic links to files are always reported as files. Symbolic links to
// directories are only descended with WalkOptions.FollowLinks; a link cycle
// then never terminates, which is accepted. Directories that cannot be read
// are skipped.
package fileutil
