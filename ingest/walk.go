package ingest

import (
	"fmt"
	"os"
	"path/filepath"
)

// walkFiles visits every non-directory entry under root depth-first,
// following symbolic links. Directories are traversed, not visited.
// A link pointing back to an ancestor fails the walk with
// ErrCycleDetected. The walk fails fast on the first unreadable entry;
// results up to that point have already been visited and are not
// retracted.
func walkFiles(root string, visit func(path string) error) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return visit(root)
	}
	return walkDir(root, make(map[string]struct{}), visit)
}

// walkDir recurses into dir. ancestors holds the resolved paths of the
// directories on the current descent so a symlink cycle is caught
// rather than recursing until the kernel's link limit. Two sibling
// links to the same directory are not a cycle; that directory is just
// walked twice.
func walkDir(dir string, ancestors map[string]struct{}, visit func(path string) error) error {
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return err
	}
	if _, ok := ancestors[resolved]; ok {
		return fmt.Errorf("%w: [%s]", ErrCycleDetected, dir)
	}
	ancestors[resolved] = struct{}{}
	defer delete(ancestors, resolved)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		child := filepath.Join(dir, entry.Name())

		// Stat rather than the entry type so symlinked directories are
		// traversed and symlinked files are visited.
		info, err := os.Stat(child)
		if err != nil {
			return err
		}

		if info.IsDir() {
			if err := walkDir(child, ancestors, visit); err != nil {
				return err
			}
			continue
		}
		if err := visit(child); err != nil {
			return err
		}
	}
	return nil
}

// countFiles returns the file total used for progress reporting: 1 when
// root is a plain file, otherwise the number of direct children of the
// root directory. Nested entries are not counted, so for directory
// roots the total is an estimate rather than a recursive count.
func countFiles(root string) (int, error) {
	info, err := os.Stat(root)
	if err != nil {
		return 0, err
	}
	if !info.IsDir() {
		return 1, nil
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}
