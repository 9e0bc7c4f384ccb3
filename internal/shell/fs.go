package shell

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// indentWidth is the number of spaces per tree level
const indentWidth = 4

// resolvePath maps a command argument onto the session directory.
// Absolute arguments are kept as they are.
func resolvePath(cwd, path string) string {
	if path == "" {
		return cwd
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(cwd, path)
}

// readDirUnsorted returns the entries of dir in the order the directory
// stream yields them. os.ReadDir would sort by name.
func readDirUnsorted(dir string) ([]os.DirEntry, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return f.ReadDir(-1)
}

// classify turns a filesystem error into a failed Result
func classify(op string, err error) Result {
	if errors.Is(err, fs.ErrNotExist) {
		return Fail(KindNotFound, op, err.Error())
	}
	return Fail(KindAccess, op, err.Error())
}

// ListDirectory lists the entries of path (or cwd when path is empty),
// one per line, unsorted.
func ListDirectory(cwd, path string) Result {
	dir := resolvePath(cwd, path)

	entries, err := readDirUnsorted(dir)
	if err != nil {
		return classify(OpAccess, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return OK(strings.Join(names, "\n"))
}

// ChangeDirectory returns the directory cwd/path after checking it exists
// and can be entered. path is always joined onto cwd, even when it is
// absolute. On failure the returned directory is cwd.
func ChangeDirectory(cwd, path string) (string, Result) {
	target := filepath.Join(cwd, path)

	info, err := os.Stat(target)
	if err != nil {
		return cwd, classify(OpChange, err)
	}
	if !info.IsDir() {
		return cwd, Fail(KindAccess, OpChange, fmt.Sprintf("not a directory: %s", target))
	}
	if err := checkEnterable(target); err != nil {
		return cwd, classify(OpChange, err)
	}

	return target, OK(fmt.Sprintf("Changed directory to: %s", target))
}

// Tree prints the subtree under path (or cwd) top-down: each directory as
// its base name plus "/", then its files one level deeper, then its
// subdirectories. Unreadable directories below the root are skipped.
func Tree(cwd, path string) Result {
	root := resolvePath(cwd, path)

	info, err := os.Stat(root)
	if err != nil {
		return classify(OpTraverse, err)
	}
	if !info.IsDir() {
		return Fail(KindAccess, OpTraverse, fmt.Sprintf("not a directory: %s", root))
	}

	rootEntries, err := readDirUnsorted(root)
	if err != nil {
		return classify(OpTraverse, err)
	}

	var b strings.Builder
	var walk func(dir string, entries []os.DirEntry)
	walk = func(dir string, entries []os.DirEntry) {
		depth := treeDepth(root, dir)
		b.WriteString(indent(depth))
		b.WriteString(baseName(dir))
		b.WriteString("/\n")

		var subdirs []string
		for _, e := range entries {
			if e.IsDir() {
				subdirs = append(subdirs, filepath.Join(dir, e.Name()))
				continue
			}
			b.WriteString(indent(depth + 1))
			b.WriteString(e.Name())
			b.WriteString("\n")
		}

		for _, sub := range subdirs {
			subEntries, err := readDirUnsorted(sub)
			if err != nil {
				continue
			}
			walk(sub, subEntries)
		}
	}
	walk(root, rootEntries)

	return OK(b.String())
}

// treeDepth counts separators in dir after the root prefix is removed
func treeDepth(root, dir string) int {
	if dir == root {
		return 0
	}
	sep := string(os.PathSeparator)
	rel := strings.TrimPrefix(dir, strings.TrimSuffix(root, sep))
	return strings.Count(rel, sep)
}

func baseName(dir string) string {
	name := filepath.Base(dir)
	if name == string(os.PathSeparator) {
		return ""
	}
	return name
}

func indent(depth int) string {
	return strings.Repeat(" ", indentWidth*depth)
}
