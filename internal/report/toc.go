package report

import (
	"sort"
	"strings"
)

// Tree renders the paths as a box-drawing hierarchy, directories
// before files at every level, both sorted. Input order does not
// matter; the tree is the same for any permutation.
func Tree(paths []string) string {
	root := newTreeNode()
	for _, p := range paths {
		parts := strings.Split(p, "/")
		node := root
		for _, part := range parts[:len(parts)-1] {
			node = node.child(part)
		}
		node.files = append(node.files, parts[len(parts)-1])
	}
	return strings.Join(root.render(""), "\n")
}

type treeNode struct {
	dirs  map[string]*treeNode
	files []string
}

func newTreeNode() *treeNode {
	return &treeNode{dirs: make(map[string]*treeNode)}
}

func (n *treeNode) child(name string) *treeNode {
	c, ok := n.dirs[name]
	if !ok {
		c = newTreeNode()
		n.dirs[name] = c
	}
	return c
}

func (n *treeNode) render(prefix string) []string {
	dirs := make([]string, 0, len(n.dirs))
	for name := range n.dirs {
		dirs = append(dirs, name)
	}
	sort.Strings(dirs)
	files := append([]string(nil), n.files...)
	sort.Strings(files)

	items := make([]string, 0, len(dirs)+len(files))
	items = append(items, dirs...)
	items = append(items, files...)

	var lines []string
	for i, name := range items {
		last := i == len(items)-1
		connector := "├── "
		if last {
			connector = "└── "
		}
		lines = append(lines, prefix+connector+name)
		if i < len(dirs) {
			fill := "│   "
			if last {
				fill = "    "
			}
			lines = append(lines, n.dirs[name].render(prefix+fill)...)
		}
	}
	return lines
}
