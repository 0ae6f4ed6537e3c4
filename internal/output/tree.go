package output

import (
	"sort"
	"strings"

	"github.com/marcus/clinic/internal/models"
)

// TreeNode is one line of a tree and its children
type TreeNode struct {
	Label    string
	Detail   string
	Children []TreeNode
}

// TreeRenderOptions configures tree rendering
type TreeRenderOptions struct {
	MaxDepth   int  // 0 = unlimited
	ShowDetail bool // append each node's Detail
}

// RenderTree renders root's children (not root itself)
func RenderTree(root TreeNode, opts TreeRenderOptions) string {
	return strings.Join(renderTreeNodes(root.Children, opts, 0, ""), "\n")
}

// RenderTreeLines renders several roots and returns individual lines
func RenderTreeLines(roots []TreeNode, opts TreeRenderOptions) []string {
	return renderTreeNodes(roots, opts, 0, "")
}

func renderTreeNodes(nodes []TreeNode, opts TreeRenderOptions, depth int, prefix string) []string {
	if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
		return nil
	}

	var lines []string
	for i, node := range nodes {
		isLast := i == len(nodes)-1

		connector := "├── "
		if isLast {
			connector = "└── "
		}

		line := prefix + connector + node.Label
		if opts.ShowDetail && node.Detail != "" {
			line += " " + node.Detail
		}
		lines = append(lines, line)

		childPrefix := prefix + "│   "
		if isLast {
			childPrefix = prefix + "    "
		}
		lines = append(lines, renderTreeNodes(node.Children, opts, depth+1, childPrefix)...)
	}
	return lines
}

// DirectoryTree groups doctors under their specialty. Specialties and the
// doctors within each are sorted by name.
func DirectoryTree(doctors []models.Doctor) TreeNode {
	bySpecialty := make(map[string][]models.Doctor)
	for _, d := range doctors {
		specialty := d.Specialty
		if specialty == "" {
			specialty = "General"
		}
		bySpecialty[specialty] = append(bySpecialty[specialty], d)
	}

	specs := make([]string, 0, len(bySpecialty))
	for s := range bySpecialty {
		specs = append(specs, s)
	}
	sort.Strings(specs)

	root := TreeNode{Label: "Doctors"}
	for _, s := range specs {
		ds := bySpecialty[s]
		sort.SliceStable(ds, func(i, j int) bool {
			return strings.ToLower(ds[i].Name) < strings.ToLower(ds[j].Name)
		})

		node := TreeNode{Label: s}
		for _, d := range ds {
			node.Children = append(node.Children, TreeNode{Label: d.Name, Detail: FormatTimes(d.AvailableTimes)})
		}
		root.Children = append(root.Children, node)
	}
	return root
}

// FormatTimes renders availability the way the directory shows it
func FormatTimes(times []string) string {
	if len(times) == 0 {
		return "[Not available]"
	}
	return "[" + strings.Join(times, ", ") + "]"
}
