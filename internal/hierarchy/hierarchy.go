// Package hierarchy rebuilds the canonical node tree from a widget source.
package hierarchy

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/DeusData/viewcode/internal/fqn"
	"github.com/DeusData/viewcode/internal/model"
	"github.com/DeusData/viewcode/internal/widget"
)

// SortPolicy reorders siblings before they are visited.
type SortPolicy string

const (
	SortNone        SortPolicy = "none"
	SortTopToBottom SortPolicy = "top-to-bottom"
	SortLeftToRight SortPolicy = "left-to-right"
	SortDistance    SortPolicy = "distance"
)

// SortPolicies lists every accepted policy.
var SortPolicies = []SortPolicy{SortNone, SortTopToBottom, SortLeftToRight, SortDistance}

// ParseSortPolicy accepts a policy name. The empty string means SortNone.
func ParseSortPolicy(s string) (SortPolicy, error) {
	if s == "" {
		return SortNone, nil
	}
	for _, p := range SortPolicies {
		if strings.EqualFold(string(p), s) {
			return p, nil
		}
	}
	return SortNone, fmt.Errorf("unknown sort policy %q", s)
}

// rowTolerance is the vertical distance under which two siblings count as
// being on the same row for top-to-bottom sorting.
const rowTolerance = 10

// DefaultMaxDepth bounds the walk when Options.MaxDepth is zero.
const DefaultMaxDepth = 64

// DefaultContainerTypes are the widget types whose subviews are visited.
var DefaultContainerTypes = []string{"UIView", "UIScrollView", "UIStackView"}

// Options controls tree construction.
type Options struct {
	Sort           SortPolicy
	ContainerTypes []string
	MaxDepth       int
}

func (o Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

func (o Options) containers() map[string]bool {
	types := o.ContainerTypes
	if len(types) == 0 {
		types = DefaultContainerTypes
	}
	m := make(map[string]bool, len(types))
	for _, t := range types {
		m[t] = true
	}
	return m
}

// frame is one pending widget on the build stack.
type frame struct {
	src          widget.Source
	parent       model.NodeID
	siblingIndex int
	path         []int
}

// Build walks root depth-first and returns the node tree in pre-order. It
// returns nil when root is nil or is itself a layout guide.
func Build(root widget.Source, opts Options) *model.Tree {
	if root == nil || widget.IsGuide(root) {
		slog.Info("hierarchy.no_target")
		return nil
	}
	containers := opts.containers()
	maxDepth := opts.maxDepth()

	t := model.NewTree()
	visited := map[widget.Source]bool{}
	ids := map[string]string{}
	stack := []frame{{src: root, parent: model.NoNode, path: []int{0}}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited[f.src] {
			slog.Warn("hierarchy.cycle", "identity", f.src.Identity())
			continue
		}
		visited[f.src] = true

		nid := t.Add(f.src, f.parent, f.siblingIndex)
		n := t.Node(nid)
		n.Name = fqn.Compute(f.src.TypeName(), f.path)

		switch id := f.src.Identity(); {
		case id == "":
			slog.Warn("hierarchy.no_identity", "node", n.Name)
		case ids[id] != "":
			slog.Warn("hierarchy.duplicate_identity", "identity", id, "node", n.Name, "first", ids[id])
		default:
			ids[id] = n.Name
		}

		if !containers[f.src.TypeName()] {
			continue
		}
		if n.Depth >= maxDepth {
			slog.Warn("hierarchy.max_depth", "node", n.Name, "depth", n.Depth)
			continue
		}

		kids := make([]widget.Source, 0, len(f.src.Subviews()))
		for _, c := range f.src.Subviews() {
			if c != nil && !widget.IsGuide(c) {
				kids = append(kids, c)
			}
		}
		SortChildren(kids, opts.Sort)

		// Push in reverse so the first child is popped first.
		for i := len(kids) - 1; i >= 0; i-- {
			path := make([]int, len(f.path)+1)
			copy(path, f.path)
			path[len(f.path)] = i
			stack = append(stack, frame{src: kids[i], parent: nid, siblingIndex: i, path: path})
		}
	}

	return t
}

// SortChildren reorders kids in place by policy. The sort is stable.
func SortChildren(kids []widget.Source, policy SortPolicy) {
	var less func(a, b widget.Point) bool
	switch policy {
	case SortTopToBottom:
		less = func(a, b widget.Point) bool {
			dy := a.Y - b.Y
			if dy > -rowTolerance && dy < rowTolerance {
				return a.X < b.X
			}
			return dy < 0
		}
	case SortLeftToRight:
		less = func(a, b widget.Point) bool { return a.X < b.X }
	case SortDistance:
		less = func(a, b widget.Point) bool {
			return a.X*a.X+a.Y*a.Y < b.X*b.X+b.Y*b.Y
		}
	default:
		return
	}
	sort.SliceStable(kids, func(i, j int) bool {
		return less(kids[i].Center(), kids[j].Center())
	})
}
