package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Segment addresses one step from a node to a child: an object key or an
// array index.
type Segment struct {
	key     string
	index   int
	isIndex bool
}

// Field returns a segment addressing an object member by key.
func Field(name string) Segment { return Segment{key: name} }

// Index returns a segment addressing an array element by position.
func Index(i int) Segment { return Segment{index: i, isIndex: true} }

// IsIndex reports whether the segment addresses an array element.
func (s Segment) IsIndex() bool { return s.isIndex }

// Key returns the object key; only meaningful when IsIndex is false.
func (s Segment) Key() string { return s.key }

// Index returns the array position; only meaningful when IsIndex is true.
func (s Segment) Index() int { return s.index }

func (s Segment) String() string {
	if s.isIndex {
		return "[" + strconv.Itoa(s.index) + "]"
	}
	return s.key
}

// Path is the segment chain from the document root to a node. The root is
// the empty path.
type Path []Segment

// Child returns p extended by seg. The result never aliases p's backing
// array, so sibling paths derived from the same parent cannot clobber each
// other.
func (p Path) Child(seg Segment) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = seg
	return out
}

// Parent returns the path without its last segment, or nil for the root.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1]
}

// String renders the canonical path string. The root is the empty string;
// the first segment is never dot-prefixed and every later segment always
// is, index segments included: "a.[1]", not "a[1]". This asymmetry mirrors
// jsonpath_ng's str(full_path) and is the address format the fold script
// looks up in data-jpath attributes, so it must not change.
func (p Path) String() string {
	var b strings.Builder
	for i, s := range p {
		if i > 0 {
			b.WriteByte('.')
		}
		if s.isIndex {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(s.index))
			b.WriteByte(']')
		} else {
			b.WriteString(s.key)
		}
	}
	return b.String()
}

// ParsePath is the inverse of Path.String for paths whose field names
// contain neither dots nor brackets, which holds for every path String
// itself produces from such documents.
func ParsePath(s string) (Path, error) {
	if s == "" {
		return Path{}, nil
	}
	parts := strings.Split(s, ".")
	p := make(Path, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("empty segment in path %q", s)
		}
		if strings.HasPrefix(part, "[") {
			if !strings.HasSuffix(part, "]") {
				return nil, fmt.Errorf("unclosed index segment %q in path %q", part, s)
			}
			i, err := strconv.Atoi(part[1 : len(part)-1])
			if err != nil {
				return nil, fmt.Errorf("invalid index segment %q in path %q", part, s)
			}
			p = append(p, Index(i))
		} else {
			p = append(p, Field(part))
		}
	}
	return p, nil
}
