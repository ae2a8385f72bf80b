package task

import "strings"

// Tags is an insertion-ordered set of tag names. Membership is exact and
// case-sensitive. The zero value is an empty set ready to use.
type Tags struct {
	items []string
	index map[string]struct{}
}

func NewTags(values ...string) Tags {
	var t Tags
	t.Add(values...)

	return t
}

// ParseTags splits comma-separated input into trimmed, non-empty segments.
// Duplicates are kept; they collapse when added to a Tags set.
func ParseTags(input string) []string {
	segments := strings.Split(input, ",")
	out := make([]string, 0, len(segments))

	for _, s := range segments {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}

		out = append(out, s)
	}

	return out
}

// Add unions values into the set and reports how many were new.
func (t *Tags) Add(values ...string) int {
	if t.index == nil {
		t.index = make(map[string]struct{}, len(values))
	}

	added := 0

	for _, v := range values {
		if v == "" {
			continue
		}

		if _, ok := t.index[v]; ok {
			continue
		}

		t.index[v] = struct{}{}
		t.items = append(t.items, v)
		added++
	}

	return added
}

func (t Tags) Contains(v string) bool {
	_, ok := t.index[v]

	return ok
}

func (t Tags) Len() int {
	return len(t.items)
}

// Values returns a copy of the tags in insertion order.
func (t Tags) Values() []string {
	out := make([]string, len(t.items))
	copy(out, t.items)

	return out
}

func (t Tags) clone() Tags {
	return NewTags(t.items...)
}
