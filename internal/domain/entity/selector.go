package entity

import "sort"

// Selector identifies the subject entities a grid is evaluated over.
type Selector struct {
	Kind Kind    `json:"kind"`
	IDs  []int64 `json:"ids"`
}

// NewSelector copies ids, dropping duplicates and non-positive values, and
// sorts them so queries and cache keys are stable.
func NewSelector(kind Kind, ids []int64) Selector {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return Selector{Kind: kind, IDs: out}
}

func (s Selector) Empty() bool { return len(s.IDs) == 0 }

func (s Selector) Contains(id int64) bool {
	i := sort.Search(len(s.IDs), func(i int) bool { return s.IDs[i] >= id })
	return i < len(s.IDs) && s.IDs[i] == id
}
