package regiondb

import "sort"

// Index provides O(log n + k) containment queries per chromosome
// using a sorted-slice approach. Regions are loaded once and never
// modified after build, so the index is safe for concurrent reads.
type Index struct {
	byChrom map[string]*chromIndex
}

type chromIndex struct {
	regions []SyndromeRegion
	maxEnd  []int64 // maxEnd[i] = max(End) for regions[0..i]
}

// NewIndex builds an index from a slice of regions.
func NewIndex(regions []SyndromeRegion) *Index {
	grouped := make(map[string][]SyndromeRegion)
	for _, r := range regions {
		grouped[r.Chrom] = append(grouped[r.Chrom], r)
	}

	idx := &Index{byChrom: make(map[string]*chromIndex, len(grouped))}
	for chrom, group := range grouped {
		sort.Slice(group, func(i, j int) bool {
			return group[i].Start < group[j].Start
		})

		// Build prefix-max array: maxEnd[i] = max(end) for group[0..i].
		// Syndromic regions routinely nest, so a long early region must
		// stay visible past any short later one.
		maxEnd := make([]int64, len(group))
		maxEnd[0] = group[0].End
		for i := 1; i < len(group); i++ {
			maxEnd[i] = group[i].End
			if maxEnd[i-1] > maxEnd[i] {
				maxEnd[i] = maxEnd[i-1]
			}
		}

		idx.byChrom[chrom] = &chromIndex{regions: group, maxEnd: maxEnd}
	}
	return idx
}

// FindOverlaps returns all regions on the chromosome whose inclusive
// [Start, End] range contains pos, in ascending start order.
func (idx *Index) FindOverlaps(chrom string, pos int64) []SyndromeRegion {
	ci, ok := idx.byChrom[chrom]
	if !ok {
		return nil
	}

	// Binary search: find rightmost region with start <= pos.
	hi := sort.Search(len(ci.regions), func(i int) bool {
		return ci.regions[i].Start > pos
	})
	// hi is the first index with start > pos; candidates are [0, hi).

	var result []SyndromeRegion
	for i := hi - 1; i >= 0; i-- {
		// Prune: maxEnd[i] covers regions 0..i, so once it drops below
		// pos nothing earlier can contain pos either.
		if ci.maxEnd[i] < pos {
			break
		}
		if ci.regions[i].End >= pos {
			result = append(result, ci.regions[i])
		}
	}

	// Restore ascending start order after the reverse scan.
	for l, r := 0, len(result)-1; l < r; l, r = l+1, r-1 {
		result[l], result[r] = result[r], result[l]
	}
	return result
}

// RegionCount returns the total number of indexed regions.
func (idx *Index) RegionCount() int {
	n := 0
	for _, ci := range idx.byChrom {
		n += len(ci.regions)
	}
	return n
}
