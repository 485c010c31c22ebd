package site

import "sort"

// SortByDateDesc returns the pages in reverse-chronological order. The sort
// is stable: pages sharing a date keep their original relative order, which
// keeps template collections deterministic across builds.
//
// Non-post pages go through the same normalization even though ordering is
// rarely meaningful for undated documents; every collection a template sees
// is sorted by the same rule.
func SortByDateDesc(pages []Page) []Page {
	sorted := make([]Page, len(pages))
	copy(sorted, pages)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Frontmatter.Date.After(sorted[j].Frontmatter.Date)
	})
	return sorted
}

// Normalize returns the frontmatter-only views of pages in
// reverse-chronological order.
func Normalize(pages []Page) []map[string]any {
	sorted := SortByDateDesc(pages)
	metas := make([]map[string]any, 0, len(sorted))
	for _, p := range sorted {
		metas = append(metas, p.Meta())
	}
	return metas
}
