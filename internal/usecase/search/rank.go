package search

import (
	"sort"

	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/request"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/result"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/scorer"
)

// rank gates, scores and sorts candidates. The sort is stable so equal scores
// keep the store's retrieval order.
func rank[T any](
	candidates []T, query string,
	relevant func(T) bool, score func(T) scorer.Score,
) []result.Ranked[T] {
	ranked := make([]result.Ranked[T], 0, len(candidates))
	for _, c := range candidates {
		if !relevant(c) {
			continue
		}
		s := score(c)
		ranked = append(ranked, result.Ranked[T]{
			Item:    c,
			Matches: s.Matches,
			Score:   s.Total,
			Query:   query,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// paginate slices the page q asks for out of the ranked set.
func paginate[T any](ranked []result.Ranked[T], q request.Search) result.Page[T] {
	start := min(q.Skip(), len(ranked))
	end := min(q.Skip()+q.Size(), len(ranked))

	data := make([]result.Ranked[T], end-start)
	copy(data, ranked[start:end])

	return result.Page[T]{
		Data:       data,
		Pagination: result.NewMeta(len(ranked), q.Page(), q.Size()),
	}
}
