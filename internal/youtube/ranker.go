package youtube

import (
	"sort"

	"github.com/creatorlens/creatorlens-go/internal/model"
)

// TopByViews returns the limit videos with the highest view counts, ties
// broken by original (upstream) order. The input slice is not modified.
func TopByViews(videos []model.Video, limit int) []model.Video {
	if limit <= 0 {
		return []model.Video{}
	}

	ranked := make([]model.Video, len(videos))
	copy(ranked, videos)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ViewCount > ranked[j].ViewCount
	})

	if limit < len(ranked) {
		ranked = ranked[:limit]
	}
	return ranked
}
