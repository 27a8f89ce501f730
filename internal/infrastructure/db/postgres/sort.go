package postgres

import (
	"fmt"

	"github.com/baechuer/vidshare/internal/domain"
)

// Sort keys accepted by the API mapped to SQL expressions. The maps are the only
// source of ORDER BY text, so request values never reach the query.
var (
	videoSortCols = map[string]string{
		"createdAt": "v.created_at",
		"updatedAt": "v.updated_at",
		"title":     "v.title",
		"duration":  "v.duration",
		"views":     "views_count",
	}
	commentSortCols = map[string]string{
		"createdAt": "c.created_at",
		"updatedAt": "c.updated_at",
	}
	tweetSortCols = map[string]string{
		"createdAt": "t.created_at",
		"updatedAt": "t.updated_at",
	}
	playlistSortCols = map[string]string{
		"createdAt": "p.created_at",
		"updatedAt": "p.updated_at",
		"name":      "p.name",
	}
	channelSortCols = map[string]string{
		"createdAt": "r.created_at",
		"username":  "u.username",
	}
)

// orderBy renders the ORDER BY clause with tieBreak ascending as the final key.
func orderBy(req domain.PageRequest, cols map[string]string, tieBreak string) (string, error) {
	col, ok := cols[req.SortBy]
	if !ok {
		return "", domain.ErrValidationMeta("invalid query param", map[string]string{"sortBy": "unsupported"})
	}
	dir := "DESC"
	if req.SortDir == domain.SortAsc {
		dir = "ASC"
	}
	return fmt.Sprintf("ORDER BY %s %s, %s ASC", col, dir, tieBreak), nil
}
