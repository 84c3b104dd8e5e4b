package comment

import (
	"sort"

	"github.com/google/uuid"
)

// Thread is a top-level comment with its replies in chronological order.
type Thread struct {
	Comment Comment   `json:"comment"`
	Replies []Comment `json:"replies"`
}

// BuildThreads groups a flat comment list into single-level threads.
// Top-level comments keep the input order; replies are sorted oldest first.
// A reply whose parent is missing from the list, or whose parent is itself a
// reply (stored rows can predate the write-time re-parenting), is promoted
// to top level.
func BuildThreads(comments []Comment) []Thread {
	present := make(map[uuid.UUID]bool, len(comments))
	for _, c := range comments {
		present[c.ID] = true
	}

	topLevel := make(map[uuid.UUID]bool, len(comments))
	for _, c := range comments {
		if c.ParentCommentID == nil || !present[*c.ParentCommentID] {
			topLevel[c.ID] = true
		}
	}

	replies := make(map[uuid.UUID][]Comment)
	var threads []Thread
	index := make(map[uuid.UUID]int)

	for _, c := range comments {
		if c.ParentCommentID != nil && topLevel[*c.ParentCommentID] {
			replies[*c.ParentCommentID] = append(replies[*c.ParentCommentID], c)
			continue
		}
		index[c.ID] = len(threads)
		threads = append(threads, Thread{Comment: c})
	}

	for parentID, list := range replies {
		pos, ok := index[parentID]
		if !ok {
			continue
		}
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		})
		threads[pos].Replies = list
	}

	return threads
}

// SortForDisplay orders threads for rendering: pinned threads first, then
// newest first within each group.
func SortForDisplay(threads []Thread) {
	sort.SliceStable(threads, func(i, j int) bool {
		a, b := threads[i].Comment, threads[j].Comment
		if a.IsPinned != b.IsPinned {
			return a.IsPinned
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}
