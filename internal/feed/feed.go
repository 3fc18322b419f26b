// Package feed holds the social activity feed.
package feed

import (
	"errors"
	"fmt"
	"time"

	"github.com/Tiliavir/trivial-day-planner/internal/model"
)

// ErrNotFound is returned when a post id is not in the feed.
var ErrNotFound = errors.New("post not found")

// ShareNotice is shown in place of a real share dialog.
const ShareNotice = "Share functionality would be implemented here!"

// Feed is an ordered list of posts.
type Feed struct {
	posts []model.Post
}

func New(posts []model.Post) *Feed {
	f := &Feed{posts: make([]model.Post, len(posts))}
	copy(f.posts, posts)
	return f
}

// Posts returns a copy of the feed in display order.
func (f *Feed) Posts() []model.Post {
	out := make([]model.Post, len(f.posts))
	copy(out, f.posts)
	return out
}

// ToggleLike flips the like state of a post and moves its count by one.
func (f *Feed) ToggleLike(id string) (model.Post, error) {
	for i := range f.posts {
		p := &f.posts[i]
		if p.ID != id {
			continue
		}
		if p.Liked {
			p.Likes--
		} else {
			p.Likes++
		}
		p.Liked = !p.Liked
		return *p, nil
	}
	return model.Post{}, fmt.Errorf("%w: %q", ErrNotFound, id)
}

// RelativeTime renders ts relative to now: "Just now", "3h ago" or "2d ago".
func RelativeTime(now, ts time.Time) string {
	hours := int(now.Sub(ts) / time.Hour)
	switch {
	case hours < 1:
		return "Just now"
	case hours < 24:
		return fmt.Sprintf("%dh ago", hours)
	default:
		return fmt.Sprintf("%dd ago", hours/24)
	}
}
