package domain

import "time"

// Image is one candidate image attached to a post.
type Image struct {
	Width  int
	Height int
	URL    string
	Type   string // MIME type, e.g. "image/jpeg"
}

// Post is a single blog post as shown in the card grid.
// Posts are treated as immutable values once fetched.
type Post struct {
	ID          int
	Title       string
	Description string // Plain text, HTML stripped
	Author      string
	Images      []Image
	Date        time.Time // Zero when the source omits it
	Link        string    // Canonical post URL
}

// LeadImage returns the first candidate image, if the post has any.
func (p Post) LeadImage() (Image, bool) {
	if len(p.Images) == 0 {
		return Image{}, false
	}
	return p.Images[0], true
}

// PostList is an ordered, deduplicated sequence of posts.
// Order is first-arrival order across pages.
type PostList []Post

// Merge appends the posts of incoming whose IDs are not already in existing,
// preserving incoming's relative order. An empty incoming page is a no-op.
// Merging the same page twice yields the same list.
func Merge(existing PostList, incoming []Post) PostList {
	if len(incoming) == 0 {
		return existing
	}

	seen := make(map[int]struct{}, len(existing)+len(incoming))
	for _, p := range existing {
		seen[p.ID] = struct{}{}
	}

	out := make(PostList, len(existing), len(existing)+len(incoming))
	copy(out, existing)
	for _, p := range incoming {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}

// Contains reports whether a post with the given ID is in the list.
func (l PostList) Contains(id int) bool {
	return l.Index(id) >= 0
}

// Index returns the position of the post with the given ID, or -1.
func (l PostList) Index(id int) int {
	for i, p := range l {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// IDs returns the post IDs in list order.
func (l PostList) IDs() []int {
	ids := make([]int, len(l))
	for i, p := range l {
		ids[i] = p.ID
	}
	return ids
}

// PageCursor is the 1-based page counter driving pagination.
// It only moves forward; Reset starts a fresh list.
type PageCursor struct {
	page int
}

// NewPageCursor returns a cursor positioned at page 1.
func NewPageCursor() PageCursor {
	return PageCursor{page: 1}
}

// Page returns the current page number.
func (c PageCursor) Page() int {
	if c.page < 1 {
		return 1
	}
	return c.page
}

// Advance moves the cursor forward by exactly one page and returns it.
func (c *PageCursor) Advance() int {
	c.page = c.Page() + 1
	return c.page
}

// Reset moves the cursor back to the first page for a new list.
func (c *PageCursor) Reset() {
	c.page = 1
}
