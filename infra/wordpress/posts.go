package wordpress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/CrestNiraj12/cardfeed/app"
	"github.com/CrestNiraj12/cardfeed/domain"
)

// codeInvalidPage is what WordPress answers (with a 400) for a page past the end.
const codeInvalidPage = "rest_post_invalid_page_number"

// postService implements app.PostSource using the WordPress posts endpoint.
type postService struct {
	client   *Client
	category int // 0 means all categories
}

// NewPostService creates a PostSource backed by /posts. A positive
// category restricts results to that category ID.
func NewPostService(client *Client, category int) *postService {
	return &postService{client: client, category: category}
}

// wpPost is the subset of the WordPress post entity we care about.
type wpPost struct {
	ID      int        `json:"id"`
	DateGMT string     `json:"date_gmt"`
	Link    string     `json:"link"`
	Title   wpRendered `json:"title"`
	Excerpt wpRendered `json:"excerpt"`
	Yoast   *yoastHead `json:"yoast_head_json"`
}

type wpRendered struct {
	Rendered string `json:"rendered"`
}

// yoastHead is the Open Graph metadata the Yoast SEO plugin attaches.
type yoastHead struct {
	OGTitle       string    `json:"og_title"`
	OGDescription string    `json:"og_description"`
	OGImage       []ogImage `json:"og_image"`
	Author        string    `json:"author"`
}

type ogImage struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	URL    string `json:"url"`
	Type   string `json:"type"`
}

type wpError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *postService) pagePath(page, pageSize int) string {
	q := url.Values{}
	q.Set("per_page", strconv.Itoa(pageSize))
	q.Set("page", strconv.Itoa(page))
	q.Set("orderby", "date")
	q.Set("order", "desc")
	if s.category > 0 {
		q.Set("categories", strconv.Itoa(s.category))
	}
	return "/posts?" + q.Encode()
}

func (s *postService) FetchPage(ctx context.Context, page, pageSize int) ([]domain.Post, error) {
	path := s.pagePath(page, pageSize)
	endpoint := s.client.URL(path)
	if page < 1 || pageSize < 1 {
		return nil, &domain.FetchError{Page: page, URL: endpoint, Err: domain.ErrInvalidPageRequest}
	}

	start := time.Now()
	data, err := s.client.Get(ctx, path)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			if isPastLastPage(apiErr) {
				slog.Info("wordpress: page past the end", "page", page, "per_page", pageSize)
				return []domain.Post{}, nil
			}
			slog.Warn("wordpress: fetch failed", "page", page, "status", apiErr.StatusCode)
			if apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden {
				err = fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
			}
			return nil, &domain.FetchError{Page: page, URL: endpoint, StatusCode: apiErr.StatusCode, Err: err}
		}
		slog.Warn("wordpress: fetch failed", "page", page, "err", err)
		return nil, &domain.FetchError{Page: page, URL: endpoint, Err: err}
	}

	var raw []wpPost
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &domain.FetchError{Page: page, URL: endpoint, Err: fmt.Errorf("parsing posts: %w", err)}
	}
	if raw == nil {
		return nil, &domain.FetchError{Page: page, URL: endpoint, Err: errors.New("parsing posts: expected a JSON array")}
	}

	posts := mapPosts(raw)
	slog.Info("wordpress: fetched page",
		"page", page,
		"per_page", pageSize,
		"count", len(posts),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return posts, nil
}

func isPastLastPage(e *APIError) bool {
	if e.StatusCode != 400 {
		return false
	}
	var body wpError
	if err := json.Unmarshal(e.Body, &body); err != nil {
		return false
	}
	return body.Code == codeInvalidPage
}

func mapPosts(raw []wpPost) []domain.Post {
	posts := make([]domain.Post, 0, len(raw))
	for _, p := range raw {
		posts = append(posts, mapPost(p))
	}
	return posts
}

func mapPost(p wpPost) domain.Post {
	var head yoastHead
	if p.Yoast != nil {
		head = *p.Yoast
	}

	title := plainText(head.OGTitle)
	if title == "" {
		title = plainText(p.Title.Rendered)
	}
	desc := plainText(head.OGDescription)
	if desc == "" {
		desc = plainText(p.Excerpt.Rendered)
	}

	images := make([]domain.Image, 0, len(head.OGImage))
	for _, img := range head.OGImage {
		if img.URL == "" {
			continue
		}
		images = append(images, domain.Image{
			Width:  img.Width,
			Height: img.Height,
			URL:    img.URL,
			Type:   img.Type,
		})
	}

	return domain.Post{
		ID:          p.ID,
		Title:       title,
		Description: desc,
		Author:      plainText(head.Author),
		Images:      images,
		Date:        parseGMT(p.DateGMT),
		Link:        p.Link,
	}
}

// parseGMT parses WordPress's zone-less date_gmt field.
func parseGMT(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.ParseInLocation("2006-01-02T15:04:05", s, time.UTC)
	if err != nil {
		return time.Time{}
	}
	return t
}

// ForCategory returns a source for the same site restricted to category.
func (s *postService) ForCategory(category int) app.PostSource {
	if category < 0 {
		category = 0
	}
	return &postService{client: s.client, category: category}
}
