package cms

import (
	"context"
	"errors"
	"fmt"

	"portfolio-backend/internal/models"
)

const postProjection = `
  _id,
  title,
  slug,
  publishedAt,
  "excerpt": coalesce(excerpt, pt::text(body)[0..220]),
  mainImage { asset->{ _id, url, metadata { lqip, dimensions } }, alt },
  categories[]->{ title },
  author->{ name }
`

const (
	postsQuery = `*[_type == "post"] | order(publishedAt desc) {` + postProjection + `}`

	postBySlugQuery = `*[_type == "post" && slug.current == $slug][0] {
  _id,
  title,
  slug,
  publishedAt,
  excerpt,
  mainImage { asset->{ _id, url, metadata { lqip, dimensions } }, alt },
  categories[]->{ title },
  author->{ name, image, bio },
  body[] { ..., _type == "image" => { ..., asset-> } }
}`

	recentPostsQuery = `*[_type == "post" && slug.current != $slug] | order(publishedAt desc) [0..4] {` + postProjection + `}`

	relatedPostsQuery = `*[_type == "post" && slug.current != $slug && count((categories[]->title)[@ in $cats]) > 0] | order(publishedAt desc) [0..3] {` + postProjection + `}`
)

// ListPosts returns every post, newest first.
func (c *Client) ListPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := c.Query(ctx, postsQuery, nil, &posts); err != nil {
		if errors.Is(err, ErrNotFound) {
			return []models.Post{}, nil
		}
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

func (c *Client) PostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	var post models.Post
	if err := c.Query(ctx, postBySlugQuery, map[string]any{"slug": slug}, &post); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get post %q: %w", slug, err)
	}
	return &post, nil
}

// RecentPosts returns up to five of the newest posts other than slug.
func (c *Client) RecentPosts(ctx context.Context, slug string) ([]models.Post, error) {
	return c.list(ctx, recentPostsQuery, map[string]any{"slug": slug})
}

// RelatedPosts returns up to four posts sharing a category with cats.
func (c *Client) RelatedPosts(ctx context.Context, slug string, cats []string) ([]models.Post, error) {
	if len(cats) == 0 {
		return []models.Post{}, nil
	}
	return c.list(ctx, relatedPostsQuery, map[string]any{"slug": slug, "cats": cats})
}

func (c *Client) list(ctx context.Context, query string, params map[string]any) ([]models.Post, error) {
	var posts []models.Post
	if err := c.Query(ctx, query, params, &posts); err != nil {
		if errors.Is(err, ErrNotFound) {
			return []models.Post{}, nil
		}
		return nil, err
	}
	return posts, nil
}
