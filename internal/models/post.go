package models

import (
	"encoding/json"
	"time"
)

type Slug struct {
	Current string `json:"current"`
}

type ImageDimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type ImageMetadata struct {
	LQIP       string           `json:"lqip,omitempty"`
	Dimensions *ImageDimensions `json:"dimensions,omitempty"`
}

type ImageAsset struct {
	ID       string         `json:"_id"`
	URL      string         `json:"url"`
	Metadata *ImageMetadata `json:"metadata,omitempty"`
}

type PostImage struct {
	Asset *ImageAsset `json:"asset,omitempty"`
	Alt   string      `json:"alt,omitempty"`
}

type Category struct {
	Title string `json:"title"`
}

type Author struct {
	Name  string          `json:"name"`
	Image json.RawMessage `json:"image,omitempty"`
	Bio   json.RawMessage `json:"bio,omitempty"`
}

// Post is a blog post as returned by the content backend. Body is kept as
// raw portable text for the front end to render.
type Post struct {
	ID          string          `json:"_id"`
	Title       string          `json:"title"`
	Slug        Slug            `json:"slug"`
	PublishedAt time.Time       `json:"publishedAt"`
	Excerpt     string          `json:"excerpt,omitempty"`
	MainImage   *PostImage      `json:"mainImage,omitempty"`
	Categories  []Category      `json:"categories,omitempty"`
	Author      *Author         `json:"author,omitempty"`
	Body        json.RawMessage `json:"body,omitempty"`

	// CoverURL is filled by the server: the CDN image or a stock fallback.
	CoverURL string `json:"coverUrl,omitempty"`
}

// PostListResponse is the filtered blog index.
type PostListResponse struct {
	Posts      []Post   `json:"posts"`
	Featured   *Post    `json:"featured,omitempty"`
	Categories []string `json:"categories"`
	Count      int      `json:"count"`
}

type PostDetailResponse struct {
	Post    Post   `json:"post"`
	Recent  []Post `json:"recent"`
	Related []Post `json:"related"`
}
