package blog

import "portfolio-backend/internal/models"

var techHeroes = []string{
	"https://images.unsplash.com/photo-1517694712202-14dd9538aa97?w=800&h=500&fit=crop&q=80&auto=format",
	"https://images.unsplash.com/photo-1461749280684-dccba630e2f6?w=800&h=500&fit=crop&q=80&auto=format",
	"https://images.unsplash.com/photo-1518770660439-4636190af475?w=800&h=500&fit=crop&q=80&auto=format",
	"https://images.unsplash.com/photo-1555066931-4365d14bab8c?w=800&h=500&fit=crop&q=80&auto=format",
	"https://images.unsplash.com/photo-1484417894907-623942c8ee29?w=800&h=500&fit=crop&q=80&auto=format",
	"https://images.unsplash.com/photo-1526374965328-7f61d4dc18c5?w=800&h=500&fit=crop&q=80&auto=format",
}

// HeroImage picks a stock cover for a post without one. The same id always
// gets the same image.
func HeroImage(id string) string {
	sum := 0
	for _, r := range id {
		sum += int(r)
	}
	return techHeroes[sum%len(techHeroes)]
}

// ImageURLFunc builds a CDN URL for an asset reference at the given width.
type ImageURLFunc func(ref string, width int) string

const coverWidth = 760

// WithCovers sets CoverURL on every post.
func WithCovers(posts []models.Post, imageURL ImageURLFunc) []models.Post {
	for i := range posts {
		posts[i].CoverURL = CoverURL(posts[i], imageURL)
	}
	return posts
}

func CoverURL(p models.Post, imageURL ImageURLFunc) string {
	if p.MainImage != nil && p.MainImage.Asset != nil {
		if imageURL != nil {
			if u := imageURL(p.MainImage.Asset.ID, coverWidth); u != "" {
				return u
			}
		}
		if p.MainImage.Asset.URL != "" {
			return p.MainImage.Asset.URL
		}
	}
	return HeroImage(p.ID)
}
