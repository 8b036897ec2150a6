package blog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"portfolio-backend/internal/models"
)

func TestHeroImage(t *testing.T) {
	// 'a'+'b'+'c' = 294, 294 % 6 = 0
	assert.Equal(t, techHeroes[0], HeroImage("abc"))
	// 'p'+'1' = 161, 161 % 6 = 5
	assert.Equal(t, techHeroes[5], HeroImage("p1"))
	assert.Equal(t, HeroImage("some-id"), HeroImage("some-id"))
}

func TestCoverURL(t *testing.T) {
	cdn := func(ref string, width int) string {
		if ref == "image-x-10x10-jpg" {
			return "https://cdn.example/x.jpg"
		}
		return ""
	}

	withAsset := func(id, url string) models.Post {
		return models.Post{ID: "p1", MainImage: &models.PostImage{Asset: &models.ImageAsset{ID: id, URL: url}}}
	}

	assert.Equal(t, "https://cdn.example/x.jpg", CoverURL(withAsset("image-x-10x10-jpg", "https://raw/x.jpg"), cdn))
	assert.Equal(t, "https://raw/y.jpg", CoverURL(withAsset("bad-ref", "https://raw/y.jpg"), cdn))
	assert.Equal(t, HeroImage("p1"), CoverURL(models.Post{ID: "p1"}, cdn))
	assert.Equal(t, HeroImage("p1"), CoverURL(models.Post{ID: "p1", MainImage: &models.PostImage{}}, nil))

	posts := WithCovers([]models.Post{{ID: "abc"}}, cdn)
	assert.Equal(t, techHeroes[0], posts[0].CoverURL)
}
