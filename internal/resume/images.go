package resume

import (
	"encoding/base64"
	"strings"
)

// EncodeImagePath obscures an image location as reversed base64. It only
// keeps the raw paths out of page markup and offers no protection.
func EncodeImagePath(path string) string {
	return reverse(base64.StdEncoding.EncodeToString([]byte(path)))
}

func DecodeImagePath(encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(reverse(encoded))
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func reverse(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

// Images maps public image keys to encoded locations.
type Images map[string]string

func NewImages(paths map[string]string) Images {
	images := make(Images, len(paths))
	for key, path := range paths {
		images[key] = EncodeImagePath(path)
	}
	return images
}

// URL resolves a key. Unknown keys and undecodable entries report false.
func (im Images) URL(key string) (string, bool) {
	encoded, ok := im[strings.TrimSpace(key)]
	if !ok {
		return "", false
	}
	path, err := DecodeImagePath(encoded)
	if err != nil || path == "" {
		return "", false
	}
	return path, true
}

// DefaultImages is the image table of the portfolio pages.
var DefaultImages = NewImages(map[string]string{
	"profile_black": "/images/profile/ChongKokYang_Black.png",
	"profile_white": "/images/profile/ChongKokYang_White.png",
	"profile_chill": "/images/profile/ChongKokyang_chill.jpeg",

	"proj_1":  "https://images.unsplash.com/photo-1486406146926-c627a92ad1ab?w=400&h=250&fit=crop",
	"proj_2":  "https://images.unsplash.com/photo-1581092160562-40aa08e78837?w=400&h=250&fit=crop",
	"proj_3":  "https://images.unsplash.com/photo-1532094349884-543bc11b234d?w=400&h=250&fit=crop",
	"proj_4":  "https://images.unsplash.com/photo-1581093458791-9f3c3900df4b?w=400&h=250&fit=crop",
	"proj_5":  "https://images.unsplash.com/photo-1581092918056-0c4c3acd3789?w=400&h=250&fit=crop",
	"proj_6":  "https://images.unsplash.com/photo-1581092162384-8987c1d64718?w=400&h=250&fit=crop",
	"proj_7":  "https://images.unsplash.com/photo-1550751827-4bd374c3f58b?w=400&h=250&fit=crop",
	"proj_8":  "https://images.unsplash.com/photo-1576086213369-97a306d36557?w=400&h=250&fit=crop",
	"proj_9":  "https://images.unsplash.com/photo-1551288049-bebda4e38f71?w=400&h=250&fit=crop",
	"proj_10": "https://images.unsplash.com/photo-1581091226825-a6a2a5aee158?w=400&h=250&fit=crop",

	"hobby_coding":   "https://images.unsplash.com/photo-1461749280684-dccba630e2f6?w=500&h=300&fit=crop",
	"hobby_debate":   "https://images.unsplash.com/photo-1573164713714-d95e436ab8d6?w=500&h=300&fit=crop",
	"hobby_movies":   "https://images.unsplash.com/photo-1489599849927-2ee91cede3ba?w=500&h=300&fit=crop",
	"hobby_pingpong": "https://images.unsplash.com/photo-1609710228159-0fa9bd7c0827?w=500&h=300&fit=crop",
	"hobby_running":  "https://images.unsplash.com/photo-1552674605-db6ffd4facb5?w=500&h=300&fit=crop",
	"hobby_mahjong":  "https://images.unsplash.com/photo-1566140967404-b8b3932483f5?w=500&h=300&fit=crop",
	"hobby_reading":  "https://images.unsplash.com/photo-1481627834876-b7833e8f5570?w=500&h=300&fit=crop",
})
