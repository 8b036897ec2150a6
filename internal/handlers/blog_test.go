package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-backend/internal/models"
)

var blogNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func testPosts() []models.Post {
	return []models.Post{
		{
			ID:          "p1",
			Title:       "Cost estimation with Python",
			Slug:        models.Slug{Current: "cost-estimation"},
			PublishedAt: blogNow.Add(-2 * time.Hour),
			Categories:  []models.Category{{Title: "Data"}},
		},
		{
			ID:          "p2",
			Title:       "Site diaries",
			Slug:        models.Slug{Current: "site-diaries"},
			PublishedAt: blogNow.AddDate(0, -2, 0),
			Categories:  []models.Category{{Title: "Construction"}},
		},
		{
			ID:          "p3",
			Title:       "Dashboards for QS",
			Slug:        models.Slug{Current: "dashboards"},
			PublishedAt: blogNow.AddDate(-2, 0, 0),
			Categories:  []models.Category{{Title: "Data"}},
		},
	}
}

func newTestBlogHandler(posts *fakePosts) *BlogHandler {
	h := NewBlogHandler(posts, nil)
	h.now = func() time.Time { return blogNow }
	return h
}

func TestBlogHandler_List(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		wantFeatured string
		wantPosts    []string
		wantCount    int
	}{
		{"unfiltered features newest", "", "p1", []string{"p2", "p3"}, 3},
		{"category", "?cat=Data", "", []string{"p1", "p3"}, 2},
		{"time window", "?time=month", "", []string{"p1"}, 1},
		{"search", "?q=diaries", "", []string{"p2"}, 1},
		{"no match", "?q=nothing", "", []string{}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestBlogHandler(&fakePosts{posts: testPosts()})
			rr := httptest.NewRecorder()
			h.List(rr, httptest.NewRequest(http.MethodGet, "/api/v1/posts"+tc.query, nil))
			require.Equal(t, http.StatusOK, rr.Code)

			var resp models.PostListResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))

			if tc.wantFeatured == "" {
				assert.Nil(t, resp.Featured)
			} else {
				require.NotNil(t, resp.Featured)
				assert.Equal(t, tc.wantFeatured, resp.Featured.ID)
			}

			ids := []string{}
			for _, p := range resp.Posts {
				ids = append(ids, p.ID)
				assert.NotEmpty(t, p.CoverURL)
			}
			assert.Equal(t, tc.wantPosts, ids)
			assert.Equal(t, tc.wantCount, resp.Count)
			assert.Equal(t, []string{"Construction", "Data"}, resp.Categories)
		})
	}
}

func TestBlogHandler_ListErrors(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		rr := httptest.NewRecorder()
		NewBlogHandler(nil, nil).List(rr, httptest.NewRequest(http.MethodGet, "/api/v1/posts", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})

	t.Run("upstream failure", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h := newTestBlogHandler(&fakePosts{listErr: errors.New("sanity down")})
		h.List(rr, httptest.NewRequest(http.MethodGet, "/api/v1/posts", nil))
		assert.Equal(t, http.StatusBadGateway, rr.Code)
		assert.NotContains(t, rr.Body.String(), "sanity down")
	})
}

func TestBlogHandler_Get(t *testing.T) {
	all := testPosts()
	posts := &fakePosts{posts: all, recent: all[1:], related: all[2:]}
	h := newTestBlogHandler(posts)

	rr := httptest.NewRecorder()
	req := withURLParams(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"slug": "cost-estimation"})
	h.Get(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp models.PostDetailResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "p1", resp.Post.ID)
	assert.NotEmpty(t, resp.Post.CoverURL)
	assert.Len(t, resp.Recent, 2)
	require.Len(t, resp.Related, 1)
	assert.Equal(t, "p3", resp.Related[0].ID)
	assert.Equal(t, []string{"Data"}, posts.relatedTo)

	rr = httptest.NewRecorder()
	h.Get(rr, withURLParams(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"slug": "missing"}))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
