package resume

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	r, err := Load("testdata/resume.yaml")
	require.NoError(t, err)

	assert.Equal(t, "Test Owner", r.Name)
	assert.Equal(t, "owner@example.com", r.Contact.Email)
	assert.Equal(t, "https://www.linkedin.com/in/owner/", r.Contact.LinkedIn)
	assert.Equal(t, "/files/resume.pdf", r.ResumeURL)
	require.Len(t, r.Skills, 1)
	assert.Equal(t, 4, r.Skills[0].Skills[0].Level)
	require.Len(t, r.Projects, 1)
	assert.Equal(t, "completed", r.Projects[0].Status)
}

func TestLoad_SiteProfile(t *testing.T) {
	r, err := Load("../../config/resume.json")
	require.NoError(t, err)

	assert.Equal(t, "Chong Kok Yang", r.Name)
	assert.NotEmpty(t, r.Experience)
	assert.NotEmpty(t, r.Education)
	for _, h := range r.Hobbies {
		if h.Image != "" {
			_, ok := DefaultImages.URL(h.Image)
			assert.True(t, ok, h.Image)
		}
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"missing file", "testdata/nope.json"},
		{"missing name", "testdata/invalid.json"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(tc.path)
			assert.Error(t, err)
		})
	}
}

func TestSystemInstruction(t *testing.T) {
	r, err := Load("testdata/resume.yaml")
	require.NoError(t, err)

	prompt := SystemInstruction(r, "https://portfolio.example.com")

	for _, want := range []string{
		"chatbot assistant for Test Owner's personal portfolio website",
		"## Contact\nEmail: owner@example.com",
		"Resume (PDF): https://portfolio.example.com/files/resume.pdf",
		"- BEng, Example University (2022 - 2026)\n  - Data analytics",
		"Link: https://portfolio.example.com/projects/cost-db",
		"- Data: Python (Expert), SQL",
		"## Hobbies\n- Running",
	} {
		assert.Contains(t, prompt, want)
	}
	assert.NotContains(t, prompt, "Cover letter")
	assert.NotContains(t, prompt, "## Experience")
	assert.False(t, strings.HasSuffix(prompt, "\n"))
}

func TestAbsoluteURL(t *testing.T) {
	tests := []struct {
		site string
		link string
		want string
	}{
		{"https://site.dev", "/files/cv.pdf", "https://site.dev/files/cv.pdf"},
		{"https://site.dev/", "files/cv.pdf", "https://site.dev/files/cv.pdf"},
		{"https://site.dev/portfolio", "cv.pdf", "https://site.dev/portfolio/cv.pdf"},
		{"https://site.dev", "https://cdn.dev/cv.pdf", "https://cdn.dev/cv.pdf"},
		{"https://site.dev", "#", ""},
		{"https://site.dev", "", ""},
		{"", "/files/cv.pdf", "/files/cv.pdf"},
	}

	for _, tc := range tests {
		t.Run(tc.site+" "+tc.link, func(t *testing.T) {
			assert.Equal(t, tc.want, AbsoluteURL(tc.site, tc.link))
		})
	}
}

func TestCannedTexts(t *testing.T) {
	r, err := Load("testdata/resume.yaml")
	require.NoError(t, err)

	assert.Equal(t,
		"Hi! I'm Test Owner. For questions about my background, experience, and projects, please contact me directly.",
		OfflineGreeting(r))
	assert.Equal(t,
		"Hello! I'm an AI assistant. How can I help you learn more about Test Owner's background and experience?",
		LiveGreeting(r))
	assert.Equal(t,
		"For detailed questions about Test Owner, please contact me directly:\n\n📧 owner@example.com\n💼 LinkedIn: https://www.linkedin.com/in/owner/",
		ContactReply(r))

	r.Contact.LinkedIn = ""
	assert.Contains(t, ContactCard(r), "LinkedIn: Not available")

	profile := ChatProfile(r, "https://site.dev")
	assert.Equal(t, "Test Owner", profile.Name)
	assert.Contains(t, profile.RateLimitedReply, "owner@example.com")
	assert.Equal(t, SystemInstruction(r, "https://site.dev"), profile.SystemInstruction)
}
