package resume

import (
	"fmt"
	"net/url"
	"strings"

	"portfolio-backend/internal/chat"
	"portfolio-backend/internal/models"
)

var skillLevels = map[int]string{
	1: "Beginner",
	2: "Intermediate",
	3: "Advanced",
	4: "Expert",
}

// SystemInstruction is the prompt every chat session starts with. Asset links
// are made absolute against siteURL so the model can hand them out verbatim.
func SystemInstruction(r *models.Resume, siteURL string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are a helpful and friendly chatbot assistant for %s's personal portfolio website.\n", r.Name)
	fmt.Fprintf(&b, "Your goal is to answer questions about %s based on their resume and professional background.\n", r.Name)
	b.WriteString("Be professional, concise, and helpful. If a question is outside the scope of the resume data below, politely decline to answer.\n")
	b.WriteString("Use short paragraphs and bullet lists. To point at a part of the site, use markdown links such as [Projects](/#projects) or [Experience](/#experience).\n")

	section(&b, "Profile")
	fmt.Fprintf(&b, "Name: %s\nTitle: %s\n", r.Name, r.Title)
	if r.About != "" {
		fmt.Fprintf(&b, "About: %s\n", r.About)
	}

	section(&b, "Contact")
	fmt.Fprintf(&b, "Email: %s\n", r.Contact.Email)
	line(&b, "GitHub", r.Contact.Github)
	line(&b, "GitHub (school)", r.Contact.GithubSchool)
	line(&b, "LinkedIn", r.Contact.LinkedIn)
	line(&b, "Telegram", r.Contact.Telegram)

	resumeURL := AbsoluteURL(siteURL, r.ResumeURL)
	coverURL := AbsoluteURL(siteURL, r.CoverLetterURL)
	if resumeURL != "" || coverURL != "" {
		section(&b, "Downloads")
		line(&b, "Resume (PDF)", resumeURL)
		line(&b, "Cover letter (PDF)", coverURL)
	}

	if len(r.Education) > 0 {
		section(&b, "Education")
		for _, e := range r.Education {
			fmt.Fprintf(&b, "- %s, %s (%s)\n", e.Degree, e.Institution, e.Period)
			for _, d := range e.Details {
				fmt.Fprintf(&b, "  - %s\n", d)
			}
		}
	}

	if len(r.Experience) > 0 {
		section(&b, "Experience")
		for _, e := range r.Experience {
			fmt.Fprintf(&b, "- %s at %s (%s)\n", e.Role, e.Company, e.Period)
			for _, d := range e.Description {
				fmt.Fprintf(&b, "  - %s\n", d)
			}
		}
	}

	if len(r.Leadership) > 0 {
		section(&b, "Leadership")
		for _, l := range r.Leadership {
			fmt.Fprintf(&b, "- %s, %s (%s)\n", l.Role, l.Organization, l.Period)
			for _, d := range l.Description {
				fmt.Fprintf(&b, "  - %s\n", d)
			}
		}
	}

	if len(r.Projects) > 0 {
		section(&b, "Projects")
		for _, p := range r.Projects {
			b.WriteString("- " + p.Title)
			if p.Period != "" {
				b.WriteString(" (" + p.Period + ")")
			}
			if p.Status != "" {
				b.WriteString(" [" + p.Status + "]")
			}
			if p.Description != "" {
				b.WriteString(": " + p.Description)
			}
			if link := AbsoluteURL(siteURL, p.Link); link != "" {
				b.WriteString(" Link: " + link)
			}
			b.WriteString("\n")
		}
	}

	if len(r.Skills) > 0 {
		section(&b, "Skills")
		for _, c := range r.Skills {
			names := make([]string, 0, len(c.Skills))
			for _, s := range c.Skills {
				if lvl, ok := skillLevels[s.Level]; ok {
					names = append(names, s.Name+" ("+lvl+")")
				} else {
					names = append(names, s.Name)
				}
			}
			fmt.Fprintf(&b, "- %s: %s\n", c.Title, strings.Join(names, ", "))
		}
	}

	if len(r.Hobbies) > 0 {
		section(&b, "Hobbies")
		for _, h := range r.Hobbies {
			if h.Description != "" {
				fmt.Fprintf(&b, "- %s: %s\n", h.Name, h.Description)
			} else {
				fmt.Fprintf(&b, "- %s\n", h.Name)
			}
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func section(b *strings.Builder, title string) {
	b.WriteString("\n## " + title + "\n")
}

func line(b *strings.Builder, label, value string) {
	if value != "" {
		fmt.Fprintf(b, "%s: %s\n", label, value)
	}
}

// AbsoluteURL resolves link against siteURL. Placeholders ("" and "#") yield
// an empty string; absolute links are returned unchanged.
func AbsoluteURL(siteURL, link string) string {
	link = strings.TrimSpace(link)
	if link == "" || link == "#" {
		return ""
	}

	ref, err := url.Parse(link)
	if err != nil {
		return ""
	}
	if ref.IsAbs() || siteURL == "" {
		return link
	}

	base, err := url.Parse(siteURL)
	if err != nil || !base.IsAbs() {
		return link
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	return base.ResolveReference(ref).String()
}

func OfflineGreeting(r *models.Resume) string {
	return fmt.Sprintf("Hi! I'm %s. For questions about my background, experience, and projects, please contact me directly.", r.Name)
}

func LiveGreeting(r *models.Resume) string {
	return fmt.Sprintf("Hello! I'm an AI assistant. How can I help you learn more about %s's background and experience?", r.Name)
}

// ContactCard is the short block of direct contact channels.
func ContactCard(r *models.Resume) string {
	linkedin := r.Contact.LinkedIn
	if linkedin == "" {
		linkedin = "Not available"
	}
	return fmt.Sprintf("📧 %s\n💼 LinkedIn: %s", r.Contact.Email, linkedin)
}

func ContactReply(r *models.Resume) string {
	return fmt.Sprintf("For detailed questions about %s, please contact me directly:\n\n%s", r.Name, ContactCard(r))
}

func RateLimitedReply(r *models.Resume) string {
	return "I'm answering a lot of questions right now. Please try again in a minute, or reach me directly:\n\n" + ContactCard(r)
}

// ChatProfile gathers everything a conversation needs about the owner.
func ChatProfile(r *models.Resume, siteURL string) chat.Profile {
	return chat.Profile{
		Name:              r.Name,
		SystemInstruction: SystemInstruction(r, siteURL),
		LiveGreeting:      LiveGreeting(r),
		OfflineGreeting:   OfflineGreeting(r),
		ContactReply:      ContactReply(r),
		ContactCard:       ContactCard(r),
		RateLimitedReply:  RateLimitedReply(r),
	}
}
