package models

type Contact struct {
	Email        string `json:"email" mapstructure:"email"`
	Github       string `json:"github" mapstructure:"github"`
	GithubSchool string `json:"githubSchool,omitempty" mapstructure:"githubSchool"`
	Telegram     string `json:"telegram,omitempty" mapstructure:"telegram"`
	LinkedIn     string `json:"linkedin,omitempty" mapstructure:"linkedin"`
}

type Project struct {
	Title       string `json:"title" mapstructure:"title"`
	Link        string `json:"link,omitempty" mapstructure:"link"`
	Period      string `json:"period,omitempty" mapstructure:"period"`
	Description string `json:"description,omitempty" mapstructure:"description"`
	Image       string `json:"image,omitempty" mapstructure:"image"`
	Status      string `json:"status,omitempty" mapstructure:"status"` // "ongoing" | "maintenance" | "completed" | "archived"
}

type Experience struct {
	Role        string   `json:"role" mapstructure:"role"`
	Company     string   `json:"company" mapstructure:"company"`
	Period      string   `json:"period" mapstructure:"period"`
	Website     string   `json:"website,omitempty" mapstructure:"website"`
	Description []string `json:"description" mapstructure:"description"`
}

type Leadership struct {
	Role         string   `json:"role" mapstructure:"role"`
	Organization string   `json:"organization" mapstructure:"organization"`
	Period       string   `json:"period" mapstructure:"period"`
	Website      string   `json:"website,omitempty" mapstructure:"website"`
	Description  []string `json:"description" mapstructure:"description"`
}

type Education struct {
	Degree      string   `json:"degree" mapstructure:"degree"`
	Institution string   `json:"institution" mapstructure:"institution"`
	Period      string   `json:"period" mapstructure:"period"`
	Website     string   `json:"website,omitempty" mapstructure:"website"`
	Details     []string `json:"details" mapstructure:"details"`
}

// Skill level: 1 Beginner, 2 Intermediate, 3 Advanced, 4 Expert.
type Skill struct {
	Name  string `json:"name" mapstructure:"name"`
	Level int    `json:"level" mapstructure:"level"`
}

type SkillCategory struct {
	Title  string  `json:"title" mapstructure:"title"`
	Skills []Skill `json:"skills" mapstructure:"skills"`
}

type Hobby struct {
	Name        string `json:"name" mapstructure:"name"`
	Image       string `json:"image,omitempty" mapstructure:"image"`
	Description string `json:"description,omitempty" mapstructure:"description"`
}

// Resume is the profile rendered by the site and fed to the chat assistant.
type Resume struct {
	Name           string          `json:"name" mapstructure:"name"`
	Title          string          `json:"title" mapstructure:"title"`
	Contact        Contact         `json:"contact" mapstructure:"contact"`
	About          string          `json:"about" mapstructure:"about"`
	CoverLetter    []string        `json:"coverLetter,omitempty" mapstructure:"coverLetter"`
	CoverLetterURL string          `json:"coverLetterUrl,omitempty" mapstructure:"coverLetterUrl"`
	Projects       []Project       `json:"projects" mapstructure:"projects"`
	Experience     []Experience    `json:"experience" mapstructure:"experience"`
	Leadership     []Leadership    `json:"leadership" mapstructure:"leadership"`
	Education      []Education     `json:"education" mapstructure:"education"`
	Skills         []SkillCategory `json:"skills" mapstructure:"skills"`
	Hobbies        []Hobby         `json:"hobbies,omitempty" mapstructure:"hobbies"`
	ResumeURL      string          `json:"resumeUrl" mapstructure:"resumeUrl"`
}
