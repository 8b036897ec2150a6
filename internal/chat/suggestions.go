package chat

import (
	"strings"
	"unicode"
)

type suggestionRule struct {
	keywords  []string
	questions []string
}

// Keywords match whole words of the utterance. A trailing '*' matches any
// word starting with the stem. Multi-word keywords match consecutive words.
// Rules are checked in order; the first group with a matching keyword wins.
var suggestionRules = []suggestionRule{
	{
		keywords: []string{"semiconductor*", "manufactur*", "wafer*", "fab", "fabs", "yield*", "scrap*", "defect*", "skyworks", "quality"},
		questions: []string{
			"How did you reduce scrap losses?",
			"What quality tools did you build?",
			"What did you learn from working in manufacturing?",
		},
	},
	{
		keywords: []string{"skill*", "technical", "python", "sql", "machine learning", "tech stack", "programming", "language*", "tool", "tools"},
		questions: []string{
			"Which projects use these skills?",
			"What are you learning right now?",
			"What certifications do you hold?",
		},
	},
	{
		keywords: []string{"project*", "built", "build", "builds", "building", "portfolio", "github", "platform*", "database system*"},
		questions: []string{
			"Which project are you most proud of?",
			"What was the hardest technical problem in a project?",
			"What technologies did you use?",
		},
	},
	{
		keywords: []string{"leader*", "lead", "leads", "leading", "led", "president", "chair*", "club*", "societ*", "team", "teams", "manag*", "volunteer*"},
		questions: []string{
			"How big were the teams you led?",
			"What events did you organize?",
			"What is your leadership style?",
		},
	},
	{
		keywords: []string{"educat*", "study", "studies", "studied", "studying", "universit*", "degree*", "school*", "scholar*", "course*", "ntu", "gpa"},
		questions: []string{
			"What is your specialization?",
			"Which scholarships have you received?",
			"When do you graduate?",
		},
	},
	{
		keywords: []string{"experience*", "work", "works", "worked", "working", "job", "jobs", "intern", "interns", "internship*", "career*", "compan*", "role", "roles", "keppel", "employ*"},
		questions: []string{
			"What did you achieve in your last role?",
			"What kind of role are you looking for?",
			"Can I see your resume?",
		},
	},
}

var defaultSuggestions = []string{
	"What is your work experience?",
	"What skills do you have?",
	"Tell me about your projects",
}

// Suggest returns follow-up prompts for the last user utterance.
func Suggest(utterance string) []string {
	words := strings.FieldsFunc(strings.ToLower(utterance), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, rule := range suggestionRules {
		for _, kw := range rule.keywords {
			if matchKeyword(words, kw) {
				return append([]string(nil), rule.questions...)
			}
		}
	}
	return append([]string(nil), defaultSuggestions...)
}

func matchKeyword(words []string, keyword string) bool {
	stem := strings.HasSuffix(keyword, "*")
	parts := strings.Fields(strings.TrimSuffix(keyword, "*"))
	if len(parts) == 0 {
		return false
	}

	for i := 0; i+len(parts) <= len(words); i++ {
		ok := true
		for j, part := range parts {
			w := words[i+j]
			last := j == len(parts)-1
			if w != part && !(stem && last && strings.HasPrefix(w, part)) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}
