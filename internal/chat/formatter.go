package chat

import (
	"html"
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"
)

// Format turns a raw assistant reply into markup that is safe to inject into
// the message list. The input is escaped first; every tag in the output is
// produced by one of the passes below, which run in a fixed order so that a
// later pass never rewrites the markup of an earlier one.
func Format(raw string) string {
	if raw == "" {
		return ""
	}

	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = strings.ReplaceAll(text, placeholderMark, "")
	text = html.EscapeString(text)

	// Anchors are parked behind placeholders as soon as they are built, so
	// no later pass can see their attributes or labels.
	var links linkStash
	text = replace(markdownLinkRe, text, func(m regexp2.Match) string {
		return links.put(renderMarkdownLink(m))
	})
	text = replace(rootRelativeRe, text, func(m regexp2.Match) string {
		return "(" + links.put(renderRootRelative(m)) + ")"
	})
	text = replace(barePDFRe, text, func(m regexp2.Match) string {
		return links.put(externalLink(m.String(), "Download"))
	})
	text = replace(emailRe, text, func(m regexp2.Match) string {
		addr := m.String()
		return links.put(`<a href="mailto:` + addr + `">` + addr + `</a>`)
	})
	text = replace(socialRe, text, func(m regexp2.Match) string {
		link := m.String()
		href := link
		if !strings.HasPrefix(href, "http") {
			href = "https://" + href
		}
		return links.put(externalLink(href, link))
	})

	for _, e := range emphasisRules {
		text = replace(e.re, text, func(m regexp2.Match) string {
			return "<" + e.tag + ">" + m.GroupByNumber(1).String() + "</" + e.tag + ">"
		})
	}
	text = replace(codeRe, text, func(m regexp2.Match) string {
		return "<code>" + m.GroupByNumber(1).String() + "</code>"
	})

	return links.restore(joinBlocks(buildBlocks(text)))
}

// placeholderMark delimits a parked anchor. It is stripped from the input, so
// a reply can never forge a placeholder.
const placeholderMark = "\x00"

var placeholderRe = regexp2.MustCompile(`\x00(\d+)\x00`, regexp2.None)

type linkStash struct {
	links []string
}

func (s *linkStash) put(link string) string {
	s.links = append(s.links, link)
	return placeholderMark + strconv.Itoa(len(s.links)-1) + placeholderMark
}

func (s *linkStash) restore(text string) string {
	if len(s.links) == 0 {
		return text
	}
	return replace(placeholderRe, text, func(m regexp2.Match) string {
		i, err := strconv.Atoi(m.GroupByNumber(1).String())
		if err != nil || i >= len(s.links) {
			return ""
		}
		return s.links[i]
	})
}

var (
	// [label](url)
	markdownLinkRe = regexp2.MustCompile(`\[([^\]\n]+)\]\(([^)\s]+)\)`, regexp2.None)

	// (/path#fragment) left over after markdown links were rendered
	rootRelativeRe = regexp2.MustCompile(`\((/[^)\s#]*#([\w-]+))\)`, regexp2.None)

	// PDF URLs not already inside an attribute or an anchor label
	barePDFRe = regexp2.MustCompile(`(?<![\w"'>=/])https?://[^\s<>"']+?\.pdf(?![\w/])`, regexp2.IgnoreCase)

	emailRe = regexp2.MustCompile(`(?<![\w.:/>"'+-])[\w.+-]+@[\w-]+(?:\.[\w-]+)*\.[A-Za-z]{2,}(?![\w@])`, regexp2.None)

	// LinkedIn, Telegram and GitHub profiles, with or without scheme
	socialRe = regexp2.MustCompile(`(?<![\w"'>=/.@-])(?:https?://)?(?:www\.)?(?:linkedin\.com/in|t\.me|github\.com)/[\w./-]*[\w/-]`, regexp2.IgnoreCase)

	codeRe = regexp2.MustCompile("`([^`\\n]+)`", regexp2.None)

	bulletRe  = regexp2.MustCompile(`^\s*[•*-]\s+(.*)$`, regexp2.None)
	orderedRe = regexp2.MustCompile(`^\s*\d+\.\s+(.*)$`, regexp2.None)
)

type emphasisRule struct {
	re  *regexp2.Regexp
	tag string
}

// Bold runs before italic so that "**x**" is never read as two italics.
var emphasisRules = []emphasisRule{
	{regexp2.MustCompile(`(?<!\*)\*\*(?![\s*])(.+?)(?<![\s*])\*\*(?!\*)`, regexp2.None), "strong"},
	{regexp2.MustCompile(`(?<![\w_])__(?![\s_])(.+?)(?<![\s_])__(?![\w_])`, regexp2.None), "strong"},
	{regexp2.MustCompile(`(?<![\w*])\*(?![\s*])(.+?)(?<![\s*])\*(?![\w*])`, regexp2.None), "em"},
	{regexp2.MustCompile(`(?<![\w_])_(?![\s_])(.+?)(?<![\s_])_(?![\w_])`, regexp2.None), "em"},
}

func replace(re *regexp2.Regexp, input string, fn func(regexp2.Match) string) string {
	out, err := re.ReplaceFunc(input, func(m regexp2.Match) string { return fn(m) }, -1, -1)
	if err != nil {
		// Only a match timeout can fail here; keep the previous pass.
		return input
	}
	return out
}

// renderMarkdownLink links in-page fragments, mailto, http(s) and
// root-relative targets. Any other scheme is rendered as its bare label.
func renderMarkdownLink(m regexp2.Match) string {
	label := m.GroupByNumber(1).String()
	target := m.GroupByNumber(2).String()
	lower := strings.ToLower(target)

	switch frag, ok := inPageFragment(target); {
	case ok:
		return anchorLink(frag, label)
	case strings.HasPrefix(lower, "mailto:"):
		return `<a href="` + target + `">` + label + `</a>`
	case strings.HasPrefix(lower, "https://"), strings.HasPrefix(lower, "http://"),
		strings.HasPrefix(target, "/") && !strings.HasPrefix(target, "//"):
		return externalLink(target, label)
	default:
		return label
	}
}

func renderRootRelative(m regexp2.Match) string {
	path := m.GroupByNumber(1).String()
	frag := m.GroupByNumber(2).String()
	return anchorLink(frag, path)
}

// inPageFragment reports whether target points at a section of the portfolio
// page itself: "#id", "/#id" or "/some/path#id".
func inPageFragment(target string) (string, bool) {
	if strings.HasPrefix(target, "#") && len(target) > 1 {
		return target[1:], true
	}
	if strings.HasPrefix(target, "/") && !strings.HasPrefix(target, "//") {
		if i := strings.Index(target, "#"); i >= 0 && i < len(target)-1 {
			return target[i+1:], true
		}
	}
	return "", false
}

func anchorLink(frag, label string) string {
	return `<a href="#` + frag + `" data-scroll-to="` + frag + `">` + label + `</a>`
}

func externalLink(href, label string) string {
	return `<a href="` + href + `" target="_blank" rel="noopener noreferrer">` + label + `</a>`
}

type block struct {
	html  string
	isTag bool
}

type listKind int

const (
	listNone listKind = iota
	listUnordered
	listOrdered
)

func (k listKind) open() string {
	if k == listOrdered {
		return "<ol>"
	}
	return "<ul>"
}

func (k listKind) close() string {
	if k == listOrdered {
		return "</ol>"
	}
	return "</ul>"
}

// buildBlocks groups consecutive bullet or numbered lines into lists. A blank
// line or plain text closes the open list; switching marker type closes it and
// opens the other kind.
func buildBlocks(text string) []block {
	var (
		blocks     []block
		current    = listNone
		justClosed bool
	)

	closeList := func() {
		if current != listNone {
			blocks = append(blocks, block{html: current.close(), isTag: true})
			current = listNone
			justClosed = true
		}
	}

	for _, line := range strings.Split(text, "\n") {
		kind, item := classifyLine(line)

		if kind == listNone {
			closeList()
			if strings.TrimSpace(line) == "" && justClosed {
				justClosed = false
				continue
			}
			justClosed = false
			blocks = append(blocks, block{html: line})
			continue
		}

		if kind != current {
			closeList()
			blocks = append(blocks, block{html: kind.open(), isTag: true})
			current = kind
		}
		justClosed = false
		blocks = append(blocks, block{html: "<li>" + item + "</li>", isTag: true})
	}
	closeList()

	return blocks
}

func classifyLine(line string) (listKind, string) {
	if m, _ := bulletRe.FindStringMatch(line); m != nil {
		return listUnordered, strings.TrimSpace(m.GroupByNumber(1).String())
	}
	if m, _ := orderedRe.FindStringMatch(line); m != nil {
		return listOrdered, strings.TrimSpace(m.GroupByNumber(1).String())
	}
	return listNone, ""
}

// joinBlocks turns the remaining newlines into <br>, except next to list tags.
func joinBlocks(blocks []block) string {
	var b strings.Builder
	for i, blk := range blocks {
		if i > 0 && !blk.isTag && !blocks[i-1].isTag {
			b.WriteString("<br>")
		}
		b.WriteString(blk.html)
	}
	return b.String()
}
