// Package parser reads and writes the Markdown form of a job: YAML
// frontmatter for the job fields and a checklist grouped by stage.
package parser

import (
	"bufio"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// MarkdownDoc represents a parsed Markdown document.
type MarkdownDoc struct {
	// Frontmatter metadata (from YAML)
	Frontmatter map[string]any

	// Title extracted from first h1 or frontmatter
	Title string

	// Main content (after frontmatter)
	Content string

	// Structured content by heading
	Sections []Section
}

// Section represents a heading and its content.
type Section struct {
	Level   int    // 1-6 for h1-h6
	Heading string // The heading text
	Path    string // Full path like "## Album > ### Bindery"
	Content string // Content under this heading
	Start   int    // Line number where section starts
	End     int    // Line number where section ends
}

// ChecklistItem is one "- [x] Title `id`" line.
type ChecklistItem struct {
	ID     string
	Title  string
	Done   bool
	Date   string
	Choice string
	Notes  string
	Line   int
}

var (
	h1Regex        = regexp.MustCompile(`(?m)^#\s+(.+)$`)
	headingRegex   = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	checklistRegex = regexp.MustCompile("^\\s*[-*]\\s+\\[([ xX])\\]\\s+(.*?)\\s*`([^`]+)`(.*)$")
)

// ParseMarkdown parses a Markdown document into structured form. Invalid
// frontmatter is ignored and yields an empty map.
func ParseMarkdown(content string) (*MarkdownDoc, error) {
	doc := &MarkdownDoc{
		Frontmatter: make(map[string]any),
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	remaining := content
	if strings.HasPrefix(content, "---\n") {
		endIdx := strings.Index(content[4:], "\n---")
		if endIdx >= 0 {
			frontmatterYAML := content[4 : 4+endIdx]
			remaining = strings.TrimPrefix(content[4+endIdx+4:], "\n")

			if err := yaml.Unmarshal([]byte(frontmatterYAML), &doc.Frontmatter); err != nil || doc.Frontmatter == nil {
				doc.Frontmatter = make(map[string]any)
			}
		}
	}

	doc.Content = remaining
	doc.Title = extractTitle(doc.Frontmatter, remaining)
	doc.Sections = parseSections(remaining)

	return doc, nil
}

// extractTitle gets title from frontmatter or first h1.
func extractTitle(fm map[string]any, content string) string {
	if title, ok := fm["title"].(string); ok && title != "" {
		return title
	}
	if match := h1Regex.FindStringSubmatch(content); len(match) > 1 {
		return strings.TrimSpace(match[1])
	}
	return ""
}

// parseSections extracts sections from Markdown content.
func parseSections(content string) []Section {
	var sections []Section

	scanner := bufio.NewScanner(strings.NewReader(content))
	lineNum := 0
	var currentPath []string
	var currentLevels []int

	var currentSection *Section
	var contentBuilder strings.Builder

	flushSection := func(endLine int) {
		if currentSection != nil {
			currentSection.Content = strings.TrimSpace(contentBuilder.String())
			currentSection.End = endLine
			sections = append(sections, *currentSection)
			contentBuilder.Reset()
		}
	}

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		if match := headingRegex.FindStringSubmatch(line); len(match) > 0 {
			flushSection(lineNum - 1)

			level := len(match[1])
			heading := strings.TrimSpace(match[2])

			for len(currentLevels) > 0 && currentLevels[len(currentLevels)-1] >= level {
				currentPath = currentPath[:len(currentPath)-1]
				currentLevels = currentLevels[:len(currentLevels)-1]
			}
			currentPath = append(currentPath, match[1]+" "+heading)
			currentLevels = append(currentLevels, level)

			currentSection = &Section{
				Level:   level,
				Heading: heading,
				Path:    strings.Join(currentPath, " > "),
				Start:   lineNum,
			}
		} else if currentSection != nil {
			contentBuilder.WriteString(line)
			contentBuilder.WriteString("\n")
		}
	}

	flushSection(lineNum)

	return sections
}

// Section returns the first section whose heading matches name, ignoring
// case.
func (d *MarkdownDoc) Section(name string) (Section, bool) {
	for _, s := range d.Sections {
		if strings.EqualFold(s.Heading, name) {
			return s, true
		}
	}
	return Section{}, false
}

// GetFrontmatterString extracts a string from frontmatter. Scalars that YAML
// decoded as another type (dates, numbers) are rendered back to text.
func (d *MarkdownDoc) GetFrontmatterString(key string) string {
	switch v := d.Frontmatter[key].(type) {
	case string:
		return v
	case nil:
		return ""
	case interface{ Format(string) string }:
		return v.Format("2006-01-02")
	default:
		out, err := yaml.Marshal(v)
		if err != nil {
			return ""
		}
		return strings.TrimSpace(string(out))
	}
}

// GetFrontmatterBool extracts a bool from frontmatter.
func (d *MarkdownDoc) GetFrontmatterBool(key string) bool {
	v, _ := d.Frontmatter[key].(bool)
	return v
}

// ExtractChecklist finds checklist lines of the form
//
//	- [x] Title `task_id` | date: 2026-01-16 | choice: ONLINE | notes: free text
//
// The attributes after the id are optional. Notes run to the end of the line.
func ExtractChecklist(content string) []ChecklistItem {
	var items []ChecklistItem

	scanner := bufio.NewScanner(strings.NewReader(content))
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		match := checklistRegex.FindStringSubmatch(scanner.Text())
		if match == nil {
			continue
		}
		item := ChecklistItem{
			Done:  match[1] != " ",
			Title: strings.TrimSpace(match[2]),
			ID:    strings.TrimSpace(match[3]),
			Line:  lineNum,
		}
		parseAttributes(&item, match[4])
		items = append(items, item)
	}
	return items
}

func parseAttributes(item *ChecklistItem, rest string) {
	rest = strings.TrimSpace(rest)
	for rest != "" {
		rest = strings.TrimSpace(strings.TrimPrefix(rest, "|"))
		key, value, ok := strings.Cut(rest, ":")
		if !ok {
			return
		}
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "notes" {
			item.Notes = strings.TrimSpace(value)
			return
		}

		value, rest, _ = strings.Cut(value, "|")
		value = strings.TrimSpace(value)
		switch key {
		case "date":
			item.Date = value
		case "choice":
			item.Choice = value
		}
	}
}
