// Package export renders learning paths as Markdown documents.
package export

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/abhisek/edupath/internal/curriculum"
)

var whitespace = regexp.MustCompile(`\s+`)

// FileName is the suggested file name for an exported path.
func FileName(p curriculum.LearningPath) string {
	return whitespace.ReplaceAllString(p.Title, "_") + "_Learning_Path.md"
}

// Markdown renders the full path: overview, every daily module and the
// resource library.
func Markdown(p curriculum.LearningPath) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Learning Path: %s\n\n", p.Title)
	fmt.Fprintf(&b, "**Duration:** %d days\n", p.DurationDays)
	fmt.Fprintf(&b, "**Skill Level:** %s\n", p.SkillLevel)
	fmt.Fprintf(&b, "**Daily Time Commitment:** %s hours\n\n", num(p.DailyTimeHours))

	fmt.Fprintf(&b, "## Description\n%s\n\n", p.Description)
	fmt.Fprintf(&b, "## Prerequisites\n%s\n\n", bullets(p.Prerequisites, "None"))
	fmt.Fprintf(&b, "## Learning Objectives\n%s\n\n", bullets(p.LearningObjectives, "Not specified"))

	b.WriteString("## Daily Schedule\n\n")
	if len(p.DailyModules) == 0 {
		b.WriteString("No modules defined\n")
	}
	for _, m := range p.DailyModules {
		writeModule(&b, m)
	}

	b.WriteString("\n## Resources\n\n")
	fmt.Fprintf(&b, "### YouTube Channels\n%s\n\n", list(p.Resources.YouTubeChannels))
	fmt.Fprintf(&b, "### Books\n%s\n\n", list(p.Resources.Books))
	fmt.Fprintf(&b, "### Websites\n%s\n\n", list(p.Resources.Websites))
	fmt.Fprintf(&b, "### Tools\n%s\n\n", list(p.Resources.Tools))

	b.WriteString("---\n*Generated by EduPath AI Learning Management System*\n")
	return b.String()
}

func writeModule(b *strings.Builder, m curriculum.DailyModule) {
	fmt.Fprintf(b, "\n### Day %d: %s\n", m.Day, m.Title)
	fmt.Fprintf(b, "**Objective:** %s\n", m.Objective)
	fmt.Fprintf(b, "**Time Required:** %s hours\n\n", num(m.TimeRequired))

	b.WriteString("#### Video Learning\n")
	fmt.Fprintf(b, "• **Video:** %q by %s\n", m.Video.Title, m.Video.Channel)
	fmt.Fprintf(b, "• **Duration:** %s minutes\n", num(m.Video.Duration))
	fmt.Fprintf(b, "• **Key concepts:** %s\n\n", orDefault(strings.Join(m.Video.KeyConcepts, ", "), "Not specified"))

	readings := make([]string, 0, len(m.Readings))
	for _, r := range m.Readings {
		readings = append(readings, fmt.Sprintf("%s (%s)", r.Title, r.Source))
	}
	fmt.Fprintf(b, "#### Reading Materials\n%s\n\n", bullets(readings, "None specified"))

	b.WriteString("#### Practical Exercise\n")
	fmt.Fprintf(b, "**Task:** %s\n", orDefault(m.Exercise.Task, "Not specified"))
	fmt.Fprintf(b, "**Expected outcome:** %s\n\n", orDefault(m.Exercise.ExpectedOutcome, "Not specified"))

	fmt.Fprintf(b, "#### Assessment\n%s\n\n---\n", bullets(m.Assessment, "None specified"))
}

func bullets(items []string, empty string) string {
	if len(items) == 0 {
		return empty
	}
	lines := make([]string, len(items))
	for i, s := range items {
		lines[i] = "• " + s
	}
	return strings.Join(lines, "\n")
}

func list(items []string) string {
	return orDefault(strings.Join(items, ", "), "None specified")
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
