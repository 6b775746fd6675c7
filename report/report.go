// Package report renders a session's iteration history to a standalone HTML
// page and owns the app configuration.
package report

import (
	"bytes"
	"fmt"
	"html"
	"os"
	"strings"

	"github.com/yuin/goldmark"

	"self_critic_writer/pipeline"
)

// Render converts every iteration's markdown (content and critique) to HTML
// and composes a single report page.
func Render(topic string, history []pipeline.IterationRecord) (string, error) {
	title := topic
	if len(history) > 0 {
		if t := pipeline.ExtractTitle(history[len(history)-1].Generation.Text); t != "" {
			title = t
		}
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(title))
	b.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(title))
	fmt.Fprintf(&b, "<p>Topic: %s — %d iteration(s)</p>\n", html.EscapeString(topic), len(history))

	for _, rec := range history {
		fmt.Fprintf(&b, "<section>\n<h2>Iteration %d (%s)</h2>\n", rec.Index, rec.Kind)
		fmt.Fprintf(&b, "<p>Content source: %s · Critique source: %s · %s</p>\n",
			rec.Generation.Source, rec.Critique.Source, scoreLabel(rec.Critique))

		contentHTML, err := mdToHTML(rec.Generation.Text)
		if err != nil {
			return "", err
		}
		b.WriteString("<article>\n")
		b.WriteString(contentHTML)
		b.WriteString("</article>\n")

		critiqueHTML, err := mdToHTML(rec.Critique.Text)
		if err != nil {
			return "", err
		}
		b.WriteString("<aside>\n")
		b.WriteString(critiqueHTML)
		b.WriteString("</aside>\n</section>\n")
	}

	b.WriteString("</body>\n</html>\n")
	return b.String(), nil
}

// WriteFile renders the report and writes it to path.
func WriteFile(path, topic string, history []pipeline.IterationRecord) error {
	out, err := Render(topic, history)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(out), 0o644)
}

func scoreLabel(c pipeline.Critique) string {
	if !c.Scored {
		return "Score: unscored"
	}
	return fmt.Sprintf("Score: %.1f/10", c.Score)
}

func mdToHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
