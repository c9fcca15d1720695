package parser

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/starford/recipebox/internal/models"
)

type frontmatter struct {
	Title        string `yaml:"title"`
	Image        string `yaml:"image,omitempty"`
	Ingredients  string `yaml:"ingredients,omitempty"`
	Instructions string `yaml:"instructions,omitempty"`
}

// Render writes r as Markdown that Parse reads back into the same fields.
// Ingredients or instructions with lines that look like headings would be
// cut short by the section reader, so those go into the frontmatter, which
// Parse prefers over the body.
func Render(r models.Recipe) ([]byte, error) {
	fm := frontmatter{Title: r.Title, Image: r.Image}
	if hasHeadingLine(r.Ingredients) {
		fm.Ingredients = r.Ingredients
	}
	if hasHeadingLine(r.Instructions) {
		fm.Instructions = r.Instructions
	}
	head, err := yaml.Marshal(fm)
	if err != nil {
		return nil, fmt.Errorf("parser: marshal frontmatter: %w", err)
	}

	var b bytes.Buffer
	b.WriteString("---\n")
	b.Write(head)
	b.WriteString("---\n")
	fmt.Fprintf(&b, "# %s\n\n", strings.Join(strings.Fields(r.Title), " "))
	fmt.Fprintf(&b, "## Ingredients\n\n%s\n\n", r.Ingredients)
	fmt.Fprintf(&b, "## Instructions\n\n%s\n", r.Instructions)
	return b.Bytes(), nil
}

// hasHeadingLine reports whether s has a line extractSections would treat
// as a heading.
func hasHeadingLine(s string) bool {
	for _, line := range strings.Split(s, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") || strings.HasPrefix(trimmed, "## ") {
			return true
		}
	}
	return false
}
