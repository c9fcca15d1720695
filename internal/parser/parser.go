// Package parser reads and writes recipe files: Markdown with optional YAML
// frontmatter, or plain YAML documents.
package parser

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Result holds the output of parsing a recipe file.
type Result struct {
	Frontmatter  map[string]interface{}
	Title        string
	Ingredients  string
	Instructions string
	Image        string
}

// Supported reports whether name has a recipe file extension.
func Supported(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".yaml", ".yml":
		return true
	}
	return false
}

// ParseFile dispatches on the extension of name.
func ParseFile(name string, data []byte) (*Result, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md":
		return Parse(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return nil, fmt.Errorf("parser: unsupported file type: %s", name)
	}
}

// Parse extracts a recipe from Markdown. Fields come from the frontmatter
// when present, otherwise from the "# Title" heading and the
// "## Ingredients" / "## Instructions" sections of the body.
func Parse(data []byte) (*Result, error) {
	fm, body, err := splitFrontmatter(data)
	if err != nil {
		return nil, err
	}

	sections := extractSections(body)
	res := &Result{
		Frontmatter:  fm,
		Title:        deriveTitle(fm, body),
		Ingredients:  firstNonEmpty(text(fm["ingredients"]), sections["ingredients"]),
		Instructions: firstNonEmpty(text(fm["instructions"]), sections["instructions"]),
		Image:        text(fm["image"]),
	}
	return res, nil
}

// ParseYAML extracts a recipe from a YAML document with title, ingredients,
// instructions and image keys. List values are joined one item per line.
func ParseYAML(data []byte) (*Result, error) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parser: invalid yaml: %w", err)
	}
	return &Result{
		Frontmatter:  doc,
		Title:        text(doc["title"]),
		Ingredients:  text(doc["ingredients"]),
		Instructions: text(doc["instructions"]),
		Image:        text(doc["image"]),
	}, nil
}

// splitFrontmatter separates YAML frontmatter (between leading --- delimiters)
// from the Markdown body. If no frontmatter is found the entire content is body.
func splitFrontmatter(data []byte) (map[string]interface{}, string, error) {
	const delim = "---"
	trimmed := bytes.TrimLeft(data, "\n\r")

	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return nil, string(data), nil
	}

	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		return nil, string(data), nil
	}

	yamlBlock := rest[:idx]
	afterDelim := rest[idx+1+len(delim):]
	body := strings.TrimLeft(string(afterDelim), "\n\r")

	var fm map[string]interface{}
	if err := yaml.Unmarshal(yamlBlock, &fm); err != nil {
		// Invalid YAML: keep the whole file as body.
		return nil, string(data), nil
	}

	return fm, body, nil
}

// sectionAliases maps lower-cased "## " headings onto recipe fields.
var sectionAliases = map[string]string{
	"ingredients":  "ingredients",
	"instructions": "instructions",
	"directions":   "instructions",
	"method":       "instructions",
	"steps":        "instructions",
}

// extractSections collects the text under recognised "## " headings.
// A section ends at the next heading of level one or two.
func extractSections(body string) map[string]string {
	out := make(map[string]string)
	var current string
	var buf []string

	flush := func() {
		if current != "" {
			if s := strings.TrimSpace(strings.Join(buf, "\n")); s != "" && out[current] == "" {
				out[current] = s
			}
		}
		current, buf = "", nil
	}

	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "## "):
			flush()
			name := strings.ToLower(strings.TrimSpace(trimmed[3:]))
			current = sectionAliases[name]
		case strings.HasPrefix(trimmed, "# "):
			flush()
		default:
			if current != "" {
				buf = append(buf, strings.TrimRight(line, "\r"))
			}
		}
	}
	flush()
	return out
}

// deriveTitle returns the frontmatter "title" if present, otherwise the first
// H1 heading, otherwise empty string.
func deriveTitle(fm map[string]interface{}, body string) string {
	if s := text(fm["title"]); s != "" {
		return s
	}
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(trimmed[2:])
		}
	}
	return ""
}

// text flattens a YAML scalar or list into a string.
func text(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case []interface{}:
		lines := make([]string, 0, len(t))
		for _, item := range t {
			if s := text(item); s != "" {
				lines = append(lines, s)
			}
		}
		return strings.Join(lines, "\n")
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
