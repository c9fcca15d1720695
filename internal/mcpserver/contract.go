package mcpserver

// RecipeFormatURI is the resource URI of RecipeFormat.
const RecipeFormatURI = "recipebox://recipe-format"

// RecipeFormat describes the recipe file format read by the importer and
// written by the exporter.
const RecipeFormat = `# Recipebox Recipe Format

A recipe file is either Markdown (.md) or YAML (.yaml / .yml).

## Markdown

` + "```" + `markdown
---
title: Toast                 # OPTIONAL – overrides the first "# " heading
image: data:image/png;base64,iVBORw0KGgo...   # OPTIONAL
---
# Toast

## Ingredients

- Bread
- Butter

## Instructions

Toast the bread. Butter it.
` + "```" + `

## YAML

` + "```" + `yaml
title: Toast
ingredients:
  - Bread
  - Butter
instructions: Toast the bread. Butter it.
` + "```" + `

## Rules

1. **title, ingredients and instructions are required.** Files missing any
   of them are skipped by the importer.
2. **Instructions headings.** "## Directions", "## Method" and "## Steps"
   are read as instructions.
3. **Lists.** YAML list values are joined one item per line.
4. **image** must be a data URL of type png, jpeg, gif or webp.
5. Other headings and frontmatter keys are ignored.
`
