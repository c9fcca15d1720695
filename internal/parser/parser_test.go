package parser

import (
	"testing"

	"github.com/starford/recipebox/internal/models"
)

func TestParse_Sections(t *testing.T) {
	input := []byte("# Toast\n\n## Ingredients\n\n- Bread\n- Butter\n\n## Instructions\n\nToast it.\nButter it.\n")
	r, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Title != "Toast" {
		t.Errorf("title = %q, want Toast", r.Title)
	}
	if r.Ingredients != "- Bread\n- Butter" {
		t.Errorf("ingredients = %q", r.Ingredients)
	}
	if r.Instructions != "Toast it.\nButter it." {
		t.Errorf("instructions = %q", r.Instructions)
	}
	if r.Frontmatter != nil {
		t.Errorf("expected nil frontmatter, got %v", r.Frontmatter)
	}
}

func TestParse_FrontmatterWins(t *testing.T) {
	input := []byte("---\ntitle: Seal Toast\nimage: data:image/png;base64,AA==\ningredients:\n  - Bread\n  - Fish\n---\n# Ignored\n## Ingredients\nNot used\n## Directions\nGrill it\n")
	r, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Title != "Seal Toast" {
		t.Errorf("title = %q", r.Title)
	}
	if r.Ingredients != "Bread\nFish" {
		t.Errorf("ingredients = %q", r.Ingredients)
	}
	if r.Instructions != "Grill it" {
		t.Errorf("instructions = %q (directions alias)", r.Instructions)
	}
	if r.Image != "data:image/png;base64,AA==" {
		t.Errorf("image = %q", r.Image)
	}
}

func TestParse_InvalidYAMLFallback(t *testing.T) {
	input := []byte("---\n: invalid: yaml: {{{\n---\n# Body\n")
	r, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Frontmatter != nil {
		t.Errorf("expected nil frontmatter on invalid YAML")
	}
}

func TestParse_UnknownSectionsIgnored(t *testing.T) {
	input := []byte("# Toast\n## Notes\nskip me\n## Ingredients\nBread\n# Appendix\ntrailing\n")
	r, _ := Parse(input)
	if r.Ingredients != "Bread" {
		t.Errorf("ingredients = %q", r.Ingredients)
	}
	if r.Instructions != "" {
		t.Errorf("instructions = %q, want empty", r.Instructions)
	}
}

func TestParseYAML(t *testing.T) {
	input := []byte("title: Toast\ningredients:\n  - Bread\ninstructions: Toast it\n")
	r, err := ParseYAML(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Title != "Toast" || r.Ingredients != "Bread" || r.Instructions != "Toast it" {
		t.Errorf("result = %+v", r)
	}

	if _, err := ParseYAML([]byte("title: [unclosed")); err == nil {
		t.Error("expected error for invalid yaml")
	}
}

func TestParseFile_Dispatch(t *testing.T) {
	if _, err := ParseFile("a.yml", []byte("title: x")); err != nil {
		t.Errorf("yml: %v", err)
	}
	if _, err := ParseFile("a.MD", []byte("# x")); err != nil {
		t.Errorf("md: %v", err)
	}
	if _, err := ParseFile("a.txt", nil); err == nil {
		t.Error("txt should be unsupported")
	}
	if Supported("photo.png") || !Supported("dir/r.yaml") {
		t.Error("Supported mismatch")
	}
}

func TestRender_RoundTrip(t *testing.T) {
	in := models.Recipe{
		Title:        "Toast: the sequel",
		Ingredients:  "- Bread\n- Butter",
		Instructions: "Toast it.\nButter it.",
		Image:        "data:image/png;base64,AA==",
	}
	data, err := Render(in)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	out, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if out.Title != in.Title || out.Ingredients != in.Ingredients ||
		out.Instructions != in.Instructions || out.Image != in.Image {
		t.Errorf("round trip mismatch:\n in = %+v\nout = %+v\n%s", in, out, data)
	}
}

func TestRender_RoundTripHeadingLikeContent(t *testing.T) {
	in := models.Recipe{
		Title:        "Toast\nDeluxe",
		Ingredients:  "# for the bread\nBread\n## for the topping\nButter",
		Instructions: "Toast it.\n# then\nButter it.",
	}
	data, err := Render(in)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	out, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if out.Title != in.Title {
		t.Errorf("title = %q, want %q", out.Title, in.Title)
	}
	if out.Ingredients != in.Ingredients {
		t.Errorf("ingredients = %q, want %q", out.Ingredients, in.Ingredients)
	}
	if out.Instructions != in.Instructions {
		t.Errorf("instructions = %q, want %q", out.Instructions, in.Instructions)
	}
}

func TestRender_PlainContentStaysInBody(t *testing.T) {
	data, err := Render(models.Recipe{Title: "Toast", Ingredients: "Bread", Instructions: "Toast it"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	fm, _, err := splitFrontmatter(data)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := fm["ingredients"]; ok {
		t.Error("plain ingredients should not be duplicated into frontmatter")
	}
}
