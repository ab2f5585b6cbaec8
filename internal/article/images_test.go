package article

import (
	"strings"
	"testing"
	"unicode"
)

func hasNonASCII(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return true
		}
	}
	return false
}

func TestImagePrompts_ASCIIOnly(t *testing.T) {
	prompts := []string{
		"主题：春节家宴",
		"主题：AI客服自动化",
		"主题：跨境电商物流风险",
		"Theme: Sales pipeline review",
		"主题：ＡＩ写作工具推荐",
	}

	for _, p := range prompts {
		a, err := BuildRuleBased(p, "")
		if err != nil {
			t.Fatalf("BuildRuleBased(%q) failed: %v", p, err)
		}
		for i, spec := range ImagePrompts(a, 4) {
			if hasNonASCII(spec.Prompt) {
				t.Errorf("Prompt %d for %q contains non-ASCII text: %s", i, p, spec.Prompt)
			}
		}
	}
}

func TestImagePrompts_Layout(t *testing.T) {
	a, err := BuildRuleBased("主题：AI客服自动化", "")
	if err != nil {
		t.Fatalf("BuildRuleBased failed: %v", err)
	}

	specs := ImagePrompts(a, 4)
	if len(specs) != 4 {
		t.Fatalf("Expected 1 featured + 3 content specs, got %d", len(specs))
	}
	if specs[0].Role != RoleFeatured || specs[0].AltText != a.Title {
		t.Errorf("Unexpected featured spec: %+v", specs[0])
	}
	for i, spec := range specs[1:] {
		if spec.Role != RoleContent {
			t.Errorf("Spec %d should be a content image", i+1)
		}
		if spec.Caption != a.Sections[i].Title {
			t.Errorf("Spec %d caption = %q, want %q", i+1, spec.Caption, a.Sections[i].Title)
		}
		if !strings.Contains(spec.Prompt, imageStyles[i]) {
			t.Errorf("Spec %d should use style %d", i+1, i)
		}
	}

	palette := palettes[ordSum(a.Topic)%len(palettes)]
	for i, spec := range specs {
		if !strings.Contains(spec.Prompt, palette) {
			t.Errorf("Spec %d does not share the article palette", i)
		}
	}

	if got := ImagePrompts(a, 1); len(got) != 1 {
		t.Errorf("Expected only the featured image, got %d", len(got))
	}
	if got := ImagePrompts(a, 0); len(got) != 1 {
		t.Errorf("Expected max images to be clamped to 1, got %d", len(got))
	}
	if got := ImagePrompts(a, 20); len(got) != 1+len(a.Sections) {
		t.Errorf("Expected one content image per section, got %d", len(got))
	}
}

func TestTopicToEnglish(t *testing.T) {
	tests := []struct {
		topic string
		want  string
	}{
		{"AI客服自动化", "AI artificial intelligence automation workflow customer service support center"},
		{"Sales pipeline", "Sales pipeline"},
		{"春节家宴", genericTopicConcept},
	}

	for _, tt := range tests {
		if got := TopicToEnglish(tt.topic); got != tt.want {
			t.Errorf("TopicToEnglish(%q) = %q, want %q", tt.topic, got, tt.want)
		}
	}
}
