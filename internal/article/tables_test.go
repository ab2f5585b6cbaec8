package article

import (
	"encoding/json"
	"regexp"
	"strings"
	"testing"
)

func TestTables_Consistency(t *testing.T) {
	for _, intent := range Intents {
		pool := titlePools[intent]
		if len(pool) == 0 {
			t.Errorf("Intent %s has no title templates", intent)
		}
		for _, tpl := range pool {
			if !strings.Contains(tpl, "{core}") {
				t.Errorf("Title template %q for %s lacks {core}", tpl, intent)
			}
		}

		frames := framePools[intent]
		if len(frames) < 3 {
			t.Errorf("Intent %s needs at least 3 frames, has %d", intent, len(frames))
		}
		for i, f := range frames {
			if f.Heading == "" || f.Paragraphs[0] == "" || f.Paragraphs[1] == "" {
				t.Errorf("Frame %d of %s is incomplete", i, intent)
			}
		}

		if _, ok := conclusionTemplates[intent]; !ok {
			t.Errorf("Intent %s has no conclusion template", intent)
		}
		if cta, ok := ctaTemplates[intent]; !ok || cta.Heading == "" || cta.Text == "" {
			t.Errorf("Intent %s has no complete CTA", intent)
		}
		if intentHints[intent] == "" {
			t.Errorf("Intent %s has no LLM hint", intent)
		}
		if intent != IntentDefault && len(intentKeywords[intent]) == 0 {
			t.Errorf("Intent %s has no detection keywords", intent)
		}
	}

	if len(baseFAQ) != 5 {
		t.Errorf("Expected 5 base FAQ entries, got %d", len(baseFAQ))
	}
	if len(keyTakeawayTemplates) != 6 {
		t.Errorf("Expected 6 takeaway templates, got %d", len(keyTakeawayTemplates))
	}
	if len(imageStyles) != 10 || len(palettes) != 4 {
		t.Errorf("Expected 10 styles and 4 palettes, got %d and %d", len(imageStyles), len(palettes))
	}
}

func TestTables_ImageVocabularyIsASCII(t *testing.T) {
	var all []string
	all = append(all, imageStyles...)
	all = append(all, palettes...)
	all = append(all, genericTopicConcept, genericSectionConcept)
	for _, c := range topicConcepts {
		all = append(all, c.English)
	}
	for _, c := range sectionConcepts {
		all = append(all, c.English)
	}

	for _, s := range all {
		if hasNonASCII(s) {
			t.Errorf("Image vocabulary entry contains non-ASCII text: %q", s)
		}
	}
}

func TestBuildRuleBased_ExpandsAllPlaceholders(t *testing.T) {
	placeholder := regexp.MustCompile(`\{[a-z]+\}`)
	prompts := []string{
		"主题：企业如何落地AI客服",
		"主题：CRM和ERP对比",
		"主题：AI工具推荐清单",
		"主题：数据迁移风险",
		"主题：AI客服自动化",
	}

	for _, prompt := range prompts {
		a, err := BuildRuleBased(prompt, "")
		if err != nil {
			t.Fatalf("BuildRuleBased(%q) failed: %v", prompt, err)
		}
		data, err := json.Marshal(a)
		if err != nil {
			t.Fatalf("Marshal failed: %v", err)
		}
		if m := placeholder.FindAllString(string(data), -1); len(m) > 0 {
			t.Errorf("%q left placeholders unexpanded: %v", prompt, m)
		}
	}
}
