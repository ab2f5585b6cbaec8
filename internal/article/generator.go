package article

import (
	"aineoo/internal/apperr"
	"aineoo/internal/llm"
	"aineoo/internal/logger"
	"context"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	maxSections       = 5
	maxFocusKeyword   = 30
	maxTitleCore      = 30
	truncatedCoreLen  = 28
	maxSEODescription = 155
	maxExcerpt        = 140
	maxRuleTags       = 8
)

var (
	topicSplitPattern = regexp.MustCompile(`[，,、；;。/\\|]+|(?:和|及|与|以及|并且|并)`)
	topicTokenPattern = regexp.MustCompile(`[A-Za-z0-9\x{4e00}-\x{9fff}]{2,}`)
)

// Completer is the subset of the LLM gateway the generator depends on.
type Completer interface {
	Available() bool
	ChatJSON(ctx context.Context, req llm.Request) (map[string]any, error)
}

// Request describes one article generation.
type Request struct {
	Prompt       string
	FocusKeyword string
	UseLLM       bool
}

// Generator produces articles from prompts.
type Generator struct {
	llm Completer
}

// NewGenerator creates a generator. A nil completer disables the LLM path.
func NewGenerator(c Completer) *Generator {
	return &Generator{llm: c}
}

// Generate builds the rule-based article and, when requested and possible,
// merges an LLM-written article on top of it. LLM failures never surface:
// the rule-based article is returned instead.
func (g *Generator) Generate(ctx context.Context, req Request) (*Article, error) {
	base, err := BuildRuleBased(req.Prompt, req.FocusKeyword)
	if err != nil {
		return nil, err
	}

	if !req.UseLLM || g.llm == nil || !g.llm.Available() {
		PostProcess(base)
		return base, nil
	}

	payload, err := g.llm.ChatJSON(ctx, llm.Request{
		System:      SystemPrompt,
		User:        BuildUserPrompt(req.Prompt, base.Intent),
		Temperature: Temperature,
		JSON:        true,
	})
	if err != nil {
		logger.Warn("LLM article generation failed, using rule-based article", "error", err.Error(), "topic", base.Topic)
		PostProcess(base)
		return base, nil
	}

	merged := Merge(base, payload)
	PostProcess(merged)
	logger.Info("Merged LLM article", "topic", merged.Topic, "sections", len(merged.Sections), "faq", len(merged.FAQ))
	return merged, nil
}

// BuildRuleBased deterministically synthesises a complete article from prompt.
func BuildRuleBased(prompt, focusKeyword string) (*Article, error) {
	pc := ParsePromptContext(prompt)
	core := pc.Theme
	if core == "" {
		core = strings.TrimSpace(prompt)
	}
	if core == "" {
		return nil, apperr.ErrInvalidInput
	}

	focus := strings.TrimSpace(focusKeyword)
	if focus == "" {
		focus = core
	}
	focus = truncateRunes(focus, maxFocusKeyword)

	intent := DetectIntent(core)
	seed := ordSum(core)

	pool := titlePools[intent]
	titleCore := core
	if utf8.RuneCountInString(core) > maxTitleCore {
		titleCore = truncateRunes(core, truncatedCoreLen)
	}
	title := strings.ReplaceAll(pool[seed%len(pool)], "{core}", titleCore)

	frames := framePools[intent]
	sectionCount := min(len(frames), maxSections)
	parts := topicParts(core, focus, sectionCount)

	start := seed % len(frames)
	sections := make([]Section, 0, sectionCount)
	for i := 0; i < sectionCount; i++ {
		frame := frames[(start+i)%len(frames)]
		heading := frame.Heading
		if i == 0 {
			heading = core + "：" + heading
		}
		sections = append(sections, Section{
			Title:      heading,
			Paragraphs: []string{frame.Paragraphs[0], frame.Paragraphs[1]},
		})
	}

	refs := make([]string, 0, 3)
	for _, s := range sections[:min(3, len(sections))] {
		refs = append(refs, s.Title)
	}
	second := "实施策略"
	if len(refs) > 1 {
		second = refs[1]
	}
	hint := strings.Join(parts[:min(3, len(parts))], "、")

	r := strings.NewReplacer(
		"{title}", title,
		"{first}", refs[0],
		"{second}", second,
		"{hint}", hint,
		"{core}", core,
		"{focus}", focus,
		"{refs}", strings.Join(refs, "、"),
	)

	takeaways := make([]string, len(keyTakeawayTemplates))
	for i, tpl := range keyTakeawayTemplates {
		takeaways[i] = r.Replace(tpl)
	}

	cta := ctaTemplates[intent]

	return &Article{
		Topic:          core,
		Intent:         intent,
		Title:          title,
		Slug:           Slugify(core),
		FocusKeyword:   focus,
		SEODescription: truncateRunes(r.Replace(seoDescriptionTemplate), maxSEODescription),
		Excerpt:        truncateRunes(r.Replace(excerptTemplate), maxExcerpt),
		QuickAnswer:    r.Replace(quickAnswerTemplate),
		KeyTakeaways:   takeaways,
		FAQ:            buildFAQ(intent, r),
		Sections:       sections,
		Tags:           ruleTags(focus, parts),
		Conclusion:     r.Replace(conclusionTemplates[intent]),
		CTA:            CTA{Heading: cta.Heading, Text: r.Replace(cta.Text)},
		ContentSource:  SourceRules,
	}, nil
}

// topicParts splits core into candidate sub-topics, padded with focus up to n.
func topicParts(core, focus string, n int) []string {
	var parts []string
	seen := map[string]bool{}
	add := func(v string) {
		if v == "" || topicStopwords[v] || seen[v] {
			return
		}
		seen[v] = true
		parts = append(parts, v)
	}

	for _, p := range topicSplitPattern.Split(core, -1) {
		add(strings.TrimSpace(p))
	}
	for _, token := range topicTokenPattern.FindAllString(core, -1) {
		add(token)
	}
	for len(parts) < n {
		parts = append(parts, focus)
	}
	return parts
}

func buildFAQ(intent Intent, r *strings.Replacer) []FAQItem {
	faq := make([]FAQItem, len(baseFAQ))
	for i, item := range baseFAQ {
		faq[i] = FAQItem{Question: r.Replace(item.Question), Answer: r.Replace(item.Answer)}
	}
	if item, ok := intentFAQ[intent]; ok {
		faq[1] = FAQItem{Question: r.Replace(item.Question), Answer: r.Replace(item.Answer)}
	}
	return faq
}

func ruleTags(focus string, parts []string) []string {
	var tags []string
	seen := map[string]bool{}
	for _, t := range append([]string{focus}, parts...) {
		n := utf8.RuneCountInString(t)
		if n < 2 || n > 10 || seen[t] {
			continue
		}
		seen[t] = true
		tags = append(tags, t)
		if len(tags) == maxRuleTags {
			break
		}
	}
	return tags
}
