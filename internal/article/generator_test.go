package article

import (
	"aineoo/internal/apperr"
	"aineoo/internal/llm"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

type fakeCompleter struct {
	available bool
	payload   map[string]any
	err       error
	calls     int
	lastReq   llm.Request
}

func (f *fakeCompleter) Available() bool { return f.available }

func (f *fakeCompleter) ChatJSON(ctx context.Context, req llm.Request) (map[string]any, error) {
	f.calls++
	f.lastReq = req
	return f.payload, f.err
}

func TestBuildRuleBased_Deterministic(t *testing.T) {
	prompts := []string{
		"主题：AI客服自动化",
		"如何搭建企业知识库；受众：中小企业",
		"CRM vs ERP 选型",
		"营销自动化工具推荐",
		"数字化转型的常见风险",
	}

	for _, p := range prompts {
		a, err := BuildRuleBased(p, "")
		if err != nil {
			t.Fatalf("BuildRuleBased(%q) failed: %v", p, err)
		}
		b, err := BuildRuleBased(p, "")
		if err != nil {
			t.Fatalf("BuildRuleBased(%q) failed: %v", p, err)
		}
		if !reflect.DeepEqual(a, b) {
			t.Errorf("Expected identical articles for %q", p)
		}
	}
}

func TestBuildRuleBased_CustomerServiceScenario(t *testing.T) {
	a, err := BuildRuleBased("主题：AI客服自动化", "AI客服")
	if err != nil {
		t.Fatalf("BuildRuleBased failed: %v", err)
	}

	if a.Topic != "AI客服自动化" {
		t.Errorf("Expected topic AI客服自动化, got %q", a.Topic)
	}
	if a.Intent != IntentDefault {
		t.Errorf("Expected default intent, got %s", a.Intent)
	}
	if len(a.Sections) != 5 {
		t.Fatalf("Expected 5 sections, got %d", len(a.Sections))
	}
	if !strings.HasPrefix(a.Sections[0].Title, "AI客服自动化：") {
		t.Errorf("First section should lead with the topic, got %q", a.Sections[0].Title)
	}

	found := false
	for _, tpl := range titlePools[IntentDefault] {
		if a.Title == strings.ReplaceAll(tpl, "{core}", "AI客服自动化") {
			found = true
		}
	}
	if !found {
		t.Errorf("Title %q does not come from the default pool", a.Title)
	}

	if a.FocusKeyword != "AI客服" {
		t.Errorf("Expected focus keyword AI客服, got %q", a.FocusKeyword)
	}
	if a.Slug != "ai-ke-fu-zi-dong-hua" {
		t.Errorf("Expected pinyin slug, got %q", a.Slug)
	}
	if a.ContentSource != SourceRules {
		t.Errorf("Expected rules source, got %s", a.ContentSource)
	}
	if len(a.FAQ) != 5 || len(a.KeyTakeaways) != 6 {
		t.Errorf("Expected 5 FAQ and 6 takeaways, got %d and %d", len(a.FAQ), len(a.KeyTakeaways))
	}
	if !strings.Contains(a.FAQ[0].Question, "AI客服") {
		t.Errorf("FAQ should mention the focus keyword: %q", a.FAQ[0].Question)
	}
	if a.Tags[0] != "AI客服" {
		t.Errorf("Expected focus keyword as first tag, got %v", a.Tags)
	}
	if n := utf8.RuneCountInString(a.SEODescription); n > 155 {
		t.Errorf("SEO description too long: %d", n)
	}
	if n := utf8.RuneCountInString(a.Excerpt); n > 140 {
		t.Errorf("Excerpt too long: %d", n)
	}
	if a.CTA.Heading != "从今天开始" {
		t.Errorf("Expected default CTA, got %q", a.CTA.Heading)
	}
}

func TestBuildRuleBased_IntentSpecificContent(t *testing.T) {
	a, err := BuildRuleBased("主题：如何落地RPA", "")
	if err != nil {
		t.Fatalf("BuildRuleBased failed: %v", err)
	}
	if a.Intent != IntentTutorial {
		t.Fatalf("Expected tutorial intent, got %s", a.Intent)
	}
	if !strings.Contains(a.FAQ[1].Question, "最关键的第一步") {
		t.Errorf("Expected tutorial FAQ at index 1, got %q", a.FAQ[1].Question)
	}
	if a.CTA.Heading != "现在就动手" {
		t.Errorf("Expected tutorial CTA, got %q", a.CTA.Heading)
	}

	r, err := BuildRuleBased("主题：数据迁移避坑", "")
	if err != nil {
		t.Fatalf("BuildRuleBased failed: %v", err)
	}
	if r.Intent != IntentRisk || len(r.Sections) != 4 {
		t.Errorf("Expected risk intent with 4 sections, got %s with %d", r.Intent, len(r.Sections))
	}
}

func TestBuildRuleBased_LongTopicTruncatedInTitle(t *testing.T) {
	core := strings.Repeat("智", 35)
	a, err := BuildRuleBased(core, "")
	if err != nil {
		t.Fatalf("BuildRuleBased failed: %v", err)
	}
	if strings.Contains(a.Title, strings.Repeat("智", 29)) {
		t.Errorf("Title should use a 28-character core: %q", a.Title)
	}
	if !strings.Contains(a.Title, strings.Repeat("智", 28)) {
		t.Errorf("Title should contain the truncated core: %q", a.Title)
	}
	if n := utf8.RuneCountInString(a.FocusKeyword); n != 30 {
		t.Errorf("Expected 30-character focus keyword, got %d", n)
	}
}

func TestBuildRuleBased_EmptyPrompt(t *testing.T) {
	for _, p := range []string{"", "   ", "\n\t"} {
		if _, err := BuildRuleBased(p, ""); !errors.Is(err, apperr.ErrInvalidInput) {
			t.Errorf("Expected ErrInvalidInput for %q, got %v", p, err)
		}
	}
}

func TestDetectIntent(t *testing.T) {
	tests := []struct {
		text string
		want Intent
	}{
		{"AI客服自动化", IntentDefault},
		{"如何做私域运营", IntentTutorial},
		{"Notion VS 飞书", IntentComparison},
		{"十大写作工具", IntentListicle},
		{"出海合规风险", IntentRisk},
		{"如何避坑", IntentTutorial},
	}

	for _, tt := range tests {
		if got := DetectIntent(tt.text); got != tt.want {
			t.Errorf("DetectIntent(%q) = %s, want %s", tt.text, got, tt.want)
		}
	}
}

func TestParsePromptContext(t *testing.T) {
	tests := []struct {
		prompt string
		theme  string
	}{
		{"主题：AI客服自动化", "AI客服自动化"},
		{"请写一篇文章；主题：AI客服；风格：专业", "AI客服"},
		{"Theme: Sales automation", "Sales automation"},
		{"AI客服自动化落地指南。要求案例丰富", "AI客服自动化落地指南"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ParsePromptContext(tt.prompt).Theme; got != tt.theme {
			t.Errorf("ParsePromptContext(%q).Theme = %q, want %q", tt.prompt, got, tt.theme)
		}
	}

	ctx := ParsePromptContext("主题：AI客服；风格：专业")
	if ctx.Fields["风格"] != "专业" {
		t.Errorf("Expected extra field to be captured, got %v", ctx.Fields)
	}
}

func TestGenerate_FallsBackOnLLMError(t *testing.T) {
	fake := &fakeCompleter{available: true, err: errors.New("timeout")}
	g := NewGenerator(fake)

	a, err := g.Generate(context.Background(), Request{Prompt: "主题：AI客服自动化", UseLLM: true})
	if err != nil {
		t.Fatalf("Generate should not fail on LLM errors: %v", err)
	}
	if fake.calls != 1 {
		t.Errorf("Expected one LLM call, got %d", fake.calls)
	}
	if a.ContentSource != SourceRules {
		t.Errorf("Expected rules source after LLM failure, got %s", a.ContentSource)
	}
	if !fake.lastReq.JSON || fake.lastReq.Temperature != Temperature {
		t.Errorf("Unexpected LLM request: %+v", fake.lastReq)
	}
	if !strings.Contains(fake.lastReq.User, intentHints[IntentDefault]) {
		t.Error("User prompt should carry the intent hint")
	}
}

func TestGenerate_SkipsUnavailableLLM(t *testing.T) {
	fake := &fakeCompleter{available: false}
	g := NewGenerator(fake)

	if _, err := g.Generate(context.Background(), Request{Prompt: "主题：AI客服", UseLLM: true}); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if fake.calls != 0 {
		t.Errorf("Expected no LLM calls, got %d", fake.calls)
	}

	if _, err := NewGenerator(nil).Generate(context.Background(), Request{Prompt: "主题：AI客服", UseLLM: true}); err != nil {
		t.Fatalf("Generate with nil completer failed: %v", err)
	}
}

func TestGenerate_MergesLLMPayload(t *testing.T) {
	fake := &fakeCompleter{available: true, payload: map[string]any{
		"title":   "AI客服自动化：一家电商如何砍掉夜班坐席",
		"slug":    "ai-customer-service-automation",
		"excerpt": "读完你会知道如何在两周内全面赋能客服团队，，并衡量效果。",
	}}

	a, err := NewGenerator(fake).Generate(context.Background(), Request{Prompt: "主题：AI客服自动化", UseLLM: true})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if a.ContentSource != SourceDeepSeek {
		t.Errorf("Expected deepseek source, got %s", a.ContentSource)
	}
	if a.Slug != "ai-customer-service-automation" {
		t.Errorf("Expected LLM slug, got %q", a.Slug)
	}
	if a.Excerpt != "读完你会知道如何在两周内全面客服团队，并衡量效果。" {
		t.Errorf("Expected cleaned excerpt, got %q", a.Excerpt)
	}
	if len(a.Sections) != 5 {
		t.Errorf("Expected rule-based sections to be kept, got %d", len(a.Sections))
	}
}
