package hooks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/brads3290/cchooks"
	"github.com/deanwenchen/hookgate/internal/constants"
	"github.com/deanwenchen/hookgate/internal/core"
)

// Quality thresholds for written articles.
const (
	minArticleChars      = 500
	minArticleParagraphs = 3
)

// articleMetrics holds the measured quality indicators for one document.
type articleMetrics struct {
	Chars      int
	Words      int
	HasTitle   bool
	Paragraphs int
}

// ArticleQualityHook reviews Markdown documents after they are written:
// character count, top-level heading, and paragraph count against the
// thresholds above. Advisory only: the report goes to stderr and the write
// is always allowed.
type ArticleQualityHook struct {
	*core.BaseHook
}

// NewArticleQualityHook creates a new article quality checker instance
func NewArticleQualityHook(ctx *core.HookContext) core.Hook {
	base := core.NewBaseHook("article", "Article Quality Checker", "Reports quality metrics for written Markdown documents", ctx)
	return &ArticleQualityHook{BaseHook: base}
}

// Run executes the article quality checker.
func (h *ArticleQualityHook) Run() error {
	return h.StandardRun(nil, h.postToolUseHandler)
}

func (h *ArticleQualityHook) postToolUseHandler(_ context.Context, event *cchooks.PostToolUseEvent) cchooks.PostToolUseResponseInterface {
	if event.ToolName != constants.ToolWrite {
		return cchooks.Allow()
	}

	write, err := event.InputAsWrite()
	if err != nil {
		h.LogError("article_parse_error", event.ToolName, err)
		return cchooks.Allow()
	}
	if !strings.EqualFold(filepath.Ext(write.FilePath), ".md") {
		return cchooks.Allow()
	}

	report, good := h.Report(write.FilePath)
	fmt.Fprintln(os.Stderr, report)
	h.LogApproval("article_quality_checked", event.ToolName, map[string]interface{}{
		"file_path": write.FilePath,
		"good":      good,
	})
	return cchooks.Allow()
}

// Report reads the document and renders its quality report. The second return
// is true when every threshold is met. A file that cannot be read yields a
// report saying so rather than an error.
func (h *ArticleQualityHook) Report(filePath string) (string, bool) {
	data, err := h.Context().FileSystem.ReadFile(filePath)
	if err != nil {
		return fmt.Sprintf("article quality: cannot read %s: %v", filePath, err), false
	}

	m := measureArticle(string(data))
	suggestions := articleSuggestions(m)

	var b strings.Builder
	fmt.Fprintf(&b, "article quality report for %s\n", filePath)
	fmt.Fprintf(&b, "  characters: %d%s\n", m.Chars, shortfall(m.Chars < minArticleChars, " (short)"))
	fmt.Fprintf(&b, "  words: %d\n", m.Words)
	if m.HasTitle {
		fmt.Fprintf(&b, "  title: present\n")
	} else {
		fmt.Fprintf(&b, "  title: missing top-level heading\n")
	}
	fmt.Fprintf(&b, "  paragraphs: %d%s\n", m.Paragraphs, shortfall(m.Paragraphs < minArticleParagraphs, " (few)"))

	if len(suggestions) == 0 {
		b.WriteString("looks good")
		return b.String(), true
	}
	b.WriteString("suggestions:\n")
	for i, s := range suggestions {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "  - %s", s)
	}
	return b.String(), false
}

func shortfall(short bool, note string) string {
	if short {
		return note
	}
	return ""
}

// measureArticle computes the quality indicators over document content.
func measureArticle(content string) articleMetrics {
	paragraphs := 0
	for _, p := range strings.Split(content, "\n\n") {
		if strings.TrimSpace(p) != "" {
			paragraphs++
		}
	}
	return articleMetrics{
		Chars:      utf8.RuneCountInString(content),
		Words:      len(strings.Fields(content)),
		HasTitle:   strings.HasPrefix(strings.TrimSpace(content), "#"),
		Paragraphs: paragraphs,
	}
}

// articleSuggestions maps failed thresholds onto improvement suggestions.
func articleSuggestions(m articleMetrics) []string {
	var out []string
	if m.Chars < minArticleChars {
		out = append(out, fmt.Sprintf("expand the content to at least %d characters", minArticleChars))
	}
	if !m.HasTitle {
		out = append(out, "add a top-level heading (# Title)")
	}
	if m.Paragraphs < minArticleParagraphs {
		out = append(out, "split the content into more paragraphs for readability")
	}
	return out
}
