package puzzle

import (
	"strings"
	"time"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/PuerkitoBio/goquery"
	"github.com/arthomnix/libaoc/internal/metadata"
	"github.com/arthomnix/libaoc/pkg/failure"
)

/*
Design Principles
- Semantic fidelity over visual fidelity
- No inferred structure
- No code reformatting

Conversion Rules
- Headings map directly (h2 to ##)
- Code blocks preserved verbatim
- DOM order preserved; both parts' narratives are rendered when present

Inline styles and raw HTML are avoided.
*/

type Renderer struct {
	metadataSink metadata.Sink
}

func NewRenderer(metadataSink metadata.Sink) Renderer {
	return Renderer{
		metadataSink: metadataSink,
	}
}

// Render converts the puzzle page's narrative articles to Markdown.
// Pages with part 2 unlocked carry two narrative articles; both are
// rendered, separated by a blank line.
func (r *Renderer) Render(pageHTML string) (string, failure.ClassifiedError) {
	markdown, err := render(pageHTML)
	if err != nil {
		r.metadataSink.RecordError(
			time.Now(),
			"puzzle",
			"Renderer.Render",
			mapConversionErrorToMetadataCause(err),
			err.Error(),
		)
		return "", err
	}
	return markdown, nil
}

// render is a stateless pure function transforming a puzzle page into
// Markdown. It uses the html-to-markdown/v2 library for deterministic,
// semantic conversion.
func render(pageHTML string) (string, *ConversionError) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return "", &ConversionError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseNotHTML,
		}
	}

	articles := doc.Find("article.day-desc")
	if articles.Length() == 0 {
		return "", &ConversionError{
			Message:   "page has no narrative article",
			Retryable: false,
			Cause:     ErrCauseNoNarrative,
		}
	}

	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		),
	)

	var parts []string
	var convErr *ConversionError

	articles.Each(func(i int, sel *goquery.Selection) {
		if convErr != nil || len(sel.Nodes) == 0 {
			return
		}
		markdown, err := conv.ConvertNode(sel.Nodes[0])
		if err != nil {
			convErr = &ConversionError{
				Message:   err.Error(),
				Retryable: false,
				Cause:     ErrCauseConversionFailure,
			}
			return
		}
		parts = append(parts, strings.TrimSpace(string(markdown)))
	})

	if convErr != nil {
		return "", convErr
	}
	return strings.Join(parts, "\n\n") + "\n", nil
}
