package example

import (
	stdhtml "html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

/*
Responsibilities
- Locate the puzzle's narrative articles (article.day-desc)
- Extract the walkthrough example block(s) and stated answers

Extraction Strategy
- Forward-only scan over the flattened descendants of the narrative,
  in document order, across both parts
- A paragraph mentioning an example arms the scan; the next <pre> whose
  only child is a <code> element is captured for the current part
- Any <code> whose only child is an <em> states the answer for the
  current part; when the narrative states several, the last one wins
- The h2 element with id "part2" switches the scan to part 2 and rearms
  the paragraph heuristic

The extractor never fetches; it only reads one HTML document. A page
without the expected structure yields an absent result, not an error.
*/

// Words that indicate a paragraph refers back to an earlier example
// rather than announcing a new one.
var phraseDisqualifiers = []string{"above", "this", "again"}

var emphasisTag = regexp.MustCompile(`</?em(?:\s[^>]*)?>`)

// Parse extracts an Example from a puzzle page's HTML. It returns nil
// when the page has no narrative article or no qualifying example block
// for part 1. Parsing identical HTML always yields an identical result.
func Parse(pageHTML string) *Example {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil
	}

	elements := doc.Find("article.day-desc *").Nodes
	if len(elements) == 0 {
		return nil
	}

	var state scanState
	var ex Example

	for _, node := range elements {
		if node.Type != html.ElementNode {
			continue
		}

		switch node.Data {
		case "p":
			if announcesExample(textContent(node)) {
				state.sawPhrase = true
			}

		case "pre":
			if state.captured || !state.sawPhrase {
				continue
			}
			code, ok := onlyChildElement(node, "code")
			if !ok {
				continue
			}
			data := stdhtml.UnescapeString(stripEmphasis(innerHTML(code)))
			if state.inPart2 {
				ex.Part2Data = data
			} else {
				ex.Data = data
			}
			state.captured = true

		case "code":
			em, ok := onlyChildElement(node, "em")
			if !ok {
				continue
			}
			answer := stdhtml.UnescapeString(innerHTML(em))
			if state.inPart2 {
				ex.Part2Answer = answer
			} else {
				ex.Part1Answer = answer
			}

		case "h2":
			if strings.EqualFold(attrValue(node, "id"), "part2") {
				state.inPart2 = true
				// the phrase-then-block heuristic re-applies
				// independently to part 2's narrative
				state.sawPhrase = false
				state.captured = false
			}
		}
	}

	if ex.Data == "" {
		return nil
	}
	return &ex
}

// announcesExample reports whether a paragraph's text announces a
// walkthrough example. "for example" always qualifies; a bare "example"
// qualifies unless the paragraph carries a disqualifying word that
// suggests it merely references an earlier example.
func announcesExample(text string) bool {
	text = strings.ToLower(text)
	if strings.Contains(text, "for example") {
		return true
	}
	if !strings.Contains(text, "example") {
		return false
	}
	for _, word := range phraseDisqualifiers {
		if strings.Contains(text, word) {
			return false
		}
	}
	return true
}

// onlyChildElement reports the single child of node when node has
// exactly one child node and that child is the named element.
func onlyChildElement(node *html.Node, name string) (*html.Node, bool) {
	child := node.FirstChild
	if child == nil || child.NextSibling != nil {
		return nil, false
	}
	if child.Type != html.ElementNode || child.Data != name {
		return nil, false
	}
	return child, true
}

// innerHTML renders the markup inside node, verbatim.
func innerHTML(node *html.Node) string {
	var b strings.Builder
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		// Render only fails on unrenderable node types, which cannot
		// appear under a parsed element
		_ = html.Render(&b, child)
	}
	return b.String()
}

// textContent collects the concatenated text of node's subtree.
func textContent(node *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(node)
	return b.String()
}

func attrValue(node *html.Node, name string) string {
	for _, attr := range node.Attr {
		if attr.Key == name {
			return attr.Val
		}
	}
	return ""
}

// stripEmphasis removes inline emphasis tags while keeping their
// content, so captured example data matches the literal puzzle input.
func stripEmphasis(markup string) string {
	return emphasisTag.ReplaceAllString(markup, "")
}
