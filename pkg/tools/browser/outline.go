package browser

import (
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	nethtml "golang.org/x/net/html"
)

// pageOutline is the reduced page the model reasons over.
type pageOutline struct {
	Title     string
	HTML      string
	Truncated bool
}

var (
	// droppedElements never reach the model, children included.
	droppedElements = set("head", "script", "style", "noscript", "template", "iframe", "object", "embed", "svg", "canvas")

	// keptElements are written as tags even without an element id. Anything
	// else is unwrapped to its text.
	keptElements = set("h1", "h2", "h3", "h4", "h5", "h6", "table", "tr", "td", "th", "ul", "ol", "li",
		"form", "dialog", "label", "time", "button", "input", "select", "option", "textarea", "a", "img")

	// lineElements start on a fresh line, written or not.
	lineElements = set("div", "p", "section", "article", "header", "footer", "nav", "main", "aside", "br",
		"h1", "h2", "h3", "h4", "h5", "h6", "table", "tr", "ul", "ol", "li", "form", "dialog")

	voidElements = set("input", "img", "br")

	stateAttributes = set("role", "aria-label", "aria-expanded", "aria-checked", "aria-selected",
		"aria-disabled", "aria-pressed", "title", "disabled")

	controlAttributes = map[string]map[string]bool{
		"input":    set("type", "name", "placeholder", "value", "checked"),
		"textarea": set("name", "placeholder"),
		"select":   set("name"),
		"option":   set("value", "selected"),
		"label":    set("for"),
		"button":   set("type"),
		"a":        set("href"),
		"time":     set("datetime"),
		"img":      set("alt"),
	}
)

func set(items ...string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, item := range items {
		m[item] = true
	}
	return m
}

// outlinePage reduces a page to its tagged controls, their state and the text
// around them. Layout wrappers are unwrapped; ids and classes are dropped
// because targets are named by ElementIDAttribute. Output stops at maxLength.
func outlinePage(raw string, maxLength int) (*pageOutline, error) {
	doc, err := nethtml.Parse(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	w := &outlineWriter{limit: maxLength}
	root := findElement(doc, "body")
	if root == nil {
		root = doc
	}
	w.children(root)

	var title string
	if t := findElement(doc, "title"); t != nil {
		title = collapse(textContent(t))
	}

	return &pageOutline{
		Title:     title,
		HTML:      strings.TrimSpace(w.b.String()),
		Truncated: w.truncated,
	}, nil
}

type outlineWriter struct {
	b         strings.Builder
	limit     int
	truncated bool
}

func (w *outlineWriter) children(n *nethtml.Node) {
	for c := n.FirstChild; c != nil && !w.truncated; c = c.NextSibling {
		switch c.Type {
		case nethtml.TextNode:
			w.text(c.Data)
		case nethtml.ElementNode:
			w.element(c)
		}
	}
}

func (w *outlineWriter) element(n *nethtml.Node) {
	tag := strings.ToLower(n.Data)
	if droppedElements[tag] || isHidden(n, tag) {
		return
	}
	if lineElements[tag] {
		w.newline()
	}

	if !keptElements[tag] && !hasAttr(n, ElementIDAttribute) && !hasAttr(n, "role") {
		w.children(n)
		if lineElements[tag] {
			w.newline()
		}
		return
	}

	w.write("<" + tag + attributes(n, tag) + ">")
	if voidElements[tag] {
		return
	}
	w.children(n)
	w.write("</" + tag + ">")
}

func (w *outlineWriter) text(raw string) {
	text := collapse(raw)
	if text == "" {
		return
	}
	if s := w.b.String(); s != "" && !strings.HasSuffix(s, "\n") && !strings.HasSuffix(s, ">") {
		text = " " + text
	}
	text = html.EscapeString(text)

	if remaining := w.limit - w.b.Len(); len(text) > remaining {
		for remaining > 0 && !utf8.RuneStart(text[remaining]) {
			remaining--
		}
		if remaining > 0 {
			w.b.WriteString(text[:remaining])
		}
		w.b.WriteString("...")
		w.truncated = true
		return
	}
	w.b.WriteString(text)
}

func (w *outlineWriter) write(s string) {
	if w.b.Len()+len(s) > w.limit {
		w.truncated = true
		return
	}
	w.b.WriteString(s)
}

func (w *outlineWriter) newline() {
	if s := w.b.String(); s != "" && !strings.HasSuffix(s, "\n") {
		w.write("\n")
	}
}

// attributes renders the element id first, then state and control attributes
// in document order.
func attributes(n *nethtml.Node, tag string) string {
	var b strings.Builder
	for _, a := range n.Attr {
		if a.Key == ElementIDAttribute {
			fmt.Fprintf(&b, ` %s="%s"`, a.Key, html.EscapeString(a.Val))
		}
	}
	for _, a := range n.Attr {
		key := strings.ToLower(a.Key)
		if stateAttributes[key] || controlAttributes[tag][key] {
			fmt.Fprintf(&b, ` %s="%s"`, key, html.EscapeString(a.Val))
		}
	}
	return b.String()
}

func isHidden(n *nethtml.Node, tag string) bool {
	if hasAttr(n, "hidden") || attr(n, "aria-hidden") == "true" {
		return true
	}
	return tag == "input" && strings.EqualFold(attr(n, "type"), "hidden")
}

func hasAttr(n *nethtml.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func attr(n *nethtml.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func findElement(n *nethtml.Node, tag string) *nethtml.Node {
	if n.Type == nethtml.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func textContent(n *nethtml.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == nethtml.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
