package browser

import (
	"github.com/entrhq/courtbook/pkg/llm/tokenizer"
)

// tagInteractiveScript numbers visible interactive elements. Previous tags are
// cleared first so ids always describe the current document.
const tagInteractiveScript = `(attr) => {
  document.querySelectorAll('[' + attr + ']').forEach((el) => el.removeAttribute(attr));
  const selector = [
    'a[href]', 'button', 'input:not([type="hidden"])', 'select', 'textarea', 'label',
    '[role="button"]', '[role="link"]', '[role="checkbox"]', '[role="option"]',
    '[role="menuitem"]', '[role="tab"]', '[role="combobox"]', '[role="gridcell"]',
    '[onclick]', '[tabindex]:not([tabindex="-1"])'
  ].join(',');
  let next = 1;
  document.querySelectorAll(selector).forEach((el) => {
    const rect = el.getBoundingClientRect();
    const style = window.getComputedStyle(el);
    if (rect.width === 0 || rect.height === 0) return;
    if (style.visibility === 'hidden' || style.display === 'none') return;
    el.setAttribute(attr, String(next++));
  });
  return next - 1;
}`

// buildSnapshot outlines raw page HTML and fits it into the token budget.
func buildSnapshot(raw string, tok *tokenizer.Tokenizer, opts SnapshotOptions) (*Snapshot, error) {
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultSnapshotTokens
	}

	outline, err := outlinePage(raw, DefaultMaxHTMLLength)
	if err != nil {
		return nil, err
	}

	html, cut := tok.Truncate(outline.HTML, maxTokens)
	return &Snapshot{
		Title:     outline.Title,
		HTML:      html,
		Tokens:    tok.CountTokens(html),
		Truncated: outline.Truncated || cut,
	}, nil
}
