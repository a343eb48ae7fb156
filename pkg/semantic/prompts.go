package semantic

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/entrhq/courtbook/pkg/tools/browser"
)

const systemPrompt = `You operate a web page for a user who is booking a public sports court.
The page is given as cleaned HTML. Every interactive element carries a data-courtbook-id attribute with a number.
Refer to elements only by that number. Never invent numbers that are not on the page.
Reply with exactly one JSON object and nothing else.`

func writePage(b *strings.Builder, snap *browser.Snapshot) {
	fmt.Fprintf(b, "URL: %s\n", snap.URL)
	if snap.Title != "" {
		fmt.Fprintf(b, "Title: %s\n", snap.Title)
	}
	if snap.Truncated {
		b.WriteString("Note: the page was truncated to fit.\n")
	}
	b.WriteString("\nPage HTML:\n```html\n")
	b.WriteString(snap.HTML)
	b.WriteString("\n```\n\n")
}

func buildActPrompt(instruction string, snap *browser.Snapshot) string {
	var b strings.Builder
	writePage(&b, snap)
	fmt.Fprintf(&b, "Intent: %s\n\n", instruction)
	b.WriteString(`Choose the single element that carries out the intent and how to use it.
Reply as {"action": "click" | "fill" | "select" | "none", "target_id": <number>, "value": "<text to type or option to choose>", "reason": "<short>"}.
Use "fill" for typing into inputs, "select" only for native <select> elements, and "click" for everything else.
If the intent quotes text to enter, value must be exactly that text.
Use "none" with target_id 0 if no element on the page carries out the intent.`)
	return b.String()
}

func buildObservePrompt(instruction string, snap *browser.Snapshot) string {
	var b strings.Builder
	writePage(&b, snap)
	fmt.Fprintf(&b, "Find: %s\n\n", instruction)
	b.WriteString(`List every element that matches, in page order.
Reply as {"elements": [{"target_id": <number>, "description": "<what the element is>"}]}.
Reply {"elements": []} if nothing matches.`)
	return b.String()
}

func buildExtractPrompt(instruction string, schema Schema, snap *browser.Snapshot) (string, error) {
	shape, err := json.MarshalIndent(schema.JSON, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to render schema %s: %w", schema.Name, err)
	}

	var b strings.Builder
	writePage(&b, snap)
	fmt.Fprintf(&b, "Extract: %s\n\n", instruction)
	if schema.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", schema.Description)
	}
	b.WriteString("Reply with a JSON object that validates against this JSON schema:\n```json\n")
	b.Write(shape)
	b.WriteString("\n```\n")
	b.WriteString("Use null for nullable fields the page does not show. Use an empty array when there are no items.")
	return b.String(), nil
}
