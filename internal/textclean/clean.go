// Package textclean normalizes raw extracted text before classification and
// field extraction. Clean is pure and idempotent.
package textclean

import (
	"regexp"
	"strings"
)

var (
	rePageFooter   = regexp.MustCompile(`(?i)Page\s+\d+\s+of\s+\d+`)
	reBoilerplate  = regexp.MustCompile(`(?i)Confidential|Proprietary`)
	reReplacement  = regexp.MustCompile("�")
	reWhitespace   = regexp.MustCompile(`\s+`)
	quoteReplacer  = strings.NewReplacer(
		"“", `"`, // left double quote
		"”", `"`, // right double quote
		"‘", "'", // left single quote
		"’", "'", // right single quote
		"–", "-", // en dash
		"—", "-", // em dash
	)
)

// Clean strips boilerplate, decode artifacts, and typographic punctuation,
// then collapses whitespace. Empty input yields empty output.
func Clean(text string) string {
	if text == "" {
		return ""
	}

	text = rePageFooter.ReplaceAllString(text, "")
	text = reBoilerplate.ReplaceAllString(text, "")
	text = reReplacement.ReplaceAllString(text, "")
	text = quoteReplacer.Replace(text)
	text = reWhitespace.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}
