package format

import (
	"regexp"
	"strings"
)

var mdRe = regexp.MustCompile("([_*`\\[])")

// Markdown escapes user supplied text for the legacy Markdown parse mode.
// The result is only valid outside entities.
func Markdown(text string) string {
	return mdRe.ReplaceAllString(text, `\$1`)
}

var linkTextCleaner = strings.NewReplacer("[", "", "]", "")

// LinkText prepares user supplied text for the label of an inline link.
// Telegram reads link labels verbatim up to the first ']', so brackets are
// dropped and nothing is escaped.
func LinkText(text string) string {
	return strings.TrimSpace(linkTextCleaner.Replace(text))
}

// Bold wraps text in a bold entity. Its content is read verbatim up to the
// closing '*', so asterisks are dropped instead of escaped.
func Bold(text string) string {
	return "*" + strings.ReplaceAll(text, "*", "") + "*"
}
