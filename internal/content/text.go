package content

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

const (
	wordsPerMinute   = 200
	summaryMaxLength = 160
)

// PlainText returns the visible text of an HTML fragment with whitespace
// collapsed. Preformatted blocks are skipped.
func PlainText(fragment string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	skipDepth := 0
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.StartTagToken:
			if name, _ := tokenizer.TagName(); skipsText(string(name)) {
				skipDepth++
			}
		case html.EndTagToken:
			if name, _ := tokenizer.TagName(); skipsText(string(name)) && skipDepth > 0 {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth == 0 {
				b.Write(tokenizer.Text())
				b.WriteByte(' ')
			}
		}
	}
}

func skipsText(tag string) bool {
	switch tag {
	case "pre", "script", "style":
		return true
	}
	return false
}

// ReadingMinutes estimates reading time for a word count, never less than a
// minute.
func ReadingMinutes(words int) int {
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	return max(minutes, 1)
}

// Excerpt shortens text to at most summaryMaxLength runes, cutting on a word
// boundary and adding an ellipsis when text was shortened.
func Excerpt(text string) string {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) <= summaryMaxLength {
		return text
	}
	runes := []rune(text)
	cut := string(runes[:summaryMaxLength])
	if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}
