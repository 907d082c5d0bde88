package telegram

import (
	"fmt"
	"strings"
	"time"
)

const maxMessageLen = 4090

// Headline is one article line in a digest.
type Headline struct {
	Title       string
	Source      string
	URL         string
	Sentiment   string
	Credibility int
}

// ScopeDigest summarizes one refreshed scope.
type ScopeDigest struct {
	Scope     string
	Changed   bool
	Skipped   bool
	Articles  int
	FetchedAt time.Time
	Top       []Headline
}

// FormatRefreshDigest renders refresh results as Markdown messages, splitting into numbered
// parts so no message exceeds the Telegram limit.
func FormatRefreshDigest(digests []ScopeDigest) []string {
	if len(digests) == 0 {
		return []string{"No scopes were refreshed."}
	}

	var messages []string
	var current strings.Builder
	part := 1

	startNewPart := func() {
		current.Reset()
		if part == 1 {
			current.WriteString("🌍 *News Refresh Digest* 🌍\n\n")
		} else {
			current.WriteString(fmt.Sprintf("---*News Refresh Digest Part %d*---\n\n", part))
		}
	}
	startNewPart()

	for _, d := range digests {
		entry := formatScope(d)
		if current.Len()+len(entry) > maxMessageLen {
			messages = append(messages, current.String())
			part++
			startNewPart()
		}
		current.WriteString(entry)
	}
	messages = append(messages, current.String())
	return messages
}

func formatScope(d ScopeDigest) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🗂 *- - - - - %s - - - - -*\n", EscapeMarkdown(d.Scope)))

	switch {
	case d.Skipped:
		b.WriteString("⏭ Still fresh, not refetched\n\n")
		return b.String()
	case !d.Changed:
		b.WriteString(fmt.Sprintf("🔁 Headlines unchanged (%d articles)\n\n", d.Articles))
		return b.String()
	}

	b.WriteString(fmt.Sprintf("🆕 *%d articles* at %s\n", d.Articles, d.FetchedAt.UTC().Format("2006-01-02 15:04 MST")))
	for _, h := range d.Top {
		b.WriteString(fmt.Sprintf("%s %s _(%s, %d/100)_\n",
			sentimentIcon(h.Sentiment),
			EscapeMarkdown(h.Title),
			EscapeMarkdown(h.Source),
			h.Credibility,
		))
	}
	b.WriteString("\n")
	return b.String()
}

func sentimentIcon(sentiment string) string {
	switch strings.ToLower(sentiment) {
	case "positive":
		return "😊"
	case "negative":
		return "😟"
	default:
		return "😐"
	}
}

// EscapeMarkdown escapes the characters legacy Markdown mode treats as markup.
func EscapeMarkdown(s string) string {
	r := strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")
	return r.Replace(s)
}
