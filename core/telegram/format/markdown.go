package format

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// MarkdownV1 denotes Telegram markdown version 1.
	MarkdownV1 = 1
	// MarkdownV2 denotes Telegram markdown version 2.
	MarkdownV2 = 2
)

const mdV2Specials = "_*[]()~`>#+-=|{}.!\\"

var (
	mdV1Re = regexp.MustCompile("[_*`\\[]")
	mdV2Re = regexp.MustCompile("[" + regexp.QuoteMeta(mdV2Specials) + "]")
)

// EscapeMarkdown escapes special characters for MarkdownV1 or V2.
// entityType "code" or "pre" only escapes what Telegram requires inside code entities.
func EscapeMarkdown(text string, version int, entityType string) (string, error) {
	code := entityType == "code" || entityType == "pre"
	switch version {
	case MarkdownV1:
		if code {
			// V1 cannot escape inside code spans; drop the closing delimiter instead.
			return strings.ReplaceAll(text, "`", "'"), nil
		}
		return mdV1Re.ReplaceAllString(text, `\$0`), nil
	case MarkdownV2:
		if code {
			return strings.NewReplacer("\\", "\\\\", "`", "\\`").Replace(text), nil
		}
		return mdV2Re.ReplaceAllString(text, `\$0`), nil
	}
	return "", fmt.Errorf("unsupported markdown version: %d", version)
}

// MD escapes text for Markdown V1 outside of entities.
func MD(text string) string {
	out, _ := EscapeMarkdown(text, MarkdownV1, "")
	return out
}

// MDCode prepares text for a Markdown V1 code span.
func MDCode(text string) string {
	out, _ := EscapeMarkdown(text, MarkdownV1, "code")
	return out
}
