package assistant

import (
	"regexp"
	"strings"

	"ultrabot/server/internal/models"
)

// Intent is the contact-form mode inferred from the lead summary.
type Intent string

const (
	IntentBuy  Intent = "buy"
	IntentSell Intent = "sell"
)

// Directives are the typed side effects extracted from one assistant turn.
type Directives struct {
	QuickReplies       []string         `json:"quickReplies,omitempty"`
	PropertyIDs        []string         `json:"propertyIds,omitempty"`
	Summary            string           `json:"summary,omitempty"`
	HasSummary         bool             `json:"hasSummary,omitempty"`
	Intent             Intent           `json:"intent,omitempty"`
	Score              models.LeadScore `json:"score,omitempty"`
	ShowContactForm    bool             `json:"showContactForm,omitempty"`
	RequestGeolocation bool             `json:"requestGeolocation,omitempty"`
}

const (
	contactFormTag = "[SHOW_CONTACT_FORM]"
	geolocationTag = "[REQUEST_GEOLOCATION]"
)

var (
	quickRepliesPattern = regexp.MustCompile(`\[QUICK_REPLIES:\s*([^\]]+)\]`)
	propertiesPattern   = regexp.MustCompile(`\[PROPERTIES:\s*([^\]]+)\]`)
	summaryPattern      = regexp.MustCompile(`\[SUMMARY:\s*([^\]]+)\]`)
	scorePattern        = regexp.MustCompile(`\[SCORE:\s*([^\]]+)\]`)

	// tagOpenPattern marks where a directive begins in partially streamed
	// text, so incomplete tags never reach the screen.
	tagOpenPattern = regexp.MustCompile(`\[(?:QUICK_REPLIES|PROPERTIES|SUMMARY|SCORE|SHOW_CONTACT_FORM|REQUEST_GEOLOCATION)`)

	tagOpeners = []string{
		"[QUICK_REPLIES",
		"[PROPERTIES",
		"[SUMMARY",
		"[SCORE",
		"[SHOW_CONTACT_FORM",
		"[REQUEST_GEOLOCATION",
	}
)

// ProvisionalDisplay truncates accumulated raw text at the first
// tag-opening sequence, for progressive rendering while a stream is live.
// A trailing bracket run that could still grow into a tag opener is held
// back too, so a half-received tag name never flashes on screen.
func ProvisionalDisplay(raw string) string {
	if loc := tagOpenPattern.FindStringIndex(raw); loc != nil {
		return raw[:loc[0]]
	}
	if i := strings.LastIndex(raw, "["); i >= 0 {
		tail := raw[i:]
		for _, opener := range tagOpeners {
			if strings.HasPrefix(opener, tail) {
				return raw[:i]
			}
		}
	}
	return raw
}

// Parse scans a fully streamed response once, extracting each directive
// via a single match in fixed priority order and removing the matched
// spans from the display text. Unknown bracket content is left as-is.
func Parse(raw string) (string, Directives) {
	text := raw
	var d Directives

	if m := quickRepliesPattern.FindStringSubmatch(text); m != nil {
		for _, part := range strings.Split(m[1], "|") {
			d.QuickReplies = append(d.QuickReplies, strings.TrimSpace(part))
		}
		text = strip(text, m[0])
	}

	if m := propertiesPattern.FindStringSubmatch(text); m != nil {
		for _, part := range strings.Split(m[1], ",") {
			if id := strings.TrimSpace(part); id != "" {
				d.PropertyIDs = append(d.PropertyIDs, id)
			}
		}
		text = strip(text, m[0])
	}

	if m := summaryPattern.FindStringSubmatch(text); m != nil {
		d.Summary = m[1]
		d.HasSummary = true
		d.Intent = inferIntent(m[1])
		text = strip(text, m[0])
	}

	if m := scorePattern.FindStringSubmatch(text); m != nil {
		d.Score = models.LeadScore(strings.TrimSpace(m[1]))
		text = strip(text, m[0])
	}

	if strings.Contains(text, contactFormTag) {
		d.ShowContactForm = true
		text = strip(text, contactFormTag)
	}

	if strings.Contains(text, geolocationTag) {
		d.RequestGeolocation = true
		text = strip(text, geolocationTag)
	}

	return text, d
}

func strip(text, span string) string {
	return strings.TrimSpace(strings.Replace(text, span, "", 1))
}

// inferIntent derives the contact-form mode from the summary wording.
func inferIntent(summary string) Intent {
	lower := strings.ToLower(summary)
	if strings.Contains(lower, "vender") || strings.Contains(lower, "list") || strings.Contains(lower, "sell") {
		return IntentSell
	}
	return IntentBuy
}
