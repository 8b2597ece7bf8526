// internal/model/message.go
package model

import "strings"

// RenderedMessage is one personalized message ready for delivery.
// Text is a best-effort plain fallback derived from the HTML body,
// not a full HTML-to-text conversion.
type RenderedMessage struct {
    Subject string
    HTML    string
    Text    string
}

var brReplacer = strings.NewReplacer(
    "<br>", "\n",
    "<br/>", "\n",
    "<br />", "\n",
)

// NewRenderedMessage builds a message from a rendered subject and HTML body,
// deriving the plain-text fallback.
func NewRenderedMessage(subject, html string) RenderedMessage {
    return RenderedMessage{
        Subject: subject,
        HTML:    html,
        Text:    brReplacer.Replace(html),
    }
}
