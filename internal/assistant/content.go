package assistant

import "google.golang.org/genai"

// Content is the tagged union of payloads a user turn can carry. Each
// variant knows how to render itself as request parts at the model
// boundary; nothing else inspects the variants.
type Content interface {
	parts() []*genai.Part
}

// PlainText is an ordinary typed message.
type PlainText struct {
	Text string
}

func (c PlainText) parts() []*genai.Part {
	return []*genai.Part{genai.NewPartFromText(c.Text)}
}

// ImageAttachment is a message with an inline image for visual search.
type ImageAttachment struct {
	Text     string
	MIMEType string
	Data     []byte
}

func (c ImageAttachment) parts() []*genai.Part {
	return []*genai.Part{
		genai.NewPartFromText(c.DisplayText()),
		genai.NewPartFromBytes(c.Data, c.MIMEType),
	}
}

// DisplayText is the caption shown in the transcript, falling back to a
// standard analysis request when the user sent the image alone.
func (c ImageAttachment) DisplayText() string {
	if c.Text == "" {
		return "Analise esta imagem."
	}
	return c.Text
}

// FunctionResult feeds a locally executed function's output back into the
// conversation thread.
type FunctionResult struct {
	Name     string
	Response map[string]any
}

func (c FunctionResult) parts() []*genai.Part {
	return []*genai.Part{genai.NewPartFromFunctionResponse(c.Name, c.Response)}
}

// historyText returns the transcript text of a turn, when it has one.
func historyText(c Content) (string, bool) {
	switch v := c.(type) {
	case PlainText:
		return v.Text, true
	case ImageAttachment:
		return v.Text, v.Text != ""
	default:
		return "", false
	}
}
