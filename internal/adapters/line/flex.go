package line

// Message payload types for the LINE Messaging API. Only the shapes the
// bot actually sends are modelled.

// Message is any LINE message payload.
type Message any

// TextMessage is a plain text message.
type TextMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// NewTextMessage creates a text message.
func NewTextMessage(text string) TextMessage {
	return TextMessage{Type: "text", Text: text}
}

// TemplateMessage wraps a buttons template.
type TemplateMessage struct {
	Type     string          `json:"type"`
	AltText  string          `json:"altText"`
	Template ButtonsTemplate `json:"template"`
}

// ButtonsTemplate is a buttons template body.
type ButtonsTemplate struct {
	Type    string           `json:"type"`
	Text    string           `json:"text"`
	Actions []TemplateAction `json:"actions"`
}

// TemplateAction is a button action: a follow-up message or a URI.
type TemplateAction struct {
	Type  string `json:"type"`
	Label string `json:"label"`
	Text  string `json:"text,omitempty"`
	URI   string `json:"uri,omitempty"`
}

// FlexMessage carries a flex container with a plain text fallback.
type FlexMessage struct {
	Type     string        `json:"type"`
	AltText  string        `json:"altText"`
	Contents FlexContainer `json:"contents"`
}

// FlexContainer is a bubble container.
type FlexContainer struct {
	Type string   `json:"type"`
	Body *FlexBox `json:"body,omitempty"`
}

// FlexBox lays out nested flex components.
type FlexBox struct {
	Type     string          `json:"type"`
	Layout   string          `json:"layout"`
	Margin   string          `json:"margin,omitempty"`
	Spacing  string          `json:"spacing,omitempty"`
	Contents []FlexComponent `json:"contents"`
}

// FlexComponent is any flex node: box, text or separator.
type FlexComponent any

// FlexText is a text node.
type FlexText struct {
	Type   string `json:"type"`
	Text   string `json:"text"`
	Size   string `json:"size,omitempty"`
	Color  string `json:"color,omitempty"`
	Weight string `json:"weight,omitempty"`
	Align  string `json:"align,omitempty"`
	Margin string `json:"margin,omitempty"`
	Flex   *int   `json:"flex,omitempty"`
	Wrap   bool   `json:"wrap,omitempty"`
}

// FlexSeparator is a separator node.
type FlexSeparator struct {
	Type   string `json:"type"`
	Margin string `json:"margin,omitempty"`
}

func flexInt(v int) *int { return &v }

func separator(margin string) FlexSeparator {
	return FlexSeparator{Type: "separator", Margin: margin}
}
