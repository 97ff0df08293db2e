package discord

import "encoding/json"

// Interaction types delivered to the webhook endpoint.
const (
	InteractionPing               = 1
	InteractionApplicationCommand = 2
	InteractionMessageComponent   = 3
)

// Interaction callback types.
const (
	ResponsePong           = 1
	ResponseChannelMessage = 4
	ResponseUpdateMessage  = 7
)

// Message flags.
const (
	FlagEphemeral    = 1 << 6
	FlagComponentsV2 = 1 << 15
)

// Component types (components V2).
const (
	ComponentActionRow    = 1
	ComponentButton       = 2
	ComponentStringSelect = 3
	ComponentTextDisplay  = 10
)

const ButtonStylePrimary = 1

// ContextGuild is the interaction context flag for guild channels; any
// other value means a (group) DM context.
const ContextGuild = 0

type User struct {
	ID       string `json:"id"`
	Username string `json:"username,omitempty"`
}

type Member struct {
	User *User `json:"user,omitempty"`
}

type Message struct {
	ID string `json:"id"`
}

type CommandOption struct {
	Name  string          `json:"name"`
	Type  int             `json:"type,omitempty"`
	Value json.RawMessage `json:"value,omitempty"`
}

type InteractionData struct {
	Name     string          `json:"name,omitempty"`
	Options  []CommandOption `json:"options,omitempty"`
	CustomID string          `json:"custom_id,omitempty"`
	Values   []string        `json:"values,omitempty"`
}

// Interaction is the inbound webhook event body, reduced to the fields
// the bot reads.
type Interaction struct {
	ID      string           `json:"id"`
	Type    int              `json:"type"`
	Token   string           `json:"token"`
	Context *int             `json:"context,omitempty"`
	Data    *InteractionData `json:"data,omitempty"`
	Member  *Member          `json:"member,omitempty"`
	User    *User            `json:"user,omitempty"`
	Message *Message         `json:"message,omitempty"`
}

// StringOption returns the named option's value as a string.
func (d *InteractionData) StringOption(name string) (string, bool) {
	raw, ok := d.rawOption(name)
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// IntOption returns the named option's value as an int64.
func (d *InteractionData) IntOption(name string) (int64, bool) {
	raw, ok := d.rawOption(name)
	if !ok {
		return 0, false
	}
	var n int64
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, false
	}
	return n, true
}

func (d *InteractionData) rawOption(name string) (json.RawMessage, bool) {
	if d == nil {
		return nil, false
	}
	for _, opt := range d.Options {
		if opt.Name == name && len(opt.Value) > 0 {
			return opt.Value, true
		}
	}
	return nil, false
}

// Response is the immediate reply body for an interaction.
type Response struct {
	Type int           `json:"type"`
	Data *ResponseData `json:"data,omitempty"`
}

type ResponseData struct {
	Flags      int         `json:"flags,omitempty"`
	Components []Component `json:"components,omitempty"`
}

// Component covers the union of component shapes the bot emits; unset
// fields are omitted from the wire form.
type Component struct {
	Type       int            `json:"type"`
	Content    string         `json:"content,omitempty"`
	CustomID   string         `json:"custom_id,omitempty"`
	Label      string         `json:"label,omitempty"`
	Style      int            `json:"style,omitempty"`
	Options    []SelectOption `json:"options,omitempty"`
	Components []Component    `json:"components,omitempty"`
}

type SelectOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

func TextDisplay(content string) Component {
	return Component{Type: ComponentTextDisplay, Content: content}
}

func ActionRow(children ...Component) Component {
	return Component{Type: ComponentActionRow, Components: children}
}

func Button(customID, label string) Component {
	return Component{Type: ComponentButton, CustomID: customID, Label: label, Style: ButtonStylePrimary}
}

func StringSelect(customID string, opts []SelectOption) Component {
	return Component{Type: ComponentStringSelect, CustomID: customID, Options: opts}
}

// TextMessage builds a components-V2 message response holding a single
// text block, optionally ephemeral, optionally with trailing components.
func TextMessage(content string, ephemeral bool, extra ...Component) *Response {
	flags := FlagComponentsV2
	if ephemeral {
		flags |= FlagEphemeral
	}
	comps := append([]Component{TextDisplay(content)}, extra...)
	return &Response{
		Type: ResponseChannelMessage,
		Data: &ResponseData{Flags: flags, Components: comps},
	}
}
