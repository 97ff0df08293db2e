package discordapi

// Application command registration payloads.

// Command option types (subset in use).
const (
	OptionString  = 3
	OptionInteger = 4
	OptionUser    = 6
)

const CommandTypeChatInput = 1

type Command struct {
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	Type             int             `json:"type"`
	Options          []CommandOption `json:"options,omitempty"`
	IntegrationTypes []int           `json:"integration_types,omitempty"`
	Contexts         []int           `json:"contexts,omitempty"`
}

type CommandOption struct {
	Type        int            `json:"type"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Required    bool           `json:"required,omitempty"`
	Choices     []OptionChoice `json:"choices,omitempty"`
}

type OptionChoice struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}
