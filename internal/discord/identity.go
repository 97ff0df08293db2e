package discord

// ActorID returns the acting user's id. The platform places it under
// member.user in guild context and under user in (group) DM context.
func (i *Interaction) ActorID() string {
	if i == nil {
		return ""
	}
	if i.Context != nil && *i.Context == ContextGuild {
		if i.Member != nil && i.Member.User != nil {
			return i.Member.User.ID
		}
		return ""
	}
	if i.User != nil {
		return i.User.ID
	}
	// Some payloads omit the context flag; fall back to whichever field
	// is populated.
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	return ""
}
