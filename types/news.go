package types

// Format is the email format a subscriber receives.
// The empty Format is never sent; basket then defaults to FormatHtml.
type Format string

const (
	FormatHtml Format = "H"
	FormatText Format = "T"
)

// FlagStyle selects how boolean options are written to the form body.
// Current basket releases read Y/N tokens; some deployments parse
// native true/false values instead.
// Default: FlagStyleYesNo
type FlagStyle int

const (
	FlagStyleYesNo FlagStyle = iota
	FlagStyleBool
)

func (s FlagStyle) Format(v bool) string {
	switch s {
	case FlagStyleBool:
		if v {
			return "true"
		}
		return "false"
	default:
		if v {
			return "Y"
		}
		return "N"
	}
}

type SubscribeRequest struct {
	Email       string
	Newsletters []string
	Options     *SubscribeOptions
}

// SubscribeOptions is an all-optional bag: zero values and nil flags
// are omitted from the request and basket applies its own defaults.
type SubscribeOptions struct {
	Format    Format
	Country   string
	Lang      string
	SourceUrl string

	// Whether the subscriber is already confirmed (double opt-in skipped).
	// Only honored on privileged subscribe calls.
	Optin *bool

	// Whether basket sends the welcome message for the newsletters.
	TriggerWelcome *bool

	// Whether the call waits for the user record to be synced
	// and returns the user token.
	Sync *bool
}

type UnsubscribeRequest struct {
	Newsletters []string

	// Unsubscribe from all newsletters and opt out of future mail.
	Optout bool
}

// UpdateUserRequest is a partial update: only non-empty fields are sent.
type UpdateUserRequest struct {
	Email   string
	Options *UpdateUserOptions
}

type UpdateUserOptions struct {
	Format  Format
	Country string
	Lang    string
	Optin   *bool

	// Replaces the user's subscriptions with this list.
	Newsletters []string
}

// Bool returns a pointer to v, for the tri-state option flags.
func Bool(v bool) *bool {
	return &v
}
