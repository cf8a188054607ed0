package config

const (
	// MinUsernameLength / MaxUsernameLength bound usernames at
	// registration. Short enough for reasonable UX, long enough to avoid
	// collisions with real names.
	MinUsernameLength = 4
	MaxUsernameLength = 20

	// MinPasswordLength and MaxPasswordLength bound passwords at
	// registration. The maximum is bcrypt's 72-byte input limit;
	// GenerateFromPassword errors on anything longer rather than
	// silently truncating, so it must be a validation failure.
	MinPasswordLength = 6
	MaxPasswordLength = 72

	// MaxConversationTitleLength bounds both explicit renames and
	// model-derived titles. Fits in a sidebar without truncation games.
	MaxConversationTitleLength = 100
)
