package notify

// FooterText is shown under every Discord embed
const FooterText = "Brandish Events"

// Log messages for notification delivery
const (
	LogMsgPlayerNotice            = "Player notice"
	LogMsgBroadcast               = "Broadcast"
	LogMsgResolveExternalIDFailed = "Failed to resolve linked account"
	LogMsgDiscordSendFailed       = "Failed to send Discord notification"
)
