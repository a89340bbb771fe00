package notify

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/BrandishEvents_Go/internal/domain"
	"github.com/osse101/BrandishEvents_Go/internal/logger"
)

// ExternalIDResolver maps a player to their linked Discord user id
type ExternalIDResolver interface {
	ExternalID(ctx context.Context, id int64) (string, error)
}

// DiscordNotifier sends direct messages to linked players and posts
// broadcasts to a channel.
type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
	resolver  ExternalIDResolver
}

// NewDiscordNotifier opens a bot session. The session only talks REST, so no
// gateway connection is made.
func NewDiscordNotifier(token, channelID string, resolver ExternalIDResolver) (*DiscordNotifier, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}
	return NewDiscordNotifierWithSession(s, channelID, resolver), nil
}

// NewDiscordNotifierWithSession wraps an existing session
func NewDiscordNotifierWithSession(s *discordgo.Session, channelID string, resolver ExternalIDResolver) *DiscordNotifier {
	return &DiscordNotifier{session: s, channelID: channelID, resolver: resolver}
}

func embed(text string, color domain.Color) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Description: text,
		Color:       colorValue(color),
		Timestamp:   time.Now().Format(time.RFC3339),
		Footer: &discordgo.MessageEmbedFooter{
			Text: FooterText,
		},
	}
}

// SendToPlayer implements Notifier. Players without a linked account are
// skipped.
func (n *DiscordNotifier) SendToPlayer(ctx context.Context, id int64, text string, color domain.Color) {
	log := logger.FromContext(ctx)

	externalID, err := n.resolver.ExternalID(ctx, id)
	if err != nil {
		log.Warn(LogMsgResolveExternalIDFailed, "player_id", id, "error", err)
		return
	}
	if externalID == "" {
		return
	}

	ch, err := n.session.UserChannelCreate(externalID, discordgo.WithContext(ctx))
	if err != nil {
		log.Error(LogMsgDiscordSendFailed, "player_id", id, "error", err)
		return
	}
	if _, err := n.session.ChannelMessageSendEmbed(ch.ID, embed(text, color), discordgo.WithContext(ctx)); err != nil {
		log.Error(LogMsgDiscordSendFailed, "player_id", id, "error", err)
	}
}

// Broadcast implements Notifier
func (n *DiscordNotifier) Broadcast(ctx context.Context, text string, color domain.Color) {
	if n.channelID == "" {
		return
	}
	if _, err := n.session.ChannelMessageSendEmbed(n.channelID, embed(text, color), discordgo.WithContext(ctx)); err != nil {
		logger.FromContext(ctx).Error(LogMsgDiscordSendFailed, "channel_id", n.channelID, "error", err)
	}
}
