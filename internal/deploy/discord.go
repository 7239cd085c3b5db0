package deploy

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// DiscordChannel publishes campaign content to a Discord channel.
type DiscordChannel struct {
	Session   *discordgo.Session
	ChannelID string
}

func NewDiscordChannel(token, channelID string) (*DiscordChannel, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}
	return &DiscordChannel{Session: session, ChannelID: channelID}, nil
}

func (d *DiscordChannel) Name() string { return "discord" }

func (d *DiscordChannel) Publish(ctx context.Context, m Message) error {
	text := m.Body
	if m.Subject != "" {
		text = fmt.Sprintf("**%s**\n\n%s", m.Subject, m.Body)
	}
	if len(m.Hashtags) > 0 {
		text += "\n\n" + strings.Join(m.Hashtags, " ")
	}
	if m.ImageURL != "" {
		text += "\n" + m.ImageURL
	}

	_, err := d.Session.ChannelMessageSend(d.ChannelID, text)
	return err
}

func (d *DiscordChannel) Close() error {
	return d.Session.Close()
}
