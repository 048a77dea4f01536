package apis

import (
	"context"
	"fmt"

	mm "github.com/mattermost/mattermost/server/public/model"
)

type MattermostSettings struct {
	ServerURL   string `yaml:"url"`
	AccessToken string `yaml:"token"`
	TeamName    string `yaml:"team"`
	ChannelName string `yaml:"channel"`
}

// Announcer posts one-line status messages to a mattermost channel. The
// channel id is resolved on the first post and cached for the rest of the
// process lifetime.
type Announcer struct {
	settings  MattermostSettings
	client    *mm.Client4
	channelId string
}

func NewAnnouncer(settings MattermostSettings) *Announcer {
	client := mm.NewAPIv4Client(settings.ServerURL)
	client.SetToken(settings.AccessToken)
	return &Announcer{settings: settings, client: client}
}

func (a *Announcer) Announce(message string) error {
	if a.channelId == "" {
		channel, _, err := a.client.GetChannelByNameForTeamName(
			context.Background(), a.settings.ChannelName, a.settings.TeamName, "")
		if err != nil {
			return fmt.Errorf("could not get channel from mattermost: %v", err)
		}
		a.channelId = channel.Id
	}
	post := &mm.Post{ChannelId: a.channelId, Message: message}
	if _, _, err := a.client.CreatePost(context.Background(), post); err != nil {
		return fmt.Errorf("could not post to mattermost: %v", err)
	}
	return nil
}
