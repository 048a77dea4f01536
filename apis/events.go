package apis

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/thiefmaster/eventsource"
)

type HTTPCredentials struct {
	BaseURL  string `yaml:"url"`
	Username string
	Password string
}

func newRequest(method, path string, body io.Reader, credentials HTTPCredentials) (*http.Request, error) {
	req, err := http.NewRequest(method, credentials.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if credentials.Username != "" && credentials.Password != "" {
		req.SetBasicAuth(credentials.Username, credentials.Password)
	}
	return req, nil
}

// CommandEvent is one remote-control request for the bot, either pushed by
// the command feed or sent from the control panel.
type CommandEvent struct {
	Command  string `json:"command"`
	Argument string `json:"argument"`
}

func subscribeCommands(eventChan chan<- CommandEvent, credentials HTTPCredentials) {
	req, err := newRequest("GET", "/commands", nil, credentials)
	if err != nil {
		logrus.WithError(err).Errorln("could not build feed request")
		return
	}

	stream, err := eventsource.SubscribeWithRequest("", req)
	if err != nil {
		logrus.WithError(err).Warnln("feed subscribe failed, retrying")
		time.Sleep(1 * time.Second)
		defer subscribeCommands(eventChan, credentials)
		return
	}

	stream.InitialRetryDelay = 500 * time.Millisecond
	stream.MaxRetryDelay = 5 * time.Second
	stream.Logger = log.New(logrus.StandardLogger().Writer(), "", 0)
	for {
		select {
		case event := <-stream.Events:
			var cmd CommandEvent
			if err := json.Unmarshal([]byte(event.Data()), &cmd); err != nil {
				logrus.WithError(err).Warnln("could not unmarshal feed event")
			} else if cmd.Command != "" {
				eventChan <- cmd
			}
		case err := <-stream.Errors:
			logrus.WithError(err).Warnln("feed stream error")
		}
	}
}

// SubscribeCommands follows the command feed and delivers every command it
// pushes. The subscription reconnects forever; commands are never deduped
// since two identical commands mean two presses.
func SubscribeCommands(credentials HTTPCredentials) <-chan CommandEvent {
	eventChan := make(chan CommandEvent)
	go subscribeCommands(eventChan, credentials)
	return eventChan
}
