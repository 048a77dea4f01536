package apis

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var (
	upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header["Origin"]
			if len(origin) == 0 {
				return true
			}
			u, err := url.Parse(origin[0])
			if err != nil {
				return false
			}
			return u.Scheme == "moz-extension"
		},
	}
	resultChan  = make(chan string)
	commandChan = make(chan CommandEvent)
	activeConn  *websocket.Conn
)

func ws(w http.ResponseWriter, r *http.Request) {
	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.WithError(err).Warnln("websocket upgrade failed")
		return
	}
	defer func() {
		c.Close()
		if c == activeConn {
			activeConn = nil
		}
	}()
	if activeConn != nil {
		logrus.Infof("closing previous panel conn %p", activeConn)
		activeConn.Close()
	}
	activeConn = c
	for {
		_, message, err := c.ReadMessage()
		if err != nil {
			logrus.WithError(err).Warnln("websocket read failed")
			break
		}
		if c != activeConn {
			// not sure if this can happen, but let's ignore such reads just in case
			logrus.Infoln("ignoring websocket read on old socket")
			break
		}
		var event CommandEvent
		if err := json.Unmarshal(message, &event); err != nil {
			logrus.WithError(err).Warnf("could not unmarshal panel message: %s", message)
		} else if event.Command != "" {
			commandChan <- event
		}
	}
}

func remoteWriter() {
	for msg := range resultChan {
		if activeConn == nil {
			logrus.Debugf("discarding %s", msg)
			continue
		}
		if err := activeConn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
			logrus.WithError(err).Warnln("websocket write failed")
		}
	}
}

func remoteListener(port int) {
	err := http.ListenAndServe(fmt.Sprintf("127.0.0.1:%d", port), nil)
	logrus.WithError(err).Fatalln("remote server exited")
}

// RunRemote serves the local control panel socket and returns the stream
// of commands the panel sends.
func RunRemote(port int) <-chan CommandEvent {
	http.HandleFunc("/ws", ws)
	go remoteWriter()
	go remoteListener(port)
	return commandChan
}

// RemoteReport tells the connected panel how its last command went.
func RemoteReport(ok bool, command string) {
	resultChan <- fmt.Sprintf(`{"ok": %t, "command": %q}`, ok, command)
}
