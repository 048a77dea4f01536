package comm

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/tarm/serial"
)

func parseMessage(s string) Message {
	var id int
	if s == "READY" {
		return Message{Message: Ready}
	} else if _, err := fmt.Sscanf(s, "KEY.%d=1", &id); err == nil {
		return Message{Message: KeyPressed, Source: id}
	} else if _, err := fmt.Sscanf(s, "KEY.%d=0", &id); err == nil {
		return Message{Message: KeyReleased, Source: id}
	}
	return Message{Message: invalid}
}

func serializeCommand(cmd Command) string {
	switch cmd.command {
	case reset:
		return "RST"
	case clearLED:
		return fmt.Sprintf("LED.%d=0", cmd.target)
	case setLED:
		return fmt.Sprintf("LED.%d=%c", cmd.target, cmd.color)
	default:
		return ""
	}
}

func serialWorker(port string, msgChan chan<- Message, cmdChan <-chan Command) error {
	logrus.Infof("opening serial port %s", port)
	conn, err := serial.OpenPort(&serial.Config{Name: port, Baud: 19200})
	if err != nil {
		return fmt.Errorf("could not open %s: %v", port, err)
	}

	reader := bufio.NewReader(conn)
	go func() {
		defer close(msgChan)
		for {
			line, isPrefix, err := reader.ReadLine()
			if err != nil {
				logrus.WithError(err).Errorln("deck read failed, stopping reader")
				return
			}
			if isPrefix {
				logrus.Warnf("dropping overlong deck line: %s", string(line))
				continue
			}
			trimmed := strings.TrimSpace(string(line))
			if len(trimmed) == 0 {
				continue
			}
			msg := parseMessage(trimmed)
			if msg.Message == invalid {
				logrus.Warnf("ignoring unexpected deck message: %s", trimmed)
				continue
			}
			msgChan <- msg
		}
	}()

	go func() {
		for cmd := range cmdChan {
			cmdString := serializeCommand(cmd)
			if cmdString == "" {
				logrus.Warnf("ignoring unexpected deck command: %#v", cmd)
				continue
			}
			if _, err := conn.Write([]byte(cmdString + "\n")); err != nil {
				logrus.WithError(err).Errorln("deck write failed")
			}
		}
	}()
	return nil
}

// OpenDeck connects the key deck on the given serial port and returns its
// message and command channels. The message channel closes when the deck
// goes away; the bot keeps running on its other triggers.
func OpenDeck(port string) (<-chan Message, chan<- Command, error) {
	msgChan := make(chan Message, 8)
	cmdChan := make(chan Command, 8)
	if err := serialWorker(port, msgChan, cmdChan); err != nil {
		return nil, nil, err
	}
	logrus.Debugln("resetting key deck")
	cmdChan <- NewResetCommand()
	return msgChan, cmdChan, nil
}
