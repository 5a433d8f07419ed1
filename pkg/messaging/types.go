package messaging

import "fmt"

type ChangeTopic string

const (
	// TableViewed carries one event per rendered table page.
	TableViewed ChangeTopic = "table_viewed"
	// SessionStarted is sent when a visitor gets a new session cookie.
	SessionStarted ChangeTopic = "session_started"
)

type RabbitConfig struct {
	Url    string
	Prefix string
}

func getName(prefix string, topic ChangeTopic) string {
	return fmt.Sprintf("%s_%s", prefix, topic)
}
