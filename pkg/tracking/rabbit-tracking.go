package tracking

import (
	"net/http"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/matst80/slask-table/pkg/common"
	"github.com/matst80/slask-table/pkg/messaging"
)

const batchSize = 50

type queuedEvent struct {
	topic messaging.ChangeTopic
	data  any
}

// RabbitTracking publishes tracking events from a background queue so
// request handlers never wait for the broker.
type RabbitTracking struct {
	country    string
	prefix     string
	connection *amqp.Connection
	queue      *common.QueueHandler[queuedEvent]
}

func NewRabbitTracking(config messaging.RabbitConfig, country string) (*RabbitTracking, error) {
	ret := &RabbitTracking{
		country: country,
		prefix:  config.Prefix,
	}
	if err := ret.connect(config.Url); err != nil {
		return nil, err
	}
	ret.queue = common.NewQueueHandler(ret.publish, batchSize)
	return ret, nil
}

type amqpConnection interface {
	Channel() (*amqp.Channel, error)
	Close() error
}

func (t *RabbitTracking) connect(url string) error {
	conn, err := amqp.Dial(url)
	if err != nil {
		return err
	}
	if err = defineTopics(conn, t.prefix); err != nil {
		return err
	}
	t.connection = conn
	return nil
}

// defineTopics declares the tracking exchanges and closes the connection
// when that fails.
func defineTopics(conn amqpConnection, prefix string) (err error) {
	defer func() {
		if err != nil {
			conn.Close()
		}
	}()
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()
	for _, topic := range []messaging.ChangeTopic{messaging.SessionStarted, messaging.TableViewed} {
		if err = messaging.DefineTopic(ch, prefix, topic); err != nil {
			return err
		}
	}
	return nil
}

func (t *RabbitTracking) publish(events []queuedEvent) {
	byTopic := make(map[messaging.ChangeTopic][]any)
	for _, e := range events {
		byTopic[e.topic] = append(byTopic[e.topic], e.data)
	}
	for topic, data := range byTopic {
		if err := messaging.SendChange(t.connection, t.prefix, topic, data...); err != nil {
			zap.L().Warn("failed to send tracking events", zap.String("topic", string(topic)), zap.Int("events", len(data)), zap.Error(err))
		}
	}
}

// Close flushes queued events and closes the connection.
func (t *RabbitTracking) Close() error {
	t.queue.Close()
	return t.connection.Close()
}

func (t *RabbitTracking) baseEvent(sessionId string, event uint16) *BaseEvent {
	return &BaseEvent{Event: event, SessionId: sessionId, Country: t.country, Context: "table"}
}

func (t *RabbitTracking) TrackSession(sessionId string, r *http.Request) {
	t.queue.Add(queuedEvent{topic: messaging.SessionStarted, data: newSession(t.baseEvent(sessionId, EventSession), r)})
}

func (t *RabbitTracking) TrackTableView(sessionId string, view *TableView) {
	view.BaseEvent = t.baseEvent(sessionId, EventTableView)
	t.queue.Add(queuedEvent{topic: messaging.TableViewed, data: view})
}

func newSession(base *BaseEvent, r *http.Request) Session {
	return Session{
		BaseEvent:    base,
		Language:     r.Header.Get("Accept-Language"),
		UserAgent:    r.UserAgent(),
		Ip:           clientIp(r),
		PragmaHeader: r.Header.Get("Pragma"),
	}
}
