package messaging

import (
	"github.com/bytedance/sonic"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

func DeclareBindAndConsume(ch *amqp.Channel, prefix string, topic ChangeTopic) (<-chan amqp.Delivery, error) {
	name := getName(prefix, topic)
	q, err := ch.QueueDeclare(
		"",    // name
		false, // durable
		false, // delete when unused
		true,  // exclusive
		false, // no-wait

		nil, // arguments
	)
	if err != nil {
		return nil, err
	}
	err = ch.QueueBind(q.Name, name, name, false, nil)
	if err != nil {
		return nil, err
	}
	return ch.Consume(
		q.Name,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
}

func ListenToTopic(ch *amqp.Channel, prefix string, topic ChangeTopic, filter func(amqp.Delivery) error) error {
	fc, err := DeclareBindAndConsume(ch, prefix, topic)
	if err != nil {
		return err
	}

	go func(msgs <-chan amqp.Delivery) {
		defer ch.Close()
		for d := range msgs {
			if err := filter(d); err != nil {
				zap.L().Error("error processing message", zap.String("topic", string(topic)), zap.Error(err))
				d.Nack(false, false)
				continue
			}
			d.Ack(false)
		}
	}(fc)
	return nil
}

// ListenToEvents decodes every delivery on the topic into V.
func ListenToEvents[V any](ch *amqp.Channel, prefix string, topic ChangeTopic, handler func(V) error) error {
	return ListenToTopic(ch, prefix, topic, func(d amqp.Delivery) error {
		var event V
		if err := sonic.Unmarshal(d.Body, &event); err != nil {
			return err
		}
		return handler(event)
	})
}
