package messaging

import (
	"github.com/bytedance/sonic"
	amqp "github.com/rabbitmq/amqp091-go"
)

func DefineTopic(ch *amqp.Channel, prefix string, topic ChangeTopic) error {
	name := getName(prefix, topic)
	if err := ch.ExchangeDeclare(
		name,    // name
		"topic", // type
		true,    // durable
		false,   // auto-delete
		false,   // internal
		false,   // noWait
		nil,     // arguments
	); err != nil {
		return err
	}
	if _, err := ch.QueueDeclare(
		name,  // name of the queue
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // noWait
		nil,   // arguments
	); err != nil {
		return err
	}
	return ch.QueueBind(name, name, name, false, nil)
}

// Encode is the wire format of every published message.
func Encode[V any](data V) ([]byte, error) {
	return sonic.ConfigDefault.Marshal(data)
}

func SendChange[V any](c *amqp.Connection, prefix string, topic ChangeTopic, data ...V) error {
	ch, err := c.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()
	name := getName(prefix, topic)
	for _, item := range data {
		bytes, err := Encode(item)
		if err != nil {
			return err
		}
		if err = ch.Publish(
			name,
			name,
			true,
			false,
			amqp.Publishing{
				ContentType: "application/json",
				Body:        bytes,
			},
		); err != nil {
			return err
		}
	}
	return nil
}
