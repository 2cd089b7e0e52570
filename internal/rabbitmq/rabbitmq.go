package rabbitmq

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	IMAGE_CLEANUP_QUEUE = "image_cleanup"
)

var queues = []string{
	IMAGE_CLEANUP_QUEUE,
}

type MQConn struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func New(connString string) (*MQConn, error) {
	conn, err := amqp.Dial(connString)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	for _, queue := range queues {
		if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			ch.Close()
			conn.Close()
			return nil, err
		}
	}

	return &MQConn{
		conn: conn,
		ch:   ch,
	}, nil
}

func (m *MQConn) Publish(ctx context.Context, queue string, body []byte) error {
	return m.ch.PublishWithContext(
		ctx,
		"",
		queue,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

func (m *MQConn) Consume(queue string) (<-chan amqp.Delivery, error) {
	return m.ch.Consume(queue, "", false, false, false, false, nil)
}

func (m *MQConn) Close() error {
	if err := m.ch.Close(); err != nil {
		return err
	}
	return m.conn.Close()
}
