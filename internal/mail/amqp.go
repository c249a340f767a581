package mail

import (
	"context"
	"encoding/json"

	"github.com/streadway/amqp"
)

type amqpChannel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type amqpConn interface {
	channel() (amqpChannel, error)
	Close() error
}

type realConn struct{ *amqp.Connection }

func (c realConn) channel() (amqpChannel, error) { return c.Connection.Channel() }

var amqpDial = func(url string) (amqpConn, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	return realConn{conn}, nil
}

// AMQPMailer 將郵件以 JSON 發佈到 durable queue，由獨立的寄信服務消費
type AMQPMailer struct {
	conn    amqpConn
	channel amqpChannel
	queue   string
}

func NewAMQPMailer(url, queue string) (*AMQPMailer, error) {
	conn, err := amqpDial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	q, err := ch.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	return &AMQPMailer{conn: conn, channel: ch, queue: q.Name}, nil
}

func (m *AMQPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return m.channel.Publish("", m.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}

func (m *AMQPMailer) Close() error {
	m.channel.Close()
	return m.conn.Close()
}
