package queue

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ExchangeName = "ex.leads"
	DLXName      = "ex.leads.dlx"

	ReferralQueue      = "q.referrals"
	ReferralDLQ        = "q.referrals.dlq"
	ReferralRoutingKey = "k.referral"

	SubmissionQueue      = "q.form-submissions"
	SubmissionRoutingKey = "k.form-submission"
)

type RabbitMQ struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewRabbitMQ(url string) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := setupTopology(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare topology: %w", err)
	}

	return &RabbitMQ{Conn: conn, Ch: ch}, nil
}

func (r *RabbitMQ) Close() {
	if r.Ch != nil {
		r.Ch.Close()
	}
	if r.Conn != nil {
		r.Conn.Close()
	}
}

func setupTopology(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(DLXName, "direct", true, false, false, false, nil); err != nil {
		return err
	}
	if _, err := ch.QueueDeclare(ReferralDLQ, true, false, false, false, nil); err != nil {
		return err
	}
	if err := ch.QueueBind(ReferralDLQ, ReferralRoutingKey, DLXName, false, nil); err != nil {
		return err
	}

	if err := ch.ExchangeDeclare(ExchangeName, "direct", true, false, false, false, nil); err != nil {
		return err
	}

	// Nacked referrals go to the DLQ for manual follow-up.
	args := amqp.Table{
		"x-dead-letter-exchange":    DLXName,
		"x-dead-letter-routing-key": ReferralRoutingKey,
	}
	if _, err := ch.QueueDeclare(ReferralQueue, true, false, false, false, args); err != nil {
		return err
	}
	if err := ch.QueueBind(ReferralQueue, ReferralRoutingKey, ExchangeName, false, nil); err != nil {
		return err
	}

	if _, err := ch.QueueDeclare(SubmissionQueue, true, false, false, false, nil); err != nil {
		return err
	}
	return ch.QueueBind(SubmissionQueue, SubmissionRoutingKey, ExchangeName, false, nil)
}
