package queue

import (
    "encoding/json"
    "log"

    "github.com/streadway/amqp"
)

// AMQPQueue publishes import jobs to RabbitMQ so a separate worker
// process (cmd/worker) can run the dispatch. Implements the same Queue
// interface as InMemoryQueue; Subscribe consumes from the named queue.
type AMQPQueue struct {
    conn *amqp.Connection
    ch   *amqp.Channel
}

func DialAMQP(url string) (*AMQPQueue, error) {
    conn, err := amqp.Dial(url)
    if err != nil {
        return nil, err
    }
    ch, err := conn.Channel()
    if err != nil {
        conn.Close()
        return nil, err
    }
    return &AMQPQueue{conn: conn, ch: ch}, nil
}

func (q *AMQPQueue) Close() {
    q.ch.Close()
    q.conn.Close()
}

func (q *AMQPQueue) declare(topic string) (amqp.Queue, error) {
    return q.ch.QueueDeclare(
        topic,
        true,  // durable
        false, // delete when unused
        false, // exclusive
        false, // no-wait
        nil,   // arguments
    )
}

func (q *AMQPQueue) Publish(topic string, payload any) error {
    declared, err := q.declare(topic)
    if err != nil {
        return err
    }

    body, err := json.Marshal(payload)
    if err != nil {
        return err
    }

    return q.ch.Publish(
        "",
        declared.Name,
        false,
        false,
        amqp.Publishing{
            ContentType: "application/json",
            Body:        body,
        },
    )
}

// Subscribe consumes jobs from the topic queue with manual acks. A
// failing handler gets the delivery requeued up to 3 times.
func (q *AMQPQueue) Subscribe(topic string, handler func(payload any) error) error {
    declared, err := q.declare(topic)
    if err != nil {
        return err
    }

    msgs, err := q.ch.Consume(
        declared.Name,
        "",
        false, // autoAck off for reliability
        false,
        false,
        false,
        nil,
    )
    if err != nil {
        return err
    }

    go func() {
        for d := range msgs {
            var job ImportJob
            if err := json.Unmarshal(d.Body, &job); err != nil {
                log.Println("Invalid job:", err)
                d.Ack(false)
                continue
            }

            if err := handler(job); err != nil {
                log.Println("Job handler failed:", err)
                var retryCount int32
                if v, ok := d.Headers["x-retry-count"].(int32); ok {
                    retryCount = v
                }
                if retryCount < 3 {
                    d.Nack(false, true) // requeue
                    continue
                }
            }

            d.Ack(false)
        }
    }()

    return nil
}

var _ Queue = (*AMQPQueue)(nil)
