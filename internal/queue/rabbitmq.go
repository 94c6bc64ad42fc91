package queue

import (
	"context"
	"encoding/json"

	"github.com/gitpulse-io/gitpulse/pkg/logger"
	"github.com/streadway/amqp"
)

const refreshQueue = "gitpulse_refresh"

// RabbitMQ carries refresh requests so external tooling (CI hooks, cron) can
// trigger a re-fetch of a repository without touching the HTTP API.
type RabbitMQ struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

type RefreshRequest struct {
	Username string `json:"username"`
	Repo     string `json:"repo"`
}

func NewRabbitMQ(url string) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	return &RabbitMQ{
		conn:    conn,
		channel: channel,
	}, nil
}

func (r *RabbitMQ) PublishRefreshRequest(ctx context.Context, username, repo string) error {
	queue, err := r.channel.QueueDeclare(
		refreshQueue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	body, err := json.Marshal(RefreshRequest{Username: username, Repo: repo})
	if err != nil {
		return err
	}

	return r.channel.Publish(
		"",
		queue.Name,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

func (r *RabbitMQ) ConsumeRefreshRequests(ctx context.Context, handler func(req RefreshRequest) error) error {
	queue, err := r.channel.QueueDeclare(
		refreshQueue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	msgs, err := r.channel.Consume(
		queue.Name,
		"",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case d, ok := <-msgs:
				if !ok {
					return
				}
				var req RefreshRequest
				if err := json.Unmarshal(d.Body, &req); err != nil {
					logger.Warn("discarding malformed refresh request: %v", err)
					continue
				}
				if err := handler(req); err != nil {
					logger.Error("refresh request for %s/%s failed: %v", req.Username, req.Repo, err)
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

func (r *RabbitMQ) Close() error {
	if err := r.channel.Close(); err != nil {
		return err
	}
	return r.conn.Close()
}
