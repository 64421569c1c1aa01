package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Publisher публикует события бронирований в topic exchange RabbitMQ.
//
// Публикация строго best-effort и fire-and-forget: вызывается из отдельной
// горутины ПОСЛЕ фиксации транзакции и никогда не блокирует и не откатывает
// бизнес-операцию. Ошибки публикации только логируются.
type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	timeout  time.Duration
	log      Logger
}

// NewPublisher подключается к RabbitMQ и объявляет topic exchange
func NewPublisher(url, exchange string, timeout time.Duration, log Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("notify: dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("notify: open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("notify: declare exchange: %w", err)
	}

	return &Publisher{
		conn:     conn,
		ch:       ch,
		exchange: exchange,
		timeout:  timeout,
		log:      log,
	}, nil
}

// Publish асинхронно публикует событие жизненного цикла бронирования.
// Возвращает управление сразу; результат публикации только логируется.
func (p *Publisher) Publish(event BookingEvent) {
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		defer cancel()

		body, err := json.Marshal(event)
		if err != nil {
			p.log.Error("notify: failed to marshal event %s for booking id=%d: %v",
				event.Event, event.BookingID, err)
			return
		}

		err = p.ch.PublishWithContext(ctx, p.exchange, event.Event, false, false, amqp.Publishing{
			ContentType: "application/json",
			MessageId:   event.EventID,
			Body:        body,
		})
		if err != nil {
			p.log.Error("notify: failed to publish %s for booking id=%d: %v",
				event.Event, event.BookingID, err)
			return
		}

		p.log.Info("notify: published %s for booking id=%d", event.Event, event.BookingID)
	}()
}

// Close закрывает канал и соединение
func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// NoopPublisher заглушка, используется при выключенных уведомлениях
type NoopPublisher struct{}

// Publish ничего не делает
func (NoopPublisher) Publish(BookingEvent) {}
