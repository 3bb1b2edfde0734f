// Package events рассылает уведомления об изменении снимка (сигнал на перерисовку).
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// StateChanged краткое описание применённого перехода
type StateChanged struct {
	Action    string    `json:"action"`
	CartLines int       `json:"cartLines"`
	Orders    int       `json:"orders"`
	At        time.Time `json:"at"`
}

// Publisher получатель уведомлений
type Publisher interface {
	Publish(ctx context.Context, ev StateChanged) error
	Close() error
}

// Nop ничего не отправляет
type Nop struct{}

func (Nop) Publish(context.Context, StateChanged) error { return nil }
func (Nop) Close() error                                { return nil }

// NATSPublisher публикует StateChanged в JSON на один subject
type NATSPublisher struct {
	nc      *nats.Conn
	subject string
}

func NewNATSPublisher(url, subject string) (*NATSPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("zmart"),
		nats.MaxReconnects(5),
		nats.ReconnectWait(time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	return &NATSPublisher{nc: nc, subject: subject}, nil
}

// Publish синхронный, контекст проверяется только перед отправкой
func (p *NATSPublisher) Publish(ctx context.Context, ev StateChanged) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled before publish: %w", err)
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return p.nc.Publish(p.subject, data)
}

func (p *NATSPublisher) Close() error {
	if err := p.nc.Drain(); err != nil {
		p.nc.Close()
		return err
	}
	return nil
}
