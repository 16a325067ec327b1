package event

import (
	"context"
	"errors"
	"strings"

	"github.com/erp/addrconfirm/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// payloadField is the stream entry field carrying the event JSON.
const payloadField = "payload"

// Handler processes one decoded business partner event.
type Handler func(ctx context.Context, event BusinessPartnerEvent) error

// Consumer reads ERP events from a Redis stream within a consumer
// group. Delivery is at-most-once: every entry is acknowledged whether
// or not handling succeeded, and failures only leave a log line. The
// workflow tolerates this because an unprocessed change is retried by
// the next change event for the same partner.
type Consumer struct {
	client  *redis.Client
	cfg     config.EventConfig
	handler Handler
	log     *zap.Logger
}

// NewConsumer creates a consumer for the configured stream.
func NewConsumer(client *redis.Client, cfg config.EventConfig, handler Handler, log *zap.Logger) *Consumer {
	return &Consumer{client: client, cfg: cfg, handler: handler, log: log}
}

// Run consumes the stream until the context is cancelled.
func (c *Consumer) Run(ctx context.Context) error {
	if err := c.ensureGroup(ctx); err != nil {
		return err
	}

	c.log.Info("event consumer started",
		zap.String("stream", c.cfg.Stream),
		zap.String("group", c.cfg.Group),
		zap.String("consumer", c.cfg.Consumer))

	for {
		streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.cfg.Group,
			Consumer: c.cfg.Consumer,
			Streams:  []string{c.cfg.Stream, ">"},
			Count:    10,
			Block:    c.cfg.Block,
		}).Result()

		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			c.log.Info("event consumer stopped")
			return nil
		case errors.Is(err, redis.Nil):
			continue
		case err != nil:
			if ctx.Err() != nil {
				c.log.Info("event consumer stopped")
				return nil
			}
			c.log.Error("reading event stream", zap.Error(err))
			continue
		}

		for _, stream := range streams {
			for _, message := range stream.Messages {
				c.process(ctx, message)
			}
		}
	}
}

// process handles a single stream entry and always acknowledges it.
func (c *Consumer) process(ctx context.Context, message redis.XMessage) {
	defer func() {
		if err := c.client.XAck(ctx, c.cfg.Stream, c.cfg.Group, message.ID).Err(); err != nil && ctx.Err() == nil {
			c.log.Error("acknowledging event", zap.String("message_id", message.ID), zap.Error(err))
		}
	}()

	raw, ok := message.Values[payloadField].(string)
	if !ok {
		c.log.Warn("dropping stream entry without payload", zap.String("message_id", message.ID))
		return
	}

	decoded, err := Decode([]byte(raw))
	if err != nil {
		c.log.Warn("dropping invalid event", zap.String("message_id", message.ID), zap.Error(err))
		return
	}

	switch event := decoded.(type) {
	case BusinessPartnerEvent:
		log := c.log.With(
			zap.String("event_type", event.Type),
			zap.String("event_id", event.ID),
			zap.String("business_partner", event.BusinessPartnerKey))
		log.Info("processing business partner event")

		if err := c.handler(ctx, event); err != nil {
			log.Error("event handling failed, dropping event", zap.Error(err))
		}
	case UnknownEvent:
		c.log.Info("ignoring event of unknown type",
			zap.String("event_type", event.Type),
			zap.String("event_id", event.ID))
	}
}

func (c *Consumer) ensureGroup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.cfg.Stream, c.cfg.Group, "0").Err()
	if err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
		return err
	}
	return nil
}
