package main

import (
	"log/slog"

	"github.com/sushihentaime/pressroom/internal/common"
)

// consumeAuditEvents logs every domain event delivered to the audit queue until
// the delivery channel closes.
func consumeAuditEvents(mc common.MessageConsumer, logger *slog.Logger) {
	msgs, err := mc.Consume(common.AuditQueue, "audit")
	if err != nil {
		logger.Error("could not consume audit events", slog.String("error", err.Error()))
		return
	}

	for msg := range msgs {
		logger.Info("domain event", slog.String("key", msg.RoutingKey), slog.String("body", string(msg.Body)))

		if err := msg.Ack(false); err != nil {
			logger.Error("could not ack audit event", slog.String("error", err.Error()))
		}
	}
}
