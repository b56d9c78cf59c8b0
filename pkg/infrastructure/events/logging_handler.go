package events

import (
	"go.uber.org/zap"
)

// LoggingHandler logs every event it receives. Subscribe it for verbose
// runs; the stream itself stays the source of truth.
type LoggingHandler struct {
	logger *zap.Logger
}

// NewLoggingHandler creates a handler logging at debug level.
func NewLoggingHandler(logger *zap.Logger) *LoggingHandler {
	return &LoggingHandler{logger: logger}
}

var _ EventHandler = (*LoggingHandler)(nil)

func (h *LoggingHandler) Handle(event Event) error {
	h.logger.Debug("event",
		zap.String("type", event.Type()),
		zap.String("stream", event.StreamID()),
		zap.Int("version", event.Version()),
		zap.Time("at", event.Timestamp()))
	return nil
}

func (h *LoggingHandler) CanHandle(string) bool { return true }

// RunEventTypes lists every event type a simulated run emits.
func RunEventTypes() []string {
	return []string{
		RunStartedEvent,
		DayCompletedEvent,
		CampaignTriggeredEvent,
		RunCompletedEvent,
	}
}
