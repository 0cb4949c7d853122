package server

import (
	"fmt"
	"time"

	"github.com/df07/go-bvh-raytracer/internal/log"
)

// ConsoleMessage is one log line of a render
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "debug", "info", "notice", "warning"
}

// WebLogger implements core.Logger for a single render. Messages go to the
// server log prefixed with the render ID and are returned to the client in
// the X-Render-Log header.
type WebLogger struct {
	renderID string
	backend  log.Logger
	messages []ConsoleMessage
}

// NewWebLogger creates a new web logger for a specific render
func NewWebLogger(renderID string, backend log.Logger) *WebLogger {
	return &WebLogger{renderID: renderID, backend: backend}
}

func (wl *WebLogger) record(level, format string, args []interface{}) string {
	message := fmt.Sprintf(format, args...)
	wl.messages = append(wl.messages, ConsoleMessage{
		Message:   message,
		Timestamp: time.Now(),
		Level:     level,
	})
	return fmt.Sprintf("[%s] %s", wl.renderID, message)
}

func (wl *WebLogger) Debugf(format string, args ...interface{}) {
	wl.backend.Debug(wl.record("debug", format, args))
}

func (wl *WebLogger) Infof(format string, args ...interface{}) {
	wl.backend.Info(wl.record("info", format, args))
}

func (wl *WebLogger) Noticef(format string, args ...interface{}) {
	wl.backend.Notice(wl.record("notice", format, args))
}

func (wl *WebLogger) Warningf(format string, args ...interface{}) {
	wl.backend.Warning(wl.record("warning", format, args))
}

// Messages returns everything logged so far. Call it once the render is done.
func (wl *WebLogger) Messages() []ConsoleMessage {
	return wl.messages
}
