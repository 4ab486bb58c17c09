package server

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/kapu/ayovirals-go/internal/service/pipeline"
	"go.uber.org/zap"
)

const (
	streamWriteTimeout = 10 * time.Second
	streamReadTimeout  = 30 * time.Second
)

// streamMessage is one frame on the processing stream.
type streamMessage struct {
	Type   string           `json:"type"`
	Stage  pipeline.Stage   `json:"stage,omitempty"`
	Data   *processResponse `json:"data,omitempty"`
	Detail string           `json:"detail,omitempty"`
}

// handleProcessStream reads one request frame, then reports each pipeline
// stage before sending the result and closing.
func (s *Server) handleProcessStream(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	var writeMu sync.Mutex
	send := func(msg streamMessage) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		s.applyDeadline("write", conn.SetWriteDeadline, streamWriteTimeout)
		return conn.WriteJSON(msg)
	}

	s.applyDeadline("read", conn.SetReadDeadline, streamReadTimeout)
	var body processRequest
	if err := conn.ReadJSON(&body); err != nil {
		_ = send(streamMessage{Type: "error", Detail: "Invalid request body"})
		return
	}

	req, err := body.validate()
	if err != nil {
		_ = send(streamMessage{Type: "error", Detail: err.Error()})
		return
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	res := s.deps.Processor.ProcessWithObserver(ctx, req, func(stage pipeline.Stage) {
		if err := send(streamMessage{Type: "stage", Stage: stage}); err != nil {
			s.logger.Debug("Stage frame not delivered", zap.String("stage", string(stage)), zap.Error(err))
		}
	})

	resp := newProcessResponse(res)
	if err := send(streamMessage{Type: "result", Data: &resp}); err != nil {
		s.logger.Warn("Result frame not delivered", zap.String("id", res.ID), zap.Error(err))
		return
	}

	writeMu.Lock()
	err = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done"),
		time.Now().Add(time.Second))
	writeMu.Unlock()
	if err != nil {
		s.logger.Debug("Close frame not delivered", zap.Error(err))
	}
}

func (s *Server) applyDeadline(kind string, set func(time.Time) error, timeout time.Duration) {
	if err := set(time.Now().Add(timeout)); err != nil {
		s.logger.Debug("Failed to set websocket deadline",
			zap.String("kind", kind),
			zap.Error(err))
	}
}
