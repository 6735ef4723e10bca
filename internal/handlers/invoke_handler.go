package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/sjson"

	"lambda-handler-factory/pkg/factory"
	"lambda-handler-factory/pkg/lambda"
)

// maxEventSize mirrors the synchronous Lambda payload limit
const maxEventSize = 6 << 20

// InvokeHandler runs exported handlers for local development
type InvokeHandler struct {
	runtime *lambda.Runtime
	logger  logrus.FieldLogger
}

// NewInvokeHandler creates a new invoke handler
func NewInvokeHandler(runtime *lambda.Runtime, logger logrus.FieldLogger) *InvokeHandler {
	return &InvokeHandler{runtime: runtime, logger: logger}
}

// ListHandlers returns the exported handler names
func (h *InvokeHandler) ListHandlers(c *gin.Context) {
	names := h.runtime.Names()
	if names == nil {
		names = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"handlers": names})
}

// Invoke runs the named handler with the request body as event
func (h *InvokeHandler) Invoke(c *gin.Context) {
	name := c.Param("name")

	dispatch, err := h.runtime.Dispatcher(name)
	if err != nil {
		c.JSON(statusForError(err), ErrorResponse{Error: errorCode(err), Message: err.Error()})
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxEventSize+1))
	if err != nil || len(body) > maxEventSize {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "invalid_event", Message: "Event could not be read"})
		return
	}
	if len(body) == 0 {
		body = []byte("{}")
	}
	if !json.Valid(body) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_event", Message: "Event must be valid JSON"})
		return
	}

	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
	}
	c.Header("X-Request-ID", requestID)
	ctx := factory.WithRequestID(c.Request.Context(), requestID)

	dispatch(ctx, body, func(err error, result any) {
		if err != nil {
			h.logger.WithFields(logrus.Fields{
				"handler":    name,
				"request_id": requestID,
			}).WithError(err).Warn("Invocation failed")
			c.JSON(statusForError(err), ErrorResponse{Error: errorCode(err), Message: err.Error()})
			return
		}

		envelope, err := invocationEnvelope(name, requestID, result)
		if err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "encode_failed", Message: err.Error()})
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", envelope)
	})
}

// invocationEnvelope wraps a handler result as {"handler","request_id","result"}
func invocationEnvelope(name, requestID string, result any) ([]byte, error) {
	raw, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}

	envelope, err := sjson.SetBytes([]byte(`{}`), "handler", name)
	if err != nil {
		return nil, err
	}
	if envelope, err = sjson.SetBytes(envelope, "request_id", requestID); err != nil {
		return nil, err
	}
	return sjson.SetRawBytes(envelope, "result", raw)
}
