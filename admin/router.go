package admin

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/grpc-boot/mesh"
)

// Consumer is what the admin endpoints drive.
type Consumer interface {
	Attributes() *mesh.KeyValue
	Suspend()
	SuspendTimeout(timeout time.Duration)
	Resume()
	IsSuspended() bool
}

// OffsetReporter is optionally implemented by a Consumer.
type OffsetReporter interface {
	Offsets() map[string]int64
}

type Handler struct {
	consumer Consumer
	metrics  http.Handler
	log      *zap.Logger
}

func NewHandler(consumer Consumer, metrics http.Handler, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{consumer: consumer, metrics: metrics, log: log}
}

func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(h.log))

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	if h.metrics != nil {
		r.GET("/metrics", gin.WrapH(h.metrics))
	}

	r.GET("/consumer", h.status)
	r.POST("/consumer/suspend", h.suspend)
	r.POST("/consumer/resume", h.resume)
	return r
}

func (h *Handler) status(c *gin.Context) {
	body := gin.H{
		"suspended": h.consumer.IsSuspended(),
	}

	if attrs := h.consumer.Attributes(); attrs != nil {
		items := attrs.Map()
		// 凭证不对外暴露
		delete(items, mesh.SecretKey)
		body["attributes"] = items
	}

	if reporter, ok := h.consumer.(OffsetReporter); ok {
		body["offsets"] = reporter.Offsets()
	}
	c.JSON(http.StatusOK, body)
}

func (h *Handler) suspend(c *gin.Context) {
	var timeout time.Duration
	if raw := c.Query("timeout"); raw != "" {
		var err error
		if timeout, err = time.ParseDuration(raw); err != nil || timeout < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid timeout"})
			return
		}
	}

	h.consumer.SuspendTimeout(timeout)
	h.log.Info("consumer suspended via admin", zap.Duration("timeout", timeout))
	c.JSON(http.StatusOK, gin.H{"suspended": true, "timeout": timeout.String()})
}

func (h *Handler) resume(c *gin.Context) {
	h.consumer.Resume()
	h.log.Info("consumer resumed via admin")
	c.JSON(http.StatusOK, gin.H{"suspended": h.consumer.IsSuspended()})
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		switch c.FullPath() {
		case "/metrics", "/ping":
			return
		}

		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}
