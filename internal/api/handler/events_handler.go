package handler

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/homecook/pkg/response"
)

// Events SSE 推送通道。客户端带 channel=<自己的用户ID> 建立长连接，
// 相当于 socket 协议里的 join；断线重连后事件不补发。
// channel 取调用方自报的值，但路由本身挂在认证中间件之后。
func (h *Handler) Events(c *gin.Context) {
	channel := c.Query("channel")
	if channel == "" {
		response.BadRequest(c, "channel is required")
		return
	}

	sub := h.hub.Subscribe(channel)
	defer h.hub.Unsubscribe(sub)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-sub.Events():
			if !ok {
				return false
			}
			c.SSEvent(ev.Name, ev.Payload)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
