// Package api exposes the screens over HTTP for the mobile client.
package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"MetalWatch/internal/screen"
)

// ListScreen is the list screen as seen by the HTTP layer.
// Interfaces are declared on the consumer side.
type ListScreen interface {
	View() screen.ListView
	Refresh(ctx context.Context) screen.ListView
}

// DetailOpener opens a detail screen for a route identifier.
type DetailOpener interface {
	OpenDetail(ctx context.Context, id string) screen.DetailScreenView
}

// ErrorResponse is the body returned alongside non-2xx statuses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MetalsHandler serves the list and detail screens.
type MetalsHandler struct {
	list   ListScreen
	detail DetailOpener
}

// NewMetalsHandler creates a MetalsHandler.
func NewMetalsHandler(list ListScreen, detail DetailOpener) *MetalsHandler {
	return &MetalsHandler{list: list, detail: detail}
}

// List returns the current list screen.
//
// GET /metals
func (h *MetalsHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.list.View())
}

// Refresh fetches the feed again and returns the resulting list screen.
// A failed fetch is still a 200: the failure is the screen's Error state.
//
// POST /metals/refresh
func (h *MetalsHandler) Refresh(c *gin.Context) {
	c.JSON(http.StatusOK, h.list.Refresh(c.Request.Context()))
}

// Detail opens the detail screen for :id.
//
// GET /metals/:id
func (h *MetalsHandler) Detail(c *gin.Context) {
	v := h.detail.OpenDetail(c.Request.Context(), c.Param("id"))
	switch v.State {
	case screen.StateFound:
		c.JSON(http.StatusOK, v)
	case screen.StateNotFound:
		c.JSON(http.StatusNotFound, v)
	default:
		c.JSON(http.StatusBadGateway, v)
	}
}

// Health reports liveness.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
