package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"friendgraph/backend/internal/friendship"
	"friendgraph/backend/internal/metrics"
	apperrors "friendgraph/backend/pkg/errors"
	"friendgraph/backend/pkg/logger"
)

// FriendshipService is the relationship core used by the handlers
type FriendshipService interface {
	Initiate(ctx context.Context, initiatorID, recipientID string) (friendship.Edge, error)
	Respond(ctx context.Context, initiatorID, recipientID, decision string) (friendship.Edge, error)
	Friends(ctx context.Context, userID string) ([]string, error)
}

// HealthChecker reports whether the store is reachable
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Handler serves the /friendships endpoints
type Handler struct {
	service FriendshipService
	metrics *metrics.Metrics
}

type initiateRequest struct {
	InitiatorID string `json:"initiator_id" binding:"required,userid"`
	RecipientID string `json:"recipient_id" binding:"required,userid"`
}

type respondRequest struct {
	InitiatorID string `json:"initiator_id" binding:"required,userid"`
	RecipientID string `json:"recipient_id" binding:"required,userid"`
	Status      string `json:"status" binding:"required"`
}

// Initiate handles POST /friendships/initiate
func (h *Handler) Initiate(c *gin.Context) {
	var req initiateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingMessage(err)})
		return
	}

	_, err := h.service.Initiate(c.Request.Context(), req.InitiatorID, req.RecipientID)
	h.observe("initiate", err)
	if err != nil {
		writeError(c, err, "Failed to send friend request")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Friend request sent"})
}

// Respond handles PUT /friendships/respond
func (h *Handler) Respond(c *gin.Context) {
	var req respondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingMessage(err)})
		return
	}

	edge, err := h.service.Respond(c.Request.Context(), req.InitiatorID, req.RecipientID, req.Status)
	h.observe("respond", err)
	if err != nil {
		writeError(c, err, "Failed to update friendship status")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Friendship " + edge.Kind.Label()})
}

// Friends handles GET /friendships/:user_id
func (h *Handler) Friends(c *gin.Context) {
	friends, err := h.service.Friends(c.Request.Context(), c.Param("user_id"))
	h.observe("friends", err)
	if err != nil {
		writeError(c, err, "Failed to retrieve friendships")
		return
	}

	c.JSON(http.StatusOK, friends)
}

func (h *Handler) observe(op string, err error) {
	if h.metrics != nil {
		h.metrics.ObserveOutcome(op, err)
	}
}

// healthHandler handles GET /health
func healthHandler(checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if checker != nil {
			if err := checker.Ping(c.Request.Context()); err != nil {
				logger.FromContext(c.Request.Context()).Warn("Health check failed", zap.Error(err))
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// writeError maps the error taxonomy onto HTTP status codes. Store failures
// are reported with a generic message; the cause is only logged.
func writeError(c *gin.Context, err error, failureMessage string) {
	var (
		invalid  *apperrors.ErrValidationFailed
		rejected *apperrors.ErrRuleRejected
		notFound *apperrors.ErrNotFound
	)

	switch {
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Message})
	case errors.As(err, &rejected):
		c.JSON(http.StatusBadRequest, gin.H{"error": rejected.Message, "reason": rejected.Code})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Message})
	default:
		logger.FromContext(c.Request.Context()).Error(failureMessage, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": failureMessage})
	}
}
