package http

import (
	"context"
	"encoding/json"
	"errors"
	nethttp "net/http"

	"github.com/gin-gonic/gin"

	"lead-webhook-bridge/internal/lead"
	pkgResponse "lead-webhook-bridge/pkg/response"
)

const (
	queryVerifyToken = "hub.verify_token"
	queryChallenge   = "hub.challenge"
)

var errMalformedPayload = errors.New("malformed webhook payload")

// Verify answers the subscription handshake.
// @Summary Webhook verification
// @Description Echoes hub.challenge when hub.verify_token matches the configured token
// @Tags Webhook
// @Produce plain
// @Param hub.verify_token query string true "Verify token"
// @Param hub.challenge query string true "Challenge to echo"
// @Success 200 {string} string "challenge"
// @Failure 403 {string} string "Unauthorized"
// @Router /webhook [get]
func (h *handler) Verify(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.security.ValidateVerifyToken(c.Query(queryVerifyToken)); err != nil {
		h.l.Warnf(ctx, "lead.delivery.http.Verify: verification failed: %v", err)
		pkgResponse.Forbidden(c)
		return
	}

	h.l.Infof(ctx, "lead.delivery.http.Verify: webhook verified")
	pkgResponse.Text(c, nethttp.StatusOK, c.Query(queryChallenge))
}

// Receive processes one webhook delivery and acknowledges it.
// @Summary Lead delivery
// @Description Resolves every lead in the delivery, appends it to the spreadsheet and notifies the recipients
// @Tags Webhook
// @Accept json
// @Produce plain
// @Param request body lead.Envelope true "Webhook delivery"
// @Success 200 {string} string "EVENT_RECEIVED"
// @Failure 400 {object} response.Resp
// @Router /webhook [post]
func (h *handler) Receive(c *gin.Context) {
	ctx := c.Request.Context()

	body, err := c.GetRawData()
	if err != nil {
		h.l.Errorf(ctx, "lead.delivery.http.Receive: failed to read body: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	h.l.Debugf(ctx, "lead.delivery.http.Receive: payload: %s", body)

	// Only a body that is not JSON fails here; bad changes are skipped later.
	var env lead.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		h.l.Errorf(ctx, "lead.delivery.http.Receive: failed to decode payload: %v", err)
		pkgResponse.Error(c, errMalformedPayload, nil)
		return
	}

	// Processing outlives a client disconnect.
	h.uc.ProcessDelivery(context.WithoutCancel(ctx), env)

	pkgResponse.EventReceived(c)
}
