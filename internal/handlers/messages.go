package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/liviin/homecare-api/internal/notify"
	"github.com/liviin/homecare-api/internal/utils"
)

const sendTimeout = 20 * time.Second

// MessageHandler handles outbound message routes
type MessageHandler struct {
	Sender notify.Sender
}

// MessageRequest is the payload for sending a message.
type MessageRequest struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

// SendSMS handles POST /api/messages/sms
// @Summary Send an SMS
// @Tags Messages
// @Accept json
// @Produce json
// @Param message body handlers.MessageRequest true "Message payload"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Failure 502 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /messages/sms [post]
func (h *MessageHandler) SendSMS(c *fiber.Ctx) error {
	return h.send(c, notify.ChannelSMS, "sendSMS")
}

// SendWhatsApp handles POST /api/messages/whatsapp
// @Summary Send a WhatsApp message
// @Tags Messages
// @Accept json
// @Produce json
// @Param message body handlers.MessageRequest true "Message payload"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Failure 502 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /messages/whatsapp [post]
func (h *MessageHandler) SendWhatsApp(c *fiber.Ctx) error {
	return h.send(c, notify.ChannelWhatsApp, "sendWhatsApp")
}

func (h *MessageHandler) send(c *fiber.Ctx, channel notify.Channel, errorType string) error {
	var req MessageRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, "invalid request body: "+err.Error(), fiber.StatusBadRequest, errorType)
	}
	if req.To == "" {
		return utils.ErrorResponse(c, "recipient 'to' is required", fiber.StatusBadRequest, errorType)
	}
	if req.Message == "" {
		return utils.ErrorResponse(c, "'message' is required", fiber.StatusBadRequest, errorType)
	}

	ctx, cancel := context.WithTimeout(c.Context(), sendTimeout)
	defer cancel()

	messageID, err := h.Sender.Send(ctx, channel, req.To, req.Message)
	if err != nil {
		status := fiber.StatusInternalServerError
		if derr, ok := err.(*notify.DeliveryError); ok && derr.Retryable() {
			status = fiber.StatusBadGateway
		}
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":   true,
		"messageId": messageID,
	})
}
