package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/NaoufalElmeskini/wlad-lwe9t-back/internal/domain"
	"github.com/NaoufalElmeskini/wlad-lwe9t-back/internal/payment"
	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v74/webhook"
)

// PaymentHandler contains the HTTP handlers for the payment API.
type PaymentHandler struct {
	service       *payment.Service
	webhookSecret string
}

// NewPaymentHandler creates a payment handler.
func NewPaymentHandler(service *payment.Service, webhookSecret string) *PaymentHandler {
	return &PaymentHandler{
		service:       service,
		webhookSecret: webhookSecret,
	}
}

// PaymentRequest represents the JSON body for creating a payment intent.
// The domain validation is authoritative; binding tags reject the obviously
// malformed bodies early.
type PaymentRequest struct {
	Amount       int64                `json:"amount" binding:"required,gt=0"`
	Currency     string               `json:"currency" binding:"required,len=3"`
	CustomerInfo CustomerInfoRequest  `json:"customer_info" binding:"required"`
	Items        []PaymentItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CustomerInfoRequest carries the customer fields of a payment request.
type CustomerInfoRequest struct {
	Email      string `json:"email" binding:"required,email"`
	FirstName  string `json:"first_name" binding:"required"`
	LastName   string `json:"last_name" binding:"required"`
	Address    string `json:"address" binding:"required"`
	City       string `json:"city" binding:"required"`
	PostalCode string `json:"postal_code" binding:"required"`
	Phone      string `json:"phone"`
}

// PaymentItemRequest is one line item of a payment request.
type PaymentItemRequest struct {
	ID       string `json:"id" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
	Price    int64  `json:"price" binding:"min=0"`
}

// PaymentResponse represents a payment intent returned to API clients.
type PaymentResponse struct {
	PaymentIntentID string `json:"payment_intent_id"`
	ClientSecret    string `json:"client_secret,omitempty"`
	Amount          int64  `json:"amount,omitempty"`
	Currency        string `json:"currency,omitempty"`
	Status          string `json:"status"`
}

// CreatePaymentIntent handles POST /payments/create-intent.
func (h *PaymentHandler) CreatePaymentIntent(c *gin.Context) {
	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   "Invalid request body: " + err.Error(),
			Code:    "VALIDATION_ERROR",
		})
		return
	}

	created, err := h.service.CreatePaymentIntent(c.Request.Context(), mapToDomain(req))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, PaymentResponse{
		PaymentIntentID: created.ID,
		ClientSecret:    created.ClientSecret,
		Amount:          created.Amount,
		Currency:        created.Currency,
		Status:          string(created.Status),
	})
}

// GetPaymentIntent handles GET /payments/:id.
func (h *PaymentHandler) GetPaymentIntent(c *gin.Context) {
	intent, err := h.service.GetPaymentIntent(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, PaymentResponse{
		PaymentIntentID: intent.ID,
		Amount:          intent.Amount,
		Currency:        intent.Currency,
		Status:          string(intent.Status),
	})
}

// ConfirmRequest represents the JSON body for the confirm endpoint.
type ConfirmRequest struct {
	PaymentIntentID string `json:"payment_intent_id" binding:"required"`
}

// ConfirmPaymentIntent handles POST /payments/confirm.
func (h *PaymentHandler) ConfirmPaymentIntent(c *gin.Context) {
	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   "payment_intent_id is required",
			Code:    "VALIDATION_ERROR",
		})
		return
	}

	confirmed, err := h.service.ConfirmPaymentIntent(c.Request.Context(), req.PaymentIntentID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, PaymentResponse{
		PaymentIntentID: confirmed.ID,
		Status:          string(confirmed.Status),
	})
}

// CancelPaymentIntent handles POST /payments/:id/cancel.
func (h *PaymentHandler) CancelPaymentIntent(c *gin.Context) {
	canceled, err := h.service.CancelPaymentIntent(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, PaymentResponse{
		PaymentIntentID: canceled.ID,
		Status:          string(canceled.Status),
	})
}

// HandleWebhook handles POST /payments/webhook.
// The Stripe signature is verified here, before the core sees the event.
func (h *PaymentHandler) HandleWebhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		c.String(http.StatusBadRequest, "Unable to read payload")
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), h.webhookSecret)
	if err != nil {
		log.Printf("Webhook signature verification failed: %v", err)
		c.String(http.StatusBadRequest, "Invalid signature")
		return
	}

	paymentIntentID, err := extractPaymentIntentID(event.Data.Raw)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid webhook event: no payment intent found")
		return
	}

	webhookEvent := domain.WebhookEvent{
		Type:            string(event.Type),
		PaymentIntentID: paymentIntentID,
	}
	if err := h.service.ProcessWebhookEvent(c.Request.Context(), webhookEvent); err != nil {
		log.Printf("Webhook processing error for %s: %v", paymentIntentID, err)
		c.String(http.StatusInternalServerError, "Webhook processing failed: "+err.Error())
		return
	}

	c.String(http.StatusOK, "Webhook processed")
}

// extractPaymentIntentID pulls the intent id out of the event's data object.
func extractPaymentIntentID(raw json.RawMessage) (string, error) {
	var object struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &object); err != nil {
		return "", err
	}
	if object.ID == "" {
		return "", domain.NewValidationError("webhook event carries no payment intent id")
	}
	return object.ID, nil
}

func mapToDomain(req PaymentRequest) domain.PaymentIntent {
	items := make([]domain.PaymentItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, domain.PaymentItem{
			ID:       item.ID,
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}

	return domain.PaymentIntent{
		Amount:   req.Amount,
		Currency: req.Currency,
		CustomerInfo: domain.CustomerInfo{
			Email:      req.CustomerInfo.Email,
			FirstName:  req.CustomerInfo.FirstName,
			LastName:   req.CustomerInfo.LastName,
			Address:    req.CustomerInfo.Address,
			City:       req.CustomerInfo.City,
			PostalCode: req.CustomerInfo.PostalCode,
			Phone:      req.CustomerInfo.Phone,
		},
		Items: items,
	}
}
