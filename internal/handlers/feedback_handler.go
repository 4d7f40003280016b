package handlers

import (
	"log"

	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// FeedbackHandler handles HTTP requests for support tickets and reviews.
type FeedbackHandler struct {
	feedback *services.FeedbackService
	views    *services.ViewService
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(feedback *services.FeedbackService, views *services.ViewService) *FeedbackHandler {
	return &FeedbackHandler{
		feedback: feedback,
		views:    views,
	}
}

// RegisterRoutes registers the feedback routes with the Fiber app.
func (h *FeedbackHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/support", h.HandleSubmitSupport)
	router.Post("/reviews", h.HandleSubmitReview)
	router.Get("/reviews", h.HandleReviewsView)
}

// SupportRequest represents the support form fields.
type SupportRequest struct {
	Email string `json:"email"`
	Msg   string `json:"msg"`
}

// HandleSubmitSupport appends a support ticket. There is no ticket list to
// refresh, so the response carries only the confirmation.
func (h *FeedbackHandler) HandleSubmitSupport(c *fiber.Ctx) error {
	var req SupportRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing support request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.feedback.SubmitSupport(req.Email, req.Msg); err != nil {
		log.Printf("Error recording support ticket: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not submit support request",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Support request submitted",
	})
}

// ReviewRequest represents the review form fields.
type ReviewRequest struct {
	ProductID string `json:"productId"`
	Review    string `json:"review"`
}

// HandleSubmitReview appends a review and returns the refreshed reviews
// view.
func (h *FeedbackHandler) HandleSubmitReview(c *fiber.Ctx) error {
	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing review request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.feedback.SubmitReview(req.ProductID, req.Review); err != nil {
		log.Printf("Error recording review: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not submit review",
			"error":   err.Error(),
		})
	}

	view, err := h.views.Reviews()
	if err != nil {
		log.Printf("Error rendering reviews after submit: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not refresh reviews",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Review submitted",
		"reviews": view,
	})
}

// HandleReviewsView returns all reviews. Reviews are global, so no session
// is required.
func (h *FeedbackHandler) HandleReviewsView(c *fiber.Ctx) error {
	view, err := h.views.Reviews()
	if err != nil {
		log.Printf("Error rendering reviews: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve reviews",
			"error":   err.Error(),
		})
	}
	return c.JSON(view)
}
