package services

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/pkg/rabbitmq"
)

// FeedbackService handles the support and review submission forms.
type FeedbackService struct {
	support  repositories.SupportLog
	reviews  repositories.ReviewLog
	mqClient *rabbitmq.Client
}

// NewFeedbackService creates a new FeedbackService. The MQ client may be
// nil, in which case events are only logged.
func NewFeedbackService(support repositories.SupportLog, reviews repositories.ReviewLog, mqClient *rabbitmq.Client) *FeedbackService {
	return &FeedbackService{
		support:  support,
		reviews:  reviews,
		mqClient: mqClient,
	}
}

// SubmitSupport appends a timestamped ticket to the support log. There is
// no visible ticket list, so nothing is re-rendered.
func (s *FeedbackService) SubmitSupport(email, msg string) error {
	ticket := models.SupportTicket{
		Email: strings.TrimSpace(email),
		Msg:   msg,
		Date:  models.DisplayTime(time.Now()),
	}
	if err := s.support.Append(ticket); err != nil {
		return fmt.Errorf("failed to record support ticket: %w", err)
	}

	if s.mqClient != nil {
		body, err := json.Marshal(map[string]string{"email": ticket.Email, "date": ticket.Date})
		if err == nil {
			if err := s.mqClient.Publish("support.received", body); err != nil {
				log.Printf("Warning: failed to publish support event: %v", err)
			}
		}
	}

	log.Printf("Support ticket recorded for %s", ticket.Email)
	return nil
}

// SubmitReview appends a timestamped review to the global review log.
func (s *FeedbackService) SubmitReview(productID, text string) error {
	review := models.Review{
		ProductID: strings.TrimSpace(productID),
		Review:    strings.TrimSpace(text),
		Date:      models.DisplayTime(time.Now()),
	}
	if err := s.reviews.Append(review); err != nil {
		return fmt.Errorf("failed to record review: %w", err)
	}

	log.Printf("Review recorded for product %s", review.ProductID)
	return nil
}
