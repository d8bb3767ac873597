package services

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"party-planner-api/config"
	"party-planner-api/models"
)

// EmailSender sends transactional order emails. Sending is best-effort:
// callers log failures instead of failing the request.
type EmailSender interface {
	SendOrderConfirmation(toEmail, toName string, order *models.Order) error
	SendOrderStatusUpdate(toEmail, toName string, order *models.Order) error
}

// SendGridService sends emails through SendGrid
type SendGridService struct {
	client *sendgrid.Client
	sender string
}

var emailServiceInstance EmailSender

// InitEmailService initializes the SendGrid email service
func InitEmailService(cfg *config.Config) (EmailSender, error) {
	if cfg.SendGridAPIKey == "" {
		return nil, fmt.Errorf("SENDGRID_API_KEY is required")
	}

	emailServiceInstance = &SendGridService{
		client: sendgrid.NewSendClient(cfg.SendGridAPIKey),
		sender: cfg.EmailSender,
	}
	return emailServiceInstance, nil
}

// GetEmailService returns the initialized email service instance
func GetEmailService() EmailSender {
	return emailServiceInstance
}

// SetEmailService sets the email service instance (primarily for testing)
func SetEmailService(service EmailSender) {
	emailServiceInstance = service
}

func (s *SendGridService) send(toEmail, toName, subject, htmlContent string) error {
	from := mail.NewEmail("Party Planner", s.sender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, htmlContent, htmlContent)

	response, err := s.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected email: status %d", response.StatusCode)
	}
	return nil
}

// SendOrderConfirmation mails the customer after checkout
func (s *SendGridService) SendOrderConfirmation(toEmail, toName string, order *models.Order) error {
	subject := "Order Confirmation"
	htmlContent := fmt.Sprintf(
		"<strong>Dear %s,</strong><br><br>Your order #%d has been placed successfully.<br><br>"+
			"Total Amount: <strong>%.2f</strong><br>Shipping to: <strong>%s</strong><br><br>"+
			"Thank you for booking with us!",
		toName, order.ID, order.Amount, order.Address,
	)
	return s.send(toEmail, toName, subject, htmlContent)
}

// SendOrderStatusUpdate mails the customer when an order leaves PENDING
func (s *SendGridService) SendOrderStatusUpdate(toEmail, toName string, order *models.Order) error {
	subject := fmt.Sprintf("Order #%d %s", order.ID, order.Status)
	htmlContent := fmt.Sprintf(
		"<strong>Dear %s,</strong><br><br>Your order #%d is now <strong>%s</strong>.",
		toName, order.ID, order.Status,
	)
	return s.send(toEmail, toName, subject, htmlContent)
}
