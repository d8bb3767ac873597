package services

import (
	"party-planner-api/models"
)

// SentEmail records one email handed to the mock sender
type SentEmail struct {
	To      string
	OrderID uint
	Status  string
}

// MockEmailService is a mock implementation of EmailSender for testing
type MockEmailService struct {
	Confirmations []SentEmail
	StatusUpdates []SentEmail
	SendError     error
}

// NewMockEmailService creates a new mock email service
func NewMockEmailService() *MockEmailService {
	return &MockEmailService{}
}

// SendOrderConfirmation records the confirmation email
func (m *MockEmailService) SendOrderConfirmation(toEmail, _ string, order *models.Order) error {
	if m.SendError != nil {
		return m.SendError
	}
	m.Confirmations = append(m.Confirmations, SentEmail{To: toEmail, OrderID: order.ID, Status: order.Status})
	return nil
}

// SendOrderStatusUpdate records the status email
func (m *MockEmailService) SendOrderStatusUpdate(toEmail, _ string, order *models.Order) error {
	if m.SendError != nil {
		return m.SendError
	}
	m.StatusUpdates = append(m.StatusUpdates, SentEmail{To: toEmail, OrderID: order.ID, Status: order.Status})
	return nil
}
