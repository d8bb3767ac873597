package services

import (
	"fmt"
	"mime/multipart"
)

// MockS3Service is a mock implementation of S3Interface for testing
type MockS3Service struct {
	UploadedFiles []string
	DeletedURLs   []string
	UploadError   error
	DeleteError   error
}

// NewMockS3Service creates a new mock S3 service
func NewMockS3Service() *MockS3Service {
	return &MockS3Service{}
}

// UploadImage records the upload and returns a fake public URL
func (m *MockS3Service) UploadImage(fileHeader *multipart.FileHeader) (string, error) {
	if m.UploadError != nil {
		return "", m.UploadError
	}
	m.UploadedFiles = append(m.UploadedFiles, fileHeader.Filename)
	return fmt.Sprintf("https://test-bucket.s3.us-east-1.amazonaws.com/uploads/%s", fileHeader.Filename), nil
}

// DeleteImage records the deletion
func (m *MockS3Service) DeleteImage(imageURL string) error {
	if m.DeleteError != nil {
		return m.DeleteError
	}
	m.DeletedURLs = append(m.DeletedURLs, imageURL)
	return nil
}
