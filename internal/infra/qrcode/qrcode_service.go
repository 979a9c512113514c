package qrcode

import (
	"encoding/json"
	"fmt"
	"time"

	"wellness/config"
	"wellness/internal/domain/service"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

const defaultSize = 256

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(size int, errorCorrectionLevel string) service.QRCodeService {
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	if size <= 0 {
		size = defaultSize
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// NewFromConfig builds the service from the qrcode config section.
func NewFromConfig(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		return NewQRCodeService(defaultSize, "M")
	}

	return NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

// MembershipQRMessage returns the JSON text carried by the membership card.
func (s *qrcodeService) MembershipQRMessage(membershipID uuid.UUID, userID string, issuedAt time.Time) (string, error) {
	payload := service.MembershipQRPayload{
		MembershipID: membershipID,
		UserID:       userID,
		Timestamp:    issuedAt.UnixMilli(),
		Type:         service.MembershipQRType,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal QR code data: %w", err)
	}

	return string(jsonData), nil
}

// GenerateMembershipQR generates the membership card QR code as PNG
func (s *qrcodeService) GenerateMembershipQR(membershipID uuid.UUID, userID string, issuedAt time.Time) ([]byte, error) {
	message, err := s.MembershipQRMessage(membershipID, userID, issuedAt)
	if err != nil {
		return nil, err
	}

	qrCode, err := qrcode.New(message, s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}

// ParseMembershipQR parses scanned QR code data back into its payload
func (s *qrcodeService) ParseMembershipQR(qrData string) (*service.MembershipQRPayload, error) {
	var payload service.MembershipQRPayload
	if err := json.Unmarshal([]byte(qrData), &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal QR code data: %w", err)
	}

	if payload.Type != service.MembershipQRType {
		return nil, fmt.Errorf("invalid QR code type: %s", payload.Type)
	}

	if payload.MembershipID == uuid.Nil || payload.UserID == "" {
		return nil, fmt.Errorf("QR code is missing membership or user id")
	}

	return &payload, nil
}
