package service

import (
	"time"

	"github.com/google/uuid"
)

// MembershipQRType tags QR payloads produced for membership cards.
const MembershipQRType = "luxe-wellness-membership"

// MembershipQRPayload is the JSON encoded into a membership card QR code.
type MembershipQRPayload struct {
	MembershipID uuid.UUID `json:"membershipId"`
	UserID       string    `json:"userId"`
	Timestamp    int64     `json:"timestamp"`
	Type         string    `json:"type"`
}

// QRCodeService defines the interface for QR code generation and parsing services
type QRCodeService interface {
	// GenerateMembershipQR renders the membership card QR code as PNG.
	GenerateMembershipQR(membershipID uuid.UUID, userID string, issuedAt time.Time) ([]byte, error)

	// MembershipQRMessage returns the text encoded in the membership card QR code.
	MembershipQRMessage(membershipID uuid.UUID, userID string, issuedAt time.Time) (string, error)

	// ParseMembershipQR parses QR code data scanned at the front desk.
	ParseMembershipQR(qrData string) (*MembershipQRPayload, error)
}
