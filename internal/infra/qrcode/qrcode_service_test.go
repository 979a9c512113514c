package qrcode

import (
	"testing"
	"time"

	"wellness/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQRCodeService(t *testing.T) {
	tests := []struct {
		name                 string
		size                 int
		errorCorrectionLevel string
	}{
		{"Low error correction", 256, "L"},
		{"Medium error correction", 256, "M"},
		{"High error correction", 256, "Q"},
		{"Highest error correction", 256, "H"},
		{"Default error correction", 256, "invalid"},
		{"Default size", 0, "M"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewQRCodeService(tt.size, tt.errorCorrectionLevel)
			assert.NotNil(t, svc)
		})
	}
}

func TestNewFromConfig(t *testing.T) {
	svc := NewFromConfig(&config.Config{QRCode: &config.QRCodeConfig{Size: 128, ErrorCorrectionLevel: "H"}})
	impl := svc.(*qrcodeService)
	assert.Equal(t, 128, impl.size)

	fallback := NewFromConfig(&config.Config{}).(*qrcodeService)
	assert.Equal(t, defaultSize, fallback.size)
}

func TestQRCodeService_GenerateMembershipQR(t *testing.T) {
	svc := NewQRCodeService(256, "M")

	qrBytes, err := svc.GenerateMembershipQR(uuid.New(), "google-sub-1", time.Now())
	require.NoError(t, err)
	require.Greater(t, len(qrBytes), 4)

	// PNG magic number
	assert.Equal(t, []byte{0x89, 0x50, 0x4E, 0x47}, qrBytes[:4])
}

func TestQRCodeService_MessageRoundTrip(t *testing.T) {
	svc := NewQRCodeService(256, "M")
	membershipID := uuid.New()
	issuedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	message, err := svc.MembershipQRMessage(membershipID, "google-sub-1", issuedAt)
	require.NoError(t, err)
	assert.Contains(t, message, `"type":"luxe-wellness-membership"`)

	payload, err := svc.ParseMembershipQR(message)
	require.NoError(t, err)
	assert.Equal(t, membershipID, payload.MembershipID)
	assert.Equal(t, "google-sub-1", payload.UserID)
	assert.Equal(t, issuedAt.UnixMilli(), payload.Timestamp)
}

func TestQRCodeService_ParseMembershipQRErrors(t *testing.T) {
	svc := NewQRCodeService(256, "M")

	tests := []struct {
		name    string
		data    string
		wantMsg string
	}{
		{"invalid json", "invalid json", "failed to unmarshal QR code data"},
		{"wrong type", `{"membershipId":"` + uuid.NewString() + `","userId":"u","type":"subscription"}`, "invalid QR code type"},
		{"bad uuid", `{"membershipId":"nope","userId":"u","type":"luxe-wellness-membership"}`, "failed to unmarshal QR code data"},
		{"missing user", `{"membershipId":"` + uuid.NewString() + `","type":"luxe-wellness-membership"}`, "missing membership or user id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ParseMembershipQR(tt.data)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}
