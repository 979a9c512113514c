package entity

import (
	"testing"

	domainerrors "wellness/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Tier
		wantErr bool
	}{
		{input: "silver", want: TierSilver},
		{input: "Gold", want: TierGold},
		{input: " platinum ", want: TierPlatinum},
		{input: "bronze", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseTier(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, domainerrors.ErrInvalidTier)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTier_CanAccess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		member   Tier
		required Tier
		want     bool
	}{
		{member: TierSilver, required: TierSilver, want: true},
		{member: TierSilver, required: TierGold, want: false},
		{member: TierSilver, required: TierPlatinum, want: false},
		{member: TierGold, required: TierSilver, want: true},
		{member: TierGold, required: TierGold, want: true},
		{member: TierGold, required: TierPlatinum, want: false},
		{member: TierPlatinum, required: TierSilver, want: true},
		{member: TierPlatinum, required: TierGold, want: true},
		{member: TierPlatinum, required: TierPlatinum, want: true},
		{member: Tier("bronze"), required: TierSilver, want: false},
		{member: TierPlatinum, required: Tier("diamond"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.member.String()+"->"+tt.required.String(), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.member.CanAccess(tt.required))
		})
	}
}

func TestTier_CanAccessIsMonotonic(t *testing.T) {
	t.Parallel()

	tiers := []Tier{TierSilver, TierGold, TierPlatinum}
	for _, required := range tiers {
		for i, member := range tiers {
			if !member.CanAccess(required) {
				continue
			}
			for _, higher := range tiers[i:] {
				assert.True(t, higher.CanAccess(required), "%s grants %s so %s must too", member, required, higher)
			}
		}
	}
}

func TestCanAccess_Membership(t *testing.T) {
	t.Parallel()

	assert.False(t, CanAccess(nil, TierSilver))

	m := &Membership{Tier: TierGold, IsActive: true}
	assert.True(t, CanAccess(m, TierGold))
	assert.False(t, CanAccess(m, TierPlatinum))

	m.IsActive = false
	assert.False(t, CanAccess(m, TierSilver))
}

func TestEntitlements(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tier      Tier
		balance   int64
		discount  int
		vipEvents int
		gifts     []GiftType
	}{
		{tier: TierSilver, balance: 12000, discount: 5, vipEvents: 1, gifts: []GiftType{GiftSkincareProduct}},
		{tier: TierGold, balance: 20000, discount: 10, vipEvents: 2, gifts: []GiftType{GiftSkincareProduct, GiftFacialTreatment}},
		{tier: TierPlatinum, balance: 30000, discount: 15, vipEvents: UnlimitedVipEvents, gifts: []GiftType{GiftSkincareProduct, GiftPremiumFacial, GiftLaserFacial}},
	}

	for _, tt := range tests {
		t.Run(tt.tier.String(), func(t *testing.T) {
			t.Parallel()

			ent, err := EntitlementFor(tt.tier)
			require.NoError(t, err)
			assert.Equal(t, tt.balance, ent.DefaultBalance().IntPart())
			assert.Equal(t, "MXN", ent.Currency)
			assert.Equal(t, tt.discount, ent.DiscountPercentage)
			assert.Equal(t, tt.vipEvents, ent.VipEvents)

			gifts := make([]GiftType, 0, len(ent.WelcomeGifts))
			for _, g := range ent.WelcomeGifts {
				gifts = append(gifts, g.Type)
			}
			assert.Equal(t, tt.gifts, gifts)
		})
	}

	_, err := EntitlementFor(Tier("bronze"))
	require.ErrorIs(t, err, domainerrors.ErrInvalidTier)

	ordered := Entitlements()
	require.Len(t, ordered, 3)
	assert.Equal(t, []Tier{TierSilver, TierGold, TierPlatinum}, []Tier{ordered[0].Tier, ordered[1].Tier, ordered[2].Tier})
}
