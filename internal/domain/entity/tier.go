package entity

import (
	"strings"

	domainerrors "wellness/internal/domain/errors"
)

// Tier is a membership level. Higher tiers grant everything lower tiers do.
type Tier string

const (
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
)

var tierRanks = map[Tier]int{
	TierSilver:   1,
	TierGold:     2,
	TierPlatinum: 3,
}

// String returns the string representation of the Tier.
func (t Tier) String() string {
	return string(t)
}

// IsValid checks if the Tier is one of the known levels.
func (t Tier) IsValid() bool {
	_, ok := tierRanks[t]

	return ok
}

// Rank returns the ordinal of the tier, or 0 when the tier is unknown.
func (t Tier) Rank() int {
	return tierRanks[t]
}

// CanAccess reports whether a member at tier t may attend something that requires the given tier.
func (t Tier) CanAccess(required Tier) bool {
	if !t.IsValid() || !required.IsValid() {
		return false
	}

	return t.Rank() >= required.Rank()
}

// ParseTier normalizes and validates a tier name.
func ParseTier(s string) (Tier, error) {
	t := Tier(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", domainerrors.ErrInvalidTier.WithDetails("unknown tier: " + s)
	}

	return t, nil
}

// CanAccess is the event gate: no membership, or an inactive one, never grants access.
func CanAccess(m *Membership, required Tier) bool {
	if m == nil || !m.IsActive {
		return false
	}

	return m.Tier.CanAccess(required)
}
