package service

import (
	"testing"

	"broker_portal_backend/internal/assistant/domain"
)

func TestFormatReais(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{35000000, "R$ 350.000"},
		{150000000, "R$ 1.500.000"},
		{300000, "R$ 3.000"},
		{90000, "R$ 900"},
		{0, "R$ 0"},
	}
	for _, tc := range cases {
		if got := FormatReais(tc.cents); got != tc.want {
			t.Fatalf("FormatReais(%d) = %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestCannedReplyCoversEveryPhase(t *testing.T) {
	phases := []domain.Phase{
		domain.PhaseStart, domain.PhaseAwaitingType, domain.PhaseAwaitingCity,
		domain.PhaseAwaitingNeighborhood, domain.PhaseResults, domain.PhaseClosing,
		domain.PhaseBroker,
	}
	for _, p := range phases {
		if cannedReply(p) == "" {
			t.Fatalf("no canned reply for phase %q", p)
		}
	}
	if cannedReply(domain.Phase("nonsense")) == "" {
		t.Fatal("unknown phase must still produce a reply")
	}
}

func TestFormatBand(t *testing.T) {
	band := domain.PriceBand{MinCents: 20000000, MaxCents: 30000000, Count: 4}
	if got := formatBand(band); got != "R$ 200.000 a R$ 300.000" {
		t.Fatalf("formatBand = %q", got)
	}
}
