package notification

import (
	"strings"
	"testing"

	"broker_portal_backend/internal/events"
)

func TestHotLeadMessage(t *testing.T) {
	msg, link := hotLeadMessage(events.HotLeadDetected{
		LeadScore:    85,
		City:         "Natal",
		PropertyType: "apartamento",
		ContactPhone: "(84) 99876-5432",
	})

	if !strings.Contains(msg, "85") {
		t.Errorf("message %q does not mention the score", msg)
	}
	if !strings.Contains(msg, "Natal") {
		t.Errorf("message %q does not mention the city", msg)
	}
	if !strings.HasPrefix(link, "https://wa.me/5584998765432") {
		t.Errorf("link = %q, want wa.me link to the visitor", link)
	}
}

func TestHotLeadMessageWithoutPhone(t *testing.T) {
	_, link := hotLeadMessage(events.HotLeadDetected{LeadScore: 90})
	if link != "" {
		t.Errorf("link = %q, want empty when no phone was captured", link)
	}
}

func TestLeadCreatedMessage(t *testing.T) {
	msg, link := leadCreatedMessage(events.LeadCreated{
		ContactName:  "Maria",
		ContactPhone: "(84) 98765-4321",
		Source:       "assistant",
	})
	if !strings.Contains(msg, "Maria") {
		t.Errorf("message %q does not mention the contact", msg)
	}
	if !strings.HasPrefix(link, "https://wa.me/") {
		t.Errorf("link = %q, want wa.me link", link)
	}
}
