package notification

import (
	"fmt"

	"broker_portal_backend/internal/events"
	"broker_portal_backend/internal/share"
)

// hotLeadMessage tells the broker a chat visitor just turned hot. The link,
// when the visitor left a phone, opens WhatsApp straight to them.
func hotLeadMessage(ev events.HotLeadDetected) (string, string) {
	msg := fmt.Sprintf("Lead quente no chat! Pontuação %d", ev.LeadScore)
	if ev.City != "" {
		msg += fmt.Sprintf(", procurando em %s", ev.City)
	}
	if ev.PropertyType != "" {
		msg += fmt.Sprintf(" (%s)", ev.PropertyType)
	}
	msg += ". Responda o quanto antes."

	var link string
	if ev.ContactPhone != "" {
		if wa, err := share.WhatsAppLink(ev.ContactPhone, "Olá! Vi seu interesse pelo nosso chat e gostaria de ajudar."); err == nil {
			link = wa
		}
	}
	return msg, link
}

func leadCreatedMessage(ev events.LeadCreated) (string, string) {
	msg := fmt.Sprintf("Novo lead: %s (%s), origem %s.", ev.ContactName, ev.ContactPhone, ev.Source)
	var link string
	if wa, err := share.WhatsAppLink(ev.ContactPhone, "Olá! Recebi seu contato e gostaria de ajudar na sua busca."); err == nil {
		link = wa
	}
	return msg, link
}

func partnershipProposedMessage(requesterName string) string {
	return fmt.Sprintf("%s propôs uma parceria com você. Acesse o painel para responder.", requesterName)
}

func partnershipAcceptedMessage(partnerName string) string {
	return fmt.Sprintf("%s aceitou sua proposta de parceria. Os imóveis de vocês agora aparecem nas buscas de parceiros.", partnerName)
}
