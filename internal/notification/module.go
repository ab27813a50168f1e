package notification

import (
	"context"

	"broker_portal_backend/internal/events"
	partnerrepo "broker_portal_backend/internal/partners/repository"
	"broker_portal_backend/platform/logger"

	"github.com/google/uuid"
)

// ProfileReader resolves a broker id to a contactable profile.
type ProfileReader interface {
	GetProfile(ctx context.Context, id uuid.UUID) (partnerrepo.Profile, error)
}

// Module wires notification delivery to domain events. It registers no HTTP
// routes; it only subscribes on the event bus.
type Module struct {
	notifier *Notifier
	profiles ProfileReader
	log      *logger.Logger
}

// NewModule creates the notification module and subscribes it to the events
// brokers care about. The notifier may be nil; subscriptions then only log.
func NewModule(notifier *Notifier, profiles ProfileReader, bus events.Bus, log *logger.Logger) *Module {
	m := &Module{notifier: notifier, profiles: profiles, log: log}

	bus.Subscribe(events.HotLeadDetected{}.EventName(), events.HandlerFunc(m.onHotLead))
	bus.Subscribe(events.LeadCreated{}.EventName(), events.HandlerFunc(m.onLeadCreated))
	bus.Subscribe(events.PartnershipProposed{}.EventName(), events.HandlerFunc(m.onPartnershipProposed))
	bus.Subscribe(events.PartnershipAccepted{}.EventName(), events.HandlerFunc(m.onPartnershipAccepted))

	return m
}

func (m *Module) onHotLead(ctx context.Context, event events.Event) error {
	ev, ok := event.(events.HotLeadDetected)
	if !ok || ev.BrokerID == nil {
		return nil
	}
	profile, err := m.profiles.GetProfile(ctx, *ev.BrokerID)
	if err != nil {
		m.log.Error("notification: could not resolve broker", "event", event.EventName(), "error", err)
		return nil
	}
	msg, link := hotLeadMessage(ev)
	m.notifier.Send(ctx, "whatsapp", profile.Phone, msg, link)
	return nil
}

func (m *Module) onLeadCreated(ctx context.Context, event events.Event) error {
	ev, ok := event.(events.LeadCreated)
	if !ok {
		return nil
	}
	// Manual leads were typed in by the broker; only assistant leads are news.
	if ev.Source != "assistant" {
		return nil
	}
	profile, err := m.profiles.GetProfile(ctx, ev.BrokerID)
	if err != nil {
		m.log.Error("notification: could not resolve broker", "event", event.EventName(), "error", err)
		return nil
	}
	msg, link := leadCreatedMessage(ev)
	m.notifier.Send(ctx, "whatsapp", profile.Phone, msg, link)
	return nil
}

func (m *Module) onPartnershipProposed(ctx context.Context, event events.Event) error {
	ev, ok := event.(events.PartnershipProposed)
	if !ok {
		return nil
	}
	requester, err := m.profiles.GetProfile(ctx, ev.RequesterID)
	if err != nil {
		m.log.Error("notification: could not resolve broker", "event", event.EventName(), "error", err)
		return nil
	}
	partner, err := m.profiles.GetProfile(ctx, ev.PartnerID)
	if err != nil {
		m.log.Error("notification: could not resolve broker", "event", event.EventName(), "error", err)
		return nil
	}
	m.notifier.Send(ctx, "push", partner.Phone, partnershipProposedMessage(requester.Name), "")
	return nil
}

func (m *Module) onPartnershipAccepted(ctx context.Context, event events.Event) error {
	ev, ok := event.(events.PartnershipAccepted)
	if !ok {
		return nil
	}
	partner, err := m.profiles.GetProfile(ctx, ev.PartnerID)
	if err != nil {
		m.log.Error("notification: could not resolve broker", "event", event.EventName(), "error", err)
		return nil
	}
	requester, err := m.profiles.GetProfile(ctx, ev.RequesterID)
	if err != nil {
		m.log.Error("notification: could not resolve broker", "event", event.EventName(), "error", err)
		return nil
	}
	m.notifier.Send(ctx, "push", requester.Phone, partnershipAcceptedMessage(partner.Name), "")
	return nil
}
