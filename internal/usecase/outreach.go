package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/vadimbarashkov/ngo-site/internal/entity"
)

type contactSender interface {
	SendContact(ctx context.Context, msg entity.ContactMessage) error
}

type newsletterGateway interface {
	Subscribe(ctx context.Context, sub entity.Subscriber) error
}

// OutreachUseCase forwards contact-form messages and newsletter signups to their providers.
type OutreachUseCase struct {
	contact    contactSender
	newsletter newsletterGateway
}

func NewOutreachUseCase(contact contactSender, newsletter newsletterGateway) *OutreachUseCase {
	return &OutreachUseCase{
		contact:    contact,
		newsletter: newsletter,
	}
}

func (uc *OutreachUseCase) SubmitContact(ctx context.Context, msg entity.ContactMessage) error {
	const op = "usecase.OutreachUseCase.SubmitContact"

	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.ToLower(strings.TrimSpace(msg.Email))
	msg.Message = strings.TrimSpace(msg.Message)
	msg.Subject = strings.TrimSpace(msg.Subject)
	if msg.Subject == "" {
		msg.Subject = "New message from " + msg.Name
	}

	if err := uc.contact.SendContact(ctx, msg); err != nil {
		return fmt.Errorf("%s: failed to send contact message: %w", op, err)
	}

	return nil
}

func (uc *OutreachUseCase) Subscribe(ctx context.Context, sub entity.Subscriber) error {
	const op = "usecase.OutreachUseCase.Subscribe"

	sub.Email = strings.ToLower(strings.TrimSpace(sub.Email))
	sub.FirstName = strings.TrimSpace(sub.FirstName)

	if err := uc.newsletter.Subscribe(ctx, sub); err != nil {
		return fmt.Errorf("%s: failed to subscribe: %w", op, err)
	}

	return nil
}
