package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"medishare-backend/internal/config"
	"medishare-backend/internal/domain"
)

// sendgridEmailService sends transactional mail through SendGrid. All sends
// are treated as best effort by callers; a mail failure never rolls back the
// state change that triggered it.
type sendgridEmailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(cfg config.EmailConfig) EmailService {
	return &sendgridEmailService{
		apiKey:    cfg.APIKey,
		fromEmail: cfg.From,
		fromName:  cfg.FromName,
	}
}

func (s *sendgridEmailService) SendWelcomeEmail(ctx context.Context, email string) error {
	subject := "Welcome to MediShare"
	plain := "Thanks for subscribing to the MediShare newsletter. You will receive updates when new equipment is listed."
	html := "<p>Thanks for subscribing to the <strong>MediShare</strong> newsletter.</p><p>You will receive updates when new equipment is listed.</p>"
	return s.send(ctx, email, "", subject, plain, html)
}

func (s *sendgridEmailService) SendOrderReceivedNotification(ctx context.Context, ownerEmail, ownerName string, order *domain.Order) error {
	subject := fmt.Sprintf("New rental request #%d", order.ID)
	plain := fmt.Sprintf("%s %s requested %d item(s) for a total of %.2f. Review the order to approve or reject it.",
		order.PersonalInfo.FirstName, order.PersonalInfo.LastName, len(order.Items), order.TotalAmount)
	html := fmt.Sprintf("<p>%s %s requested <strong>%d item(s)</strong> for a total of <strong>%.2f</strong>.</p><p>Review the order to approve or reject it.</p>",
		order.PersonalInfo.FirstName, order.PersonalInfo.LastName, len(order.Items), order.TotalAmount)
	return s.send(ctx, ownerEmail, ownerName, subject, plain, html)
}

func (s *sendgridEmailService) SendOrderStatusNotification(ctx context.Context, renterEmail string, order *domain.Order) error {
	subject := fmt.Sprintf("Your rental order #%d is %s", order.ID, order.Status)
	plain := fmt.Sprintf("Your order #%d has been %s.", order.ID, order.Status)
	html := fmt.Sprintf("<p>Your order <strong>#%d</strong> has been <strong>%s</strong>.</p>", order.ID, order.Status)
	return s.send(ctx, renterEmail, order.PersonalInfo.FirstName, subject, plain, html)
}

func (s *sendgridEmailService) SendPendingOrderReminder(ctx context.Context, ownerEmail, ownerName string, order *domain.Order) error {
	subject := fmt.Sprintf("Reminder: rental request #%d is waiting", order.ID)
	plain := fmt.Sprintf("Order #%d from %s %s is still pending. Approve or reject it so the renter can plan.",
		order.ID, order.PersonalInfo.FirstName, order.PersonalInfo.LastName)
	html := fmt.Sprintf("<p>Order <strong>#%d</strong> from %s %s is still pending.</p><p>Approve or reject it so the renter can plan.</p>",
		order.ID, order.PersonalInfo.FirstName, order.PersonalInfo.LastName)
	return s.send(ctx, ownerEmail, ownerName, subject, plain, html)
}

func (s *sendgridEmailService) SendEquipmentDigest(ctx context.Context, email string, equipment []domain.Equipment) error {
	subject := fmt.Sprintf("New on MediShare: %d listings this week", len(equipment))

	var plain, html strings.Builder
	plain.WriteString("New equipment listed this week:\n")
	html.WriteString("<p>New equipment listed this week:</p><ul>")
	for _, eq := range equipment {
		fmt.Fprintf(&plain, "- %s (%s) at %.2f per %s\n", eq.Name, eq.Category, eq.Price, eq.RentalPeriod)
		fmt.Fprintf(&html, "<li><strong>%s</strong> (%s) at %.2f per %s</li>", eq.Name, eq.Category, eq.Price, eq.RentalPeriod)
	}
	html.WriteString("</ul>")

	return s.send(ctx, email, "", subject, plain.String(), html.String())
}

func (s *sendgridEmailService) send(ctx context.Context, to, toName, subject, plainText, htmlContent string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}
