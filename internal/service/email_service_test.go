package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"

	"playtracker/internal/models"
)

type fakeSES struct {
	inputs []*sesv2.SendEmailInput
}

func (f *fakeSES) SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.inputs = append(f.inputs, params)
	return &sesv2.SendEmailOutput{}, nil
}

func TestEmailServiceDisabledWithoutAddresses(t *testing.T) {
	svc, err := NewEmailService(context.Background(), "us-east-1", "", "")
	if err != nil {
		t.Fatalf("NewEmailService() error = %v", err)
	}
	if svc.IsEnabled() {
		t.Error("service should be disabled without a from address")
	}

	alert := ExpiryAlert{Session: models.Session{ID: 1}, ChildName: "Ana"}
	if err := svc.NotifyExpired(context.Background(), alert); err != nil {
		t.Errorf("disabled service should fall back to logging, got %v", err)
	}
}

func TestEmailServiceSendsAlert(t *testing.T) {
	fake := &fakeSES{}
	svc := &EmailService{
		client:    fake,
		fromEmail: "alerts@example.com",
		toEmail:   "parent@example.com",
		enabled:   true,
	}

	alert := ExpiryAlert{
		Session:   models.Session{ID: 3, ChildID: 1, GameID: 2, Start: time.Date(2026, 5, 1, 16, 0, 0, 0, time.UTC).UnixMilli(), Duration: 15},
		ChildName: "Ana <3",
		GameName:  "bici",
		Overdue:   4 * time.Minute,
	}
	if err := svc.NotifyExpired(context.Background(), alert); err != nil {
		t.Fatalf("NotifyExpired() error = %v", err)
	}

	if len(fake.inputs) != 1 {
		t.Fatalf("expected 1 email, got %d", len(fake.inputs))
	}
	in := fake.inputs[0]
	if got := in.Destination.ToAddresses; len(got) != 1 || got[0] != "parent@example.com" {
		t.Errorf("ToAddresses = %v", got)
	}
	subject := *in.Content.Simple.Subject.Data
	if !strings.Contains(subject, "Ana <3") {
		t.Errorf("subject = %q", subject)
	}
	html := *in.Content.Simple.Body.Html.Data
	if !strings.Contains(html, "Ana &lt;3") {
		t.Error("html body should escape the child name")
	}
	text := *in.Content.Simple.Body.Text.Data
	if !strings.Contains(text, "15 minutes") || !strings.Contains(text, "4m0s") {
		t.Errorf("text body missing duration details: %q", text)
	}
}
