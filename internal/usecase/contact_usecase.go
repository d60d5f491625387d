package usecase

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"app/internal/domain/model"
	"app/internal/notifier"
	repo "app/internal/repository"
)

// ContactUsecase は問い合わせの保存と通知を扱う。
// 通知は注文と同じくベストエフォート。
type ContactUsecase struct {
	contactRepo repo.ContactRepository
	notify      notifier.Notifier
	notifyTO    time.Duration
}

func NewContactUsecase(contactRepo repo.ContactRepository, notify notifier.Notifier) *ContactUsecase {
	return &ContactUsecase{
		contactRepo: contactRepo,
		notify:      notify,
		notifyTO:    5 * time.Second,
	}
}

type ContactInput struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

func (u *ContactUsecase) SendMessage(ctx context.Context, in ContactInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return NewHTTPError(http.StatusBadRequest, "invalid email")
	}
	if strings.TrimSpace(in.Subject) == "" {
		return NewHTTPError(http.StatusBadRequest, "subject is required")
	}
	if strings.TrimSpace(in.Message) == "" {
		return NewHTTPError(http.StatusBadRequest, "message is required")
	}

	m, err := u.contactRepo.Create(ctx, model.ContactMessage{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Phone:   strings.TrimSpace(in.Phone),
		Subject: strings.TrimSpace(in.Subject),
		Message: strings.TrimSpace(in.Message),
	})
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	text := fmt.Sprintf("New contact message #%d\nFrom: %s <%s>\nSubject: %s\n%s",
		m.ID, m.Name, m.Email, m.Subject, m.Message)

	go func() {
		nctx, cancel := context.WithTimeout(context.Background(), u.notifyTO)
		defer cancel()
		if err := u.notify.Notify(nctx, text); err != nil {
			log.Printf("contact notification failed: id=%d err=%v", m.ID, err)
		}
	}()

	return nil
}
