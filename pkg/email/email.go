// Package email, uygulama genelinde email gönderimi için soyutlama katmanı sağlar.
//
// EmailSender interface'i ile gönderim detayları soyutlanır (Dependency Inversion).
// Şu anki implementasyon Resend API kullanır; farklı bir sağlayıcıya geçmek için
// yeni bir implementasyon yazıp main.go'daki wire-up'ı değiştirmek yeterli.
package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/resend/resend-go/v3"
)

// EmailSender, email gönderimi için interface.
// Service katmanı bu interface'e bağımlıdır, concrete Resend implementasyonuna değil.
type EmailSender interface {
	// SendClassSchedule, eğitmene yeni açılan sınıfın ders programını gönderir.
	// sessionDates: hesaplanan ders günleri (görüntü formatında),
	// skippedHolidays: tatile denk gelip atlanan günler (boş olabilir).
	SendClassSchedule(ctx context.Context, toEmail, className, startDate, endDate string, skippedHolidays []string) error
}

// resendSender, Resend API ile email gönderen EmailSender implementasyonu.
type resendSender struct {
	client    *resend.Client
	fromEmail string // Gönderici adresi (ör: noreply@classhub.app)
}

// NewResendSender, Resend API client'ı ile yeni bir EmailSender oluşturur.
//
// apiKey: Resend dashboard'dan alınan API key (re_xxxxxxxx formatında).
// fromEmail: Gönderici adresi — Resend'de doğrulanmış domain altında olmalı.
func NewResendSender(apiKey, fromEmail string) EmailSender {
	return &resendSender{
		client:    resend.NewClient(apiKey),
		fromEmail: fromEmail,
	}
}

// SendClassSchedule, sınıf açılış bilgilendirme email'i gönderir.
//
// Subject: "Class schedule — {className}"
// Body: başlangıç/bitiş tarihi + varsa tatil nedeniyle atlanan günler.
func (s *resendSender) SendClassSchedule(ctx context.Context, toEmail, className, startDate, endDate string, skippedHolidays []string) error {
	holidayNote := ""
	if len(skippedHolidays) > 0 {
		holidayNote = fmt.Sprintf(
			`<p style="color:#94a3b8;font-size:14px;line-height:1.6;margin:0 0 16px 0;">
				Sessions falling on holidays were skipped: %s
			</p>`,
			strings.Join(skippedHolidays, ", "))
	}

	html := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="margin:0;padding:0;background-color:#1a1a2e;font-family:Arial,Helvetica,sans-serif;">
  <table width="100%%" cellpadding="0" cellspacing="0" style="background-color:#1a1a2e;padding:40px 0;">
    <tr>
      <td align="center">
        <table width="480" cellpadding="0" cellspacing="0" style="background-color:#16213e;border-radius:8px;padding:40px;">
          <tr>
            <td>
              <h1 style="color:#e2e8f0;font-size:24px;margin:0 0 8px 0;">classhub</h1>
              <h2 style="color:#e2e8f0;font-size:18px;margin:0 0 24px 0;">%s</h2>
              <p style="color:#94a3b8;font-size:15px;line-height:1.6;margin:0 0 16px 0;">
                Your class has been scheduled.<br>
                First session: <strong style="color:#e2e8f0;">%s</strong><br>
                Last session: <strong style="color:#e2e8f0;">%s</strong>
              </p>
              %s
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`, className, startDate, endDate, holidayNote)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("classhub <%s>", s.fromEmail),
		To:      []string{toEmail},
		Subject: fmt.Sprintf("Class schedule — %s", className),
		Html:    html,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send class schedule email: %w", err)
	}

	return nil
}
