package service

import (
	"fmt"

	"microblog/api/model"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Mail is one outbound message handed to the queue.
type Mail struct {
	Subject  string
	To       []string
	TextBody string
	HTMLBody string
}

// Mailer sends mail from a bounded queue so requests never wait on SMTP.
// Delivery is best-effort: failures are logged and the message is dropped.
type Mailer struct {
	jobs    chan *Mail
	workers int
}

func NewMailer() *Mailer {
	return &Mailer{
		jobs:    make(chan *Mail, viper.GetInt("mail.queue_size")),
		workers: viper.GetInt("mail.workers"),
	}
}

func (m *Mailer) StartWorkerPool() {
	for i := 0; i < m.workers; i++ {
		go m.worker()
	}
}

func (m *Mailer) worker() {
	for job := range m.jobs {
		if err := m.send(job); err != nil {
			zap.L().Error("Failed to send mail", zap.Error(err), zap.String("subject", job.Subject))
		}
	}
}

// Enqueue hands the mail off without waiting. A full queue drops the
// message with a warning, it never blocks or fails the caller.
func (m *Mailer) Enqueue(job *Mail) {
	select {
	case m.jobs <- job:
	default:
		zap.L().Warn("Mail queue full, dropping message", zap.String("subject", job.Subject))
	}
}

// SendPasswordReset formats the reset mail for user and enqueues it.
func (m *Mailer) SendPasswordReset(user *model.User, token string) {
	scheme := "http"
	if viper.GetBool("host.ssl.enabled") {
		scheme = "https"
	}

	link := fmt.Sprintf("%s://%s/reset_password?token=%s", scheme, viper.GetString("host.domain"), token)

	m.Enqueue(&Mail{
		Subject: "Reset your password",
		To:      []string{user.Email},
		TextBody: fmt.Sprintf(
			"Hi %s,\n\nTo reset your password visit:\n%s\n\nIf you did not request a password reset you can ignore this message.",
			user.Username, link),
		HTMLBody: fmt.Sprintf(
			"<p>Hi %s,</p><p>Click <a href=%q>here</a> to reset your password.</p><p>If you did not request a password reset you can ignore this message.</p>",
			user.Username, link),
	})
}

func (m *Mailer) send(job *Mail) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", viper.GetString("mail.sender"))
	msg.SetHeader("To", job.To...)
	msg.SetHeader("Subject", job.Subject)
	msg.SetBody("text/plain", job.TextBody)

	if job.HTMLBody != "" {
		msg.AddAlternative("text/html", job.HTMLBody)
	}

	d := gomail.NewDialer(
		viper.GetString("mail.host"),
		viper.GetInt("mail.port"),
		viper.GetString("mail.sender"),
		viper.GetString("mail.password"),
	)

	return d.DialAndSend(msg)
}
