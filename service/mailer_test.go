package service

import (
	"testing"

	"microblog/api/model"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestMailerEnqueueNeverBlocks(t *testing.T) {
	viper.Set("mail.queue_size", 2)
	viper.Set("mail.workers", 1)

	m := NewMailer()

	// No workers running: the queue fills and the rest is dropped instead
	// of blocking the caller
	for i := 0; i < 5; i++ {
		m.Enqueue(&Mail{Subject: "Reset your password", To: []string{"a@example.com"}})
	}

	require.Len(t, m.jobs, 2)
}

func TestSendPasswordResetEnqueues(t *testing.T) {
	viper.Set("mail.queue_size", 4)
	viper.Set("mail.workers", 1)
	viper.Set("host.domain", "example.com")
	viper.Set("host.ssl.enabled", true)

	m := NewMailer()
	m.SendPasswordReset(&model.User{Username: "sozzifer", Email: "sozzifer@gmail.com"}, "tok123")

	job := <-m.jobs
	require.Equal(t, []string{"sozzifer@gmail.com"}, job.To)
	require.Equal(t, "Reset your password", job.Subject)
	require.Contains(t, job.TextBody, "https://example.com/reset_password?token=tok123")
	require.Contains(t, job.HTMLBody, "tok123")
}
