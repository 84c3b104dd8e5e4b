package notification

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureMailer struct {
	to      string
	subject string
	body    string
	ok      bool
}

func (m *captureMailer) Send(to string, subject string, htmlBody string) bool {
	m.to = to
	m.subject = subject
	m.body = htmlBody
	return m.ok
}

func TestEmailDelivery(t *testing.T) {
	ctx := context.Background()

	t.Run("escapes the message exactly once", func(t *testing.T) {
		m := &captureMailer{ok: true}
		svc := NewEmailDeliveryService(m, logrus.New())

		n := &Notification{
			UserEmail: "amy@co.com",
			Title:     "Mentioned",
			Message:   "owner@co.com mentioned you: <b>bold</b> & more",
			Link:      "https://ems.dreamshift.io/tasks",
		}
		require.NoError(t, svc.Deliver(ctx, n, Email))

		assert.Equal(t, "amy@co.com", m.to)
		assert.Equal(t, "Mentioned", m.subject)
		assert.Contains(t, m.body, "&lt;b&gt;bold&lt;/b&gt; &amp; more")
		assert.NotContains(t, m.body, "&amp;lt;")
		assert.Contains(t, m.body, `<a href="https://ems.dreamshift.io/tasks">`)
	})

	t.Run("a refused send surfaces as an error", func(t *testing.T) {
		m := &captureMailer{ok: false}
		svc := NewEmailDeliveryService(m, logrus.New())

		err := svc.Deliver(ctx, &Notification{UserEmail: "amy@co.com", Message: "hi"}, Email)
		assert.Error(t, err)
	})
}
