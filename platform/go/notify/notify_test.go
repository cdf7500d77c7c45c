package notify

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jhillyerd/enmime"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/exchangedesk/fortworth1031/platform/go/persistence"
)

type fakeSender struct {
	reversePath string
	recipients  []string
	msg         []byte
	err         error
}

func (f *fakeSender) Send(reversePath string, recipients []string, msg []byte) error {
	f.reversePath = reversePath
	f.recipients = recipients
	f.msg = msg
	return f.err
}

func testLead() persistence.Lead {
	return persistence.Lead{
		LeadID:         uuid.New(),
		Name:           "Ada Lovelace",
		Email:          "ada@example.com",
		Phone:          "817-555-0100",
		PropertySold:   "Fourplex <Ridglea>",
		EstimatedClose: "2026-12-01",
		City:           "Benbrook",
		Message:        "Need a replacement NNN property.",
		ProjectType:    "Pharmacy",
		CreatedAt:      time.Now(),
	}
}

func TestMailNotifierSendsMultipartMessage(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	n, err := NewMailNotifier(sender, MailConfig{
		From:        "Leads Desk <leads@1031exchangefortworth.com>",
		To:          []string{"office@1031exchangefortworth.com"},
		CompanyName: "1031 Exchange Fort Worth",
	})
	require.NoError(t, err)

	require.NoError(t, n.NotifyLead(context.Background(), testLead()))
	require.Equal(t, "leads@1031exchangefortworth.com", sender.reversePath)
	require.Equal(t, []string{"office@1031exchangefortworth.com"}, sender.recipients)

	env, err := enmime.ReadEnvelope(bytes.NewReader(sender.msg))
	require.NoError(t, err)
	require.Equal(t, "New 1031 lead: Ada Lovelace (Benbrook)", env.GetHeader("Subject"))
	require.Contains(t, env.GetHeader("Reply-To"), "ada@example.com")
	require.Contains(t, env.Text, "Focus: Pharmacy")
	require.Contains(t, env.Text, "Fourplex <Ridglea>")
	require.Contains(t, env.HTML, "Fourplex &lt;Ridglea&gt;")
}

func TestMailNotifierSendError(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{err: errors.New("relay down")}
	n, err := NewMailNotifier(sender, MailConfig{From: "leads@example.com", To: []string{"office@example.com"}})
	require.NoError(t, err)

	err = n.NotifyLead(context.Background(), testLead())
	require.ErrorContains(t, err, "relay down")
}

func TestNewMailNotifierValidatesAddresses(t *testing.T) {
	t.Parallel()

	_, err := NewMailNotifier(&fakeSender{}, MailConfig{From: "not an address", To: []string{"office@example.com"}})
	require.Error(t, err)

	_, err = NewMailNotifier(&fakeSender{}, MailConfig{From: "leads@example.com"})
	require.Error(t, err)

	_, err = NewMailNotifier(nil, MailConfig{From: "leads@example.com", To: []string{"office@example.com"}})
	require.Error(t, err)
}

func TestNoop(t *testing.T) {
	t.Parallel()

	require.NoError(t, Noop{Logger: zaptest.NewLogger(t)}.NotifyLead(context.Background(), testLead()))
	require.NoError(t, Noop{}.NotifyLead(context.Background(), testLead()))
}
