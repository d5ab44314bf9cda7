package telegram

import (
	"testing"
	"time"

	tele "gopkg.in/telebot.v4"
)

func TestBuildPollerWebhook(t *testing.T) {
	p := BuildPoller(PollerOptions{
		RunMode: "WEBHOOK",
		Webhook: WebhookOptions{Listen: "0.0.0.0", Port: 8443, URL: "https://bot.example.com/hook"},
	})
	wh, ok := p.(*tele.Webhook)
	if !ok {
		t.Fatalf("expected *tele.Webhook, got %T", p)
	}
	if wh.Listen != "0.0.0.0:8443" || wh.Endpoint.PublicURL != "https://bot.example.com/hook" {
		t.Fatalf("unexpected webhook: %+v", wh)
	}
}

func TestBuildPollerLongPollDefaultTimeout(t *testing.T) {
	p := BuildPoller(PollerOptions{RunMode: "longpoll"})
	lp, ok := p.(*tele.LongPoller)
	if !ok {
		t.Fatalf("expected *tele.LongPoller, got %T", p)
	}
	if lp.Timeout != 10*time.Second {
		t.Fatalf("timeout = %s, want 10s", lp.Timeout)
	}
}

func TestBuildPollerAllowedUpdates(t *testing.T) {
	p := BuildPoller(PollerOptions{AllowedUpdates: []string{" Message", "callback_query", "message", ""}})
	lp := p.(*tele.LongPoller)
	if len(lp.AllowedUpdates) != 2 || lp.AllowedUpdates[0] != "message" || lp.AllowedUpdates[1] != "callback_query" {
		t.Fatalf("allowed updates = %v", lp.AllowedUpdates)
	}
	if got := BuildPoller(PollerOptions{}).(*tele.LongPoller).AllowedUpdates; got != nil {
		t.Fatalf("empty list should allow everything, got %v", got)
	}
}
