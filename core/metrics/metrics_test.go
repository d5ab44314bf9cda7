package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorderCounts(t *testing.T) {
	r := New(func() int { return 3 })
	r.Transition("waiting_for_image", "waiting_for_education", "photo")
	r.Transition("waiting_for_image", "waiting_for_education", "photo")
	r.Rejection("waiting_for_image", "unexpected_input")
	r.Update("message")

	if got := testutil.ToFloat64(r.Transitions.WithLabelValues("waiting_for_image", "waiting_for_education", "photo")); got != 2 {
		t.Fatalf("transitions = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.Rejections.WithLabelValues("waiting_for_image", "unexpected_input")); got != 1 {
		t.Fatalf("rejections = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.Sessions); got != 3 {
		t.Fatalf("sessions = %v, want 3", got)
	}
}

func TestNilRecorderIsNoop(t *testing.T) {
	var r *Recorder
	r.Update("message")
	r.Handler("start", "ok")
	r.Transition("a", "b", "c")
	r.Rejection("a", "b")
	r.SendFailure("send.text", "timeout")
}

func TestServerExposesMetricsAndHealth(t *testing.T) {
	r := New(nil)
	r.Handler("start", "ok")
	srv := httptest.NewServer(NewServer(":0", r).Handler)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("get metrics: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), `hustlex_handler_total{handler="start",outcome="ok"} 1`) {
		t.Fatalf("metrics output missing handler counter:\n%s", body)
	}

	resp, err = http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("get healthz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("healthz status = %d", resp.StatusCode)
	}
}
