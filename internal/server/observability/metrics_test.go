package observability

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/readdaily/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, reg *prometheus.Registry) string {
	t.Helper()
	rec := httptest.NewRecorder()
	NewServer(":0", reg, logging.Nop()).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.ObserveRPC("/readdaily.ReadDaily/MarkRead", "OK", 20*time.Millisecond)
	m.ObserveRPC("/readdaily.ReadDaily/MarkRead", "OK", 30*time.Millisecond)
	m.ObserveRPC("/readdaily.ReadDaily/MarkRead", "NotFound", time.Millisecond)
	m.ReadMarked()
	m.LikeToggled(true)
	m.LikeToggled(true)
	m.LikeToggled(false)
	m.AutomationRun(3, nil)
	m.AutomationRun(0, errors.New("boom"))

	out := scrape(t, reg)
	for _, line := range []string{
		`readdaily_rpc_requests_total{code="OK",method="/readdaily.ReadDaily/MarkRead"} 2`,
		`readdaily_rpc_requests_total{code="NotFound",method="/readdaily.ReadDaily/MarkRead"} 1`,
		`readdaily_rpc_duration_seconds_count{method="/readdaily.ReadDaily/MarkRead"} 3`,
		`readdaily_reads_marked_total 1`,
		`readdaily_likes_toggled_total{liked="true"} 2`,
		`readdaily_likes_toggled_total{liked="false"} 1`,
		`readdaily_automation_articles_created_total 3`,
		`readdaily_automation_runs_total{result="error"} 1`,
		`readdaily_automation_runs_total{result="ok"} 1`,
	} {
		assert.Contains(t, out, line)
	}
}

func TestServer_Handler(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewMetrics(reg).ReadMarked()

	srv := httptest.NewServer(NewServer(":0", reg, logging.Nop()).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "readdaily_reads_marked_total 1")

	resp, err = http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_StopsOnCancel(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := NewServer(lis.Addr().String(), prometheus.NewRegistry(), logging.Nop())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.serve(ctx, lis) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + lis.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return true
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRPC("/x", "OK", time.Second)
		m.ReadMarked()
		m.LikeToggled(true)
		m.AutomationRun(1, nil)
	})
}
