package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clickdeck/internal/clickup"
)

func analyticsRouter(upstreamURL, defaultTeamID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAnalyticsHandler(clickup.NewClient(upstreamURL, "test-token", zap.NewNop()), defaultTeamID, zap.NewNop())
	r := gin.New()
	r.GET("/workspace-analytics", h.WorkspaceAnalytics)
	return r
}

func TestWorkspaceAnalytics_Report(t *testing.T) {
	upstream := newFakeUpstream(http.StatusOK, `{"tasks":[
		{"id":"T1","status":{"status":"complete"},"priority":{"priority":"urgent"}},
		{"id":"T2","status":{"status":"in progress"},"priority":{"priority":"low"}},
		{"id":"T3","status":{"status":"complete"}},
		{"id":"T4"}
	]}`)
	defer upstream.Close()
	r := analyticsRouter(upstream.srv.URL, "")

	w := doJSON(r, http.MethodGet, "/workspace-analytics?teamId=42", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if upstream.lastPath != "/team/42/task" {
		t.Fatalf("unexpected upstream path: %s", upstream.lastPath)
	}

	var report struct {
		TotalTasks      int            `json:"totalTasks"`
		CompletedTasks  int            `json:"completedTasks"`
		PendingTasks    int            `json:"pendingTasks"`
		TasksByPriority map[string]int `json:"tasksByPriority"`
		TasksByStatus   map[string]int `json:"tasksByStatus"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.TotalTasks != 4 || report.CompletedTasks != 2 || report.PendingTasks != 2 {
		t.Fatalf("unexpected totals: %+v", report)
	}
	if report.TasksByPriority["urgent"] != 1 || report.TasksByPriority["unknown"] != 2 {
		t.Fatalf("unexpected priorities: %v", report.TasksByPriority)
	}
	if report.TasksByStatus["complete"] != 2 || report.TasksByStatus["Unknown"] != 1 {
		t.Fatalf("unexpected statuses: %v", report.TasksByStatus)
	}
}

func TestWorkspaceAnalytics_DefaultTeam(t *testing.T) {
	upstream := newFakeUpstream(http.StatusOK, `{"tasks":[]}`)
	defer upstream.Close()
	r := analyticsRouter(upstream.srv.URL, "9012517272")

	w := doJSON(r, http.MethodGet, "/workspace-analytics", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if upstream.lastPath != "/team/9012517272/task" {
		t.Fatalf("expected default team id in path, got %s", upstream.lastPath)
	}
}

func TestWorkspaceAnalytics_UpstreamFailure(t *testing.T) {
	upstream := newFakeUpstream(http.StatusBadGateway, `boom`)
	defer upstream.Close()
	r := analyticsRouter(upstream.srv.URL, "1")

	w := doJSON(r, http.MethodGet, "/workspace-analytics", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if w.Body.String() != `{"error":"Failed to fetch workspace analytics."}` {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}
