package monitoring

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRun struct {
	status RunStatus
}

func (r fakeRun) Status() RunStatus {
	return r.status
}

func TestMonitor_ListRuns(t *testing.T) {
	m := NewMonitor()
	m.RegisterRun(fakeRun{status: RunStatus{
		ID:     "run-1",
		Name:   "s=4 E=1 b=4",
		Hits:   10,
		Misses: 2,
		Done:   true,
	}})

	recorder := httptest.NewRecorder()
	m.listRuns(recorder, httptest.NewRequest("GET", "/api/runs", nil))

	var statuses []RunStatus
	err := json.Unmarshal(recorder.Body.Bytes(), &statuses)
	require.NoError(t, err)

	require.Len(t, statuses, 1)
	assert.Equal(t, "run-1", statuses[0].ID)
	assert.Equal(t, uint64(10), statuses[0].Hits)
}

func TestMonitor_ListProgressBars(t *testing.T) {
	m := NewMonitor()
	bar := m.CreateProgressBar("configurations", 8)
	bar.IncrementInProgress(2)
	bar.MoveInProgressToFinished(1)

	recorder := httptest.NewRecorder()
	m.listProgressBars(recorder,
		httptest.NewRequest("GET", "/api/progress", nil))

	var bars []map[string]any
	err := json.Unmarshal(recorder.Body.Bytes(), &bars)
	require.NoError(t, err)

	require.Len(t, bars, 1)
	assert.Equal(t, "configurations", bars[0]["name"])
	assert.Equal(t, float64(8), bars[0]["total"])
	assert.Equal(t, float64(1), bars[0]["finished"])
	assert.Equal(t, float64(1), bars[0]["in_progress"])
}

func TestMonitor_RejectsLowPortNumbers(t *testing.T) {
	m := NewMonitor().WithPortNumber(80)

	assert.Equal(t, 0, m.portNumber)
}
