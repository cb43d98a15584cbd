// Package monitoring turns a set of simulation runs into a small HTTP server
// so that long sweeps can be watched from outside the process.
package monitoring

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"sync"

	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"
)

// A RunStatus reports the live counters of one run, keyed by the run ID.
type RunStatus struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Hits      uint64 `json:"hits"`
	Misses    uint64 `json:"misses"`
	Evictions uint64 `json:"evictions"`
	Done      bool   `json:"done"`
}

// A RunReporter provides the current status of one run.
type RunReporter interface {
	Status() RunStatus
}

// Monitor serves the progress and the live counters of registered runs over
// HTTP.
type Monitor struct {
	portNumber int
	url        string

	runsLock sync.Mutex
	runs     []RunReporter

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar
}

// NewMonitor creates a new Monitor.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor. Ports below 1000 are
// rejected and a random port is used instead.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is not allowed for the monitoring server. "+
				"Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterRun adds a run to be monitored.
func (m *Monitor) RegisterRun(r RunReporter) {
	m.runsLock.Lock()
	defer m.runsLock.Unlock()

	m.runs = append(m.runs, r)
}

// CreateProgressBar creates a progress bar served at /api/progress.
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := newProgressBar(name, total)

	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.progressBars = append(m.progressBars, bar)

	return bar
}

// StartServer starts the monitoring server. It returns the URL the server
// listens on.
func (m *Monitor) StartServer() string {
	r := mux.NewRouter()
	r.HandleFunc("/api/runs", m.listRuns)
	r.HandleFunc("/api/progress", m.listProgressBars)
	r.HandleFunc("/api/resource", m.listResources)

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	m.url = fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Monitoring simulation with %s\n", m.url)

	go func() {
		err := http.Serve(listener, r)
		dieOnErr(err)
	}()

	return m.url
}

// OpenDashboard opens the monitor URL in the default browser. The server must
// have been started.
func (m *Monitor) OpenDashboard() {
	if m.url == "" {
		panic("the monitoring server is not started")
	}

	err := browser.OpenURL(m.url)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open browser: %v\n", err)
	}
}

func (m *Monitor) listRuns(w http.ResponseWriter, _ *http.Request) {
	m.runsLock.Lock()
	statuses := make([]RunStatus, 0, len(m.runs))
	for _, run := range m.runs {
		statuses = append(statuses, run.Status())
	}
	m.runsLock.Unlock()

	bytes, err := json.Marshal(statuses)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	bytes, err := json.Marshal(m.progressBars)
	m.progressBarsLock.Unlock()
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	dieOnErr(err)

	cpuPercent, err := proc.CPUPercent()
	dieOnErr(err)

	memoryInfo, err := proc.MemoryInfo()
	dieOnErr(err)

	rsp := resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memoryInfo.RSS,
	}

	bytes, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		panic(err)
	}
}
