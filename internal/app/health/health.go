package health

import (
	"log"
	"time"

	"github.com/samber/lo"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"

	"videomind/internal/app/model"
	"videomind/internal/app/repository"
)

// Report is the aggregate health summary.
type Report struct {
	Status        string   `json:"status"`
	DiskPercent   float64  `json:"disk_percent"`
	CPUPercent    float64  `json:"cpu_percent"`
	MemoryPercent float64  `json:"memory_percent"`
	StuckJobs     int      `json:"stuck_jobs"`
	StuckJobIDs   []string `json:"stuck_job_ids"`
}

// Monitor watches for jobs stuck in processing and samples host resources.
type Monitor struct {
	dao        repository.JobDAO
	staleAfter time.Duration
	diskPath   string

	// injected clock, replaced in tests
	now func() time.Time
}

func NewMonitor(dao repository.JobDAO, staleAfter time.Duration, diskPath string) *Monitor {
	if diskPath == "" {
		diskPath = "/"
	}
	return &Monitor{
		dao:        dao,
		staleAfter: staleAfter,
		diskPath:   diskPath,
		now:        time.Now,
	}
}

// StuckJobs returns jobs that have remained in processing beyond the
// staleness threshold.
func (m *Monitor) StuckJobs() ([]model.Job, error) {
	return m.dao.FindStale(m.now().Add(-m.staleAfter))
}

// ForceFailStale marks stuck jobs failed with an out-of-band store write.
// A pipeline execution that is still actually running will overwrite this on
// its next update; that race is an accepted limitation, not a guarantee.
func (m *Monitor) ForceFailStale() (int, error) {
	stuck, err := m.StuckJobs()
	if err != nil {
		return 0, err
	}

	failed := 0
	for _, job := range stuck {
		if err := m.dao.Fail(job.ID, "job exceeded processing deadline"); err != nil {
			log.Printf("force-fail of stale job %s failed: %v", job.ID, err)
			continue
		}
		failed++
	}
	return failed, nil
}

// Check runs all health probes and returns the aggregate verdict.
func (m *Monitor) Check() (*Report, error) {
	stuck, err := m.StuckJobs()
	if err != nil {
		return nil, err
	}

	report := &Report{
		Status:      "healthy",
		StuckJobs:   len(stuck),
		StuckJobIDs: lo.Map(stuck, func(j model.Job, _ int) string { return j.ID }),
	}

	if usage, err := disk.Usage(m.diskPath); err == nil {
		report.DiskPercent = usage.UsedPercent
	}
	if percents, err := cpu.Percent(100*time.Millisecond, false); err == nil && len(percents) > 0 {
		report.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		report.MemoryPercent = vm.UsedPercent
	}

	if report.DiskPercent > 85 || report.MemoryPercent > 90 || report.StuckJobs > 0 {
		report.Status = "degraded"
	}
	return report, nil
}
