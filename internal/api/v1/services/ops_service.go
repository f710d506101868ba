package services

import (
	"videomind/internal/app/health"
)

// OpsService exposes operational state for the health endpoint.
type OpsService interface {
	Health() (*health.Report, error)
}

type opsService struct {
	monitor *health.Monitor
}

func NewOpsService(monitor *health.Monitor) OpsService {
	return &opsService{monitor: monitor}
}

func (s *opsService) Health() (*health.Report, error) {
	return s.monitor.Check()
}
