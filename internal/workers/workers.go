package workers

import "github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/logger"

type Workers struct {
	workers []Worker
	logger  *logger.Logger
}

// NewWorkers aggregates the given workers under one lifecycle.
func NewWorkers(log *logger.Logger, ws ...Worker) *Workers {
	return &Workers{workers: ws, logger: log}
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}
