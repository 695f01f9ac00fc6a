package workers

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-link-sync/internal/config"
	"github.com/MKhiriev/go-link-sync/internal/logger"
	"github.com/MKhiriev/go-link-sync/internal/service"
)

type Workers struct {
	workers []Worker
}

// NewDeviceWorkers builds the device background loops: outbox delivery,
// inbox polling and, if enabled, a one-shot fetch of every type at startup.
func NewDeviceWorkers(services *service.DeviceServices, workersCfg config.Workers, fetchCfg config.Fetch, logger *logger.Logger) *Workers {
	w := &Workers{}

	if fetchCfg.OnStartup {
		w.workers = append(w.workers, newOnceWorker("startup-fetch", func(ctx context.Context) error {
			_, err := services.FetchLatestService.RequestAll(ctx)
			return err
		}, logger))
	}

	w.workers = append(w.workers,
		newIntervalWorker("delivery", workersCfg.DeliveryInterval, func(ctx context.Context) error {
			_, err := services.DeliveryService.DeliverPending(ctx)
			return err
		}, logger),
		newIntervalWorker("inbox", workersCfg.InboxInterval, func(ctx context.Context) error {
			_, err := services.InboxService.PullAndDispatch(ctx)
			return err
		}, logger),
	)

	return w
}

// Run starts every worker in its own goroutine and waits for all of them to
// return.
func (w *Workers) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, worker := range w.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker.Run(ctx)
		}()
	}
	wg.Wait()
}
