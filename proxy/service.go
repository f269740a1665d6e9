package proxy

import (
	"context"
	"fmt"
	"net/http"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	"encore.dev/rlog"
	"encore.dev/storage/sqldb"

	"encore.app/proxy/business/forward"
	"encore.app/proxy/config"
	"encore.app/proxy/store"
	"encore.app/proxy/store/records"
	"encore.app/proxy/workflow"
)

var proxyDB = sqldb.NewDatabase("proxy_cache", sqldb.DatabaseConfig{
	Migrations: "./migrations",
})

//encore:service
type Service struct {
	business  forward.Business
	keyHeader string

	temporal client.Client
	worker   worker.Worker
}

func initService() (*Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	rlog.Info("Loaded route table", "routes", len(cfg.Routes), "key_header", cfg.KeyHeader)

	pgxdb := sqldb.Driver(proxyDB)
	recordStore := store.WithCache(store.NewStore(records.New(pgxdb)), store.RecordCache)

	svc := &Service{keyHeader: cfg.KeyHeader}

	var deferrer forward.Deferrer
	if cfg.Temporal.Enabled() {
		scheduler, err := svc.startTemporal(cfg.Temporal, recordStore)
		if err != nil {
			return nil, err
		}
		deferrer = asyncDeferrer{next: scheduler}
	} else {
		rlog.Warn("Temporal not configured, failed cache writes will not be retried")
	}

	httpClient := &http.Client{Timeout: cfg.BackendTimeout}
	svc.business = forward.NewForwardBusiness(cfg.Routes, recordStore, httpClient, deferrer)

	return svc, nil
}

// startTemporal connects to temporal and runs the worker that retries
// deferred cache writes.
func (s *Service) startTemporal(cfg config.TemporalConfig, recordStore store.Store) (*workflow.Scheduler, error) {
	c, err := client.Dial(client.Options{
		HostPort:  cfg.HostPort,
		Namespace: cfg.Namespace,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to temporal at %s: %w", cfg.HostPort, err)
	}

	w := worker.New(c, cfg.TaskQueue, worker.Options{})
	w.RegisterWorkflow(workflow.PersistRecord)
	w.RegisterActivity(&workflow.Activities{Store: recordStore})
	if err := w.Start(); err != nil {
		c.Close()
		return nil, fmt.Errorf("start temporal worker: %w", err)
	}

	rlog.Info("Started temporal worker", "task_queue", cfg.TaskQueue, "namespace", cfg.Namespace)
	s.temporal = c
	s.worker = w
	return workflow.NewScheduler(c, cfg.TaskQueue), nil
}

func (s *Service) Shutdown(force context.Context) {
	if s.worker != nil {
		s.worker.Stop()
	}
	if s.temporal != nil {
		s.temporal.Close()
	}
}
