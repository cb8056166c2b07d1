package archive

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/repmgr-go/repmgrd/pkg/dbsession"
	"github.com/repmgr-go/repmgrd/pkg/logging"
)

// Archiver periodically ships repl_monitor history to S3. It never
// blocks or fails the monitoring tick: every error is logged and
// retried on the next interval (SPEC_FULL.md §4.12).
type Archiver struct {
	session     *dbsession.Session
	clusterName string
	interval    time.Duration
	uploader    *Uploader
	log         logging.Logger

	mu        sync.Mutex
	watermark time.Time
	running   bool
	stopCh    chan struct{}
	wg        sync.WaitGroup
}

// NewArchiver builds an Archiver, or returns (nil, nil) when bucket is
// empty -- archiving is disabled per SPEC_FULL.md §4.12 and the
// orchestrator should simply not register this component.
func NewArchiver(ctx context.Context, session *dbsession.Session, clusterName, bucket, prefix string, interval time.Duration, log logging.Logger) (*Archiver, error) {
	if bucket == "" {
		return nil, nil
	}

	uploader, err := NewUploader(ctx, bucket, prefix)
	if err != nil {
		return nil, err
	}

	return &Archiver{
		session:     session,
		clusterName: clusterName,
		interval:    interval,
		uploader:    uploader,
		log:         log,
		watermark:   time.Now(),
	}, nil
}

// Name satisfies orchestrator.Component.
func (a *Archiver) Name() string { return "monitor-archiver" }

// Start begins the archive loop.
func (a *Archiver) Start(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.running {
		return nil
	}
	a.stopCh = make(chan struct{})
	a.running = true
	a.wg.Add(1)
	go a.loop(ctx)
	return nil
}

// Stop ends the archive loop. Any window currently uploading is
// allowed to finish.
func (a *Archiver) Stop(ctx context.Context) error {
	a.mu.Lock()
	if !a.running {
		a.mu.Unlock()
		return nil
	}
	close(a.stopCh)
	a.running = false
	a.mu.Unlock()

	a.wg.Wait()
	return nil
}

func (a *Archiver) loop(ctx context.Context) {
	defer a.wg.Done()

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-a.stopCh:
			return
		case <-ticker.C:
			a.archiveOnce(ctx)
		}
	}
}

func (a *Archiver) archiveOnce(ctx context.Context) {
	a.mu.Lock()
	since := a.watermark
	a.mu.Unlock()
	until := time.Now()

	window, err := ReadWindow(ctx, a.session, a.clusterName, since, until)
	if err != nil {
		a.log.Warn("archive: failed to read window, will retry next interval", logging.Error(err))
		return
	}
	if len(window.Samples) == 0 {
		a.advanceWatermark(until)
		return
	}

	payload, err := EncodeWindow(window)
	if err != nil {
		a.log.Warn("archive: failed to encode window", logging.Error(err))
		return
	}

	key := windowKey(a.clusterName, since, until)
	if err := a.uploader.Upload(ctx, key, payload); err != nil {
		a.log.Warn("archive: failed to upload window, will retry next interval", logging.Error(err))
		return
	}

	a.log.Info("archive: uploaded window",
		logging.String("key", key), logging.Int("samples", len(window.Samples)))
	a.advanceWatermark(until)
}

func (a *Archiver) advanceWatermark(t time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.watermark = t
}

func windowKey(clusterName string, since, until time.Time) string {
	return fmt.Sprintf("%s/%s_%s.ndjson.snappy",
		clusterName, since.UTC().Format(time.RFC3339), until.UTC().Format(time.RFC3339))
}
