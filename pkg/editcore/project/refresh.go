package project

import (
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/chainlaunch/editcore/pkg/logger"
)

// Refresher periodically re-enumerates a Context's tracked-file list on a
// cron schedule, so resolution reads a cached list instead of re-walking
// the repository on every call.
type Refresher struct {
	ctx Context
	log *logger.Logger

	mu      sync.RWMutex
	tracked []ProjectFile

	cron *cron.Cron
}

// NewRefresher builds a Refresher over ctx, performing one synchronous
// refresh immediately so TrackedFiles has data before the schedule fires.
func NewRefresher(ctx Context, log *logger.Logger) *Refresher {
	r := &Refresher{ctx: ctx, log: log, cron: cron.New()}
	r.refresh()
	return r
}

// Start schedules periodic refreshes using a standard 5-field cron
// expression (e.g. "*/5 * * * *" for every five minutes) and returns
// immediately; call Stop to halt it.
func (r *Refresher) Start(spec string) error {
	_, err := r.cron.AddFunc(spec, r.refresh)
	if err != nil {
		return err
	}
	r.cron.Start()
	return nil
}

// Stop halts the schedule; it is safe to call even if Start was never
// called.
func (r *Refresher) Stop() {
	r.cron.Stop()
}

func (r *Refresher) refresh() {
	files := r.ctx.TrackedFiles()
	r.mu.Lock()
	r.tracked = files
	r.mu.Unlock()
	if r.log != nil {
		r.log.Debugf("refreshed tracked file list: %d files", len(files))
	}
}

// TrackedFiles returns the most recently refreshed tracked-file list,
// implementing project.Context so a Refresher can stand in for its
// underlying Context wherever a cached, periodically-updated view is
// preferable to enumerating on every call.
func (r *Refresher) TrackedFiles() []ProjectFile {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ProjectFile, len(r.tracked))
	copy(out, r.tracked)
	return out
}

func (r *Refresher) EditableFiles() []ProjectFile           { return r.ctx.EditableFiles() }
func (r *Refresher) AllFiles() []ProjectFile                { return r.ctx.AllFiles() }
func (r *Refresher) ToFile(relativePath string) ProjectFile { return r.ctx.ToFile(relativePath) }

var _ Context = (*Refresher)(nil)
