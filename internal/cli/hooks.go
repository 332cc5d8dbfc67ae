package cli

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/schneegans/sponsorwall/pkg/observability"
)

// logHooks reports pipeline and fetch events as debug logs and, when a
// spinner is running, as its progress message.
type logHooks struct {
	logger  *log.Logger
	spinner *Spinner
	fetched atomic.Int64
}

func installHooks(logger *log.Logger, spinner *Spinner) *logHooks {
	h := &logHooks{logger: logger, spinner: spinner}
	observability.SetPipelineHooks(h)
	observability.SetFetchHooks(h)
	return h
}

func (h *logHooks) OnSourceLoaded(_ context.Context, platform string, sponsors, transactions int, err error) {
	if err != nil {
		h.logger.Debug("export failed", "platform", platform, "err", err)
		return
	}
	h.logger.Debug("export", "platform", platform, "sponsors", sponsors, "transactions", transactions)
}

func (h *logHooks) OnAvatarRendered(_ context.Context, name string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("avatar failed", "sponsor", name, "size", size, "err", err)
		return
	}
	h.logger.Debug("avatar", "sponsor", name, "size", size, "took", d.Round(time.Microsecond))
}

func (h *logHooks) OnDocumentWritten(_ context.Context, path string, sponsors int, err error) {
	if err != nil {
		return
	}
	h.setStatus(fmt.Sprintf("Wrote %s", path))
}

func (h *logHooks) OnFetch(_ context.Context, ref string, size int, cached bool, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("fetch failed", "ref", ref, "err", err)
		return
	}
	n := h.fetched.Add(1)
	h.logger.Debug("fetched", "ref", ref, "bytes", size, "cached", cached, "took", d.Round(time.Millisecond))
	h.setStatus(fmt.Sprintf("Fetching avatars (%d)...", n))
}

func (h *logHooks) OnRetry(_ context.Context, ref string, attempt int, err error) {
	h.logger.Warn("retrying avatar download", "ref", ref, "attempt", attempt, "err", err)
}

func (h *logHooks) setStatus(msg string) {
	if h.spinner != nil {
		h.spinner.SetMessage(msg)
	}
}
