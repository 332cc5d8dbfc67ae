// Package avatar fetches sponsor pictures and turns them into tier-badged,
// circular PNG images ready to be inlined into an SVG.
//
// # Rendering
//
// For a target size s the picture is scaled to the inner diameter
// d = floor(s·64/135), clipped to a circle, centered on a transparent s×s
// canvas and overlaid with the badge of the sponsor's tier (the badge file
// "<tier id>.png" scaled to s×s). The result is returned as base64-encoded
// PNG.
//
// # Fetching
//
// [SourceFetcher] resolves references: http(s) URLs are downloaded with a
// browser User-Agent, retried on transient failures and cached on disk; any
// other reference is read as a local file. [MemoFetcher] guarantees one fetch
// per reference per run, and [Prefetch] warms it in parallel.
//
//	f := avatar.NewMemoFetcher(avatar.NewSourceFetcher(avatar.FetchOptions{Cache: c}))
//	if err := avatar.Prefetch(ctx, f, sponsors, 4, logger); err != nil {
//	    return err
//	}
//	r := avatar.NewRenderer(f, os.DirFS("img"), tier.Default)
//	b64, err := r.Render(ctx, sponsors[0], 130)
package avatar

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/png"
	"io/fs"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	// Formats accepted for sponsor pictures besides the ones imaging registers.
	_ "golang.org/x/image/webp"

	"github.com/schneegans/sponsorwall/pkg/errors"
	"github.com/schneegans/sponsorwall/pkg/observability"
	"github.com/schneegans/sponsorwall/pkg/sponsor"
	"github.com/schneegans/sponsorwall/pkg/tier"
)

// InnerDiameter returns the diameter of the circular picture inside a badge
// of the given size.
func InnerDiameter(size int) int {
	return size * 64 / 135
}

// Option configures a [Renderer].
type Option func(*Renderer)

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithFilter sets the resampling filter. Defaults to imaging.Lanczos.
func WithFilter(f imaging.ResampleFilter) Option {
	return func(r *Renderer) { r.filter = f }
}

type renderKey struct {
	ref  string
	size int
	tier string
}

type badgeKey struct {
	tier string
	size int
}

// Renderer composites avatars. It is safe for concurrent use; decoded badges
// and finished renders are memoized.
type Renderer struct {
	fetcher Fetcher
	badges  fs.FS
	tiers   tier.Table
	logger  *log.Logger
	filter  imaging.ResampleFilter

	mu      sync.Mutex
	decoded map[string]image.Image
	scaled  map[badgeKey]image.Image
	renders map[renderKey]string
}

// NewRenderer creates a renderer reading "<tier id>.png" badges from badges.
func NewRenderer(f Fetcher, badges fs.FS, tiers tier.Table, opts ...Option) *Renderer {
	r := &Renderer{
		fetcher: f,
		badges:  badges,
		tiers:   tiers,
		logger:  log.Default(),
		filter:  imaging.Lanczos,
		decoded: map[string]image.Image{},
		scaled:  map[badgeKey]image.Image{},
		renders: map[renderKey]string{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render returns the base64 PNG of rec's avatar at size×size pixels.
func (r *Renderer) Render(ctx context.Context, rec sponsor.Record, size int) (string, error) {
	start := time.Now()
	out, err := r.render(ctx, rec, size)
	observability.Pipeline().OnAvatarRendered(ctx, rec.Name, size, time.Since(start), err)
	return out, err
}

func (r *Renderer) render(ctx context.Context, rec sponsor.Record, size int) (string, error) {
	if size <= 0 {
		return "", errors.New(errors.ErrCodeInvalidInput, "avatar size must be positive, got %d", size)
	}
	if rec.Avatar == "" {
		return "", errors.New(errors.ErrCodeMissingAvatar, "sponsor %q has no avatar", rec.Name)
	}
	t, err := r.tiers.MustLookup(rec.Total)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeMissingTier, err, "sponsor %q", rec.Name)
	}

	key := renderKey{ref: rec.Avatar, size: size, tier: t.ID}
	r.mu.Lock()
	cached, ok := r.renders[key]
	r.mu.Unlock()
	if ok {
		return cached, nil
	}

	data, err := r.fetcher.Fetch(ctx, rec.Avatar)
	if err != nil {
		return "", fetchError(rec, err)
	}
	src, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeAvatarDecode, err, "avatar of sponsor %q (%s)", rec.Name, rec.Avatar)
	}
	badge, err := r.badge(t.ID, size)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, r.composite(src, badge, size)); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode avatar of sponsor %q", rec.Name)
	}
	out := base64.StdEncoding.EncodeToString(buf.Bytes())

	r.logger.Debug("rendered avatar", "sponsor", rec.Name, "tier", t.ID, "size", size)

	r.mu.Lock()
	r.renders[key] = out
	r.mu.Unlock()
	return out, nil
}

// composite clips the picture to a circle of the inner diameter, centers it
// and draws the badge on top.
func (r *Renderer) composite(src, badge image.Image, size int) image.Image {
	d := InnerDiameter(size)
	pad := (size - d) / 2
	face := imaging.Resize(src, d, d, r.filter)

	dc := gg.NewContext(size, size)
	dc.DrawCircle(float64(pad)+float64(d)/2, float64(pad)+float64(d)/2, float64(d)/2)
	dc.Clip()
	dc.DrawImage(face, pad, pad)
	dc.ResetClip()
	dc.DrawImage(badge, 0, 0)
	return dc.Image()
}

// badge returns the tier badge scaled to size×size.
func (r *Renderer) badge(id string, size int) (image.Image, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if img, ok := r.scaled[badgeKey{id, size}]; ok {
		return img, nil
	}
	src, ok := r.decoded[id]
	if !ok {
		name := id + ".png"
		f, err := r.badges.Open(name)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeMissingBadge, err, "badge %s for tier %s", name, id)
		}
		src, err = imaging.Decode(f)
		f.Close()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeMissingBadge, err, "decode badge %s", name)
		}
		r.decoded[id] = src
	}
	img := imaging.Resize(src, size, size, r.filter)
	r.scaled[badgeKey{id, size}] = img
	return img, nil
}
