package handlers

import (
	"errors"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/redis/go-redis/v9"

	"sppt/internal/config"
	"sppt/internal/domain"
	"sppt/internal/infra/cache"
	"sppt/internal/infra/logging"
	"sppt/internal/infra/metrics"
	"sppt/internal/render"
	"sppt/internal/scratch"
)

const mobileNote = "HTML file that can be saved as image using browser's print to image feature"

// SPPTService bundles configuration and dependencies for notice rendering
// and download.
type SPPTService struct {
	Config *config.Config

	pdf     render.Renderer
	html    render.Renderer
	scratch *scratch.Gateway
	cache   *cache.Store
	metrics *metrics.Metrics
	now     func() time.Time
}

// Option configures an SPPTService.
type Option func(*SPPTService)

// WithClock replaces time.Now for defaults and the printed-at footer.
func WithClock(now func() time.Time) Option {
	return func(s *SPPTService) { s.now = now }
}

// NewSPPTService wires renderers, the scratch gateway and, when enabled, the
// Redis render cache. rdb and m may be nil.
func NewSPPTService(cfg config.Config, rdb *redis.Client, m *metrics.Metrics, opts ...Option) *SPPTService {
	svc := &SPPTService{
		Config:  &cfg,
		metrics: m,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}

	renderOpts := []render.Option{
		render.WithClock(svc.now),
		render.WithLocation(cfg.Location()),
		render.WithCompression(cfg.PDF.Compress),
		render.WithValidation(cfg.PDF.ValidateOutput),
	}
	svc.pdf = render.NewPDFRenderer(renderOpts...)
	svc.html = render.NewHTMLRenderer(renderOpts...)

	scratchOpts := []scratch.Option{scratch.WithCleanupDelay(cfg.Scratch.CleanupDelay)}
	if m != nil {
		scratchOpts = append(scratchOpts, scratch.WithObserver(m))
	}
	svc.scratch = scratch.New(cfg.Scratch.Dir, scratchOpts...)

	if cfg.Cache.RenderCacheEnabled {
		svc.cache = cache.New(rdb, cfg.Cache.RenderCacheTTL)
	}
	return svc
}

// Scratch exposes the gateway, mainly for tests.
func (svc *SPPTService) Scratch() *scratch.Gateway { return svc.scratch }

// modelFromQuery builds the notice from query parameters. It never fails.
func (svc *SPPTService) modelFromQuery(c *fiber.Ctx) domain.Model {
	params := make(map[string]string, len(domain.Params))
	for _, name := range domain.Params {
		params[name] = c.Query(name)
	}
	now := svc.now().In(svc.Config.Location())
	return domain.BuildModel(params, now, domain.WithDefaultPaymentStatus(svc.Config.Document.DefaultPaymentStatus))
}

// renderCached serves a cached copy when possible, otherwise renders and caches.
func (svc *SPPTService) renderCached(c *fiber.Ctx, format string, r render.Renderer, m domain.Model) (domain.Document, error) {
	key := cache.Key(format, m)
	if data, ok := svc.cache.Get(c.Context(), key); ok {
		svc.metrics.CacheResult("hit")
		mime := domain.MimePDF
		if format == "html" {
			mime = domain.MimeHTML
		}
		return domain.Document{Bytes: data, MimeType: mime, Filename: m.FileStem() + "." + format}, nil
	}
	if svc.cache != nil {
		svc.metrics.CacheResult("miss")
	}

	start := time.Now()
	doc, err := r.Render(m)
	svc.metrics.ObserveRender(format, time.Since(start), err)
	if err != nil {
		return domain.Document{}, err
	}

	svc.cache.Set(c.Context(), key, doc.Bytes)
	return doc, nil
}

// HandlePDF renders the notice as PDF and returns it directly.
func (svc *SPPTService) HandlePDF(c *fiber.Ctx) error {
	m := svc.modelFromQuery(c)
	doc, err := svc.renderCached(c, "pdf", svc.pdf, m)
	if err != nil {
		logging.Error("PDF generation failed", "error", err, "request_id", requestID(c))
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to generate PDF")
	}

	logging.Info("PDF generated", "filename", doc.Filename, "request_id", requestID(c))
	c.Set(fiber.HeaderContentType, doc.MimeType)
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+doc.Filename)
	return c.Send(doc.Bytes)
}

// HandleImage renders the notice as HTML. With mobile=true the page is
// persisted to the scratch area and a one-shot download URL is returned,
// otherwise the page is returned directly.
func (svc *SPPTService) HandleImage(c *fiber.Ctx) error {
	m := svc.modelFromQuery(c)
	doc, err := svc.renderCached(c, "html", svc.html, m)
	if err != nil {
		logging.Error("HTML generation failed", "error", err, "request_id", requestID(c))
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to generate image")
	}

	if !c.QueryBool("mobile") {
		c.Set(fiber.HeaderContentType, doc.MimeType)
		c.Set(fiber.HeaderContentDisposition, "attachment; filename="+doc.Filename)
		return c.Send(doc.Bytes)
	}

	token, err := svc.scratch.Persist(doc, scratch.HintFor(m))
	if err != nil {
		logging.Error("Persisting HTML failed", "error", err, "request_id", requestID(c))
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to generate image")
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"downloadUrl": svc.Config.Scratch.DownloadPath + "/" + token,
		"filename":    token,
		"note":        mobileNote,
	})
}

// HandleDownload streams a persisted file once and leaves its deletion to
// the scratch gateway's timer.
func (svc *SPPTService) HandleDownload(c *fiber.Ctx) error {
	// Params aliases fasthttp's request buffer; the token outlives the request.
	token, err := url.PathUnescape(utils.CopyString(c.Params("token")))
	if err != nil {
		svc.metrics.Download("invalid")
		return fiber.NewError(fiber.StatusBadRequest, "Invalid filename")
	}

	doc, err := svc.scratch.Serve(token)
	switch {
	case errors.Is(err, domain.ErrInvalidToken):
		svc.metrics.Download("invalid")
		logging.Warn("Rejected download token", "token", token, "request_id", requestID(c))
		return fiber.NewError(fiber.StatusBadRequest, "Invalid filename")
	case errors.Is(err, domain.ErrNotFound):
		svc.metrics.Download("not_found")
		return fiber.NewError(fiber.StatusNotFound, "File not found")
	case err != nil:
		svc.metrics.Download("error")
		logging.Error("Download failed", "token", token, "error", err, "request_id", requestID(c))
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to download file")
	}

	svc.metrics.Download("ok")
	c.Set(fiber.HeaderContentType, doc.MimeType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+doc.Filename+`"`)
	c.Set(fiber.HeaderCacheControl, "no-cache, no-store, must-revalidate")
	c.Set(fiber.HeaderPragma, "no-cache")
	c.Set(fiber.HeaderExpires, "0")
	return c.Send(doc.Bytes)
}

func requestID(c *fiber.Ctx) string {
	if id := c.Get(fiber.HeaderXRequestID); id != "" {
		return id
	}
	return c.GetRespHeader(fiber.HeaderXRequestID)
}
