package printing

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	appbilling "github.com/invoiceme/backend/internal/application/billing"
	"github.com/invoiceme/backend/internal/domain/billing"
	"github.com/invoiceme/backend/internal/domain/partner"
	"github.com/invoiceme/backend/internal/domain/shared"
	"go.uber.org/zap"
)

const (
	defaultRenderTimeout = 30 * time.Second

	// A4 paper in inches, Chrome's print unit
	a4WidthInches  = 210.0 / 25.4
	a4HeightInches = 297.0 / 25.4
	marginInches   = 15.0 / 25.4
)

// ChromedpConfig configures the Chrome-backed PDF renderer
type ChromedpConfig struct {
	// RenderTimeout bounds a single rendering operation
	RenderTimeout time.Duration
	// RemoteURL points at a remote Chrome instance. When empty a local
	// browser is launched.
	RemoteURL string
	// ExecPath overrides the Chrome binary location
	ExecPath string
	// NoSandbox runs Chrome without sandbox, required when running as
	// root in containers
	NoSandbox bool
	Logger    *zap.Logger
}

// ChromedpRenderer renders invoices to PDF through the Chrome DevTools
// Protocol.
type ChromedpRenderer struct {
	engine      *TemplateEngine
	config      ChromedpConfig
	logger      *zap.Logger
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// NewChromedpRenderer creates the renderer and its browser allocator
func NewChromedpRenderer(config ChromedpConfig) (*ChromedpRenderer, error) {
	engine, err := NewTemplateEngine()
	if err != nil {
		return nil, err
	}

	if config.RenderTimeout == 0 {
		config.RenderTimeout = defaultRenderTimeout
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &ChromedpRenderer{
		engine: engine,
		config: config,
		logger: logger,
	}
	r.initAllocator()
	return r, nil
}

func (r *ChromedpRenderer) initAllocator() {
	if r.config.RemoteURL != "" {
		r.allocCtx, r.allocCancel = chromedp.NewRemoteAllocator(context.Background(), r.config.RemoteURL)
		return
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	if r.config.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(r.config.ExecPath))
	}
	if r.config.NoSandbox {
		opts = append(opts, chromedp.Flag("no-sandbox", true))
	}

	r.allocCtx, r.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
}

// RenderInvoicePDF renders the invoice document as an A4 PDF
func (r *ChromedpRenderer) RenderInvoicePDF(ctx context.Context, inv *billing.Invoice, customer *partner.Customer) ([]byte, error) {
	html, err := r.engine.RenderInvoiceHTML(inv, customer)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.config.RenderTimeout)
	defer cancel()

	browserCtx, browserCancel := chromedp.NewContext(r.allocCtx,
		chromedp.WithLogf(func(format string, args ...interface{}) {
			r.logger.Debug(fmt.Sprintf(format, args...))
		}),
	)
	defer browserCancel()

	start := time.Now()
	var pdfData []byte

	err = chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4WidthInches).
				WithPaperHeight(a4HeightInches).
				WithMarginTop(marginInches).
				WithMarginRight(marginInches).
				WithMarginBottom(marginInches).
				WithMarginLeft(marginInches).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfData = data
			return nil
		}),
	)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, shared.NewDomainError(shared.CodeDeliveryFailed,
				fmt.Sprintf("PDF rendering timed out after %v", r.config.RenderTimeout))
		}
		r.logger.Error("chromedp rendering failed",
			zap.String("invoice_number", inv.Number()),
			zap.Error(err))
		return nil, shared.NewDomainError(shared.CodeDeliveryFailed,
			fmt.Sprintf("PDF rendering failed: %v", err))
	}
	if len(pdfData) == 0 {
		return nil, shared.NewDomainError(shared.CodeDeliveryFailed, "generated PDF is empty")
	}

	r.logger.Info("Invoice PDF rendered",
		zap.String("invoice_number", inv.Number()),
		zap.Int("bytes", len(pdfData)),
		zap.Duration("duration", time.Since(start)))

	return pdfData, nil
}

// Close releases the browser allocator
func (r *ChromedpRenderer) Close() error {
	if r.allocCancel != nil {
		r.allocCancel()
	}
	return nil
}

var _ appbilling.InvoiceRenderer = (*ChromedpRenderer)(nil)
