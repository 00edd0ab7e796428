package pdf

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/khrees2412/cvblue/internal/render"
	"github.com/khrees2412/cvblue/internal/transfer"
)

// A4 in inches, as PrintToPDF expects
const (
	paperWidth  = 8.27
	paperHeight = 11.69
)

// DefaultTimeout bounds a single generation when none is configured
const DefaultTimeout = 60 * time.Second

// Generator produces PDF bytes for a rendered document
type Generator interface {
	Generate(ctx context.Context, doc *render.Document) ([]byte, error)
}

// ChromeGenerator prints documents through headless Chrome
type ChromeGenerator struct {
	Timeout  time.Duration
	ExecPath string
}

// NewChromeGenerator returns a generator with the given settings; a zero
// timeout means DefaultTimeout.
func NewChromeGenerator(execPath string, timeout time.Duration) *ChromeGenerator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ChromeGenerator{Timeout: timeout, ExecPath: execPath}
}

// Generate loads the document's HTML into a blank tab and prints it
func (g *ChromeGenerator) Generate(ctx context.Context, doc *render.Document) ([]byte, error) {
	html, err := HTML(doc)
	if err != nil {
		return nil, err
	}

	timeout := g.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	browserCtx, browserCancel := createBrowserContext(ctx, g.ExecPath)
	defer browserCancel()

	var buf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidth).
				WithPaperHeight(paperHeight).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				WithPreferCSSPageSize(true).
				Do(ctx)
			if err != nil {
				return err
			}
			buf = data
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to print %q: %w", doc.Title, err)
	}
	return buf, nil
}

// FileName is the download name for a document: <slug>-<layout>.pdf
func FileName(doc *render.Document) string {
	return fmt.Sprintf("%s-%s.pdf", transfer.Slug(doc.Title), doc.Layout)
}
