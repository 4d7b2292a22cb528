package invoiceprint

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/lajutuju/go-invoiceprint/internal/process"
)

// invoiceSelector locates the invoice container on rendered pages.
const invoiceSelector = "#invoice"

// watermarkAttr marks watermark nodes injected during export.
const watermarkAttr = "data-invoice-watermark"

// pdfRenderer abstracts browser work to enable testing without a browser.
type pdfRenderer interface {
	// PrintFile loads a local HTML file and returns Chrome's print output.
	PrintFile(ctx context.Context, filePath string) ([]byte, error)
	// OpenFile loads a local HTML file in a fresh tab sized for capture.
	OpenFile(ctx context.Context, filePath string, vp viewport) (captureSurface, error)
	Close() error
}

// captureSurface is the loaded invoice as seen by the export routine.
type captureSurface interface {
	// Ready reports whether the invoice container is present.
	Ready() (bool, error)
	// Style returns the container's style attribute; nil means absent.
	Style() (*string, error)
	// SetStyle sets the container's style attribute; nil removes it.
	SetStyle(style *string) error
	AddWatermark(src string, opacity float64, widthPx int) error
	RemoveWatermark() error
	// Screenshot captures the container as PNG.
	Screenshot() ([]byte, error)
	Close() error
}

var (
	_ pdfRenderer    = (*rodRenderer)(nil)
	_ captureSurface = (*rodSurface)(nil)
)

// viewport is the emulated browser window used for capture.
type viewport struct {
	Width  int
	Height int
	Scale  float64
}

// A4 page in inches, with the margins used by Print.
const (
	paperWidthInches  = 8.27
	paperHeightInches = 11.69
	marginInches      = 0.4
)

// rodRenderer implements pdfRenderer using go-rod.
// Rod downloads Chromium on first run if no browser is found.
type rodRenderer struct {
	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
	timeout  time.Duration
}

func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout}
}

// ensureBrowser lazily launches and connects to the browser.
func (r *rodRenderer) ensureBrowser() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		return r.browser, nil
	}

	l := launcher.New()

	// Pre-installed browser (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containers
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" || os.Getenv("ROD_NO_SANDBOX") == "1" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.launcher = l
	r.browser = browser
	return browser, nil
}

// Close releases browser resources and kills leftover Chrome children.
func (r *rodRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	if r.launcher != nil {
		// launcher.Kill below covers whatever the group kill misses.
		_ = process.KillProcessGroup(r.launcher.PID())
		r.launcher.Kill()
		r.launcher = nil
	}
	return err
}

// loadTimeout returns the page load budget, bounded by the context deadline.
func (r *rodRenderer) loadTimeout(ctx context.Context) (time.Duration, error) {
	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return 0, context.DeadlineExceeded
		}
	}
	return timeout, nil
}

// openPage creates a tab, applies the viewport and loads filePath.
func (r *rodRenderer) openPage(ctx context.Context, filePath string, vp *viewport) (*rod.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	browser, err := r.ensureBrowser()
	if err != nil {
		return nil, err
	}

	timeout, err := r.loadTimeout(ctx)
	if err != nil {
		return nil, err
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}

	if vp != nil {
		err = page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
			Width:             vp.Width,
			Height:            vp.Height,
			DeviceScaleFactor: vp.Scale,
		})
		if err != nil {
			_ = page.Close()
			return nil, fmt.Errorf("%w: setting viewport: %v", ErrPageCreate, err)
		}
	}

	if err := page.Timeout(timeout).Navigate("file://" + filePath); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		_ = page.Close()
		return nil, err
	}
	return page.Context(ctx), nil
}

// PrintFile renders filePath through Chrome's print pipeline on A4 paper.
// Print media rules apply, so toolbar elements marked no-print are dropped.
func (r *rodRenderer) PrintFile(ctx context.Context, filePath string) ([]byte, error) {
	page, err := r.openPage(ctx, filePath, nil)
	if err != nil {
		return nil, err
	}
	defer page.Close()

	reader, err := page.PDF(buildPrintOptions())
	if err != nil {
		return nil, fmt.Errorf("printing page: %v", err)
	}

	pdf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading print stream: %v", err)
	}
	return pdf, nil
}

// OpenFile loads filePath in a fresh tab for capture. The caller closes the
// returned surface.
func (r *rodRenderer) OpenFile(ctx context.Context, filePath string, vp viewport) (captureSurface, error) {
	page, err := r.openPage(ctx, filePath, &vp)
	if err != nil {
		return nil, err
	}
	return &rodSurface{page: page}, nil
}

func buildPrintOptions() *proto.PagePrintToPDF {
	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(paperWidthInches),
		PaperHeight:     floatPtr(paperHeightInches),
		MarginTop:       floatPtr(marginInches),
		MarginBottom:    floatPtr(marginInches),
		MarginLeft:      floatPtr(marginInches),
		MarginRight:     floatPtr(marginInches),
		PrintBackground: true,
	}
}

func floatPtr(v float64) *float64 {
	return &v
}

// rodSurface drives the invoice container of a loaded page.
type rodSurface struct {
	page *rod.Page
	el   *rod.Element
}

func (s *rodSurface) Ready() (bool, error) {
	has, el, err := s.page.Has(invoiceSelector)
	if err != nil {
		return false, err
	}
	if has {
		s.el = el
	}
	return has, nil
}

func (s *rodSurface) Style() (*string, error) {
	return s.el.Attribute("style")
}

func (s *rodSurface) SetStyle(style *string) error {
	if style == nil {
		_, err := s.el.Eval(`function() { this.removeAttribute("style") }`)
		return err
	}
	_, err := s.el.Eval(`function(v) { this.setAttribute("style", v) }`, *style)
	return err
}

func (s *rodSurface) AddWatermark(src string, opacity float64, widthPx int) error {
	_, err := s.el.Eval(`function(attr, src, opacity, width) {
		const img = document.createElement("img");
		img.setAttribute(attr, "");
		img.src = src;
		img.alt = "";
		img.style.cssText = "position:absolute;top:50%;left:50%;transform:translate(-50%,-50%);" +
			"opacity:" + opacity + ";width:" + width + "px;z-index:0;pointer-events:none;";
		this.appendChild(img);
	}`, watermarkAttr, src, opacity, widthPx)
	return err
}

func (s *rodSurface) RemoveWatermark() error {
	_, err := s.el.Eval(`function(attr) {
		this.querySelectorAll("[" + attr + "]").forEach(function(n) { n.remove(); });
	}`, watermarkAttr)
	return err
}

func (s *rodSurface) Screenshot() ([]byte, error) {
	return s.el.Screenshot(proto.PageCaptureScreenshotFormatPng, 0)
}

func (s *rodSurface) Close() error {
	return s.page.Close()
}
