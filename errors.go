package invoiceprint

import "errors"

// Sentinel errors for library operations.
var (
	ErrNilOrder        = errors.New("order cannot be nil")
	ErrEmptyOrderID    = errors.New("order id cannot be empty")
	ErrEmptyCustomer   = errors.New("customer name cannot be empty")
	ErrInvalidQuantity = errors.New("invalid item quantity")
	ErrUnknownTemplate = errors.New("unknown invoice template")
	ErrTemplateRender  = errors.New("invoice template rendering failed")
	ErrQRCode          = errors.New("QR code rendering failed")

	// Browser errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Export errors. Every failure of the rasterized export is reported
	// to users as ErrPDFGeneration.
	ErrPDFGeneration     = errors.New("PDF generation failed")
	ErrRasterize         = errors.New("invoice rasterization failed")
	ErrContainerNotReady = errors.New("invoice container not ready")
	ErrExportInProgress  = errors.New("PDF export already in progress")

	// Configuration errors.
	ErrInvalidExportSettings = errors.New("invalid export settings")
	ErrInvalidAssetPath      = errors.New("invalid asset path")
	ErrInvalidTimeout        = errors.New("invalid timeout")

	// Pool errors.
	ErrPoolClosed = errors.New("renderer pool is closed")
)
