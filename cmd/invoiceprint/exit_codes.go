package main

import (
	"errors"
	"os"

	invoiceprint "github.com/lajutuju/go-invoiceprint"
	"github.com/lajutuju/go-invoiceprint/internal/config"
	"github.com/lajutuju/go-invoiceprint/internal/fileutil"
)

// Exit codes for the invoiceprint CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // All invoices written
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, order or template
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, invoiceprint.ErrBrowserConnect) ||
		errors.Is(err, invoiceprint.ErrPageCreate) ||
		errors.Is(err, invoiceprint.ErrPageLoad) ||
		errors.Is(err, invoiceprint.ErrPDFGeneration) ||
		errors.Is(err, invoiceprint.ErrContainerNotReady) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, fileutil.ErrFileTooLarge) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, invoiceprint.ErrEmptyOrderID) ||
		errors.Is(err, invoiceprint.ErrEmptyCustomer) ||
		errors.Is(err, invoiceprint.ErrInvalidQuantity) ||
		errors.Is(err, invoiceprint.ErrUnknownTemplate) ||
		errors.Is(err, invoiceprint.ErrInvalidExportSettings) ||
		errors.Is(err, invoiceprint.ErrInvalidAssetPath) ||
		errors.Is(err, invoiceprint.ErrInvalidTimeout) ||
		errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidWorkerCount) {
		return ExitUsage
	}

	return ExitGeneral
}
