package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	invoiceprint "github.com/lajutuju/go-invoiceprint"
	"github.com/lajutuju/go-invoiceprint/internal/config"
	"github.com/lajutuju/go-invoiceprint/internal/fileutil"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"generic", errors.New("boom"), ExitGeneral},
		{"canceled", context.Canceled, ExitGeneral},

		{"browser connect", invoiceprint.ErrBrowserConnect, ExitBrowser},
		{"page load", invoiceprint.ErrPageLoad, ExitBrowser},
		{"pdf generation wrapped", fmt.Errorf("%w: %w", invoiceprint.ErrPDFGeneration, errors.New("canvas")), ExitBrowser},
		{"container not ready", invoiceprint.ErrContainerNotReady, ExitBrowser},

		{"not exist", fmt.Errorf("reading: %w", os.ErrNotExist), ExitIO},
		{"permission", os.ErrPermission, ExitIO},
		{"file too large", fileutil.ErrFileTooLarge, ExitIO},
		{"write output", ErrWriteOutput, ExitIO},
		{"no input", ErrNoInput, ExitIO},

		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"config value", config.ErrInvalidValue, ExitUsage},
		{"unknown template", invoiceprint.ErrUnknownTemplate, ExitUsage},
		{"empty customer", fmt.Errorf("%w: %w", ErrReadOrder, invoiceprint.ErrEmptyCustomer), ExitUsage},
		{"export settings", invoiceprint.ErrInvalidExportSettings, ExitUsage},
		{"usage", ErrUsage, ExitUsage},
		{"workers", ErrInvalidWorkerCount, ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
