package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	invoiceprint "github.com/lajutuju/go-invoiceprint"
	"github.com/lajutuju/go-invoiceprint/internal/config"
	"github.com/lajutuju/go-invoiceprint/internal/fileutil"
	"github.com/lajutuju/go-invoiceprint/internal/hints"
)

// outputMode selects what is produced for each order.
type outputMode int

const (
	modeExport outputMode = iota // rasterized single-page PDF
	modePrint                    // browser print PDF
	modeHTML                     // standalone invoice page
)

func (m outputMode) String() string {
	switch m {
	case modePrint:
		return "print"
	case modeHTML:
		return "html"
	}
	return "export"
}

func (m outputMode) extension() string {
	if m == modeHTML {
		return ".html"
	}
	return ".pdf"
}

// InvoiceResult holds the outcome of a single order.
type InvoiceResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Duration   time.Duration
}

// invoiceJob carries what is shared by every order of a run.
type invoiceJob struct {
	mode     outputMode
	template invoiceprint.Template
	output   string // directory, or file when a single order is given
	toFile   bool
}

// runInvoices implements export, print and html.
func runInvoices(ctx context.Context, mode outputMode, args []string, env *Environment) error {
	flags, inputs, err := parseExportFlags(mode.String(), args, env.Stderr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	warnUnknownEnvVars(env.Stderr)
	envCfg := loadEnvConfig()

	cfg, err := loadConfig(flags.common, envCfg)
	if err != nil {
		return err
	}
	if err := mergeRendererFlags(&flags.renderer, cfg); err != nil {
		return err
	}
	mergeExportFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	if len(inputs) == 0 {
		return fmt.Errorf("%w%s", ErrNoInput, hints.ForOrderFile())
	}

	t, err := resolveTemplate(cfg)
	if err != nil {
		return err
	}

	log := newLogger(cfg, flags.common, env.Stderr)
	opts, err := converterOptions(cfg, log)
	if err != nil {
		return err
	}

	job := resolveJob(mode, t, flags.output, cfg, len(inputs))

	size := invoiceprint.ResolvePoolSize(cfg.Workers)
	if size > len(inputs) {
		size = len(inputs)
	}
	pool := env.NewPool(size, opts...)
	defer func() {
		if cerr := pool.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("closing browsers")
		}
	}()

	log.Debug().Int("orders", len(inputs)).Int("workers", size).Str("mode", mode.String()).Msg("rendering invoices")

	results := processBatch(ctx, pool, inputs, job)
	failed := printResults(results, flags.common.quiet, flags.common.verbose, env)

	if failed == 0 {
		return nil
	}
	if len(results) == 1 {
		return results[0].Err
	}
	return fmt.Errorf("%d of %d invoices failed", failed, len(results))
}

// mergeExportFlags applies capture flags over cfg.
func mergeExportFlags(f *exportFlags, cfg *config.Config) {
	if f.settle != "" {
		cfg.Export.SettleDelay = f.settle
	}
	if f.scale != 0 {
		cfg.Export.Scale = f.scale
	}
}

// resolveJob decides where output goes. -o naming a file with the mode's
// extension is honored only for a single order.
func resolveJob(mode outputMode, t invoiceprint.Template, output string, cfg *config.Config, inputs int) invoiceJob {
	job := invoiceJob{mode: mode, template: t, output: output}
	if job.output == "" {
		job.output = cfg.Output.DefaultDir
	}
	if inputs == 1 && strings.EqualFold(filepath.Ext(job.output), mode.extension()) {
		job.toFile = true
	}
	return job
}

// outputPath returns where the result for order read from input is written.
// Without an output directory, files go next to the order file.
func (j invoiceJob) outputPath(input string, order *invoiceprint.Order) string {
	if j.toFile {
		return j.output
	}
	name := strings.TrimSuffix(invoiceprint.InvoiceFilename(j.template, order), ".pdf")
	switch j.mode {
	case modePrint:
		name += "-print.pdf"
	case modeHTML:
		name += ".html"
	default:
		name += ".pdf"
	}
	dir := j.output
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, name)
}

// processBatch renders orders concurrently using the converter pool.
func processBatch(ctx context.Context, pool Pool, inputs []string, job invoiceJob) []InvoiceResult {
	if len(inputs) == 0 {
		return nil
	}

	concurrency := pool.Size()
	if concurrency > len(inputs) {
		concurrency = len(inputs)
	}

	results := make([]InvoiceResult, len(inputs))
	var wg sync.WaitGroup
	jobs := make(chan int, len(inputs))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			r, err := pool.Acquire(ctx)
			if err != nil {
				// Converter creation failed, mark remaining jobs as failed
				err = withRenderHint(err)
				for idx := range jobs {
					results[idx] = InvoiceResult{InputPath: inputs[idx], Err: err}
				}
				return
			}
			defer pool.Release(r)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = InvoiceResult{InputPath: inputs[idx], Err: ctx.Err()}
					continue
				}
				results[idx] = processOrder(ctx, r, inputs[idx], job)
			}
		}()
	}

	for i := range inputs {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// processOrder renders one order file and writes the result.
func processOrder(ctx context.Context, r Renderer, input string, job invoiceJob) (result InvoiceResult) {
	start := time.Now()
	result.InputPath = input
	defer func() { result.Duration = time.Since(start) }()

	order, err := invoiceprint.LoadOrder(input)
	if err != nil {
		result.Err = fmt.Errorf("%w: %w%s", ErrReadOrder, err, hints.ForOrderFile())
		return result
	}
	result.OutputPath = job.outputPath(input, order)

	var data []byte
	switch job.mode {
	case modeHTML:
		var page string
		page, err = r.RenderHTML(order, job.template)
		data = []byte(page)
	case modePrint:
		data, err = r.Print(ctx, order, job.template)
	default:
		var dl *invoiceprint.Download
		dl, err = r.Export(ctx, order, job.template)
		if dl != nil {
			data = dl.PDF
		}
	}
	if err != nil {
		result.Err = withRenderHint(err)
		return result
	}

	if err := fileutil.WriteOutput(result.OutputPath, data); err != nil {
		result.Err = fmt.Errorf("%w: %w%s", ErrWriteOutput, err, hints.ForOutputDirectory())
	}
	return result
}

// withRenderHint appends browser or timeout hints to rendering errors.
func withRenderHint(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w%s", err, hints.ForTimeout())
	case errors.Is(err, invoiceprint.ErrBrowserConnect):
		return fmt.Errorf("%w%s", err, hints.ForBrowserConnect())
	}
	return err
}

// printResults reports each result and returns the number of failures.
func printResults(results []InvoiceResult, quiet, verbose bool, env *Environment) int {
	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", len(results)-failed, failed)
	}

	return failed
}
