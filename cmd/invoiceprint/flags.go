package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// rendererFlags holds flags that configure the converters.
type rendererFlags struct {
	template   string
	timeout    string
	assetPath  string
	dateLayout string
	workers    int
}

// exportFlags holds flags for the export, print and html commands.
type exportFlags struct {
	common   commonFlags
	renderer rendererFlags
	output   string
	settle   string
	scale    float64
}

// serveFlags holds flags for the serve command.
type serveFlags struct {
	common    commonFlags
	renderer  rendererFlags
	host      string
	port      int
	basePath  string
	ordersDir string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing and debug logs")
}

// addRendererFlags adds converter flags to a FlagSet.
func addRendererFlags(fs *flag.FlagSet, f *rendererFlags) {
	fs.StringVar(&f.template, "template", "", "invoice template: lajutuju, biggor")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "browser timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.StringVar(&f.dateLayout, "date-layout", "", "date layout (e.g., \"D MMMM YYYY\")")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel browsers (0 = auto)")
}

// parseExportFlags parses export/print/html flags and returns positional args.
func parseExportFlags(name string, args []string, usage io.Writer) (*exportFlags, []string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &exportFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.StringVar(&f.settle, "settle", "", "layout settle delay before capture (e.g., 300ms)")
	fs.Float64Var(&f.scale, "scale", 0, "capture pixel density (0 < scale <= 4)")
	addCommonFlags(fs, &f.common)
	addRendererFlags(fs, &f.renderer)

	fs.Usage = func() { printCommandUsage(usage, name) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseServeFlags parses serve flags and returns positional args.
func parseServeFlags(args []string, usage io.Writer) (*serveFlags, []string, error) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &serveFlags{}

	fs.StringVar(&f.host, "host", "", "listen address")
	fs.IntVarP(&f.port, "port", "p", 0, "listen port")
	fs.StringVar(&f.basePath, "base-path", "", "URL prefix for preview pages")
	fs.StringVarP(&f.ordersDir, "orders", "d", "", "directory of order files")
	addCommonFlags(fs, &f.common)
	addRendererFlags(fs, &f.renderer)

	fs.Usage = func() { printCommandUsage(usage, "serve") }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
