package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: invoiceprint <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  export     Export orders as single-page A4 invoice PDFs")
	fmt.Fprintln(w, "  print      Print orders through Chrome's print pipeline")
	fmt.Fprintln(w, "  html       Write standalone invoice pages")
	fmt.Fprintln(w, "  serve      Run the invoice preview server")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'invoiceprint help <command>' for details on a specific command.")
}

// printRendererUsage prints the flags shared by every rendering command.
func printRendererUsage(w io.Writer) {
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --template <s>        Template: lajutuju (default), biggor")
	fmt.Fprintln(w, "  -t, --timeout <d>         Browser timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom styles, templates and logos")
	fmt.Fprintln(w, "      --date-layout <s>     Date layout (default \"D MMMM YYYY\")")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "                            Use [text] to escape literals")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel browsers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show timing and debug logs")
}

// printCommandUsage prints usage for a single command.
func printCommandUsage(w io.Writer, command string) {
	switch command {
	case "export", "print", "html":
		fmt.Fprintf(w, "Usage: invoiceprint %s <order>... [flags]\n", command)
		fmt.Fprintln(w)
		switch command {
		case "export":
			fmt.Fprintln(w, "Capture each invoice as an image and place it on one A4 page.")
		case "print":
			fmt.Fprintln(w, "Print each invoice to A4 with Chrome, as the browser would.")
		case "html":
			fmt.Fprintln(w, "Write each invoice as a self-contained HTML page.")
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Arguments:")
		fmt.Fprintln(w, "  order    Order file (YAML or JSON)")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Output:")
		fmt.Fprintln(w, "  -o, --output <path>       Output directory, or file for a single order")
		if command == "export" {
			fmt.Fprintln(w, "      --settle <d>          Layout settle delay before capture")
			fmt.Fprintln(w, "      --scale <f>           Capture pixel density (default 2)")
		}
		fmt.Fprintln(w)
		printRendererUsage(w)
	case "serve":
		fmt.Fprintln(w, "Usage: invoiceprint serve [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Serve the preview modal for the orders in a directory.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Server:")
		fmt.Fprintln(w, "      --host <s>            Listen address (default 127.0.0.1)")
		fmt.Fprintln(w, "  -p, --port <n>            Listen port (default 5173)")
		fmt.Fprintln(w, "      --base-path <s>       URL prefix (default /Dasbhoard/)")
		fmt.Fprintln(w, "  -d, --orders <dir>        Order directory (default orders)")
		fmt.Fprintln(w)
		printRendererUsage(w)
	case "version":
		fmt.Fprintln(w, "Usage: invoiceprint version")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Show version information.")
	case "help":
		fmt.Fprintln(w, "Usage: invoiceprint help [command]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Show help for a command.")
	}
}

// knownCommands lists the commands printCommandUsage documents.
var knownCommands = map[string]bool{
	"export": true, "print": true, "html": true, "serve": true, "version": true, "help": true,
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	if !knownCommands[args[0]] {
		printUsage(env.Stderr)
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}
	printCommandUsage(env.Stdout, args[0])
	return nil
}
