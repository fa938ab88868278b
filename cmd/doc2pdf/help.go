package main

import (
	"fmt"
	"io"
)

// printUsage prints the command usage.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: doc2pdf [path ...] [/R] [/O] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert documents to PDF with Chrome. Each source is saved next to itself")
	fmt.Fprintln(w, "with the target extension. Without arguments, doc2pdf asks for a path.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  path    Source file or directory (repeatable)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Batch:")
	fmt.Fprintln(w, "  /R, -R, --recursive       Also convert files in child directories")
	fmt.Fprintln(w, "  /O, -O, --overwrite       Overwrite existing outputs without asking")
	fmt.Fprintln(w, "      --skip-existing       Skip existing outputs without asking")
	fmt.Fprintln(w, "      --source-ext <ext>    Extension of the files to convert (default .html)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Browser:")
	fmt.Fprintln(w, "      --browser-bin <path>  Chrome/Chromium executable")
	fmt.Fprintln(w, "      --control-url <url>   Attach to a running browser")
	fmt.Fprintln(w, "      --visible             Show the browser and leave it open")
	fmt.Fprintln(w, "      --no-sandbox          Disable the Chrome sandbox (containers)")
	fmt.Fprintln(w, "      --timeout <d>         Page-load timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: letter, a4, legal")
	fmt.Fprintln(w, "      --orientation <s>     Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <f>          Margin in inches (0.25-3.0)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             More diagnostics (-vv debug, -vvv trace)")
	fmt.Fprintln(w, "      --print-config        Print the effective configuration")
	fmt.Fprintln(w, "      --doctor              Check the browser setup")
	fmt.Fprintln(w, "      --completion <shell>  Print a completion script (bash, zsh, fish, powershell)")
	fmt.Fprintln(w, "      --version             Show version information")
	fmt.Fprintln(w, "  -h, --help                Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "When an output exists and neither /O nor --skip-existing is given, doc2pdf")
	fmt.Fprintln(w, "asks: Y = Yes, N = No, C = Cancel, A = Yes to All, O = No To All.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes: 0 ok or cancelled, 1 failures, 2 usage, 3 no input, 4 browser.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Shell completion:")
	fmt.Fprintln(w, "  Bash:        eval \"$(doc2pdf --completion bash)\"   # in ~/.bashrc")
	fmt.Fprintln(w, "  Zsh:         eval \"$(doc2pdf --completion zsh)\"    # in ~/.zshrc, after compinit")
	fmt.Fprintln(w, "  Fish:        doc2pdf --completion fish > ~/.config/fish/completions/doc2pdf.fish")
	fmt.Fprintln(w, "  PowerShell:  doc2pdf --completion powershell | Out-String | Invoke-Expression")
}
