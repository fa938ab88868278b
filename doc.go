// Package doc2pdf batch-converts documents to PDF by driving an external
// document-processing engine.
//
// The conversion itself belongs to the engine. This package owns the
// orchestration around it: turning a mix of file and directory inputs into a
// work list, applying an overwrite policy consistently across an unattended
// run, handling engine document handles safely when things fail halfway,
// and stopping promptly when the operator cancels.
//
// # Quick Start
//
//	session := doc2pdf.NewSession(
//	    doc2pdf.Options{Recursive: true},
//	    doc2pdf.WithPrompter(prompter),
//	)
//	runner := doc2pdf.NewRunner(connector, session, reporter)
//	outcomes, err := runner.Run(ctx, []string{"reports/", "cover.html"})
//	if err != nil {
//	    log.Fatal(err) // engine connection failed, nothing was converted
//	}
//	fmt.Println(doc2pdf.Summarize(outcomes))
//
// # Run Lifecycle
//
//  1. Connect to the engine once (a failure aborts the run).
//  2. Resolve every input into the work list, up front.
//  3. Convert each item in order, reporting each outcome as it happens.
//  4. Stop early when the operator cancels at an overwrite prompt.
//  5. Release the engine.
//
// # Overwrite Policy
//
// When an output already exists and the policy is unset, the Prompter is
// asked. "Yes to all" and "no to all" resolve the policy for the rest of the
// run; no further prompts happen after that.
//
// # Document Ownership
//
// A document the engine already had open is reused and left open. A
// document the transaction opened is closed before the transaction ends.
// Both are released exactly once.
//
// # Engines
//
// Anything satisfying Connector, Engine, Documents and Document can be
// driven. The doc2pdf command ships a Chrome engine (go-rod) that converts
// HTML, and Markdown rendered to HTML.
package doc2pdf
