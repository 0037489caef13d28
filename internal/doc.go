// Package internal provides the core functionality for a Datalog program
// minimisation toolkit.
//
// This package implements the pipeline engine that coordinates the
// minimisation process. It manages an ordered collection of transform passes
// and applies them to a translation unit, optionally iterating the pipeline
// until the program stops changing.
//
// Key components:
//
// Engine: The main pipeline engine. It runs the registered passes in order,
// records a Change for every pass that modified the program, and can watch
// program documents on disk and re-minimise them on change.
//
// Pass: An interface that defines the contract for all transform passes.
// Each pass must implement Apply, which mutates the translation unit in
// place and reports whether the program changed.
//
// Change: Represents what a single pass did to a program, including the
// number of clauses and relations it removed.
//
// Usage:
//
//	engine := internal.NewEngine(logger, internal.Options{Fixpoint: true})
//	tu, changes, err := engine.RunFile("path/to/program.yaml")
//	if err != nil {
//	    // handle error
//	}
package internal
