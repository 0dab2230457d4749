// Package pipeline provides the core card operation for commitcard.
//
// This package implements the complete normalize → fetch → render pipeline
// used by the HTTP server and the CLI. By centralizing this logic, every
// entry point produces the same card and the same error card for the same
// parameters.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Normalize: Turn loosely-typed parameters into a [config.Card]
//  2. Fetch: Read repository data through a [github.Fetcher]
//  3. Render: Generate the SVG card
//
// Any failure, including a panic in a later stage, ends the run with an
// error card instead. [Runner.Execute] therefore always returns an image.
//
// # Usage
//
//	fetcher, err := github.NewClient(token)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	runner := pipeline.NewRunner(fetcher, logger)
//	result := runner.Execute(ctx, r.URL.Query())
//	if result.Err != nil {
//	    // result.SVG is an error card
//	}
package pipeline

import (
	"fmt"
	"time"

	"github.com/matzehuels/commitcard/pkg/config"
	"github.com/matzehuels/commitcard/pkg/errors"
)

// UnknownErrorMessage is shown when a failure carries no message.
const UnknownErrorMessage = "Unknown error occurred"

// Result contains the outputs of a pipeline run.
type Result struct {
	// SVG is the rendered card, or the error card when Err is set.
	SVG []byte

	// Config is the normalized card configuration. It is the zero value when
	// normalization failed.
	Config config.Card

	// Err is the failure that produced an error card, or nil.
	Err error

	// Stats contains timing information.
	Stats Stats
}

// Code returns the error code of a failed run, or "" on success.
func (r Result) Code() errors.Code {
	return errors.GetCode(r.Err)
}

// String summarizes a result for logs.
func (r Result) String() string {
	if r.Err != nil {
		return fmt.Sprintf("error card (%s): %s", r.Code(), ErrorMessage(r.Err))
	}
	return fmt.Sprintf("card %s/%s (%d commits, %d bytes)", r.Config.Username, r.Config.Repo, r.Stats.Commits, len(r.SVG))
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Commits    int
	FetchTime  time.Duration
	RenderTime time.Duration
}

// ErrorMessage returns the text shown on the error card for err.
func ErrorMessage(err error) string {
	if err == nil {
		return UnknownErrorMessage
	}
	if msg := errors.UserMessage(err); msg != "" {
		return msg
	}
	return UnknownErrorMessage
}
