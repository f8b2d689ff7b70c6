// Package apperrors defines the sentinel and typed errors shared by the
// crawler, shells, and HTTP front end, the collaborators around the core
// packages (hashtable, tokenizer, doctable, memindex, indexfile, query),
// which only ever return plain wrapped errors and never log.
package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for conditions collaborators commonly need to branch on.
var (
	// ErrEmptyQuery is the message the shell and the HTTP front end report
	// when a caller submits a query with no words.
	ErrEmptyQuery = errors.New("query must contain at least one word")

	// ErrNoResults is not itself surfaced as an error by the core: see
	// memindex.Search and query.Processor.ProcessQuery, which return an
	// empty (nil) slice instead. Collaborators use it to render a uniform
	// "no matches" message.
	ErrNoResults = errors.New("no documents matched every query word")

	// ErrNotIndexable is the reason the crawler logs when it skips a file
	// that produced no tokens. It is not returned to the crawler's caller.
	ErrNotIndexable = errors.New("file is not indexable")

	// ErrBadArgument is the sentinel a BadArgumentError wraps.
	ErrBadArgument = errors.New("bad argument")
)

// BadArgumentError represents a caller precondition violation, an
// invariant violation of a core package's contract rather than a recoverable
// runtime condition. The precondition panics in memindex (AddPostingList,
// Search) and in query.Processor.ProcessQuery use a plain string;
// query.New, which checks its caller-supplied path list, panics with a
// BadArgumentError instead, so the panic value itself can be matched with
// errors.Is.
type BadArgumentError struct {
	Context string
}

func (e *BadArgumentError) Error() string {
	return fmt.Sprintf("bad argument: %s", e.Context)
}

func (e *BadArgumentError) Is(target error) bool {
	return target == ErrBadArgument
}

// NewBadArgumentError creates a BadArgumentError with the given context.
func NewBadArgumentError(context string) *BadArgumentError {
	return &BadArgumentError{Context: context}
}
