// Package param defines the parameter records shared by every other package
// and the command parser that produces them.
//
// The parser accepts the single-line command syntax of the editor:
//
//	width = 10 mm     create or update "width"
//	sides = 6         unitless parameter
//	del width         delete "width"
//	reload            restart the add-in
//
// Parse splits a set command into a Record; Classify decides which kind of
// command a raw input line is. Errors are typed (FormatError,
// UnknownUnitError, InvalidConversionError, NotFoundError,
// DeleteRefusedError) and carry an ErrorCode for callers that map them to
// exit codes or messages.
//
// This package imports only internal/units. Store, mutator and dialog all
// build on it.
package param
