// Package importer loads parameter sets from CUE files.
//
// A parameter file declares a `parameters` struct whose fields are either
// expression strings or plain numbers, plus an optional `comments` struct
// keyed by the same names:
//
//	parameters: {
//		width: "120 mm"
//		count: 4
//	}
//	comments: width: "overall width"
//
// Every field becomes a `name=value` command that is applied through the
// mutator, so imported parameters follow the same unit rules as typed ones.
package importer
