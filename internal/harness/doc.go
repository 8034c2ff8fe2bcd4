// Package harness runs parameter-command scenarios against a fresh
// in-memory design document.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: unit_transitions
//	description: "What this scenario validates"
//	setup:
//	  - "w = 10 mm"
//	steps:
//	  - command: "w = 12 mm"
//	    expect: { outcome: updated }
//	  - command: "w = 5"
//	    expect: { error: INVALID_CONVERSION }
//	  - fields: { w: "14 mm" }
//	    expect: { applied: 1 }
//	assertions:
//	  - type: parameter
//	    name: w
//	    expression: "14 mm"
//	  - type: count
//	    count: 1
//
// Setup commands must succeed. Steps run a command line through the mutator
// exactly as the dialog's command field would, or apply direct field edits.
//
// # Assertion Types
//
//   - parameter: the named parameter exists, optionally with the given
//     expression, unit and comment
//   - absent: the named parameter does not exist
//   - count: the document holds exactly count parameters
//   - history: the change history (optionally for one name) has count
//     entries, optionally with the listed ops in order
//
// # Deterministic Output
//
// Every run uses a new ":memory:" store and sequential change IDs, so the
// transcript produced by Transcript is identical across runs and can be
// compared with a golden file (see RunWithGolden).
package harness
