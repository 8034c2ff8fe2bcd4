// Package dialog implements the parameter editing dialog.
//
// The host drives a dialog through the Command lifecycle:
//
//	OnCreate   build the input fields
//	OnPreview  validate after every edit; false disables OK
//	OnExecute  apply the command and the field edits
//	OnDestroy  decide whether to reopen the dialog
//
// ParamEdit is the Command for user parameters. Console is a bubbletea host
// for terminals: each submitted line is one dialog round, a command line
// (`w = 10 mm`, `del w`, `reload`) or a field edit (`.w 12 mm`).
package dialog
