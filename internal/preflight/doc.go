// Package preflight verifies that a batch run can start.
//
// The run command calls RunAll before discovery; any failed check aborts the
// run with exit status 1 so no file is attempted in a doomed environment.
// The check command prints the same results without running anything.
package preflight
