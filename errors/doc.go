/*
Package errors implements the error types shared by the multiclique
extensions.

Reuse the root errors declared in this package whenever possible and define a
custom error in the owning extension only when a client must be able to tell
it apart. Custom errors are declared with Register(code, description) during
program startup. Extensions use codes in the 1000 range.

Create error instances with Wrap or Wrapf at the point of failure, so that a
stack trace is attached. If an error is wrapped multiple times, only the
innermost wrap records the stack trace.

Once you have an error, you can use fmt.Printf/Sprintf to get more context
	%s is just the error message
	%+v is the full stack trace
	%v appends a compressed [filename:line] where the error was created
*/
package errors
