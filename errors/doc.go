/*
Package errors implements the error kinds shared by every swapper extension.

Each kind is a registered root error with a stable numeric code, so clients can
branch on the code without parsing messages. Reuse the kinds from this package
wherever possible; register a new one only when no existing kind describes the
failure. For reusing errors - use Errxxx.New and Errxxx.Newf, or Wrap an
existing error with additional context.

There is also support for stacktraces. Create the error using ErrXyz.New("...")
or errors.Wrap(err, "...") at the point of failure to attach a stacktrace. If
you wrap multiple times, only the first wrap records the stacktrace.

Once you have an error, you can use `fmt.Printf/Sprintf` to get more context for the error
	%s is just the error message
	%+v is the message followed by the call stack of the creation point
*/
package errors
