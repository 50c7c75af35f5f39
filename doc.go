// Package utrace is a diagnostics toolkit built around two pieces: a
// printf-compatible renderer that writes into caller supplied buffers
// without allocating, and a trace log that records rendered lines into a
// file, stderr or a fixed-size ring mapped from a file.
//
// # Rendering
//
// Render and Diagnostics.Render follow C snprintf for the standard
// conversions (d i o u x X e E f F g G a A c s p %) including flags, width,
// precision and the hh h l ll q j z t L length modifiers. Arguments are
// passed as typed Arg values; Args adapts native Go values. Output never
// extends past the destination: a conversion that does not fit keeps the
// bytes already written and returns an error wrapping ErrOverflow.
//
// The extensions are:
//
//	%b  bool as true or false
//	%B  binary integer (# adds 0b)
//	%C  quoted, escaped character
//	%D  date; the width selects one of eleven layouts, # takes a Time argument
//	%H %N %U %w %P  hostname, program name, user, working directory, pid
//	%I %T  64-bit signed integers (off_t and time_t)
//	%J %V  quoted, escaped byte blob; %v is the raw form
//	%M  hex dump of a byte blob
//	%O  quoted string with the larger temp-string cap
//	%Q  deferred exit code; renders nothing
//	%R  [message - ]error, errno values as "ENAME (n, text)"
//	%r  exit status name ("EX_USAGE (64, command line usage error)")
//	%S  quoted, escaped string capped at the global maximum
//	%W  colour escape from package ansi, only on colour capable output
//	%Y  signal name ("SIGTERM (15, terminated)")
//
// %n is not supported and is copied to the output unchanged, as are
// unknown conversions.
//
// # Trace log
//
// A TraceLog is configured from UTRACE (always on) or UTRACE_SIGNAL (armed,
// toggled with SIGUSR2) using the grammar
//
//	[-]<level> <size>[K|M|G] <test_count>
//
// A leading '-' sends output to stderr. A size of zero appends to
// trace.<progname>.<pid>; a non-zero size maps a file of that size and
// writes it as a byte ring that wraps at the end. On Close the file is
// truncated to its logical length. Configuration and resource errors
// disable or degrade the log and are reported through a Logger; they never
// reach the caller of Write.
//
// TraceLine and TraceLog.Line render a line at the current indentation
// depth of the Diagnostics context and hand it to the log.
package utrace
