/*
Package status reports export progress to the terminal and to a UI shell.

	            +-------------+
	            |  Reporter   |
	            | (Progress)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|   JSON    |           |   Bar   |
	|  Events   |           | (pterm) |
	+-----------+           +---------+

🎯 Purpose:
- Turns per-file export progress into "export-progress" events
- Streams events as JSON lines for a UI shell that subscribes on stdout
- Draws a progress bar for interactive terminals
- Formats progress, result and listing lines

🔄 Flow:
1. The export pipeline calls Reporter.Progress after each copied file
2. Reporter logs the formatted progress line through zerolog
3. Reporter hands an Event to the configured Emitter
4. Emitters write JSON, move the bar, or both (MultiEmitter)

⚡ Notes:
- Emitting is fire-and-forget: an emitter failure is logged, never fatal
- Events are emitted synchronously, in order, one per file

🔍 Example:

	reporter := status.NewReporter(status.MultiEmitter{
		status.NewJSONEmitter(os.Stdout),
		status.NewBarEmitter(os.Stderr, "exporting"),
	}, nil)
	names, err := operation.Export(ctx, dst, files, reporter.Progress)
*/
package status
