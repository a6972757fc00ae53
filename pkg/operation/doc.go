/*
Package operation implements the export pipeline.

	+-------------+       +-------------+       +-------------+
	|  Favourite  | ----> |   Export    | ----> | Destination |
	|   Source    |       | (copy loop) |       |  directory  |
	+-------------+       +------+------+       +-------------+
	                             |
	                      +------+------+
	                      |  Progress   |
	                      | (per file)  |
	                      +-------------+

🎯 Purpose:
- Copies favourite (or explicitly listed) files into one flat directory
- Reports progress once per finished file
- Returns the base names written, in input order

🔄 Flow, per source path:
1. Take the base name; a path without one stops the export
2. Copy the bytes to destination/<base name>, overwriting
3. Call the progress func with the running count
4. Record the base name

⚡ Failure behaviour:
- The first error stops the export and is returned as *ExportError
- Files copied before the error stay on disk; ExportError.Completed names them
- Nothing is retried and a running export cannot be cancelled

🤝 Interfaces:
- FavouriteSource: the favourites store, for exports that resolve their input
- ProgressFunc: where progress events go (terminal bar, JSON event stream)
- Operation: what OperationRunner executes, in the foreground or as its own goroutine

🔍 Example:

	op, err := operation.NewExportFavourites(operation.Options{
		Source:   st,
		Progress: reporter.Progress,
	}, "/out")
	err = operation.NewRunner(false).Run(ctx, op)
	names := op.Exported()
*/
package operation
