/*
Package config loads picfav settings from YAML, HCL or TOML files.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+ +-----+----+ +-----+----+
	|   YAML   | |   HCL    | |   TOML   |
	|  Parser  | |  Parser  | |  Parser  |
	+----------+ +----------+ +----------+

🎯 Purpose:
- Picks a parser by file extension
- Rejects unknown keys in every format
- Resolves relative paths against the config file's directory

🔄 Flow:
1. Load reads the file (a missing file may fall back to Default)
2. The registered parser decodes it into Config
3. Validate checks ignore patterns and normalizes data_dir and destination

⚡ Notes:
- Every field is optional; the zero Config is valid
- HCL expressions can read the environment through env.NAME
- Command-line flags override file values in cmd/picfav

🔍 Example:

	# picfav.yaml
	destination: ~/Pictures/favourites
	ignore_patterns:
	  - "thumb_*"
	events: true

	cfg, err := config.Load(ctx, "picfav.yaml", true)
	if err != nil {
		return err
	}
*/
package config
