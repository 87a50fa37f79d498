// meta/meta.go
package meta

// MAX_PLIES caps self-play games; it is not a draw rule.
const MAX_PLIES = 200

// GAMES defines the number of games per experiment matchup.
const GAMES = 10

// CONCURRENCY defines how many experiment games run at once.
const CONCURRENCY = 4

// OUTPUT_DIR is where experiment CSVs are written.
const OUTPUT_DIR = "results"

// PRESETS_FILE is looked up in the XDG config directories.
const PRESETS_FILE = "baghchal/presets.yaml"
