package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	Dir        string
	Formats    []string
	ExportData bool
}
