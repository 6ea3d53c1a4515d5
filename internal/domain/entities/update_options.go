package entities

// UpdateOptions holds the runtime options shared by the check and update flows.
type UpdateOptions struct {
	DryRun          bool
	Verbose         bool
	PrintConfig     bool
	DestinationFile string
}
