package commands

// UpdateChangelog exports updateChangelog for testing.
var UpdateChangelog = updateChangelog //nolint:gochecknoglobals // test export

// RelativeTo exports relativeTo for testing.
var RelativeTo = relativeTo //nolint:gochecknoglobals // test export
