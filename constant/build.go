package constant

// Build metadata, set with -ldflags "-X github.com/mprisync/mprisync/constant.Revision=...".
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
