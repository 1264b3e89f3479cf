package diagfmt

// PathMode controls how a source path is displayed in diagnostic output.
type PathMode uint8

const (
	// PathModeAuto shows the path as stored unless it is long and absolute,
	// in which case it falls back to the basename.
	PathModeAuto PathMode = iota
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// PrettyOpts configures Pretty.
type PrettyOpts struct {
	Color       bool
	Context     int8
	PathMode    PathMode
	Width       uint8
	ShowNotes   bool
	ShowFixes   bool
	ShowPreview bool
}

// JSONOpts configures JSON-rendered diagnostics output.
type JSONOpts struct {
	IncludePositions bool
	PathMode         PathMode
	Max              int
	IncludeNotes     bool
	IncludeFixes     bool
	IncludePreviews  bool
}

// SarifRunMeta provides the run-level metadata a SARIF report requires.
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InvocationArgs []string
}
