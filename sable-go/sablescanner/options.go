package sablescanner

// Options controls lexing. The zero value is not useful; start from
// DefaultOptions. The yaml tags let drivers load a config file
// directly into this struct.
type Options struct {
	// TabWidth is the number of spaces a tab contributes when measuring
	// indentation.
	TabWidth int `yaml:"tab_width"`

	// EnforceIndentConsistency reports indent widths that are not a
	// multiple of StandardIndentSize.
	EnforceIndentConsistency bool `yaml:"enforce_indent_consistency"`

	// StandardIndentSize is the expected indent step.
	StandardIndentSize int `yaml:"standard_indent_size"`

	// AllowTrailingSemicolon suppresses the diagnostic for semicolons.
	AllowTrailingSemicolon bool `yaml:"allow_trailing_semicolon"`

	// AllowTabsInIndentation suppresses the diagnostic for tabs in
	// leading whitespace.
	AllowTabsInIndentation bool `yaml:"allow_tabs_in_indentation"`

	// StrictLineJoining is reserved; it controls tolerance of
	// whitespace around backslash line joins.
	StrictLineJoining bool `yaml:"strict_line_joining"`

	// ScanComments surfaces Comment words instead of discarding them.
	ScanComments bool `yaml:"-"`

	// ScanNewLines surfaces NewLine words from the scanner. The stream
	// lexer forces this on; it is an option so that the raw Scanner can
	// be driven directly by tools.
	ScanNewLines bool `yaml:"-"`
}

// DefaultOptions returns the lexing defaults.
func DefaultOptions() Options {
	return Options{
		TabWidth:                 4,
		EnforceIndentConsistency: true,
		StandardIndentSize:       4,
		AllowTrailingSemicolon:   true,
		AllowTabsInIndentation:   false,
		StrictLineJoining:        true,
	}
}
