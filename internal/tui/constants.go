package tui

// UI Layout Constants

const (
	// Dashboard chrome around the results viewport
	HeaderLines   = 2 // Title + service address
	ControlsLines = 3 // Type tabs, count and action hint
	CardsLines    = 5 // Stat cards with borders
	FooterLines   = 2 // Status line + key hint
	PanelBorder   = 2 // Rounded border around the results panel

	// Modal Dimensions
	ModalWidthMargin  = 6 // m.width - 6
	ModalHeightMargin = 4 // m.height - 4

	// Records panel
	RecordDataIndent = 4  // Indentation of the pretty-printed data block
	TypePickerRows   = 8  // Visible matches in the type search
	CountInputLimit  = 3  // Digits accepted by the count editor
	FilterInputLimit = 256

	// Stat cards
	CardMinWidth = 18
	CardCount    = 3
)
