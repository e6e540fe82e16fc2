package export

import (
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/types"
)

// clipboardWrite is swapped in tests; the real clipboard needs a display
var clipboardWrite = clipboard.WriteAll

// CopyToClipboard places the encoded records on the system clipboard
func CopyToClipboard(records []types.TestRecord, format Format) error {
	data, err := Marshal(records, format)
	if err != nil {
		return err
	}
	if err := clipboardWrite(string(data)); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}

// CopyText places arbitrary text, such as a filter result, on the clipboard
func CopyText(text string) error {
	if err := clipboardWrite(text); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}
