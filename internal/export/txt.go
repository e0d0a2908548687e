package export

import (
	"fmt"
	"os"

	"kibble-ration/internal/format"
	"kibble-ration/internal/model"
	"kibble-ration/internal/ration"
)

// WriteTXT writes the formatted split table to a text file.
func WriteTXT(path string, cfg model.RationConfig, d ration.Derived) error {
	out := format.FormatMatrix(cfg, d) + "\n"
	if err := os.WriteFile(path, []byte(out), 0644); err != nil {
		return fmt.Errorf("write txt file: %w", err)
	}
	return nil
}
