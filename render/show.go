package render

import (
	"fmt"

	"github.com/pkg/browser"
)

// Show opens the rendered artifact at the provided path in the system
// browser. The viewer lives outside process control, so errors cover the
// launch only.
func Show(path string) error {
	err := browser.OpenFile(path)
	if err != nil {
		return fmt.Errorf("opening %s in browser: %v", path, err)
	}

	return nil
}
