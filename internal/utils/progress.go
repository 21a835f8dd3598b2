package utils

import "github.com/schollz/progressbar/v3"

// Standard progress bar descriptions
const (
	DescPacking  = "Packing"
	DescCopying  = "Copying"
	DescScanning = "Scanning"
)

// NewProgressBar creates a consistently styled progress bar. The total
// entry count of a source tree is unknown before the single traversal
// pass, so callers normally pass -1 for spinner mode.
func NewProgressBar(total int, description string) *progressbar.ProgressBar {
	opts := []progressbar.Option{
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
	}

	if total < 0 {
		opts = append(opts,
			progressbar.OptionSpinnerType(14),
			progressbar.OptionSetRenderBlankState(true),
		)
	} else {
		opts = append(opts,
			progressbar.OptionShowIts(),
		)
	}

	return progressbar.NewOptions(total, opts...)
}
