package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"crashify360/internal/assessment"
)

// ExportCSV writes the stored decisions to a CSV file. When no path is given
// the export lands in a timestamped file under the configured output
// directory.
func (uc *implUseCase) ExportCSV(ctx context.Context, input assessment.ExportInput) (assessment.ExportOutput, error) {
	path := input.Path
	if path == "" {
		if err := os.MkdirAll(uc.outputDir, 0o755); err != nil {
			return assessment.ExportOutput{}, fmt.Errorf("create output directory: %w", err)
		}
		path = filepath.Join(uc.outputDir, fmt.Sprintf("decisions_export_%s.csv", time.Now().Format("20060102_150405")))
	}

	count, err := uc.repo.ExportCSV(ctx, path)
	if err != nil {
		return assessment.ExportOutput{}, fmt.Errorf("export decisions: %w", err)
	}

	return assessment.ExportOutput{Path: path, Count: count}, nil
}
