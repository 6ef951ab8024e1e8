package debug

import (
	"encoding/json"
	"log/slog"

	"almanac/internal/almanac"
)

// PrintImageSummary prints the image summary in JSON format
func PrintImageSummary(summary almanac.Summary) {
	jsonData, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		slog.Error("Failed to marshal almanac summary to JSON", "error", err)
		return
	}

	slog.Debug("Almanac image details", "json", string(jsonData))
}
