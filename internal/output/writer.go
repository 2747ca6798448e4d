package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/vkuzmenko/marketbrief/pkg/logger"
	"github.com/vkuzmenko/marketbrief/pkg/models"
)

const snapshotPrefix = "briefing-"

// Writer persists the run's record and rendered pages. Failing to write is
// the pipeline's only fatal condition.
type Writer struct {
	dataDir string
	siteDir string
}

// NewWriter creates the output writer
func NewWriter(dataDir, siteDir string) *Writer {
	return &Writer{dataDir: dataDir, siteDir: siteDir}
}

// WriteSnapshot writes the JSON record for the run's date and returns its
// path.
func (w *Writer) WriteSnapshot(record models.BriefingRecord) (string, error) {
	if err := os.MkdirAll(w.dataDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create data dir: %w", err)
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal record: %w", err)
	}

	path := filepath.Join(w.dataDir, snapshotPrefix+record.Date+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}

	logger.Info("snapshot written", zap.String("path", path))

	return path, nil
}

// WritePage writes the rendered briefing both as index.html and as the
// dated page the archive links to.
func (w *Writer) WritePage(html string, date string) error {
	if err := os.MkdirAll(w.siteDir, 0755); err != nil {
		return fmt.Errorf("failed to create site dir: %w", err)
	}

	for _, name := range []string{"index.html", snapshotPrefix + date + ".html"} {
		path := filepath.Join(w.siteDir, name)
		if err := os.WriteFile(path, []byte(html), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}

	return nil
}

// WriteArchivePage writes the archive listing. Not fatal for the run.
func (w *Writer) WriteArchivePage(html string) error {
	path := filepath.Join(w.siteDir, "archive.html")
	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		return fmt.Errorf("failed to write archive page: %w", err)
	}
	return nil
}

// LoadPrevious returns the most recent snapshot strictly before the given
// date, or nil when none is readable. A missing or corrupt snapshot is not
// an error for the caller; the baseline covers it.
func (w *Writer) LoadPrevious(beforeDate string) *models.BriefingRecord {
	entries, err := os.ReadDir(w.dataDir)
	if err != nil {
		return nil
	}

	dates := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, snapshotPrefix) || !strings.HasSuffix(name, ".json") {
			continue
		}
		date := strings.TrimSuffix(strings.TrimPrefix(name, snapshotPrefix), ".json")
		if date < beforeDate {
			dates = append(dates, date)
		}
	}
	if len(dates) == 0 {
		return nil
	}

	sort.Strings(dates)
	latest := dates[len(dates)-1]

	data, err := os.ReadFile(filepath.Join(w.dataDir, snapshotPrefix+latest+".json"))
	if err != nil {
		logger.Warn("failed to read previous snapshot", zap.Error(err))
		return nil
	}

	var record models.BriefingRecord
	if err := json.Unmarshal(data, &record); err != nil {
		logger.Warn("previous snapshot is corrupt", zap.String("date", latest), zap.Error(err))
		return nil
	}

	logger.Debug("previous snapshot loaded", zap.String("date", latest))

	return &record
}
