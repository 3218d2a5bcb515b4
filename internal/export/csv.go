package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/sadopc/podomo/internal/stats"
)

// StatsToCSV writes the daily focus history to path, one row per day,
// oldest first.
func StatsToCSV(days []stats.DayStat, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Date", "Sessions", "Projects"}); err != nil {
		return err
	}

	for _, d := range days {
		row := []string{
			d.Date,
			fmt.Sprintf("%d", d.Count),
			formatProjects(d.Projects),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

// formatProjects renders the per-project counts as "name:count"
// pairs, sorted by name for stable output.
func formatProjects(projects map[string]int) string {
	if len(projects) == 0 {
		return ""
	}
	names := make([]string, 0, len(projects))
	for name := range projects {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s:%d", name, projects[name]))
	}
	return strings.Join(parts, "; ")
}
