package app

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"forge/internal/domain"
	"forge/internal/store"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is an export encoding.
type Format string

// Export formats.
const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension, defaulting to CSV.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatCSV
	}
}

// ExportService writes and restores account data.
type ExportService struct {
	accountLogs
}

// NewExportService creates an ExportService.
func NewExportService(st *store.Store, session *Session, cal domain.Calendar) *ExportService {
	return &ExportService{accountLogs{store: st, session: session, cal: cal}}
}

// Snapshot returns every log of the current account.
func (s *ExportService) Snapshot(ctx context.Context) (Snapshot, error) {
	account, logs, err := s.current()
	if err != nil {
		return Snapshot{}, err
	}
	return logs.Snapshot(ctx, account), nil
}

// Export writes the current account's data to w in format.
func (s *ExportService) Export(ctx context.Context, w io.Writer, format Format) error {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}
	switch format {
	case FormatCSV:
		return WriteCSV(w, snap)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	case FormatTOML:
		return toml.NewEncoder(w).Encode(snap)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

// Import replaces the current account's logs and review with the snapshot
// read from r. The account profile in the snapshot is ignored.
func (s *ExportService) Import(ctx context.Context, r io.Reader, format Format) (Snapshot, error) {
	_, logs, err := s.current()
	if err != nil {
		return Snapshot{}, err
	}

	var snap Snapshot
	switch format {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&snap)
	case FormatTOML:
		_, err = toml.NewDecoder(r).Decode(&snap)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&snap)
	default:
		return Snapshot{}, fmt.Errorf("unsupported import format %q", format)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("decode %s snapshot: %w", format, err)
	}

	logs.Runs.Set(ctx, nonNil(snap.Runs))
	logs.Focus.Set(ctx, nonNil(snap.Focus))
	logs.Meals.Set(ctx, nonNil(snap.Meals))
	logs.Workouts.Set(ctx, nonNil(snap.Workouts))
	if snap.Review == nil {
		logs.Review.Clear(ctx)
	} else {
		logs.Review.Set(ctx, snap.Review)
	}
	return snap, nil
}

func nonNil[E any](events []E) []E {
	if events == nil {
		return []E{}
	}
	return events
}

// WriteCSV writes one Type,Date,Value,Detail row per event. Only completed
// workouts are exported.
func WriteCSV(w io.Writer, snap Snapshot) error {
	cw := csv.NewWriter(w)
	rows := [][]string{{"Type", "Date", "Value", "Detail"}}
	for _, r := range snap.Runs {
		rows = append(rows, []string{"Run", r.Date, FormatDistance(r.DistanceMeters), FormatDuration(r.DurationSeconds)})
	}
	for _, f := range snap.Focus {
		detail := "complete"
		if f.Partial {
			detail = "partial"
		}
		rows = append(rows, []string{"Focus", f.Date, strconv.Itoa(f.Minutes) + " min", detail})
	}
	for _, m := range snap.Meals {
		rows = append(rows, []string{"Meal", m.Date, strconv.Itoa(m.Calories) + " kcal", m.Name})
	}
	for _, wo := range snap.Workouts {
		if wo.Completed {
			rows = append(rows, []string{"Workout", wo.Date, wo.Name, wo.Type})
		}
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// FormatDistance renders meters as "N m" below a kilometre and "x.xx km"
// otherwise.
func FormatDistance(meters int) string {
	if meters >= 1000 {
		return fmt.Sprintf("%.2f km", float64(meters)/1000)
	}
	return fmt.Sprintf("%d m", meters)
}

// FormatDuration renders seconds as mm:ss, or h:mm:ss from one hour.
func FormatDuration(seconds int) string {
	h, m, sec := seconds/3600, seconds%3600/60, seconds%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%02d:%02d", m, sec)
}
