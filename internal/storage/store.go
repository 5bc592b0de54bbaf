package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/lander/internal/config"
	"github.com/san-kum/lander/internal/dynamo"
	"github.com/san-kum/lander/internal/landing"
	"github.com/san-kum/lander/internal/sim"
)

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
)

var trajectoryHeader = []string{
	"time", "x", "y", "cx", "cy", "vx", "vy", "angle", "omega", "altitude", "contact", "engines", "status",
}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string               `json:"id"`
	Craft       string               `json:"craft"`
	Layout      string               `json:"layout"`
	Gravity     float64              `json:"gravity"`
	Timestamp   time.Time            `json:"timestamp"`
	Seed        int64                `json:"seed"`
	Dt          float64              `json:"dt"`
	Duration    float64              `json:"duration"`
	Integrator  string               `json:"integrator"`
	Controller  string               `json:"controller"`
	Outcome     string               `json:"outcome"`
	StatusText  string               `json:"status_text"`
	TouchdownAt float64              `json:"touchdown_at"`
	Steps       int                  `json:"steps"`
	Thresholds  landing.Thresholds   `json:"thresholds"`
	Terrain     config.TerrainConfig `json:"terrain"`
	Metrics     map[string]float64   `json:"metrics"`
}

// NewMetadata describes a finished run of cfg.
func NewMetadata(cfg *config.Config, result *sim.Result) RunMetadata {
	return RunMetadata{
		Craft:       cfg.Craft,
		Layout:      cfg.Layout,
		Gravity:     cfg.Gravity,
		Timestamp:   time.Now(),
		Seed:        cfg.Seed,
		Dt:          cfg.Dt,
		Duration:    cfg.Duration,
		Integrator:  cfg.Integrator,
		Controller:  cfg.Controller,
		Outcome:     result.Outcome.String(),
		StatusText:  result.StatusText,
		TouchdownAt: result.TouchdownAt,
		Steps:       result.StepsTaken,
		Thresholds:  cfg.Thresholds,
		Terrain:     cfg.Terrain,
		Metrics:     result.Metrics,
	}
}

// Save writes metadata.json and trajectory.csv under a new run directory and
// returns the run id. An empty meta.ID is filled from the craft and the
// current time.
func (s *Store) Save(meta RunMetadata, frames []sim.Frame) (string, error) {
	if meta.ID == "" {
		meta.ID = fmt.Sprintf("%s_%d", meta.Craft, time.Now().UnixNano())
	}
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, trajectoryFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(trajectoryHeader); err != nil {
		return "", err
	}
	for _, f := range frames {
		if err := w.Write(encodeFrame(f)); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return meta.ID, nil
}

func fmtFloat(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }

func encodeFrame(f sim.Frame) []string {
	return []string{
		fmtFloat(f.Time),
		fmtFloat(f.Position.X), fmtFloat(f.Position.Y),
		fmtFloat(f.Center.X), fmtFloat(f.Center.Y),
		fmtFloat(f.Velocity.X), fmtFloat(f.Velocity.Y),
		fmtFloat(f.Angle), fmtFloat(f.AngularVelocity),
		fmtFloat(f.Altitude),
		strconv.FormatBool(f.Contact),
		strconv.Itoa(f.ActiveEngines),
		f.Status.String(),
	}
}

func decodeFrame(rec []string) (sim.Frame, error) {
	if len(rec) != len(trajectoryHeader) {
		return sim.Frame{}, fmt.Errorf("want %d fields, got %d", len(trajectoryHeader), len(rec))
	}
	nums := make([]float64, 10)
	for i := range nums {
		v, err := strconv.ParseFloat(rec[i], 64)
		if err != nil {
			return sim.Frame{}, fmt.Errorf("%s: %w", trajectoryHeader[i], err)
		}
		nums[i] = v
	}
	contact, err := strconv.ParseBool(rec[10])
	if err != nil {
		return sim.Frame{}, fmt.Errorf("contact: %w", err)
	}
	engines, err := strconv.Atoi(rec[11])
	if err != nil {
		return sim.Frame{}, fmt.Errorf("engines: %w", err)
	}
	status, err := landing.ParseStatus(rec[12])
	if err != nil {
		return sim.Frame{}, err
	}
	return sim.Frame{
		Time:            nums[0],
		Position:        dynamo.V(nums[1], nums[2]),
		Center:          dynamo.V(nums[3], nums[4]),
		Velocity:        dynamo.V(nums[5], nums[6]),
		Angle:           nums[7],
		AngularVelocity: nums[8],
		Altitude:        nums[9],
		Contact:         contact,
		ActiveEngines:   engines,
		Status:          status,
	}, nil
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadTrajectory(runID string) ([]sim.Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []sim.Frame{}, nil
	}

	frames := make([]sim.Frame, 0, len(records)-1)
	for i, rec := range records[1:] {
		f, err := decodeFrame(rec)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", trajectoryFile, i+2, err)
		}
		frames = append(frames, f)
	}
	return frames, nil
}
