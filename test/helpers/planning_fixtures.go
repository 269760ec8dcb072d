package helpers

import (
	"context"
	"fmt"
	"sync"

	"github.com/andrescamacho/planner-go/internal/domain/planning"
)

// SampleMaterials returns fresh copies of the three demonstration materials
func SampleMaterials() []*planning.Material {
	return []*planning.Material{
		mustMaterial("Material A", 50, 100, 15),
		mustMaterial("Material B", 40, 150, 14),
		mustMaterial("Material C", 60, 200, 18),
	}
}

// SampleCommodities returns Chair (two workers, understaffed) and Bread (no workers)
func SampleCommodities() []*planning.Commodity {
	chair, err := planning.NewCommodity(planning.CommoditySpec{
		Name: "Chair",
		Usages: []planning.MaterialUsage{
			{Material: "Material A", UsageRate: 0.5},
			{Material: "Material B", UsageRate: 0.6},
		},
		LaborRequired:  13,
		LaborAvailable: 1000,
		Demand:         100,
		Priority:       planning.PriorityConsumerGoodsAndServices,
		Workers:        []planning.Worker{{Name: "Alice", HoursWorked: 40}, {Name: "Bob", HoursWorked: 40}},
	})
	if err != nil {
		panic(err)
	}
	bread, err := planning.NewCommodity(planning.CommoditySpec{
		Name: "Bread",
		Usages: []planning.MaterialUsage{
			{Material: "Material A", UsageRate: 0.5},
			{Material: "Material C", UsageRate: 0.7},
		},
		LaborRequired:  16,
		LaborAvailable: 5000,
		Demand:         201,
		Priority:       planning.PriorityBasicNeeds,
	})
	if err != nil {
		panic(err)
	}
	return []*planning.Commodity{chair, bread}
}

// SampleState assembles the demonstration economy
func SampleState() *planning.PlanningState {
	state, err := planning.NewPlanningState(SampleMaterials(), SampleCommodities())
	if err != nil {
		panic(err)
	}
	return state
}

func mustMaterial(name string, inventory, capacity, cost float64) *planning.Material {
	m, err := planning.NewMaterial(name, inventory, capacity, cost)
	if err != nil {
		panic(err)
	}
	return m
}

// MockStateLoader returns a state built by a function, so every load sees fresh materials
type MockStateLoader struct {
	Build    func() (*planning.PlanningState, error)
	Warnings []*planning.DataRangeWarning
	Calls    int
}

// NewMockStateLoader loads the demonstration economy
func NewMockStateLoader() *MockStateLoader {
	return &MockStateLoader{Build: func() (*planning.PlanningState, error) { return SampleState(), nil }}
}

// LoadState implements planning.StateLoader
func (m *MockStateLoader) LoadState(ctx context.Context) (*planning.PlanningState, []*planning.DataRangeWarning, error) {
	m.Calls++
	state, err := m.Build()
	return state, m.Warnings, err
}

// MockMaterialRepository is an in-memory planning.MaterialRepository
type MockMaterialRepository struct {
	mu        sync.Mutex
	materials map[string]*planning.Material
	UpdateErr error
	Updates   int
}

// NewMockMaterialRepository creates an empty repository
func NewMockMaterialRepository() *MockMaterialRepository {
	return &MockMaterialRepository{materials: make(map[string]*planning.Material)}
}

// SaveAll stores clones of materials
func (m *MockMaterialRepository) SaveAll(ctx context.Context, materials []*planning.Material) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, mat := range materials {
		m.materials[mat.Name()] = mat.Clone()
	}
	return nil
}

// FindAll returns clones of every stored material
func (m *MockMaterialRepository) FindAll(ctx context.Context) ([]*planning.Material, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*planning.Material, 0, len(m.materials))
	for _, mat := range m.materials {
		out = append(out, mat.Clone())
	}
	return out, nil
}

// UpdateInventories replaces stored materials, failing on unknown names
func (m *MockMaterialRepository) UpdateInventories(ctx context.Context, materials []*planning.Material) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	for _, mat := range materials {
		if _, ok := m.materials[mat.Name()]; !ok {
			return fmt.Errorf("%w: %s", planning.ErrMaterialNotFound, mat.Name())
		}
	}
	for _, mat := range materials {
		m.materials[mat.Name()] = mat.Clone()
	}
	m.Updates++
	return nil
}

// Inventory returns the stored inventory of name, or -1 when absent
func (m *MockMaterialRepository) Inventory(name string) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if mat, ok := m.materials[name]; ok {
		return mat.Inventory()
	}
	return -1
}

// MockCommodityRepository is an in-memory planning.CommodityRepository
type MockCommodityRepository struct {
	Saved []*planning.Commodity
}

// SaveAll implements planning.CommodityRepository
func (m *MockCommodityRepository) SaveAll(ctx context.Context, commodities []*planning.Commodity) error {
	m.Saved = append(m.Saved, commodities...)
	return nil
}

// FindAll implements planning.CommodityRepository
func (m *MockCommodityRepository) FindAll(ctx context.Context) ([]*planning.Commodity, error) {
	return m.Saved, nil
}

// MockCycleReportRepository is an in-memory planning.CycleReportRepository
type MockCycleReportRepository struct {
	mu      sync.Mutex
	reports []*planning.CycleReport
	SaveErr error
}

// Save implements planning.CycleReportRepository
func (m *MockCycleReportRepository) Save(ctx context.Context, report *planning.CycleReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.reports = append(m.reports, report)
	return nil
}

// FindByID implements planning.CycleReportRepository
func (m *MockCycleReportRepository) FindByID(ctx context.Context, id string) (*planning.CycleReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.reports {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", planning.ErrReportNotFound, id)
}

// List implements planning.CycleReportRepository, newest first
func (m *MockCycleReportRepository) List(ctx context.Context, limit int) ([]*planning.CycleReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*planning.CycleReport, 0, len(m.reports))
	for i := len(m.reports) - 1; i >= 0; i-- {
		out = append(out, m.reports[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// LogEntry is one captured log call
type LogEntry struct {
	Level    string
	Message  string
	Metadata map[string]interface{}
}

// RecordingLogger captures log calls for assertions
type RecordingLogger struct {
	mu      sync.Mutex
	Entries []LogEntry
}

// Log implements common.PlanLogger
func (l *RecordingLogger) Log(level, message string, metadata map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Entries = append(l.Entries, LogEntry{Level: level, Message: message, Metadata: metadata})
}

// Messages returns the messages logged at level
func (l *RecordingLogger) Messages(level string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []string
	for _, e := range l.Entries {
		if e.Level == level {
			out = append(out, e.Message)
		}
	}
	return out
}
