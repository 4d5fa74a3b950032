package importer

// MockImporter is a hand-rolled Importer test double.
type MockImporter struct {
	ApplyFunc  func(updates []ScoreUpdate) (*Result, error)
	ApplyCalls [][]ScoreUpdate
}

func (m *MockImporter) Apply(updates []ScoreUpdate) (*Result, error) {
	m.ApplyCalls = append(m.ApplyCalls, updates)
	if m.ApplyFunc != nil {
		return m.ApplyFunc(updates)
	}
	return &Result{}, nil
}
