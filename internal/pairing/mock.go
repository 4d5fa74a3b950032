package pairing

// MockStore is a mock implementation of PairingStore for testing.
type MockStore struct {
	CheckPartnerConflictFunc func(targetPid, requesterPid string) (*Conflict, error)
	LinkPartnersFunc         func(ownerPid, targetPid string, override bool) (*Conflict, error)
	ClearPartnerFunc         func(pid string) error
	RemoveFromTeamFunc       func(pid string) error

	LinkCalls   []LinkCall
	ClearCalls  []string
	RemoveCalls []string
}

// LinkCall records one invocation of LinkPartners.
type LinkCall struct {
	OwnerPid  string
	TargetPid string
	Override  bool
}

func (m *MockStore) CheckPartnerConflict(targetPid, requesterPid string) (*Conflict, error) {
	if m.CheckPartnerConflictFunc != nil {
		return m.CheckPartnerConflictFunc(targetPid, requesterPid)
	}
	return nil, nil
}

func (m *MockStore) LinkPartners(ownerPid, targetPid string, override bool) (*Conflict, error) {
	m.LinkCalls = append(m.LinkCalls, LinkCall{OwnerPid: ownerPid, TargetPid: targetPid, Override: override})
	if m.LinkPartnersFunc != nil {
		return m.LinkPartnersFunc(ownerPid, targetPid, override)
	}
	return nil, nil
}

func (m *MockStore) ClearPartner(pid string) error {
	m.ClearCalls = append(m.ClearCalls, pid)
	if m.ClearPartnerFunc != nil {
		return m.ClearPartnerFunc(pid)
	}
	return nil
}

func (m *MockStore) RemoveFromTeam(pid string) error {
	m.RemoveCalls = append(m.RemoveCalls, pid)
	if m.RemoveFromTeamFunc != nil {
		return m.RemoveFromTeamFunc(pid)
	}
	return nil
}
