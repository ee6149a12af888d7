package starboard

// Store is the external state owner the controller reads and mutates. The
// controller assumes every write is atomic and applied synchronously; it
// never needs its own locking and only guards against emitting two
// conflicting mutations for one physical gesture.
//
// Slices returned by NodeSet are replaced wholesale on every mutation and
// MUST NOT be mutated by callers.
type Store interface {
	// NodeSet returns the planet's node set. Planets never addressed before
	// read as an empty set.
	NodeSet(planetID string) NodeSet
	// SetNodeSet replaces both sequences for the planet together.
	SetNodeSet(planetID string, set NodeSet)

	// Owner returns the planet's owning faction, FactionNone when unowned,
	// or FactionDestroyed for a permanently destroyed planet.
	Owner(planetID string) Faction
	// ImageNumber returns the planet's reference image number.
	ImageNumber(planetID string) int

	// Credits returns a faction's balance. The second return value is
	// false for factions the ledger does not know, including FactionNone
	// and FactionDestroyed.
	Credits(f Faction) (int, bool)
	// AddCredits adjusts a known faction's balance by delta, clamping at
	// zero. Unknown factions are ignored.
	AddCredits(f Faction, delta int)

	// CurrentFaction returns the session's active faction, or FactionNone.
	CurrentFaction() Faction

	// Notify raises a transient user-facing notice.
	Notify(message string)
}

// planetRecord is MemoryStore's per-planet state.
type planetRecord struct {
	points []NodePoint
	active []bool
	owner  Faction
	number int
}

// MemoryStore is an in-memory Store. It is the default backing for a Panel
// and doubles as the test fixture for the interaction pipeline; notices are
// recorded rather than displayed.
type MemoryStore struct {
	planets map[string]*planetRecord
	credits map[Faction]int
	current Faction
	notices []string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		planets: make(map[string]*planetRecord),
		credits: make(map[Faction]int),
	}
}

// planet returns the record for planetID, creating an empty one the first
// time the planet is addressed.
func (m *MemoryStore) planet(planetID string) *planetRecord {
	rec, ok := m.planets[planetID]
	if !ok {
		rec = &planetRecord{}
		m.planets[planetID] = rec
	}
	return rec
}

// NodeSet returns the planet's node set.
func (m *MemoryStore) NodeSet(planetID string) NodeSet {
	rec := m.planet(planetID)
	return NodeSet{Points: rec.points, Active: rec.active}
}

// SetNodeSet replaces both sequences for the planet together.
func (m *MemoryStore) SetNodeSet(planetID string, set NodeSet) {
	rec := m.planet(planetID)
	rec.points = set.Points
	rec.active = set.Active
}

// Owner returns the planet's owning faction.
func (m *MemoryStore) Owner(planetID string) Faction {
	return m.planet(planetID).owner
}

// SetOwner sets the planet's owning faction.
func (m *MemoryStore) SetOwner(planetID string, owner Faction) {
	m.planet(planetID).owner = owner
}

// ImageNumber returns the planet's reference image number.
func (m *MemoryStore) ImageNumber(planetID string) int {
	return m.planet(planetID).number
}

// SetImageNumber sets the planet's reference image number.
func (m *MemoryStore) SetImageNumber(planetID string, number int) {
	m.planet(planetID).number = number
}

// Credits returns a faction's balance and whether the ledger knows it.
func (m *MemoryStore) Credits(f Faction) (int, bool) {
	balance, ok := m.credits[f]
	return balance, ok
}

// SetCredits registers a faction with the given balance. Negative balances
// are clamped to zero.
func (m *MemoryStore) SetCredits(f Faction, balance int) {
	if f == FactionNone || f == FactionDestroyed {
		return
	}
	if balance < 0 {
		balance = 0
	}
	m.credits[f] = balance
}

// AddCredits adjusts a known faction's balance by delta, clamping at zero.
func (m *MemoryStore) AddCredits(f Faction, delta int) {
	balance, ok := m.credits[f]
	if !ok {
		return
	}
	balance += delta
	if balance < 0 {
		balance = 0
	}
	m.credits[f] = balance
}

// CurrentFaction returns the session's active faction.
func (m *MemoryStore) CurrentFaction() Faction {
	return m.current
}

// SetCurrentFaction sets the session's active faction. FactionNone clears it.
func (m *MemoryStore) SetCurrentFaction(f Faction) {
	m.current = f
}

// Notify records the notice. Notices returns and clears the backlog.
func (m *MemoryStore) Notify(message string) {
	m.notices = append(m.notices, message)
}

// Notices returns all notices raised since the last call and clears them.
func (m *MemoryStore) Notices() []string {
	out := m.notices
	m.notices = nil
	return out
}
