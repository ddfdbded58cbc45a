package domain

// UpgradeSelector holds the pair of "from"/"to" selectors. The rank chosen
// as "from" can never be chosen as "to".
type UpgradeSelector struct {
	from Rank
	to   Rank
}

func (s *UpgradeSelector) From() Rank { return s.from }
func (s *UpgradeSelector) To() Rank   { return s.to }

// SetFrom selects the current rank. An empty rank clears both selectors.
// When the existing target equals the new source it is cleared.
func (s *UpgradeSelector) SetFrom(r Rank) error {
	if r == "" {
		s.from = ""
		s.to = ""
		return nil
	}
	if !r.Valid() {
		return ErrUnknownRank
	}

	s.from = r
	if s.to == r {
		s.to = ""
	}
	return nil
}

// SetTo selects the target rank. An empty rank clears the target.
func (s *UpgradeSelector) SetTo(r Rank) error {
	if r == "" {
		s.to = ""
		return nil
	}
	if !r.Valid() {
		return ErrUnknownRank
	}
	if r == s.from {
		return ErrRankUnavailable
	}
	s.to = r
	return nil
}

// Reset clears both selectors.
func (s *UpgradeSelector) Reset() {
	s.from = ""
	s.to = ""
}

// Upgrade returns the active upgrade, or nil when either side is empty or
// the target is cheaper than the source.
func (s *UpgradeSelector) Upgrade() *Upgrade {
	if s.from == "" || s.to == "" {
		return nil
	}
	price, ok := UpgradePrice(s.from, s.to)
	if !ok {
		return nil
	}
	return &Upgrade{From: s.from, To: s.to, Price: price}
}

// Options lists the "to" selector entries with the source rank disabled.
func (s *UpgradeSelector) Options() []Option {
	out := Ranks()
	for i := range out {
		out[i].Disabled = s.from != "" && out[i].Rank == s.from
	}
	return out
}
