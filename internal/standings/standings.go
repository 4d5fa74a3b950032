// Package standings is the score aggregation engine: pure, stateless
// builders that turn pre-fetched score rows into ranked boards. Builders
// allocate fresh output and never mutate their input, so they are safe to
// call concurrently.
package standings

import "sort"

// groups preserves first-seen order of unit keys so tie-breaks stay stable
// against the input ordering.
type groups[K comparable] struct {
	keys []K
	rows map[K][]ScoreRow
}

func groupRows[K comparable](rows []ScoreRow, key func(ScoreRow) K) groups[K] {
	g := groups[K]{rows: make(map[K][]ScoreRow)}
	for _, row := range rows {
		k := key(row)
		if _, ok := g.rows[k]; !ok {
			g.keys = append(g.keys, k)
		}
		g.rows[k] = append(g.rows[k], row)
	}
	return g
}

// rankByTotal sorts entries stably by total descending, places nil totals
// after every numeric total, and assigns 1-based ranks. Ties keep input order.
func rankByTotal[E any](entries []E, total func(E) *int, setRank func(*E, int)) {
	sort.SliceStable(entries, func(i, j int) bool {
		ti, tj := total(entries[i]), total(entries[j])
		if ti == nil {
			return false
		}
		if tj == nil {
			return true
		}
		return *ti > *tj
	})
	for i := range entries {
		setRank(&entries[i], i+1)
	}
}

// hasAnyGame reports whether any member row contributed any game value.
func hasAnyGame(g1, g2, g3 *int) bool {
	return g1 != nil || g2 != nil || g3 != nil
}

// BuildTeamStandings aggregates team-event rows into the ranked team board.
// Each slot sums the non-null games across the roster; the handicap side sums
// every roster member's stored handicap regardless of whether that member has
// bowled yet. Teams where nobody bowled are left off the board entirely.
func BuildTeamStandings(rows []ScoreRow) []TeamEntry {
	g := groupRows(rows, func(r ScoreRow) int { return r.TnmtID })

	entries := make([]TeamEntry, 0, len(g.keys))
	for _, id := range g.keys {
		members := g.rows[id]
		var g1, g2, g3, hdcpSum *int
		for _, m := range members {
			g1 = addOpt(g1, m.Game1)
			g2 = addOpt(g2, m.Game2)
			g3 = addOpt(g3, m.Game3)
			hdcpSum = addOpt(hdcpSum, m.Handicap)
		}
		if !hasAnyGame(g1, g2, g3) {
			continue
		}

		entry := TeamEntry{
			TnmtID: id,
			Name:   members[0].TeamName,
			Slug:   members[0].Slug,
			Game1:  g1,
			Game2:  g2,
			Game3:  g3,
		}
		entry.TotalScratch = seriesTotal(g1, g2, g3)
		entry.Hdcp = intPtr(orZero(hdcpSum) * gamesPerEvent)
		if entry.TotalScratch != nil {
			entry.Total = intPtr(*entry.TotalScratch + *entry.Hdcp)
		}
		entries = append(entries, entry)
	}

	rankByTotal(entries, func(e TeamEntry) *int { return e.Total }, func(e *TeamEntry, r int) { e.Rank = r })
	return entries
}

// gamesPerEvent converts a stored per-game handicap into a per-event one.
const gamesPerEvent = 3

// BuildDoublesStandings aggregates doubles-event rows into the ranked pair
// board. Pair totals require every partner's own series to be complete, even
// when the other partner is done; member lines are computed independently.
func BuildDoublesStandings(rows []ScoreRow) []DoublesEntry {
	g := groupRows(rows, func(r ScoreRow) int { return r.Did })

	entries := make([]DoublesEntry, 0, len(g.keys))
	for _, did := range g.keys {
		var (
			g1, g2, g3, hdcpSum *int
			members             []MemberEntry
			names               []string
			allComplete         = true
		)
		for _, m := range g.rows[did] {
			g1 = addOpt(g1, m.Game1)
			g2 = addOpt(g2, m.Game2)
			g3 = addOpt(g3, m.Game3)
			hdcpSum = addOpt(hdcpSum, m.Handicap)
			if !complete(m.Game1, m.Game2, m.Game3) {
				allComplete = false
			}
			members = append(members, buildMember(m))
			names = append(names, DisplayName(m.FirstName, m.LastName, m.Nickname))
		}
		if !hasAnyGame(g1, g2, g3) {
			continue
		}

		entry := DoublesEntry{
			Did:      did,
			PairName: joinNames(names),
			Game1:    g1,
			Game2:    g2,
			Game3:    g3,
			Members:  members,
		}
		if allComplete {
			entry.TotalScratch = seriesTotal(g1, g2, g3)
		}
		entry.Hdcp = intPtr(orZero(hdcpSum) * gamesPerEvent)
		if entry.TotalScratch != nil {
			entry.Total = intPtr(*entry.TotalScratch + *entry.Hdcp)
		}
		entries = append(entries, entry)
	}

	rankByTotal(entries, func(e DoublesEntry) *int { return e.Total }, func(e *DoublesEntry, r int) { e.Rank = r })
	return entries
}

func buildMember(row ScoreRow) MemberEntry {
	m := MemberEntry{
		Pid:   row.Pid,
		Name:  DisplayName(row.FirstName, row.LastName, row.Nickname),
		Game1: row.Game1,
		Game2: row.Game2,
		Game3: row.Game3,
	}
	m.TotalScratch = seriesTotal(row.Game1, row.Game2, row.Game3)
	m.Hdcp = intPtr(orZero(row.Handicap) * gamesPerEvent)
	if m.TotalScratch != nil {
		m.Total = intPtr(*m.TotalScratch + *m.Hdcp)
	}
	return m
}

func joinNames(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += " / "
		}
		out += n
	}
	return out
}

// BuildSinglesStandings is the single-member case of the same rules.
func BuildSinglesStandings(rows []ScoreRow) []SinglesEntry {
	g := groupRows(rows, func(r ScoreRow) string { return r.Pid })

	entries := make([]SinglesEntry, 0, len(g.keys))
	for _, pid := range g.keys {
		row := g.rows[pid][0]
		if !hasAnyGame(row.Game1, row.Game2, row.Game3) {
			continue
		}

		entry := SinglesEntry{
			Pid:      pid,
			Name:     DisplayName(row.FirstName, row.LastName, row.Nickname),
			Division: row.Division,
			Game1:    row.Game1,
			Game2:    row.Game2,
			Game3:    row.Game3,
		}
		entry.TotalScratch = seriesTotal(row.Game1, row.Game2, row.Game3)
		entry.Hdcp = intPtr(orZero(row.Handicap) * gamesPerEvent)
		if entry.TotalScratch != nil {
			entry.Total = intPtr(*entry.TotalScratch + *entry.Hdcp)
		}
		entries = append(entries, entry)
	}

	rankByTotal(entries, func(e SinglesEntry) *int { return e.Total }, func(e *SinglesEntry, r int) { e.Rank = r })
	return entries
}

// BuildScoreStandings runs all three builders over their respective row sets.
func BuildScoreStandings(rows ScoreRows) Standings {
	return Standings{
		Team:    BuildTeamStandings(rows.Team),
		Doubles: BuildDoublesStandings(rows.Doubles),
		Singles: BuildSinglesStandings(rows.Singles),
	}
}
