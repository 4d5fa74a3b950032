package standings

// ScratchMastersEntry is one bowler's line on the scratch-masters divisional
// board: per-game breakdown across all three events, no handicap applied.
type ScratchMastersEntry struct {
	Rank         int      `json:"rank"`
	Pid          string   `json:"pid"`
	Name         string   `json:"name"`
	Division     Division `json:"division"`
	T1           *int     `json:"t1"`
	T2           *int     `json:"t2"`
	T3           *int     `json:"t3"`
	D1           *int     `json:"d1"`
	D2           *int     `json:"d2"`
	D3           *int     `json:"d3"`
	S1           *int     `json:"s1"`
	S2           *int     `json:"s2"`
	S3           *int     `json:"s3"`
	TotalScratch *int     `json:"total_scratch"`
	Total        *int     `json:"total"`
}

// BuildScratchMasters groups rows into the fixed division ordering and ranks
// each division by scratch total across however many events a bowler has
// bowled. Bowlers with no scored games stay on the board with nil totals,
// ranked after everyone who has bowled. Every division is present in the
// result, empty ones as empty slices.
func BuildScratchMasters(rows []ScoreRow) map[Division][]ScratchMastersEntry {
	byPid := groupRows(rows, func(r ScoreRow) string { return r.Pid })

	byDivision := make(map[Division][]ScratchMastersEntry, len(Divisions))
	for _, div := range Divisions {
		byDivision[div] = []ScratchMastersEntry{}
	}

	for _, pid := range byPid.keys {
		memberRows := byPid.rows[pid]
		first := memberRows[0]
		entry := ScratchMastersEntry{
			Pid:      pid,
			Name:     DisplayName(first.FirstName, first.LastName, first.Nickname),
			Division: first.Division,
		}
		if _, ok := byDivision[entry.Division]; !ok {
			// Rows outside the fixed division set have no board to land on.
			continue
		}

		var total *int
		for _, r := range memberRows {
			switch r.EventType {
			case EventTeam:
				entry.T1, entry.T2, entry.T3 = r.Game1, r.Game2, r.Game3
			case EventDoubles:
				entry.D1, entry.D2, entry.D3 = r.Game1, r.Game2, r.Game3
			case EventSingles:
				entry.S1, entry.S2, entry.S3 = r.Game1, r.Game2, r.Game3
			}
			total = addOpt(addOpt(addOpt(total, r.Game1), r.Game2), r.Game3)
		}
		entry.TotalScratch = total
		entry.Total = total

		byDivision[entry.Division] = append(byDivision[entry.Division], entry)
	}

	for _, div := range Divisions {
		rankByTotal(byDivision[div],
			func(e ScratchMastersEntry) *int { return e.Total },
			func(e *ScratchMastersEntry, r int) { e.Rank = r })
	}
	return byDivision
}
