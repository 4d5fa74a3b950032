package standings

import "sort"

// Best3Entry is one line on the best-3-of-9 board: the three highest
// individual games among all nine a bowler rolled across the events.
type Best3Entry struct {
	Rank      int    `json:"rank"`
	Pid       string `json:"pid"`
	Name      string `json:"name"`
	BestGame1 *int   `json:"best_game1"`
	BestGame2 *int   `json:"best_game2"`
	BestGame3 *int   `json:"best_game3"`
	Total     *int   `json:"total"`
}

// AllEventsEntry is one line on the all-events-handicapped board.
type AllEventsEntry struct {
	Rank         int    `json:"rank"`
	Pid          string `json:"pid"`
	Name         string `json:"name"`
	TotalScratch *int   `json:"total_scratch"`
	TotalHdcp    *int   `json:"total_hdcp"`
	Total        *int   `json:"total"`
}

// OptionalScratchEntry is one line on the per-division optional-scratch board.
type OptionalScratchEntry struct {
	Rank         int      `json:"rank"`
	Pid          string   `json:"pid"`
	Name         string   `json:"name"`
	Division     Division `json:"division"`
	TotalScratch *int     `json:"total_scratch"`
	Total        *int     `json:"total"`
}

// OptionalEventsStandings bundles the three independent optional boards.
type OptionalEventsStandings struct {
	Best3Of9        []Best3Entry                        `json:"best_3_of_9"`
	AllEventsHdcp   []AllEventsEntry                    `json:"all_events_hdcp"`
	OptionalScratch map[Division][]OptionalScratchEntry `json:"optional_scratch"`
}

// NewEmptyOptionalEventsStandings returns the canonical empty state: no
// entries on any board, every division present and empty.
func NewEmptyOptionalEventsStandings() OptionalEventsStandings {
	s := OptionalEventsStandings{
		Best3Of9:        []Best3Entry{},
		AllEventsHdcp:   []AllEventsEntry{},
		OptionalScratch: make(map[Division][]OptionalScratchEntry, len(Divisions)),
	}
	for _, div := range Divisions {
		s.OptionalScratch[div] = []OptionalScratchEntry{}
	}
	return s
}

// HasAnyOptionalEvents reports whether any board or division has an entry.
func HasAnyOptionalEvents(s OptionalEventsStandings) bool {
	if len(s.Best3Of9) > 0 || len(s.AllEventsHdcp) > 0 {
		return true
	}
	for _, entries := range s.OptionalScratch {
		if len(entries) > 0 {
			return true
		}
	}
	return false
}

// BuildOptionalEventsStandings produces the three optional boards from rows
// spanning all events. Opt-in flags gate each board independently; a bowler
// who opted in but has not rolled a single game is left off that board.
func BuildOptionalEventsStandings(rows []ScoreRow) OptionalEventsStandings {
	out := NewEmptyOptionalEventsStandings()
	byPid := groupRows(rows, func(r ScoreRow) string { return r.Pid })

	for _, pid := range byPid.keys {
		memberRows := byPid.rows[pid]
		first := memberRows[0]
		name := DisplayName(first.FirstName, first.LastName, first.Nickname)

		var (
			games        []int
			totalScratch *int
			hdcp         *int
			eventsBowled int
			best3        bool
			scratch      bool
			allEvents    bool
		)
		for _, r := range memberRows {
			best3 = best3 || r.OptionalBest3Of9
			scratch = scratch || r.OptionalScratch
			allEvents = allEvents || r.OptionalAllEventsHdcp
			if r.Handicap != nil {
				hdcp = r.Handicap
			}
			bowled := false
			for _, g := range []*int{r.Game1, r.Game2, r.Game3} {
				if g != nil {
					games = append(games, *g)
					totalScratch = addOpt(totalScratch, g)
					bowled = true
				}
			}
			if bowled {
				eventsBowled++
			}
		}
		if len(games) == 0 {
			continue
		}

		if best3 {
			out.Best3Of9 = append(out.Best3Of9, buildBest3Entry(pid, name, games))
		}
		if allEvents {
			entry := AllEventsEntry{Pid: pid, Name: name, TotalScratch: totalScratch}
			if hdcp != nil {
				entry.TotalHdcp = intPtr(*hdcp * eventsBowled)
			}
			entry.Total = intPtr(orZero(totalScratch) + orZero(entry.TotalHdcp))
			out.AllEventsHdcp = append(out.AllEventsHdcp, entry)
		}
		if scratch {
			if _, ok := out.OptionalScratch[first.Division]; ok {
				out.OptionalScratch[first.Division] = append(out.OptionalScratch[first.Division], OptionalScratchEntry{
					Pid:          pid,
					Name:         name,
					Division:     first.Division,
					TotalScratch: totalScratch,
					Total:        totalScratch,
				})
			}
		}
	}

	rankByTotal(out.Best3Of9, func(e Best3Entry) *int { return e.Total }, func(e *Best3Entry, r int) { e.Rank = r })
	rankByTotal(out.AllEventsHdcp, func(e AllEventsEntry) *int { return e.Total }, func(e *AllEventsEntry, r int) { e.Rank = r })
	for _, div := range Divisions {
		rankByTotal(out.OptionalScratch[div],
			func(e OptionalScratchEntry) *int { return e.Total },
			func(e *OptionalScratchEntry, r int) { e.Rank = r })
	}
	return out
}

func buildBest3Entry(pid, name string, games []int) Best3Entry {
	sorted := make([]int, len(games))
	copy(sorted, games)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	entry := Best3Entry{Pid: pid, Name: name}
	slots := []**int{&entry.BestGame1, &entry.BestGame2, &entry.BestGame3}
	total := 0
	for i := 0; i < len(sorted) && i < 3; i++ {
		*slots[i] = intPtr(sorted[i])
		total += sorted[i]
	}
	entry.Total = intPtr(total)
	return entry
}
