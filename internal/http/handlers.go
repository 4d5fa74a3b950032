package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/lanetalk/tenpin/internal/importer"
	"github.com/lanetalk/tenpin/internal/standings"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Received request to clear entire store")
		s.Store.Clear()
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Store cleared!")
		log.Info("Store cleared successfully")
	}
}

func (s *Server) StandingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := s.Store.AllScoreRows()
		if err != nil {
			log.Error("Failed to load score rows", "error", err)
			http.Error(w, "Failed to load scores", http.StatusInternalServerError)
			return
		}

		st := standings.BuildScoreStandings(rows)
		s.Metrics.IncStandingsBuilds()
		s.MetricsStore.Increment("standings_builds")
		writeJSON(w, http.StatusOK, st)
	}
}

func (s *Server) ScratchMastersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := s.Store.AllScoreRows()
		if err != nil {
			log.Error("Failed to load score rows", "error", err)
			http.Error(w, "Failed to load scores", http.StatusInternalServerError)
			return
		}

		boards := standings.BuildScratchMasters(allRows(rows))
		writeJSON(w, http.StatusOK, boards)
	}
}

func (s *Server) OptionalEventsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := s.Store.AllScoreRows()
		if err != nil {
			log.Error("Failed to load score rows", "error", err)
			http.Error(w, "Failed to load scores", http.StatusInternalServerError)
			return
		}

		boards := standings.BuildOptionalEventsStandings(allRows(rows))
		writeJSON(w, http.StatusOK, boards)
	}
}

// allRows flattens the per-event row sets for the divisional boards, which
// rank across all three events.
func allRows(rows standings.ScoreRows) []standings.ScoreRow {
	out := make([]standings.ScoreRow, 0, len(rows.Team)+len(rows.Doubles)+len(rows.Singles))
	out = append(out, rows.Team...)
	out = append(out, rows.Doubles...)
	out = append(out, rows.Singles...)
	return out
}

func (s *Server) BowlerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pid := r.URL.Query().Get("pid")
		if pid == "" {
			http.Error(w, "Missing 'pid' parameter", http.StatusBadRequest)
			return
		}

		view, err := s.Store.FormatParticipant(pid)
		if err != nil {
			log.Warn("Failed to format participant", "pid", pid, "error", err)
			http.Error(w, "Bowler not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

type linkRequest struct {
	OwnerPid  string `json:"owner_pid"`
	TargetPid string `json:"target_pid"`
	Override  bool   `json:"override"`
}

func (s *Server) LinkPartnersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req linkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.OwnerPid == "" || req.TargetPid == "" {
			http.Error(w, "owner_pid and target_pid are required", http.StatusBadRequest)
			return
		}
		if r.URL.Query().Get("override") == "true" {
			req.Override = true
		}

		conflict, err := s.Pairing.LinkPartners(req.OwnerPid, req.TargetPid, req.Override)
		if err != nil {
			log.Error("Failed to link partners", "owner", req.OwnerPid, "target", req.TargetPid, "error", err)
			http.Error(w, "Failed to link partners", http.StatusInternalServerError)
			return
		}
		if conflict != nil {
			// The processor owns the conflict counter.
			s.MetricsStore.Increment("pairing_conflicts")
			s.Processor.ReportPairingConflict(req.OwnerPid, conflict, isDryRunFromContext(r))
			writeJSON(w, http.StatusConflict, conflict)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "linked"})
	}
}

type pidRequest struct {
	Pid string `json:"pid"`
}

func (s *Server) ClearPartnerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req pidRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Pid == "" {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if err := s.Pairing.ClearPartner(req.Pid); err != nil {
			log.Error("Failed to clear partner", "pid", req.Pid, "error", err)
			http.Error(w, "Failed to clear partner", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
	}
}

func (s *Server) RemoveFromTeamHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req pidRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Pid == "" {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if err := s.Pairing.RemoveFromTeam(req.Pid); err != nil {
			log.Error("Failed to remove bowler from team", "pid", req.Pid, "error", err)
			http.Error(w, "Failed to remove bowler", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
	}
}

func (s *Server) ImportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var updates []importer.ScoreUpdate
		if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		result, err := s.Importer.Apply(updates)
		if err != nil {
			log.Error("Failed to apply import batch", "error", err)
			http.Error(w, "Failed to apply import", http.StatusInternalServerError)
			return
		}

		s.MetricsStore.Increment("import_batches")
		s.Processor.ReportImport(result, isDryRunFromContext(r))
		writeJSON(w, http.StatusOK, result)
	}
}

func (s *Server) PublishHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := s.Processor.PublishStandings(isDryRunFromContext(r))
		if err != nil {
			http.Error(w, "Failed to publish standings", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, st)
	}
}
