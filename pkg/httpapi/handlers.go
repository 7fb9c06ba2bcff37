package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/msolovieva/tg-cycle-companion/pkg/cycle"
	"github.com/msolovieva/tg-cycle-companion/pkg/db"
	"github.com/msolovieva/tg-cycle-companion/pkg/logger"
)

const dateLayout = "2006-01-02"

type periodJSON struct {
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	DurationDays int    `json:"duration_days"`
}

type createPeriodRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type updatePeriodRequest struct {
	EndDate string `json:"end_date"`
}

func toPeriodJSON(r cycle.PeriodRecord) periodJSON {
	return periodJSON{
		StartDate:    r.StartDate.Format(dateLayout),
		EndDate:      r.EndDate().Format(dateLayout),
		DurationDays: r.DurationDays,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func parseDay(value string) (time.Time, bool) {
	day, err := time.ParseInLocation(dateLayout, value, time.UTC)
	return day, err == nil
}

func getHistory(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	history := db.GetHistory(userKeyFrom(r))
	sort.Slice(history, func(i, j int) bool {
		return history[i].StartDate.After(history[j].StartDate)
	})
	out := make([]periodJSON, 0, len(history))
	for _, rec := range history {
		out = append(out, toPeriodJSON(rec))
	}
	writeJSON(w, http.StatusOK, out)
}

func createPeriod(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req createPeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	start, ok := parseDay(req.StartDate)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid start_date, expected YYYY-MM-DD")
		return
	}
	if start.After(cycle.Date(time.Now().UTC())) {
		writeError(w, http.StatusBadRequest, "start_date is in the future")
		return
	}
	end := start
	if req.EndDate != "" {
		if end, ok = parseDay(req.EndDate); !ok {
			writeError(w, http.StatusBadRequest, "invalid end_date, expected YYYY-MM-DD")
			return
		}
	} else {
		key := userKeyFrom(r)
		end = start.AddDate(0, 0, db.GetSettings(key).AveragePeriodLength-1)
	}

	key := userKeyFrom(r)
	history := db.GetHistory(key)
	updated, err := cycle.AddPeriodWithDates(history, start, end)
	if err != nil {
		if errors.Is(err, cycle.ErrInvalidRange) {
			writeError(w, http.StatusBadRequest, "end_date is before start_date")
			return
		}
		logger.Error("failed to add period", "user_key", key, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if err := db.SaveHistory(key, updated); err != nil {
		logger.Error("failed to save history", "user_key", key, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, toPeriodJSON(cycle.PeriodRecord{
		StartDate:    cycle.Date(start),
		DurationDays: int(cycle.Date(end).Sub(cycle.Date(start)).Hours()/24) + 1,
	}))
}

func updatePeriod(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	start, ok := parseDay(p.ByName("start"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid start date in path, expected YYYY-MM-DD")
		return
	}
	var req updatePeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	end, ok := parseDay(req.EndDate)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid end_date, expected YYYY-MM-DD")
		return
	}

	key := userKeyFrom(r)
	history := db.GetHistory(key)
	updated, err := cycle.UpdatePeriodEndDate(history, start, end)
	if err != nil {
		switch {
		case errors.Is(err, cycle.ErrNotFound):
			writeError(w, http.StatusNotFound, "no period with that start date")
		case errors.Is(err, cycle.ErrInvalidRange):
			writeError(w, http.StatusBadRequest, "end_date is before start_date")
		default:
			logger.Error("failed to update period", "user_key", key, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	if err := db.SaveHistory(key, updated); err != nil {
		logger.Error("failed to save history", "user_key", key, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toPeriodJSON(cycle.PeriodRecord{
		StartDate:    cycle.Date(start),
		DurationDays: int(cycle.Date(end).Sub(cycle.Date(start)).Hours()/24) + 1,
	}))
}

func deletePeriod(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	start, ok := parseDay(p.ByName("start"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid start date in path, expected YYYY-MM-DD")
		return
	}

	key := userKeyFrom(r)
	history := db.GetHistory(key)
	updated, err := cycle.RemovePeriod(history, start)
	if err != nil {
		if errors.Is(err, cycle.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no period with that start date")
			return
		}
		logger.Error("failed to delete period", "user_key", key, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if err := db.SaveHistory(key, updated); err != nil {
		logger.Error("failed to save history", "user_key", key, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// The numeric fields stay present even at zero: days_until_next_period is 0
// exactly when the period is due, days_until_ovulation is 0 on ovulation day.
type snapshotJSON struct {
	HasData               bool   `json:"has_data"`
	CurrentCycleDay       int    `json:"current_cycle_day"`
	DaysUntilNextPeriod   int    `json:"days_until_next_period"`
	DaysUntilOvulation    int    `json:"days_until_ovulation"`
	Fertility             string `json:"fertility,omitempty"`
	OnPeriod              bool   `json:"on_period"`
	PeriodDay             int    `json:"period_day"`
	PeriodProgressPercent int    `json:"period_progress_percent"`
	Tip                   string `json:"tip,omitempty"`
}

func getSnapshot(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	key := userKeyFrom(r)
	history := db.GetHistory(key)
	settings := db.GetSettings(key)
	snap := cycle.ComputeSnapshot(history, settings, cycle.Date(time.Now().UTC()))

	out := snapshotJSON{
		HasData:               snap.HasData,
		CurrentCycleDay:       snap.CurrentCycleDay,
		DaysUntilNextPeriod:   snap.DaysUntilNextPeriod,
		DaysUntilOvulation:    snap.DaysUntilOvulation,
		Fertility:             string(snap.Fertility),
		OnPeriod:              snap.OnPeriod,
		PeriodDay:             snap.PeriodDay,
		PeriodProgressPercent: snap.PeriodProgressPercent,
	}
	if snap.HasData {
		out.Tip = cycle.DailyTip(snap)
	}
	writeJSON(w, http.StatusOK, out)
}
