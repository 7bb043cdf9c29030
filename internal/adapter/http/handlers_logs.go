package adapthttp

import (
	"net/http"

	"forge/internal/app"
	"forge/internal/domain"
)

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	switch r.Method {
	case http.MethodGet:
		runs, err := s.svc.Runs.List(ctx)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": runs})

	case http.MethodPost:
		var body struct {
			DurationSeconds int    `json:"durationSeconds"`
			DistanceMeters  int    `json:"distanceMeters"`
			Note            string `json:"note"`
		}
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		run, err := s.svc.Runs.Record(ctx, body.DurationSeconds, body.DistanceMeters, body.Note)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"run": run})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleRunTimer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	switch r.Method {
	case http.MethodGet:
		elapsed, running, err := s.svc.Runs.Elapsed(ctx)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"running": running, "elapsedSeconds": int(elapsed.Seconds())})

	case http.MethodPost:
		var body struct {
			Action         string `json:"action"`
			DistanceMeters int    `json:"distanceMeters"`
			Note           string `json:"note"`
		}
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		switch body.Action {
		case "start":
			timer, err := s.svc.Runs.Start(ctx)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"timer": timer})
		case "stop":
			run, err := s.svc.Runs.Stop(ctx, body.DistanceMeters, body.Note)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, map[string]any{"run": run})
		case "discard":
			if err := s.svc.Runs.Discard(ctx); err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		default:
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "action must be start, stop or discard"})
		}

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleFocus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	switch r.Method {
	case http.MethodGet:
		timer, _, err := s.svc.Focus.Status(ctx)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		sessions, err := s.svc.Focus.List(ctx)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"timer": timer, "items": sessions})

	case http.MethodPost:
		var body struct {
			Action  string `json:"action"`
			Minutes int    `json:"minutes"`
		}
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		var (
			timer   domain.FocusTimer
			session *domain.FocusSession
			err     error
		)
		switch body.Action {
		case "start":
			if body.Minutes == 0 {
				body.Minutes = domain.FocusPresetShort
			}
			timer, err = s.svc.Focus.Start(ctx, body.Minutes)
		case "pause":
			timer, session, err = s.svc.Focus.Pause(ctx)
		case "hide":
			timer, session, err = s.svc.Focus.Hide(ctx)
		case "resume":
			timer, err = s.svc.Focus.Resume(ctx)
		case "stop":
			session, err = s.svc.Focus.Stop(ctx)
			timer = domain.FocusTimer{State: domain.TimerIdle}
		default:
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "unknown focus action"})
			return
		}
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"timer": timer, "session": session})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleMeals(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	switch r.Method {
	case http.MethodGet:
		meals, err := s.svc.Meals.List(ctx)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		_, total, err := s.svc.Meals.Today(ctx)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": meals, "todayCalories": total})

	case http.MethodPost:
		var body struct {
			Name     string          `json:"name"`
			Calories int             `json:"calories"`
			MealType domain.MealType `json:"mealType"`
			Time     string          `json:"time"`
		}
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		meal, err := s.svc.Meals.Log(ctx, app.MealInput(body))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"meal": meal})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleMealDelete(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	var body struct {
		ID int64 `json:"id"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.svc.Meals.Delete(r.Context(), body.ID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "deleted": body.ID})
}

func (s *Server) handleWorkouts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	switch r.Method {
	case http.MethodGet:
		workouts, err := s.svc.Workouts.List(ctx)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": workouts})

	case http.MethodPost:
		var body struct {
			Name            string `json:"name"`
			Type            string `json:"type"`
			DurationMinutes int    `json:"durationMinutes"`
			Quick           bool   `json:"quick"`
		}
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		var (
			workout domain.Workout
			err     error
		)
		if body.Quick {
			workout, err = s.svc.Workouts.QuickLog(ctx)
		} else {
			workout, err = s.svc.Workouts.Plan(ctx, body.Name, body.Type, body.DurationMinutes)
		}
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"workout": workout})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleWorkoutComplete(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	var body struct {
		ID int64 `json:"id"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	workout, err := s.svc.Workouts.Complete(r.Context(), body.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"workout": workout})
}
