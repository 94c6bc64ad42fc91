package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gitpulse-io/gitpulse/internal/models"
	"github.com/gitpulse-io/gitpulse/internal/service"
	"github.com/gitpulse-io/gitpulse/pkg/errors"
	"github.com/gitpulse-io/gitpulse/pkg/logger"
	"github.com/gorilla/mux"
)

type DashboardHandler struct {
	service *service.DashboardService
}

func NewDashboardHandler(service *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/session/credential", h.updateCredential).Methods("PUT")
	r.HandleFunc("/session/settings", h.updateSettings).Methods("PUT")
	r.HandleFunc("/repositories/fetch", h.fetchRepositories).Methods("POST")
	r.HandleFunc("/repositories", h.listRepositories).Methods("GET")
	r.HandleFunc("/repositories/{name}/select", h.selectRepository).Methods("POST")
	r.HandleFunc("/dashboard/heatmap", h.getHeatmap).Methods("GET")
	r.HandleFunc("/dashboard/heatmap/chart", h.getHeatmapChart).Methods("GET")
	r.HandleFunc("/dashboard/month", h.getMonthGrid).Methods("GET")
	r.HandleFunc("/dashboard/month/navigate", h.navigateMonth).Methods("POST")
	r.HandleFunc("/dashboard/month/set", h.setMonthYear).Methods("POST")
	r.HandleFunc("/dashboard/month/options", h.getPickerOptions).Methods("GET")
	r.HandleFunc("/dashboard/date", h.selectDate).Methods("POST")
	r.HandleFunc("/dashboard/commits", h.getSelectedDateCommits).Methods("GET")
	r.HandleFunc("/dashboard/recent", h.getRecentCommits).Methods("GET")
	r.HandleFunc("/dashboard/summary", h.getSummary).Methods("GET")
	r.HandleFunc("/dashboard/contributors", h.getContributors).Methods("GET")
	r.HandleFunc("/dashboard/status", h.getStatus).Methods("GET")
}

func writeSuccess(w http.ResponseWriter, data interface{}, message ...string) {
	resp := APIResponse{
		Status: "success",
		Data:   data,
	}
	if len(message) > 0 {
		resp.Message = message[0]
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// updateCredential godoc
// @Summary Update credential
// @Description Stores the GitHub token and username used for all fetches
// @Tags Session
// @Accept json
// @Produce json
// @Param credential body CredentialRequest true "Credential"
// @Success 200 {object} APIResponse
// @Failure 400 {string} string "Invalid request"
// @Router /session/credential [put]
func (h *DashboardHandler) updateCredential(w http.ResponseWriter, r *http.Request) {
	var req CredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	h.service.UpdateCredential(r.Context(), models.Credential{Token: req.Token, Username: req.Username})
	writeSuccess(w, map[string]string{"username": req.Username}, "Credential updated")
}

// updateSettings godoc
// @Summary Update fetch settings
// @Description Stores fetch-all flag, fetch count (1-100) and commit lookback months
// @Tags Session
// @Accept json
// @Produce json
// @Param settings body SettingsRequest true "Settings"
// @Success 200 {object} APIResponse
// @Failure 400 {string} string "Invalid request"
// @Router /session/settings [put]
func (h *DashboardHandler) updateSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	h.service.UpdateSettings(r.Context(), models.FetchSettings{
		FetchAll:       req.FetchAll,
		FetchCount:     req.FetchCount,
		LookbackMonths: req.LookbackMonths,
	})
	writeSuccess(w, h.service.Settings(), "Settings updated")
}

// fetchRepositories godoc
// @Summary Fetch repositories
// @Description Fetches the repository listing from GitHub per current settings
// @Tags Repositories
// @Produce json
// @Success 200 {object} APIResponse
// @Failure 502 {object} errors.HTTPErrorResponse
// @Router /repositories/fetch [post]
func (h *DashboardHandler) fetchRepositories(w http.ResponseWriter, r *http.Request) {
	repos, err := h.service.FetchRepositories(r.Context())
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}

	logger.Info("Fetched %d repositories", len(repos))
	writeSuccess(w, repos, "Successfully fetched repositories")
}

// listRepositories godoc
// @Summary List cached repositories
// @Tags Repositories
// @Produce json
// @Success 200 {object} APIResponse
// @Router /repositories [get]
func (h *DashboardHandler) listRepositories(w http.ResponseWriter, r *http.Request) {
	repos := h.service.Repositories()
	if repos == nil {
		repos = []models.Repository{}
	}
	writeSuccess(w, repos)
}

// selectRepository godoc
// @Summary Select a repository
// @Description Fetches commits and contributors for a repository from the cached list
// @Tags Repositories
// @Produce json
// @Param name path string true "Repository name"
// @Success 200 {object} APIResponse
// @Failure 404 {object} errors.HTTPErrorResponse
// @Failure 502 {object} errors.HTTPErrorResponse
// @Router /repositories/{name}/select [post]
func (h *DashboardHandler) selectRepository(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	data, err := h.service.SelectRepository(r.Context(), name)
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}

	writeSuccess(w, data, "Successfully fetched repository details")
}

// getHeatmap godoc
// @Summary Contribution heatmap
// @Description 365 day cells ending today, grouped week-major into columns of 7
// @Tags Dashboard
// @Produce json
// @Success 200 {object} APIResponse
// @Router /dashboard/heatmap [get]
func (h *DashboardHandler) getHeatmap(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, h.service.Heatmap())
}

// getMonthGrid godoc
// @Summary Month calendar grid
// @Description Sunday-first rows for the selected date's month, blanks outside the month
// @Tags Dashboard
// @Produce json
// @Success 200 {object} APIResponse
// @Router /dashboard/month [get]
func (h *DashboardHandler) getMonthGrid(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, h.service.MonthGrid())
}

// navigateMonth godoc
// @Summary Navigate months
// @Description Moves the selected date by delta months, clamping the day-of-month
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param request body NavigateMonthRequest true "Delta"
// @Success 200 {object} APIResponse
// @Failure 400 {string} string "Invalid request"
// @Router /dashboard/month/navigate [post]
func (h *DashboardHandler) navigateMonth(w http.ResponseWriter, r *http.Request) {
	var req NavigateMonthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	next := h.service.NavigateMonth(r.Context(), req.Delta)
	writeSuccess(w, map[string]string{"selected_date": next.Format(time.RFC3339)})
}

// setMonthYear godoc
// @Summary Jump to month or year
// @Description Direct month/year picker; either dimension may be set, day clamps to month length
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param request body SetMonthYearRequest true "Month (1-12) and/or year"
// @Success 200 {object} APIResponse
// @Failure 400 {string} string "Invalid request"
// @Router /dashboard/month/set [post]
func (h *DashboardHandler) setMonthYear(w http.ResponseWriter, r *http.Request) {
	var req SetMonthYearRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if req.Month != 0 && (req.Month < 1 || req.Month > 12) {
		http.Error(w, "Month must be between 1 and 12", http.StatusBadRequest)
		return
	}

	next := h.service.SelectedDate()
	if req.Month != 0 {
		next = h.service.SetMonth(r.Context(), time.Month(req.Month))
	}
	if req.Year != 0 {
		next = h.service.SetYear(r.Context(), req.Year)
	}
	writeSuccess(w, map[string]string{"selected_date": next.Format(time.RFC3339)})
}

// getPickerOptions godoc
// @Summary Month and year picker options
// @Description Twelve months and a ten-year window starting five years back
// @Tags Dashboard
// @Produce json
// @Success 200 {object} APIResponse
// @Router /dashboard/month/options [get]
func (h *DashboardHandler) getPickerOptions(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, h.service.PickerOptions())
}

// selectDate godoc
// @Summary Select a date
// @Description Sets the selection cursor; the selected-day commit list follows
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param request body SelectDateRequest true "Date (YYYY-MM-DD or RFC3339)"
// @Success 200 {object} APIResponse
// @Failure 400 {string} string "Invalid request"
// @Router /dashboard/date [post]
func (h *DashboardHandler) selectDate(w http.ResponseWriter, r *http.Request) {
	var req SelectDateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		date, err = time.Parse(time.RFC3339, req.Date)
	}
	if err != nil {
		http.Error(w, "Date must be YYYY-MM-DD or RFC3339", http.StatusBadRequest)
		return
	}

	h.service.SelectDate(r.Context(), date)
	writeSuccess(w, map[string]any{
		"selected_date": date.UTC().Format("2006-01-02"),
		"commit_count":  len(h.service.SelectedDateCommits()),
	})
}

// getSelectedDateCommits godoc
// @Summary Commits on the selected date
// @Tags Dashboard
// @Produce json
// @Success 200 {object} APIResponse
// @Router /dashboard/commits [get]
func (h *DashboardHandler) getSelectedDateCommits(w http.ResponseWriter, r *http.Request) {
	commits := h.service.SelectedDateCommits()
	if commits == nil {
		commits = []models.Commit{}
	}
	writeSuccess(w, commits)
}

// getRecentCommits godoc
// @Summary Recent commits
// @Description The ten most recent commits of the selected repository
// @Tags Dashboard
// @Produce json
// @Success 200 {object} APIResponse
// @Router /dashboard/recent [get]
func (h *DashboardHandler) getRecentCommits(w http.ResponseWriter, r *http.Request) {
	commits := h.service.RecentCommits(10)
	if commits == nil {
		commits = []models.Commit{}
	}
	writeSuccess(w, commits)
}

// getSummary godoc
// @Summary Activity summary
// @Description Aggregate commit figures over the fetched history
// @Tags Dashboard
// @Produce json
// @Success 200 {object} APIResponse
// @Router /dashboard/summary [get]
func (h *DashboardHandler) getSummary(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, h.service.Summary())
}

// getContributors godoc
// @Summary Contributors of the selected repository
// @Tags Dashboard
// @Produce json
// @Success 200 {object} APIResponse
// @Router /dashboard/contributors [get]
func (h *DashboardHandler) getContributors(w http.ResponseWriter, r *http.Request) {
	contributors := h.service.Contributors()
	if contributors == nil {
		contributors = []models.Contributor{}
	}
	writeSuccess(w, contributors)
}

// getStatus godoc
// @Summary Dashboard status
// @Description Loading flag, latest error banner and the selection cursor
// @Tags Dashboard
// @Produce json
// @Success 200 {object} APIResponse
// @Router /dashboard/status [get]
func (h *DashboardHandler) getStatus(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, StatusResponse{
		Loading:      h.service.Loading(),
		LastError:    h.service.LastError(),
		SelectedDate: h.service.SelectedDate(),
		SelectedRepo: h.service.SelectedRepo(),
	})
}
