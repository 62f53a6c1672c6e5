package handlers

import (
	"net/http"
	"strconv"

	"github.com/erzer12/y-ultimate/repositories"
	"github.com/erzer12/y-ultimate/services"
)

type AttendanceHandler struct {
	attendanceService services.AttendanceService
}

func NewAttendanceHandler(attendanceService services.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

func (h *AttendanceHandler) Mark(w http.ResponseWriter, r *http.Request) {
	var input services.MarkAttendanceInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	record, err := h.attendanceService.Mark(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"attendance": record}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AttendanceHandler) BulkMark(w http.ResponseWriter, r *http.Request) {
	var input services.BulkMarkInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	records, err := h.attendanceService.BulkMark(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"attendance": records}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AttendanceHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter repositories.AttendanceListFilter
	query := r.URL.Query()
	for param, target := range map[string]**int{
		"session_id": &filter.SessionID,
		"child_id":   &filter.ChildID,
		"coach_id":   &filter.CoachID,
	} {
		if raw := query.Get(param); raw != "" {
			id, err := strconv.Atoi(raw)
			if err != nil {
				badRequestResponse(w, r, err)
				return
			}
			*target = &id
		}
	}

	records, err := h.attendanceService.List(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"attendance": records}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AttendanceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "attendanceID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateAttendanceInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	record, err := h.attendanceService.Update(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"attendance": record}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AttendanceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "attendanceID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.attendanceService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
