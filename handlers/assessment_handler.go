package handlers

import (
	"net/http"
	"strconv"

	"github.com/erzer12/y-ultimate/models"
	"github.com/erzer12/y-ultimate/repositories"
	"github.com/erzer12/y-ultimate/services"
)

type AssessmentHandler struct {
	assessmentService services.AssessmentService
}

func NewAssessmentHandler(assessmentService services.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessmentService: assessmentService}
}

func (h *AssessmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateAssessmentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	assessment, err := h.assessmentService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"assessment": assessment}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AssessmentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "assessmentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	assessment, err := h.assessmentService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"assessment": assessment}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AssessmentHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter repositories.AssessmentListFilter
	query := r.URL.Query()
	if raw := query.Get("child_id"); raw != "" {
		childID, err := strconv.Atoi(raw)
		if err != nil {
			badRequestResponse(w, r, err)
			return
		}
		filter.ChildID = &childID
	}
	if raw := query.Get("type"); raw != "" {
		assessmentType := models.AssessmentType(raw)
		filter.AssessmentType = &assessmentType
	}

	assessments, err := h.assessmentService.List(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"assessments": assessments}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AssessmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "assessmentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateAssessmentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	assessment, err := h.assessmentService.Update(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"assessment": assessment}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AssessmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "assessmentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.assessmentService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ChildProgress compares a child's baseline and latest assessments.
func (h *AssessmentHandler) ChildProgress(w http.ResponseWriter, r *http.Request) {
	childID, err := getIDFromURL(r, "childID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	report, err := h.assessmentService.ChildProgress(r.Context(), childID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"progress": report}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
