package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vncsmyrnk/ballotwizard/internal/core/domain"
	"github.com/vncsmyrnk/ballotwizard/internal/core/ports"
)

const maxBodyBytes = 1 << 20

type WizardHandler struct {
	service ports.SessionService
}

func NewWizardHandler(service ports.SessionService) *WizardHandler {
	return &WizardHandler{
		service: service,
	}
}

type createWizardRequest struct {
	Seed *domain.Draft `json:"seed"`
}

type createWizardResponse struct {
	ID    uuid.UUID          `json:"id"`
	State domain.WizardState `json:"state"`
}

type applyPatchRequest struct {
	Patch          domain.Patch `json:"patch"`
	SkipValidation bool         `json:"skipValidation"`
}

type applyBatchRequest struct {
	Patches []domain.Patch `json:"patches"`
}

type resetRequest struct {
	Seed *domain.Draft `json:"seed"`
}

type blockedResponse struct {
	Error string             `json:"error"`
	State domain.WizardState `json:"state"`
}

type recoveryResponse struct {
	Recovery domain.Recovery    `json:"recovery"`
	State    domain.WizardState `json:"state"`
}

func (h *WizardHandler) CreateWizard(w http.ResponseWriter, r *http.Request) {
	var req createWizardRequest
	if err := decodeOptional(w, r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	id, state, err := h.service.Create(r.Context(), req.Seed)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, createWizardResponse{ID: id, State: state})
}

func (h *WizardHandler) GetWizard(w http.ResponseWriter, r *http.Request) {
	h.withWizard(w, r, func(wz ports.WizardService) error {
		writeJSON(w, http.StatusOK, wz.State())
		return nil
	})
}

func (h *WizardHandler) DeleteWizard(w http.ResponseWriter, r *http.Request) {
	id, ok := wizardID(w, r)
	if !ok {
		return
	}
	if err := h.service.Dispose(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *WizardHandler) ApplyPatch(w http.ResponseWriter, r *http.Request) {
	var req applyPatchRequest
	if err := decode(w, r, &req); err != nil {
		writeServiceError(w, fmt.Errorf("%w: %v", domain.ErrInvalidPatch, err))
		return
	}
	h.withWizard(w, r, func(wz ports.WizardService) error {
		if _, err := wz.Apply(req.Patch, domain.ApplyOptions{SkipValidation: req.SkipValidation}); err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, wz.State())
		return nil
	})
}

func (h *WizardHandler) ApplyBatch(w http.ResponseWriter, r *http.Request) {
	var req applyBatchRequest
	if err := decode(w, r, &req); err != nil {
		writeServiceError(w, fmt.Errorf("%w: %v", domain.ErrInvalidPatch, err))
		return
	}
	h.withWizard(w, r, func(wz ports.WizardService) error {
		if _, err := wz.ApplyBatch(req.Patches); err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, wz.State())
		return nil
	})
}

func (h *WizardHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := decodeOptional(w, r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	h.withWizard(w, r, func(wz ports.WizardService) error {
		if _, err := wz.Reset(req.Seed); err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, wz.State())
		return nil
	})
}

func (h *WizardHandler) Advance(w http.ResponseWriter, r *http.Request) {
	h.withWizard(w, r, func(wz ports.WizardService) error {
		_, err := wz.Advance()
		switch {
		case errors.Is(err, domain.ErrStepBlocked):
			writeJSON(w, http.StatusUnprocessableEntity, blockedResponse{Error: err.Error(), State: wz.State()})
			return nil
		case errors.Is(err, domain.ErrFinalStep):
			writeJSON(w, http.StatusConflict, blockedResponse{Error: err.Error(), State: wz.State()})
			return nil
		case err != nil:
			return err
		}
		writeJSON(w, http.StatusOK, wz.State())
		return nil
	})
}

func (h *WizardHandler) Retreat(w http.ResponseWriter, r *http.Request) {
	h.withWizard(w, r, func(wz ports.WizardService) error {
		wz.Retreat()
		writeJSON(w, http.StatusOK, wz.State())
		return nil
	})
}

func (h *WizardHandler) Recover(w http.ResponseWriter, r *http.Request) {
	h.withWizard(w, r, func(wz ports.WizardService) error {
		rec, ok := wz.Recover(r.Context())
		if !ok {
			http.Error(w, "no recoverable draft", http.StatusNotFound)
			return nil
		}
		writeJSON(w, http.StatusOK, recoveryResponse{Recovery: rec, State: wz.State()})
		return nil
	})
}

func (h *WizardHandler) DiscardRecovery(w http.ResponseWriter, r *http.Request) {
	h.withWizard(w, r, func(wz ports.WizardService) error {
		wz.DiscardRecovery(r.Context())
		w.WriteHeader(http.StatusNoContent)
		return nil
	})
}

func (h *WizardHandler) Submitted(w http.ResponseWriter, r *http.Request) {
	h.withWizard(w, r, func(wz ports.WizardService) error {
		if err := wz.Submitted(r.Context()); err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, wz.State())
		return nil
	})
}

func (h *WizardHandler) withWizard(w http.ResponseWriter, r *http.Request, fn func(ports.WizardService) error) {
	id, ok := wizardID(w, r)
	if !ok {
		return
	}
	if err := h.service.With(r.Context(), id, fn); err != nil {
		writeServiceError(w, err)
	}
}

func wizardID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid wizard id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}

// decodeOptional accepts an empty body.
func decodeOptional(w http.ResponseWriter, r *http.Request, v any) error {
	if err := decode(w, r, v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrWizardNotFound):
		http.Error(w, "wizard not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrWizardClosed):
		http.Error(w, err.Error(), http.StatusGone)
	case errors.Is(err, domain.ErrInvalidPatch):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrUnknownStep):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		slog.Error("wizard request failed", "error", err)
		http.Error(w, domain.ErrInternal.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
