package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/chainlaunch/editcore/pkg/editcore/apply"
	"github.com/chainlaunch/editcore/pkg/editcore/block"
	"github.com/chainlaunch/editcore/pkg/editcore/project"
	apperrors "github.com/chainlaunch/editcore/pkg/errors"
	httpresponse "github.com/chainlaunch/editcore/pkg/http/response"
)

// BatchRequest is the payload for POST /v1/batches: a project root on disk
// and the raw model response text to parse for blocks.
type BatchRequest struct {
	ProjectRoot   string `json:"projectRoot" validate:"required"`
	ModelResponse string `json:"modelResponse" validate:"required"`
}

// BatchResponse is an apply.EditResult flattened for the wire, substituting
// the resolved relative paths for ProjectFile keys.
type BatchResponse struct {
	BatchID      string            `json:"batchId"`
	ParseError   string            `json:"parseError,omitempty"`
	UpdatedFiles []string          `json:"updatedFiles"`
	FailedBlocks []FailedBlockWire `json:"failedBlocks"`
	Warnings     []string          `json:"warnings,omitempty"`
}

// FailedBlockWire is one EditResult.FailedBlocks entry on the wire.
type FailedBlockWire struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

// PostBatch godoc
// @Summary      Apply a batch of SEARCH/REPLACE blocks
// @Description  Parses modelResponse for SEARCH/REPLACE blocks, resolves each against projectRoot, and applies them with per-file rollback on failure.
// @Tags         batches
// @Accept       json
// @Produce      json
// @Param        request body BatchRequest true "batch request"
// @Success      200 {object} BatchResponse
// @Failure      400 {object} httpresponse.Response
// @Router       /v1/batches [post]
func (h *Handler) PostBatch(w http.ResponseWriter, r *http.Request) error {
	var req BatchRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		return apperrors.Wrap(apperrors.ValidationError, "invalid request body", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return apperrors.Wrap(apperrors.ValidationError, "request validation failed", err)
	}

	parsed := block.Parse(req.ModelResponse)

	ctx, err := project.NewLocalContext(req.ProjectRoot)
	if err != nil {
		return apperrors.Wrap(apperrors.IOError, "failed to open project root", err)
	}

	startedAt := time.Now()
	result := apply.Run(apply.Options{
		Context: ctx,
		Stager:  h.Stager,
		Log:     h.Log,
		BatchID: uuid.NewString(),
	}, parsed.Blocks)
	finishedAt := time.Now()

	if h.History != nil {
		if err := h.History.RecordBatch(startedAt, finishedAt, result); err != nil && h.Log != nil {
			h.Log.Warnf("failed to record batch history (non-fatal): %v", err)
		}
	}

	resp := BatchResponse{
		BatchID:    result.BatchID,
		ParseError: parsed.ParseError,
		Warnings:   result.Warnings,
	}
	for key, file := range result.Files {
		if !result.RolledBackKeys[key] {
			resp.UpdatedFiles = append(resp.UpdatedFiles, file.RelativePath())
		}
	}
	for _, fb := range result.FailedBlocks {
		resp.FailedBlocks = append(resp.FailedBlocks, FailedBlockWire{
			Filename: fb.Block.Filename,
			Reason:   string(fb.Reason),
		})
	}

	return httpresponse.WriteJSON(w, http.StatusOK, resp)
}

// BatchSummaryWire is one ListBatches response row.
type BatchSummaryWire struct {
	ID           string `json:"id"`
	StartedAt    string `json:"startedAt"`
	FinishedAt   string `json:"finishedAt"`
	UpdatedFiles int    `json:"updatedFiles"`
	RolledBack   int    `json:"rolledBack"`
}

// ListBatches godoc
// @Summary      List recently applied batches
// @Tags         batches
// @Produce      json
// @Success      200 {array} BatchSummaryWire
// @Router       /v1/batches [get]
func (h *Handler) ListBatches(w http.ResponseWriter, r *http.Request) error {
	if h.History == nil {
		return httpresponse.WriteJSON(w, http.StatusOK, []BatchSummaryWire{})
	}
	batches, err := h.History.ListBatches(50)
	if err != nil {
		return apperrors.Wrap(apperrors.IOError, "failed to list batches", err)
	}
	out := make([]BatchSummaryWire, len(batches))
	for i, b := range batches {
		out[i] = BatchSummaryWire{
			ID:           b.ID,
			StartedAt:    b.StartedAt.Format(time.RFC3339),
			FinishedAt:   b.FinishedAt.Format(time.RFC3339),
			UpdatedFiles: b.UpdatedFiles,
			RolledBack:   b.RolledBack,
		}
	}
	return httpresponse.WriteJSON(w, http.StatusOK, out)
}
