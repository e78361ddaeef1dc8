// Package handlers provides HTTP handlers for the proposal API.
//
// This package contains the demo form, the health check, the layout
// description and proposal generation endpoints.
//
// Example usage:
//
//	h := handlers.NewAPIHandler(service, maxUploadSize, logger)
//	r := chi.NewRouter()
//	r.Post("/api/proposals", h.CreateProposal)
//
// All handlers are designed to be used with the chi router.
package handlers

import (
	"context"
	"embed"
	"encoding/json"
	stderrors "errors"
	"html/template"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"go-proposalpdf/internal/errors"
	"go-proposalpdf/internal/layout"
	"go-proposalpdf/internal/proposal"
	"go-proposalpdf/internal/utils"
)

// HealthMessage is returned by the health endpoint.
const HealthMessage = "API de Propostas funcionando"

const defaultMultipartMemory = 32 << 20

//go:embed templates/*.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// Generator renders proposals. *proposal.Service implements it.
type Generator interface {
	Generate(ctx context.Context, req proposal.Request) ([]byte, error)
	Layout() *layout.Layout
}

type APIHandler struct {
	Generator     Generator
	MaxUploadSize int64
	Logger        *zap.Logger
}

func NewAPIHandler(g Generator, maxUploadSize int64, logger *zap.Logger) *APIHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &APIHandler{Generator: g, MaxUploadSize: maxUploadSize, Logger: logger}
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Index godoc
// @Summary      Demo form
// @Description  Returns an HTML form that posts to /api/proposals
// @Tags         proposals
// @Produce      html
// @Success      200  {string}  string  "HTML page"
// @Router       / [get]
func (h *APIHandler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := struct {
		Fields        []proposal.Field
		MaxUploadSize int64
	}{proposal.Fields, h.MaxUploadSize}
	if err := indexTemplate.Execute(w, data); err != nil {
		h.Logger.Error("failed to render index", zap.String("op", "handlers.Index"), zap.Error(err))
	}
}

// Health godoc
// @Summary      Health check
// @Description  Reports that the service is up
// @Tags         health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Router       /api/health [get]
func (h *APIHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Message: HealthMessage})
}

// Layout godoc
// @Summary      Effective layout
// @Description  Returns the coordinates every field, the item table and the image box are drawn at
// @Tags         proposals
// @Produce      json
// @Success      200  {object}  layout.Layout
// @Router       /api/layout [get]
func (h *APIHandler) Layout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Generator.Layout())
}

// CreateProposal godoc
// @Summary      Generate a proposal PDF
// @Description  Stamps the submitted values and optional product image onto the template and returns the PDF
// @Tags         proposals
// @Accept       multipart/form-data
// @Produce      application/pdf
// @Param        cliente      formData  string  false  "Client name (also: client)"
// @Param        responsavel  formData  string  false  "Responsible person (also: responsible)"
// @Param        pagamento    formData  string  false  "Payment terms (also: payment)"
// @Param        prazo        formData  string  false  "Lead time (also: leadTime)"
// @Param        frete        formData  string  false  "Shipping (also: shipping)"
// @Param        itens        formData  string  false  "Comma-separated items (also: items)"
// @Param        valores      formData  string  false  "Comma-separated values (also: values)"
// @Param        total        formData  string  false  "Total"
// @Param        imagem       formData  file    false  "Product image, PNG or JPEG (also: image)"
// @Success      200  {file}    file    "Proposal PDF"
// @Failure      400  {string}  string  "Bad request"
// @Failure      413  {string}  string  "Upload too large"
// @Failure      429  {string}  string  "Too many requests"
// @Failure      500  {string}  string  "Failed to generate proposal"
// @Router       /api/proposals [post]
func (h *APIHandler) CreateProposal(w http.ResponseWriter, r *http.Request) {
	if h.MaxUploadSize > 0 {
		if r.ContentLength > h.MaxUploadSize {
			h.writeError(w, r, errors.New(errors.ErrCodeTooLarge, "upload exceeds %d bytes", h.MaxUploadSize))
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadSize)
	}

	memory := h.MaxUploadSize
	if memory <= 0 {
		memory = defaultMultipartMemory
	}
	if err := r.ParseMultipartForm(memory); err != nil && !stderrors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			h.writeError(w, r, errors.Wrap(errors.ErrCodeTooLarge, err, "upload exceeds %d bytes", h.MaxUploadSize))
			return
		}
		h.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "malformed form"))
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	image, err := readImage(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	req := proposal.FromForm(r.PostForm, image)
	doc, err := h.Generator.Generate(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	id := utils.GenerateUUID()
	filename := utils.ProposalFilename(req.Client, id)
	h.Logger.Info("proposal generated",
		zap.String("op", "handlers.CreateProposal"),
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.String("document_id", id),
		zap.Int("items", len(req.Items)),
		zap.Bool("image", req.HasImage()),
		zap.Int("bytes", len(doc)),
	)

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(doc)))
	w.Header().Set("X-Document-ID", id)
	if _, err := w.Write(doc); err != nil {
		h.Logger.Warn("failed to write response", zap.String("op", "handlers.CreateProposal"), zap.Error(err))
	}
}

// readImage returns the first uploaded file under any of the image field's
// form names, or nil when none was sent.
func readImage(r *http.Request) ([]byte, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	field, _ := proposal.Lookup(proposal.KeyImage)
	for _, name := range field.FormNames {
		file, _, err := r.FormFile(name)
		if stderrors.Is(err, http.ErrMissingFile) {
			continue
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "error retrieving image")
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to read image")
		}
		if len(data) == 0 {
			continue
		}
		return data, nil
	}
	return nil, nil
}

// writeError maps err to a status code. Client errors carry their message;
// server errors are logged and answered with a generic one.
func (h *APIHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := errors.HTTPStatus(code)
	fields := []zap.Field{
		zap.String("op", "handlers.CreateProposal"),
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.String("code", string(code)),
		zap.Error(err),
	}

	w.Header().Set("X-Error-Code", string(code))
	if status >= http.StatusInternalServerError {
		h.Logger.Error("failed to generate proposal", fields...)
		http.Error(w, "Failed to generate proposal", status)
		return
	}
	h.Logger.Info("proposal rejected", fields...)
	http.Error(w, errors.Message(err), status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
