package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Emmanation-Designs/Gibsons-Collections3/internal/domain"
	"github.com/Emmanation-Designs/Gibsons-Collections3/internal/service"
	"github.com/Emmanation-Designs/Gibsons-Collections3/pkg/httputil"
	"github.com/Emmanation-Designs/Gibsons-Collections3/pkg/validator"
)

// maxUploadSize bounds a multipart product submission: up to five images
// plus form fields.
const maxUploadSize = 25 << 20

// ProductHandler handles HTTP requests for catalog endpoints.
type ProductHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewProductHandler creates a new product HTTP handler.
func NewProductHandler(svc *service.CatalogService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{service: svc, logger: logger}
}

// --- Request DTOs ---

// ProductRequest is the JSON request body for creating or updating a product.
type ProductRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=500"`
	Price       int64    `json:"price" validate:"gte=0"`
	Category    string   `json:"category" validate:"required"`
	Description string   `json:"description" validate:"max=5000"`
	Images      []string `json:"images" validate:"required,min=1,max=5,dive,url"`
	Quantity    *int     `json:"quantity" validate:"omitempty,gte=0"`
}

// --- Handlers ---

// ListProducts handles GET /api/v1/products?q=&category=
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")

	products, err := h.service.List(r.Context(), query, category)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: products})
}

// ListCategories handles GET /api/v1/categories
func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: domain.Categories})
}

// GetProduct handles GET /api/v1/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	product, err := h.service.Get(r.Context(), id.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// CreateProduct handles POST /api/v1/admin/products. It accepts either a
// JSON body with image URLs or a multipart form carrying image files to
// upload alongside already stored URLs.
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeProductInput(w, r, "")
	if !ok {
		return
	}

	product, err := h.service.Create(r.Context(), *input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: product})
}

// UpdateProduct handles PUT /api/v1/admin/products/{id}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	input, ok := h.decodeProductInput(w, r, id.String())
	if !ok {
		return
	}

	product, err := h.service.Update(r.Context(), id.String(), *input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// DeleteProduct handles DELETE /api/v1/admin/products/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id.String()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "deleted"}})
}

// --- Helpers ---

// decodeProductInput parses a product submission from either JSON or a
// multipart form. Multipart submissions have their pending files uploaded
// before the input is returned; keyPrefix scopes the stored objects, and an
// empty prefix means a fresh product key is generated server side.
func (h *ProductHandler) decodeProductInput(w http.ResponseWriter, r *http.Request, keyPrefix string) (*service.ProductInput, bool) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return h.decodeMultipartInput(w, r, keyPrefix)
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return nil, false
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return nil, false
	}

	return &service.ProductInput{
		Name:        req.Name,
		Price:       req.Price,
		Category:    req.Category,
		Description: req.Description,
		Images:      req.Images,
		Quantity:    req.Quantity,
	}, true
}

func (h *ProductHandler) decodeMultipartInput(w http.ResponseWriter, r *http.Request, keyPrefix string) (*service.ProductInput, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "failed to parse multipart form: " + err.Error()},
		})
		return nil, false
	}

	price, err := strconv.ParseInt(strings.TrimSpace(r.FormValue("price")), 10, 64)
	if err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "price must be a whole number"},
		})
		return nil, false
	}

	var quantity *int
	if qs := strings.TrimSpace(r.FormValue("quantity")); qs != "" {
		q, err := strconv.Atoi(qs)
		if err != nil {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "quantity must be a whole number"},
			})
			return nil, false
		}
		quantity = &q
	}

	// Kept URLs and new files share the five-image budget, in the order
	// submitted: kept first, then uploads.
	set := domain.NewImageSet(r.Form["existing_images"])
	for _, header := range r.MultipartForm.File["images"] {
		file, err := header.Open()
		if err != nil {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "failed to read image: " + err.Error()},
			})
			return nil, false
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "failed to read image: " + err.Error()},
			})
			return nil, false
		}

		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		if err := set.Add(domain.PendingImage(domain.PendingFile{
			Name:        header.Filename,
			ContentType: contentType,
			Data:        data,
		})); err != nil {
			httputil.WriteError(w, r, err, h.logger)
			return nil, false
		}
	}

	if keyPrefix == "" {
		keyPrefix = uuid.New().String()
	}

	images, err := h.service.UploadImages(r.Context(), "products/"+keyPrefix, set)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return nil, false
	}

	return &service.ProductInput{
		Name:        r.FormValue("name"),
		Price:       price,
		Category:    r.FormValue("category"),
		Description: r.FormValue("description"),
		Images:      images,
		Quantity:    quantity,
	}, true
}
