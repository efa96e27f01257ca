package http

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/longyuju1116/invoice/internal/export"
	"github.com/longyuju1116/invoice/internal/models"
	"github.com/longyuju1116/invoice/internal/pdf"
	"github.com/longyuju1116/invoice/internal/repository"
	"github.com/longyuju1116/invoice/internal/storage"
	"github.com/longyuju1116/invoice/pkg/utils"
)

// Handlers contains the HTTP request handlers
type Handlers struct {
	repo         *repository.FormRepository
	generator    *pdf.Generator
	images       *storage.ImageStore
	exporter     *export.Exporter
	maxImageSize int64
	logger       *zap.Logger
}

// NewHandlers creates handlers with the given collaborators
func NewHandlers(
	repo *repository.FormRepository,
	generator *pdf.Generator,
	images *storage.ImageStore,
	exporter *export.Exporter,
	maxImageSize int64,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		repo:         repo,
		generator:    generator,
		images:       images,
		exporter:     exporter,
		maxImageSize: maxImageSize,
		logger:       logger,
	}
}

type createFormRequest struct {
	ApplicationDate     string                `json:"application_date"`
	Payee               string                `json:"payee" binding:"required"`
	PaymentMethod       models.PaymentMethod  `json:"payment_method" binding:"required"`
	PaymentMethodOther  string                `json:"payment_method_other"`
	RequestingUnit      models.RequestingUnit `json:"requesting_unit" binding:"required"`
	RequestingUnitOther string                `json:"requesting_unit_other"`
	Items               []models.LineItem     `json:"payment_details" binding:"required,min=1"`
	BankBookImage       string                `json:"bank_book_image"`
}

type formResponse struct {
	ID                  string                `json:"id"`
	ApplicationDate     string                `json:"application_date"`
	Payee               string                `json:"payee"`
	PaymentMethod       models.PaymentMethod  `json:"payment_method"`
	PaymentMethodOther  string                `json:"payment_method_other,omitempty"`
	RequestingUnit      models.RequestingUnit `json:"requesting_unit"`
	RequestingUnitOther string                `json:"requesting_unit_other,omitempty"`
	TotalAmount         string                `json:"total_amount"`
	Items               []models.LineItem     `json:"payment_details"`
	HasBankBookImage    bool                  `json:"has_bank_book_image"`
	CreatedAt           time.Time             `json:"created_at"`
}

func toFormResponse(form *models.RequestForm) formResponse {
	return formResponse{
		ID:                  form.ID,
		ApplicationDate:     form.ApplicationDate,
		Payee:               form.Payee,
		PaymentMethod:       form.PaymentMethod,
		PaymentMethodOther:  form.PaymentMethodOther,
		RequestingUnit:      form.RequestingUnit,
		RequestingUnitOther: form.RequestingUnitOther,
		TotalAmount:         form.TotalAmount.String(),
		Items:               form.Items,
		HasBankBookImage:    len(form.BankBookImage) > 0,
		CreatedAt:           form.CreatedAt,
	}
}

// CreateForm handles POST /api/v1/request-forms. The total amount is
// computed server side from the line items.
func (h *Handlers) CreateForm(c *gin.Context) {
	var req createFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	var imageData []byte
	if req.BankBookImage != "" {
		decoded, err := base64.StdEncoding.DecodeString(req.BankBookImage)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bank_book_image must be base64 encoded"})
			return
		}
		imageData = decoded
	}

	form := &models.RequestForm{
		ID:                  newFormID(),
		ApplicationDate:     req.ApplicationDate,
		Payee:               req.Payee,
		PaymentMethod:       req.PaymentMethod,
		PaymentMethodOther:  req.PaymentMethodOther,
		RequestingUnit:      req.RequestingUnit,
		RequestingUnitOther: req.RequestingUnitOther,
		Items:               req.Items,
		BankBookImage:       imageData,
		CreatedAt:           time.Now(),
	}
	form.TotalAmount = form.ItemTotal()

	if err := form.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if form.PaymentMethod.RequiresBankProof() && len(form.BankBookImage) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("payment method %s requires a bank book image", form.PaymentMethod),
		})
		return
	}

	if err := h.repo.Create(form); err != nil {
		h.logger.Error("Failed to create request form", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save request form"})
		return
	}

	h.logger.Info("Request form created",
		zap.String("form_id", form.ID),
		zap.String("payee", form.Payee),
		zap.Int("items", len(form.Items)),
	)
	c.JSON(http.StatusCreated, toFormResponse(form))
}

// GetForm handles GET /api/v1/request-forms/:id
func (h *Handlers) GetForm(c *gin.Context) {
	id := c.Param("id")
	form, err := h.repo.GetByID(id)
	if err != nil {
		h.logger.Error("Failed to load request form", zap.String("form_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load request form"})
		return
	}
	if form == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "request form not found"})
		return
	}
	c.JSON(http.StatusOK, toFormResponse(form))
}

// ListForms handles GET /api/v1/request-forms
func (h *Handlers) ListForms(c *gin.Context) {
	forms, err := h.repo.List()
	if err != nil {
		h.logger.Error("Failed to list request forms", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list request forms"})
		return
	}

	items := make([]formResponse, 0, len(forms))
	for _, form := range forms {
		items = append(items, toFormResponse(form))
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}

// DownloadPDF handles GET /api/v1/request-forms/:id/pdf
func (h *Handlers) DownloadPDF(c *gin.Context) {
	id := c.Param("id")
	form, err := h.repo.GetByID(id)
	if err != nil {
		h.logger.Error("Failed to load request form", zap.String("form_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load request form"})
		return
	}
	if form == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "request form not found"})
		return
	}

	data, err := h.generator.Generate(form)
	if err != nil {
		h.logger.Error("Failed to generate PDF", zap.String("form_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate PDF"})
		return
	}

	filename := fmt.Sprintf("請款單_%s.pdf", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition",
		fmt.Sprintf(`attachment; filename="request_form.pdf"; filename*=UTF-8''%s`, url.PathEscape(filename)))
	c.Data(http.StatusOK, "application/pdf", data)
}

// ListPaymentMethods handles GET /api/v1/request-forms/enums/payment-methods
func (h *Handlers) ListPaymentMethods(c *gin.Context) {
	options := make([]gin.H, 0)
	for _, method := range models.PaymentMethods() {
		options = append(options, gin.H{"value": string(method), "label": string(method)})
	}
	c.JSON(http.StatusOK, options)
}

// ListRequestingUnits handles GET /api/v1/request-forms/enums/requesting-units
func (h *Handlers) ListRequestingUnits(c *gin.Context) {
	options := make([]gin.H, 0)
	for _, unit := range models.RequestingUnits() {
		options = append(options, gin.H{"value": string(unit), "label": string(unit)})
	}
	c.JSON(http.StatusOK, options)
}

// UploadImage handles POST /api/v1/request-forms/upload-image. The image is
// kept on disk for auditing and returned base64 encoded so the client can
// embed it in a later create request.
func (h *Handlers) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file field"})
		return
	}
	if fileHeader.Size > h.maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("file exceeds size limit of %d bytes", h.maxImageSize),
		})
		return
	}
	if err := utils.ValidateImageExtension(fileHeader.Filename); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// Generic multipart clients stamp parts application/octet-stream; the
	// extension check above still applies to those. Only an explicit
	// non-image type is rejected here.
	contentType := fileHeader.Header.Get("Content-Type")
	if contentType != "" && contentType != "application/octet-stream" {
		if err := utils.ValidateImageContentType(contentType); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open uploaded file"})
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, h.maxImageSize+1))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read uploaded file"})
		return
	}
	if int64(len(content)) > h.maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("file exceeds size limit of %d bytes", h.maxImageSize),
		})
		return
	}

	savedPath, err := h.images.SaveImage(fileHeader.Filename, content)
	if err != nil {
		h.logger.Error("Failed to save uploaded image", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save uploaded image"})
		return
	}

	h.logger.Info("Image uploaded",
		zap.String("filename", fileHeader.Filename),
		zap.String("saved_path", savedPath),
		zap.Int("size", len(content)),
	)
	c.JSON(http.StatusOK, gin.H{
		"file_id":      base64.StdEncoding.EncodeToString(content),
		"filename":     fileHeader.Filename,
		"size":         len(content),
		"content_type": fileHeader.Header.Get("Content-Type"),
	})
}

// ExportForms handles GET /api/v1/request-forms/export
func (h *Handlers) ExportForms(c *gin.Context) {
	forms, err := h.repo.List()
	if err != nil {
		h.logger.Error("Failed to list request forms for export", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list request forms"})
		return
	}

	data, err := h.exporter.Export(forms)
	if err != nil {
		h.logger.Error("Failed to export request forms", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export request forms"})
		return
	}

	filename := fmt.Sprintf("request_forms_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "request-form-service",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
