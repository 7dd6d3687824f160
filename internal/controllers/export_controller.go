package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/franciscosanchezn/gin-menu-api/internal/export"
	"github.com/franciscosanchezn/gin-menu-api/internal/middleware"
	"github.com/franciscosanchezn/gin-menu-api/internal/models"
	"github.com/franciscosanchezn/gin-menu-api/internal/services"
	"github.com/franciscosanchezn/gin-menu-api/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ExportController handles the QR code and PDF exports of a menu
type ExportController interface {
	// ExportQR downloads a QR code linking to the public menu
	ExportQR(c *gin.Context)
	// ExportPDF downloads the printable menu
	ExportPDF(c *gin.Context)
	// PublishExports uploads both artifacts to object storage
	PublishExports(c *gin.Context)
}

type exportController struct {
	dashboard services.DashboardService
	qr        *export.QRGenerator
	pdf       *export.PDFRenderer
	publisher storage.Publisher
}

// NewExportController creates a new instance of ExportController.
// publisher may be nil, publishing then answers 503.
func NewExportController(dashboard services.DashboardService, qr *export.QRGenerator, pdf *export.PDFRenderer, publisher storage.Publisher) ExportController {
	return &exportController{dashboard: dashboard, qr: qr, pdf: pdf, publisher: publisher}
}

// PublishResponse holds the public URLs of the uploaded artifacts
type PublishResponse struct {
	PDFURL   string `json:"pdfUrl"`
	QRURL    string `json:"qrUrl,omitempty"`
	Complete bool   `json:"complete"`
}

func attachment(ctx *gin.Context, filename, contentType string, body []byte) {
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, contentType, body)
}

// ExportQR godoc
// @Summary Export menu QR code
// @Description Download a PNG QR code linking to the public menu of the authenticated owner
// @Tags export
// @Produce png
// @Success 200 {file} file "menu-qr-code.png"
// @Failure 401 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/export/qr [get]
func (c *exportController) ExportQR(ctx *gin.Context) {
	// A missing user reaches the generator as an empty id and is rejected there
	var userID string
	if ownerID, ok := middleware.CurrentUserID(ctx); ok {
		userID = strconv.FormatUint(uint64(ownerID), 10)
	}

	png, err := c.qr.Generate(userID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	attachment(ctx, export.QRFilename, "image/png", png)
}

// ExportPDF godoc
// @Summary Export menu PDF
// @Description Download the finalized menu of the authenticated owner as a paginated PDF
// @Tags export
// @Produce application/pdf
// @Success 200 {file} file "menu.pdf"
// @Failure 401 {object} models.APIError
// @Failure 422 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/export/pdf [get]
func (c *exportController) ExportPDF(ctx *gin.Context) {
	ownerID, ok := currentOwner(ctx)
	if !ok {
		return
	}

	doc, err := c.renderPDF(ctx, ownerID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	attachment(ctx, export.PDFFilename, "application/pdf", doc.Bytes)
}

func (c *exportController) renderPDF(ctx *gin.Context, ownerID uint) (*export.Document, error) {
	view, err := c.dashboard.LoadMenu(ctx.Request.Context(), ownerID)
	if err != nil {
		return nil, err
	}
	return c.pdf.Render(view)
}

// PublishExports godoc
// @Summary Publish menu exports
// @Description Render the PDF and QR code and upload both to the configured object storage
// @Tags export
// @Produce json
// @Success 200 {object} PublishResponse
// @Failure 401 {object} models.APIError
// @Failure 422 {object} models.APIError
// @Failure 502 {object} models.APIError
// @Failure 503 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/export/publish [post]
func (c *exportController) PublishExports(ctx *gin.Context) {
	if c.publisher == nil {
		respondError(ctx, http.StatusServiceUnavailable, models.ErrUnavailable, "Export publishing is not configured")
		return
	}
	ownerID, ok := currentOwner(ctx)
	if !ok {
		return
	}
	userID := strconv.FormatUint(uint64(ownerID), 10)

	doc, err := c.renderPDF(ctx, ownerID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	png, err := c.qr.Generate(userID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	pdfURL, err := c.publisher.Publish(ctx.Request.Context(), storage.MenuKey(userID, export.PDFFilename), "application/pdf", doc.Bytes)
	if err != nil {
		log.WithError(err).WithField("owner_id", ownerID).Error("Failed to publish menu PDF")
		respondError(ctx, http.StatusBadGateway, models.ErrPublishFailed, "Uploading the menu PDF failed")
		return
	}

	response := PublishResponse{PDFURL: pdfURL, Complete: true}
	qrURL, err := c.publisher.Publish(ctx.Request.Context(), storage.MenuKey(userID, export.QRFilename), "image/png", png)
	if err != nil {
		// The PDF is already public; report the QR upload as incomplete
		log.WithError(err).WithField("owner_id", ownerID).Warn("Failed to publish menu QR code")
		response.Complete = false
	} else {
		response.QRURL = qrURL
	}

	log.WithFields(logrus.Fields{
		"owner_id": ownerID,
		"pages":    doc.Pages,
		"complete": response.Complete,
	}).Info("Menu exports published")
	ctx.JSON(http.StatusOK, response)
}
