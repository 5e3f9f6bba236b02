package handler

import (
	"errors"
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	procurementapp "github.com/lojamae/backend/internal/application/procurement"
	"github.com/lojamae/backend/internal/interfaces/http/dto"
)

// maxNFeUploadSize caps the accepted XML payload. Real NFe documents
// are a few hundred KB at most.
const maxNFeUploadSize = 5 << 20

// NFeHandler handles supplier invoice import endpoints
type NFeHandler struct {
	BaseHandler
	nfeService *procurementapp.NFeImportService
}

// NewNFeHandler creates a new NFeHandler
func NewNFeHandler(nfeService *procurementapp.NFeImportService) *NFeHandler {
	return &NFeHandler{nfeService: nfeService}
}

// Import ingests a supplier NFe XML. The document may be posted as a
// multipart file under "arquivo" or as the raw request body.
func (h *NFeHandler) Import(c *gin.Context) {
	xml, err := h.readXML(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if len(xml) == 0 {
		h.BadRequest(c, "Empty XML payload")
		return
	}

	result, err := h.nfeService.ImportNFe(c.Request.Context(), getSession(c), procurementapp.ImportNFeInput{
		XML: xml,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Get returns a single imported invoice
func (h *NFeHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	invoice, err := h.nfeService.GetNFe(c.Request.Context(), getSession(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// List returns a paginated list of imported invoices
func (h *NFeHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := req.ToFilter()
	invoices, total, err := h.nfeService.ListNFes(c.Request.Context(), getSession(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, invoices, total, filter.Page, filter.PageSize)
}

func (h *NFeHandler) readXML(c *gin.Context) ([]byte, error) {
	contentType := c.ContentType()
	if strings.HasPrefix(contentType, "multipart/") {
		file, err := c.FormFile("arquivo")
		if err != nil {
			return nil, err
		}
		if file.Size > maxNFeUploadSize {
			return nil, errFileTooLarge
		}
		reader, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer reader.Close()
		return io.ReadAll(io.LimitReader(reader, maxNFeUploadSize))
	}
	return io.ReadAll(io.LimitReader(c.Request.Body, maxNFeUploadSize))
}

var errFileTooLarge = errors.New("file exceeds the upload size limit")
