package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"

	"shortly/internal/models"
	"shortly/internal/service"
)

const (
	defaultQRSize = 256
	minQRSize     = 64
	maxQRSize     = 1024
)

type QRCodeController struct {
	urlService service.URLService
	baseURL    string
}

func NewQRCodeController(urlService service.URLService, baseURL string) *QRCodeController {
	return &QRCodeController{
		urlService: urlService,
		baseURL:    baseURL,
	}
}

// GenerateQRCode handles GET /urls/:short_code/qr?size= and encodes the
// short URL of a live code as a PNG.
func (qc *QRCodeController) GenerateQRCode(c *gin.Context) {
	code, ok := bindCode(c)
	if !ok {
		return
	}

	size := defaultQRSize
	if raw := c.Query("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < minQRSize || n > maxQRSize {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "Invalid QR code size",
				ErrorCode: codeValidation,
				Details:   map[string]string{"size": "size must be between 64 and 1024"},
			})
			return
		}
		size = n
	}

	url, err := qc.urlService.GetURLByCode(c.Request.Context(), code)
	if err != nil {
		respondError(c, err)
		return
	}

	qrCode, err := qrcode.New(qc.baseURL+"/"+url.ShortCode, qrcode.Medium)
	if err != nil {
		respondError(c, err)
		return
	}

	pngData, err := qrCode.PNG(size)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", "inline; filename="+url.ShortCode+".png")
	c.Data(http.StatusOK, "image/png", pngData)
}
