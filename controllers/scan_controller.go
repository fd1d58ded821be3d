package controllers

import (
	"net/http"
	"strconv"

	"github.com/Anuraj-27/nutriscan27/services"
	"github.com/Anuraj-27/nutriscan27/utils"

	"github.com/gin-gonic/gin"
)

func newScanService() *services.ScanService {
	scorer := utils.NewRiskScorer(utils.DefaultScoringConfig())
	return services.NewScanService(services.NewClassifierService(), scorer)
}

// POST /scan/analyze  { "text": "...", "confidence": 92.5 }
//
// Text and confidence come from the client-side OCR step; confidence is
// echoed back so the UI can warn about low-quality captures.
func AnalyzeScan(c *gin.Context) {
	var req struct {
		Text       string  `json:"text" binding:"required"`
		Confidence float64 `json:"confidence"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	uid := c.GetUint("userID")
	user, err := services.FindUserByID(uid)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	product, facts, err := newScanService().AnalyzeAndStore(user, req.Text, req.Confidence, "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := gin.H{
		"result":          product,
		"nutrition_facts": facts,
		"ocr_confidence":  req.Confidence,
	}
	if len(product.Ingredients) == 0 {
		resp["warning"] = "no ingredients found, retake the photo or edit the text"
	}
	c.JSON(http.StatusOK, resp)
}

// POST /scan/image  { "image_base64": "data:image/jpeg;base64,..." }
//
// Server-side capture path: upload the label photo, OCR it, then run the
// same pipeline as /scan/analyze.
func ScanImage(c *gin.Context) {
	var req struct {
		ImageBase64 string `json:"image_base64" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	uid := c.GetUint("userID")
	user, err := services.FindUserByID(uid)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	ocr, err := services.NewOCRService()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	extracted, err := ocr.ExtractText(req.ImageBase64)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	imageURL, err := utils.UploadLabelImage(req.ImageBase64, strconv.FormatUint(uint64(uid), 10))
	if err != nil {
		// the scan still works without the stored photo
		imageURL = ""
	}

	product, facts, err := newScanService().AnalyzeAndStore(user, extracted.Text, extracted.Confidence, imageURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := gin.H{
		"result":          product,
		"nutrition_facts": facts,
		"ocr_confidence":  extracted.Confidence,
		"image_url":       imageURL,
	}
	if len(product.Ingredients) == 0 {
		resp["warning"] = "no ingredients found, retake the photo or edit the text"
	}
	c.JSON(http.StatusOK, resp)
}

// GET /scan/history
func ListScanHistory(c *gin.Context) {
	uid := c.GetUint("userID")

	scans, err := newScanService().ListScans(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, scans)
}

// GET /scan/history/:id
func GetScanRecord(c *gin.Context) {
	uid := c.GetUint("userID")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid scan id"})
		return
	}

	scan, err := newScanService().GetScan(uid, uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "scan not found"})
		return
	}
	c.JSON(http.StatusOK, scan)
}
