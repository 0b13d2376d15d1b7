package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"

	"backend/models"
	"backend/services"
	"backend/storage"
	"backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func findRunByUUID(c *gin.Context) (models.CalculationRun, bool) {
	var run models.CalculationRun
	err := storage.GetGormDB().Where("uuid = ?", c.Param("uuid")).First(&run).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.ErrorResponse(c, "Calculation run not found", http.StatusNotFound)
		} else {
			utils.ErrorResponse(c, "Unable to load calculation run", http.StatusInternalServerError)
		}
		return run, false
	}
	return run, true
}

// ListCalculationRuns godoc
// @Summary      List calculation runs
// @Description  Paginated run history, newest first
// @Tags         runs
// @Produce      json
// @Param        page       query     int  false  "Page number (default 1)"
// @Param        page_size  query     int  false  "Page size (default 20, max 100)"
// @Success      200        {object}  object
// @Failure      500        {object}  object
// @Router       /api/calculator/runs [get]
func ListCalculationRuns(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	db := storage.GetGormDB()

	var total int64
	if err := db.Model(&models.CalculationRun{}).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to count calculation runs"})
		return
	}

	var runs []models.CalculationRun
	err := db.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&runs).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to list calculation runs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"runs":      runs,
		"page":      page,
		"page_size": pageSize,
		"total":     total,
	})
}

// GetCalculationRun godoc
// @Summary      Get calculation run
// @Description  Return one run with its full engine result snapshot
// @Tags         runs
// @Produce      json
// @Param        uuid  path      string  true  "Run UUID"
// @Success      200   {object}  models.CalculationRun
// @Failure      404   {object}  object
// @Router       /api/calculator/runs/{uuid} [get]
func GetCalculationRun(c *gin.Context) {
	run, ok := findRunByUUID(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, run)
}

// DownloadRunFile godoc
// @Summary      Download run workbook
// @Description  Download the stored result workbook of a run
// @Tags         runs
// @Produce      application/octet-stream
// @Param        uuid  path      string  true  "Run UUID"
// @Success      200   {file}    file
// @Failure      404   {object}  object
// @Router       /api/calculator/runs/{uuid}/download [get]
func DownloadRunFile(c *gin.Context) {
	run, ok := findRunByUUID(c)
	if !ok {
		return
	}
	if _, err := os.Stat(run.FilePath); os.IsNotExist(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Result file is no longer on disk"})
		return
	}
	c.FileAttachment(run.FilePath, run.Filename)
}

// DeleteCalculationRun godoc
// @Summary      Delete calculation run
// @Description  Remove a run record and its stored workbook
// @Tags         runs
// @Produce      json
// @Param        uuid  path      string  true  "Run UUID"
// @Success      200   {object}  utils.Response
// @Failure      404   {object}  object
// @Failure      500   {object}  object
// @Router       /api/calculator/runs/{uuid} [delete]
func DeleteCalculationRun(c *gin.Context) {
	run, ok := findRunByUUID(c)
	if !ok {
		return
	}

	if err := storage.GetGormDB().Delete(&run).Error; err != nil {
		utils.ErrorResponse(c, "Unable to delete calculation run", http.StatusInternalServerError)
		return
	}
	// The row is the source of truth, a missing file is not an error here.
	os.Remove(run.FilePath)

	utils.SuccessResponse(c, "Calculation run deleted successfully", http.StatusOK)
}

// GenerateRunPDF godoc
// @Summary      Run summary PDF
// @Description  Render a printable summary of a run with an embedded QR code
// @Tags         runs
// @Produce      application/pdf
// @Param        uuid  path      string  true  "Run UUID"
// @Success      200   {file}    file
// @Failure      404   {object}  object
// @Failure      500   {object}  object
// @Router       /api/calculator/runs/{uuid}/pdf [get]
func GenerateRunPDF(c *gin.Context) {
	run, ok := findRunByUUID(c)
	if !ok {
		return
	}

	var result models.RunResult
	if err := json.Unmarshal([]byte(run.Result), &result); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stored run result is unreadable"})
		return
	}

	var pdf bytes.Buffer
	if err := services.WriteRunSummaryPDF(&pdf, run, result); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to render summary PDF"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="run_`+run.UUID+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf.Bytes())
}
