package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"backend/config"
	"backend/engine"
	"backend/models"
	"backend/services"
	"backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	calcConfig  config.Config
	calcService *services.CalculatorService
)

// InitCalculatorHandlers wires the loaded configuration and the shared
// calculator service into the handler package.
func InitCalculatorHandlers(cfg config.Config, svc *services.CalculatorService) {
	calcConfig = cfg
	calcService = svc
}

// calcErrorStatus maps engine errors onto HTTP status codes. Anything the
// engine does not classify is treated as a server error.
func calcErrorStatus(err error) int {
	var validationErr *engine.ValidationError
	var configErr *engine.ConfigurationError
	var ruleErr *engine.MissingRuleError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &configErr):
		return http.StatusBadRequest
	case errors.As(err, &ruleErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// UploadCalculationFile godoc
// @Summary      Upload calculation file
// @Description  Upload a TXT or XLSX item list, run the distribution and store the result workbook
// @Tags         calculator
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Item list (.txt or .xlsx)"
// @Success      200   {object}  object
// @Failure      400   {object}  object
// @Failure      422   {object}  object
// @Failure      500   {object}  object
// @Router       /api/calculator/upload [post]
func UploadCalculationFile(c *gin.Context) {
	file, handler, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error retrieving the file"})
		return
	}
	defer file.Close()

	filename := filepath.Base(handler.Filename)
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".txt" && ext != ".xlsx" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only .txt and .xlsx files are accepted"})
		return
	}
	if calcConfig.MaxFileSize > 0 && handler.Size > calcConfig.MaxFileSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File size exceeds the allowed limit"})
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to read the file"})
		return
	}

	records, run, err := calcService.ProcessFile(filename, data)
	if err != nil {
		c.JSON(calcErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	var workbook bytes.Buffer
	if err := services.WriteRunWorkbook(&workbook, records, run); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to build result workbook"})
		return
	}

	if err := os.MkdirAll(calcConfig.StoragePath, 0755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to create storage directory"})
		return
	}
	resultName := services.ResultFilename(filename)
	resultPath := filepath.Join(calcConfig.StoragePath, resultName)
	if err := os.WriteFile(resultPath, workbook.Bytes(), 0644); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to save result workbook"})
		return
	}

	formsByType, err := models.MarshalJSONB(run.FormsByType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to encode run aggregates"})
		return
	}
	resultSnapshot, err := models.MarshalJSONB(run)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to encode run result"})
		return
	}

	runRow := models.CalculationRun{
		UUID:             uuid.NewString(),
		OriginalFilename: filename,
		Filename:         resultName,
		FilePath:         resultPath,
		FileSize:         int64(workbook.Len()),
		RecordCount:      len(records),
		TotalItems:       run.TotalItems,
		TotalForms:       run.TotalForms,
		CutoffForms:      run.CutoffForms,
		TotalAreaM2:      run.TotalAreaM2,
		FormsByType:      formsByType,
		Result:           resultSnapshot,
		CreatedAt:        time.Now(),
	}
	if err := storage.GetGormDB().Create(&runRow).Error; err != nil {
		os.Remove(resultPath)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to store calculation run"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "File processed successfully",
		"run":           runRow,
		"download_url":  fmt.Sprintf("/api/calculator/runs/%s/download", runRow.UUID),
		"total_items":   run.TotalItems,
		"total_forms":   run.TotalForms,
		"cutoff_forms":  run.CutoffForms,
		"total_area_m2": run.TotalAreaM2,
	})
}

// DistributeCalculation godoc
// @Summary      Distribute records
// @Description  Run the distribution engine over a JSON record list, with optional catalog and rule overrides
// @Tags         calculator
// @Accept       json
// @Produce      json
// @Param        request  body      models.DistributeRequest  true  "Records plus optional catalog/rules"
// @Success      200      {object}  models.RunResult
// @Failure      400      {object}  object
// @Failure      422      {object}  object
// @Router       /api/calculator/distribute [post]
func DistributeCalculation(c *gin.Context) {
	var req models.DistributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	run, err := calcService.ProcessRecordsWith(req.Records, req.Catalog, req.Rules)
	if err != nil {
		c.JSON(calcErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, run)
}

// GetFormCatalog godoc
// @Summary      Get form catalog
// @Description  Return the configured form catalog and unfolding rules
// @Tags         calculator
// @Produce      json
// @Success      200  {object}  object
// @Router       /api/calculator/catalog [get]
func GetFormCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"catalog": calcService.Catalog,
		"rules":   calcService.Rules,
	})
}
