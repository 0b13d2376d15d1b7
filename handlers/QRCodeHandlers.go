package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/inconsolata"
	"golang.org/x/image/math/fixed"
)

// addLabel adds text to an image at the specified position
func addLabel(img *image.RGBA, x, y int, label string) {
	col := color.RGBA{0, 0, 0, 255}

	point := fixed.Point26_6{
		X: fixed.Int26_6(x * 64),
		Y: fixed.Int26_6(y * 64),
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: inconsolata.Regular8x16,
		Dot:  point,
	}
	d.DrawString(label)
}

// addLabelBold adds bold text for field names
func addLabelBold(img *image.RGBA, x, y int, label string) {
	col := color.RGBA{30, 30, 30, 255}

	point := fixed.Point26_6{
		X: fixed.Int26_6(x * 64),
		Y: fixed.Int26_6(y * 64),
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: inconsolata.Bold8x16,
		Dot:  point,
	}
	d.DrawString(label)
}

func truncateLabel(s string, max int) string {
	if len(s) > max {
		return s[:max-3] + "..."
	}
	return s
}

// GenerateRunQRCodeJPEG godoc
// @Summary      Run QR label as JPEG
// @Description  QR code for a calculation run with a printed label block, for shop-floor tagging
// @Tags         qr
// @Produce      image/jpeg
// @Param        uuid  path      string  true  "Run UUID"
// @Success      200   {file}    file  "JPEG image"
// @Failure      404   {object}  object
// @Failure      500   {object}  object
// @Router       /api/calculator/runs/{uuid}/qr [get]
func GenerateRunQRCodeJPEG(c *gin.Context) {
	run, ok := findRunByUUID(c)
	if !ok {
		return
	}

	qrData := struct {
		ID         uint   `json:"id"`
		UUID       string `json:"uuid"`
		Filename   string `json:"filename"`
		TotalForms int    `json:"total_forms"`
	}{run.ID, run.UUID, run.Filename, run.TotalForms}

	jsonData, err := json.Marshal(qrData)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to marshal run data"})
		return
	}

	qr, err := qrcode.New(string(jsonData), qrcode.Medium)
	if err != nil {
		c.String(http.StatusInternalServerError, "QR code generation failed")
		return
	}

	qrImg := qr.Image(512)

	qrSize := qrImg.Bounds().Dy()
	padding := 30
	lineHeight := 28
	textAreaHeight := 5*lineHeight + padding
	totalHeight := qrSize + padding + textAreaHeight

	combinedImg := image.NewRGBA(image.Rect(0, 0, qrSize, totalHeight))
	draw.Draw(combinedImg, combinedImg.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)

	qrRect := image.Rect(0, 0, qrSize, qrSize)
	draw.Draw(combinedImg, qrRect, qrImg, image.Point{}, draw.Src)

	// Separator line between QR code and the label block
	separatorY := qrSize + padding/2
	for x := 0; x < qrSize; x++ {
		combinedImg.Set(x, separatorY, color.RGBA{200, 200, 200, 255})
	}

	startY := qrSize + padding + lineHeight
	xPos := 20

	addLabelBold(combinedImg, xPos, startY, "Run:")
	addLabel(combinedImg, xPos+120, startY, truncateLabel(run.UUID, 40))

	addLabelBold(combinedImg, xPos, startY+lineHeight, "Source:")
	addLabel(combinedImg, xPos+120, startY+lineHeight, truncateLabel(run.OriginalFilename, 40))

	addLabelBold(combinedImg, xPos, startY+2*lineHeight, "Forms:")
	addLabel(combinedImg, xPos+120, startY+2*lineHeight, fmt.Sprintf("%d (%d cutoff)", run.TotalForms, run.CutoffForms))

	addLabelBold(combinedImg, xPos, startY+3*lineHeight, "Area:")
	addLabel(combinedImg, xPos+120, startY+3*lineHeight, fmt.Sprintf("%.2f m2", run.TotalAreaM2))

	addLabelBold(combinedImg, xPos, startY+4*lineHeight, "Processed:")
	addLabel(combinedImg, xPos+120, startY+4*lineHeight, run.CreatedAt.Format("2006-01-02"))

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, combinedImg, nil); err != nil {
		c.String(http.StatusInternalServerError, "JPEG encoding failed")
		return
	}

	c.Data(http.StatusOK, "image/jpeg", buf.Bytes())
}
