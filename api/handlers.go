package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"pdf_shrinker/pdf"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type profileOption struct {
	Value   string
	Label   string
	Default bool
}

func HandleIndex(c *gin.Context) {
	options := make([]profileOption, len(pdf.Profiles))
	for i, p := range pdf.Profiles {
		options[i] = profileOption{
			Value:   string(p),
			Label:   p.Label(),
			Default: p == pdf.DefaultProfile(),
		}
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"title":    "Shrink PDF",
		"profiles": options,
	})
}

// HandleShrinkPDF stores the uploaded PDF, runs it through the converter and
// sends back the result if it came out smaller. Neither file is removed here;
// the retention sweeper takes care of them.
func HandleShrinkPDF(c *gin.Context, config *Config) {
	log := config.logger()

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrMsgNoFilePart})
		return
	}

	headers := form.File[fileField]
	if len(headers) == 0 {
		// browsers send the field with an empty filename when nothing was picked,
		// which the multipart reader turns into a plain value
		if _, ok := form.Value[fileField]; ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": ErrMsgNoSelectedFile})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrMsgNoFilePart})
		return
	}
	header := headers[0]

	if header.Filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrMsgNoSelectedFile})
		return
	}

	if !strings.HasSuffix(strings.ToLower(header.Filename), PDFExtension) {
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrMsgInvalidFileType})
		return
	}

	profile := pdf.DefaultProfile()
	if value, ok := c.GetPostForm(profileField); ok {
		profile, err = pdf.ParseProfile(value)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": ErrMsgInvalidProfile + pdf.AcceptedProfiles()})
			return
		}
	}

	if config.MaxFileSize > 0 && header.Size > config.MaxFileSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("File size %d exceeds maximum allowed %d bytes", header.Size, config.MaxFileSize),
		})
		return
	}

	src, err := header.Open()
	if err != nil {
		log.Error("failed to open uploaded file", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": ErrMsgSaveFailed})
		return
	}
	defer src.Close()

	id := config.Store.NewID()
	input, err := config.Store.SaveInput(id, src)
	if err != nil {
		log.Error("failed to save uploaded file", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": ErrMsgSaveFailed})
		return
	}

	outFile := config.Store.OutputPath(id)
	err = config.Converter.Compress(c.Request.Context(), pdf.Request{
		InputPath:  input.Path,
		OutputPath: outFile,
		Profile:    profile,
	})
	if err != nil {
		log.Error("PDF conversion error",
			zap.String("id", id),
			zap.String("profile", string(profile)),
			zap.Error(err))
		if errors.Is(err, pdf.ErrConversionTimeout) {
			c.JSON(http.StatusGatewayTimeout, gin.H{"error": ErrMsgProcessTimeout})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": ErrMsgProcessFailed})
		return
	}

	inSize, err := config.Store.Size(input.Path)
	if err != nil {
		log.Error("failed to stat input file", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": ErrMsgProcessFailed})
		return
	}
	outSize, err := config.Store.Size(outFile)
	if err != nil {
		log.Error("conversion did not produce output file", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": ErrMsgProcessFailed})
		return
	}

	if outSize >= inSize {
		log.Info("output not smaller than input",
			zap.String("id", id),
			zap.String("profile", string(profile)),
			zap.Int64("input_size", inSize),
			zap.Int64("output_size", outSize))
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrMsgNotSmaller})
		return
	}

	log.Info("PDF shrunk",
		zap.String("id", id),
		zap.String("profile", string(profile)),
		zap.Int64("input_size", inSize),
		zap.Int64("output_size", outSize))

	c.Header("Content-Type", PDFContentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", id+PDFExtension))
	c.File(outFile)
}
