package server

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/ledgerlocal/ledgerd/constants"
	"github.com/ledgerlocal/ledgerd/internal/common"
	"github.com/ledgerlocal/ledgerd/internal/extract"
)

func (s *Server) ingestHandler(c *gin.Context) {
	var req ingestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, common.Wrap(common.KindValidation, "invalid request body", err))
		return
	}
	rec, err := req.toEntity()
	if err != nil {
		respondError(c, err)
		return
	}
	id, flags, err := s.ingestor.Ingest(c.Request.Context(), rec)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id": id,
		"auditFlags": flagsJSON{
			IsDuplicate:        flags.Duplicate,
			SuspiciousCategory: flags.Suspicious,
			MissingVAT:         flags.MissingVAT,
			HasTotalMismatch:   flags.MathError,
		},
	})
}

type extractRequest struct {
	Image string `json:"image"`
	Mime  string `json:"mime"`
}

// extractHandler parses a base64 image into a candidate record. It never
// writes to the store.
func (s *Server) extractHandler(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, common.Wrap(common.KindValidation, "invalid request body", err))
		return
	}
	image, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		respondError(c, common.Wrap(common.KindValidation, "image must be base64", err))
		return
	}
	res, err := s.runExtract(c, image, req.Mime)
	if err != nil {
		return // runExtract already responded
	}
	c.JSON(http.StatusOK, extractConfToJSON(&res.Receipt, string(res.Confidence)))
}

// extractUploadHandler accepts a multipart upload, extracts, and also
// writes the result to the store.
func (s *Server) extractUploadHandler(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, common.Wrap(common.KindValidation, "missing multipart file", err))
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		respondError(c, common.Wrap(common.KindValidation, "unreadable upload", err))
		return
	}
	defer f.Close()
	image, err := io.ReadAll(f)
	if err != nil {
		respondError(c, common.Wrap(common.KindInternal, "read upload", err))
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = constants.MimeForExt(filepath.Ext(fileHeader.Filename))
	}

	res, err := s.runExtract(c, image, mimeType)
	if err != nil {
		return
	}

	rec := res.Receipt
	if ref, err := s.storeImage(image, fileHeader.Filename); err == nil {
		rec.ImageRef = ref
	} else {
		s.logger.Warn("upload.image_store_failed", "error", err)
	}

	id, flags, err := s.ingestor.Ingest(c.Request.Context(), &rec)
	if err != nil {
		respondError(c, err)
		return
	}
	rec.ID = id
	rec.Flags = flags
	c.JSON(http.StatusOK, gin.H{
		"id":         id,
		"confidence": string(res.Confidence),
		"receipt":    toReceiptJSON(&rec),
	})
}

// runExtract runs the extractor and maps a failed parse to the 422
// contract: error kind EXTRACTION_FAILED plus the input checksum and raw
// model output for debugging.
func (s *Server) runExtract(c *gin.Context, image []byte, mimeType string) (*extract.Result, error) {
	res, err := s.extractor.Extract(c.Request.Context(), image, mimeType)
	if err != nil {
		respondError(c, err)
		return nil, err
	}
	if res.Confidence == extract.ConfidenceFailed {
		err := common.E(common.KindExtractionFailed, "could not extract a receipt from the image")
		respondErrorWith(c, err, gin.H{
			"checksum":  res.Checksum,
			"rawOutput": res.Raw,
		})
		return nil, err
	}
	return res, nil
}

// storeImage copies uploaded bytes under the configured image directory,
// keyed by content checksum so re-uploads dedupe.
func (s *Server) storeImage(image []byte, filename string) (string, error) {
	if s.cfg.ImageDir == "" {
		return "", nil
	}
	if err := os.MkdirAll(s.cfg.ImageDir, 0o755); err != nil {
		return "", err
	}
	sum := sha256.Sum256(image)
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".jpg"
	}
	path := filepath.Join(s.cfg.ImageDir, hex.EncodeToString(sum[:8])+ext)
	if err := os.WriteFile(path, image, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
