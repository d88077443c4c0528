package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/namnm309/evdealer-backend/models"
	"github.com/namnm309/evdealer-backend/utils"
)

const maxUploadSizeBytes int64 = 5 * 1024 * 1024

var imageMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// UploadVehicleImage accepts a multipart image, fits it into 512px, stores
// it in GCS and saves the public URL on the vehicle.
func UploadVehicleImage(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	if os.Getenv("GCS_BUCKET") == "" {
		respondError(c, http.StatusBadRequest, errors.New("image storage is not configured"))
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, errors.New("image file is required"))
		return
	}
	if fileHeader.Size > maxUploadSizeBytes {
		respondError(c, http.StatusBadRequest, errors.New("file size exceeds 5MB limit"))
		return
	}
	mimeType := fileHeader.Header.Get("Content-Type")
	if !imageMimeTypes[mimeType] {
		respondError(c, http.StatusBadRequest, errors.New("unsupported image type"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSizeBytes+1))
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		respondError(c, http.StatusBadRequest, errors.New("invalid image data"))
		return
	}
	fitted := imaging.Fit(img, 512, 512, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, fitted, imaging.JPEG); err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	ctx := c.Request.Context()
	previous, err := models.GetProduct(ctx, id)
	if err != nil {
		respondModelError(c, err)
		return
	}

	objectKey := path.Join("vehicles", utils.GenerateUniqueFilename()+".jpg")
	if err := utils.UploadBytesToGCS(ctx, objectKey, buf.Bytes(), "image/jpeg"); err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	imageURL := utils.BuildObjectAccessURL(objectKey)
	product, err := models.UpdateProductImage(ctx, id, imageURL)
	if err != nil {
		respondModelError(c, err)
		return
	}

	// drop the replaced object so the bucket doesn't accumulate orphans
	if oldKey := utils.ExtractObjectKeyFromURL(previous.ImageUrl); oldKey != "" && oldKey != objectKey {
		_ = utils.DeleteImageFromGCS(ctx, oldKey)
	}

	respondOK(c, product, "image uploaded")
}

type signUploadRequest struct {
	FileName string `json:"file_name" binding:"required"`
	MimeType string `json:"mime_type" binding:"required"`
	Size     int64  `json:"size" binding:"required"`
}

// SignVehicleImageUpload hands the client a short-lived signed PUT URL so
// large images can go straight to the bucket.
func SignVehicleImageUpload(c *gin.Context) {
	var req signUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Size > maxUploadSizeBytes {
		respondError(c, http.StatusBadRequest, errors.New("file size exceeds 5MB limit"))
		return
	}
	if !imageMimeTypes[req.MimeType] {
		respondError(c, http.StatusBadRequest, errors.New("unsupported image type"))
		return
	}
	if utils.GetStorageProvider() != utils.StorageProviderGCS {
		respondError(c, http.StatusBadRequest, errors.New("storage provider not supported"))
		return
	}

	ext := strings.ToLower(filepath.Ext(req.FileName))
	if ext == "" {
		ext = ".jpg"
	}
	objectKey := path.Join("vehicles", utils.GenerateUniqueFilename()+ext)

	signed, err := utils.SignUpload(c.Request.Context(), objectKey, req.MimeType, 15*time.Minute)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	respondOK(c, signed, "")
}

// ServeStorageObject streams a stored object back through the API for
// deployments where the bucket is private.
func ServeStorageObject(c *gin.Context) {
	objectKey := strings.TrimSpace(c.Query("key"))
	if objectKey == "" || strings.Contains(objectKey, "..") || strings.HasPrefix(objectKey, "/") {
		respondError(c, http.StatusBadRequest, errors.New("invalid key"))
		return
	}

	bucket := strings.TrimSpace(os.Getenv("GCS_BUCKET"))
	if bucket == "" {
		respondError(c, http.StatusInternalServerError, errors.New("GCS_BUCKET is required"))
		return
	}

	client, err := utils.GetGCSClient(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	defer client.Close()

	obj := client.Bucket(bucket).Object(objectKey)
	attrs, err := obj.Attrs(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusNotFound, errors.New("object not found"))
		return
	}
	reader, err := obj.NewReader(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusNotFound, errors.New("object not found"))
		return
	}
	defer reader.Close()

	if attrs.ContentType != "" {
		c.Writer.Header().Set("Content-Type", attrs.ContentType)
	}
	if attrs.Size > 0 {
		c.Writer.Header().Set("Content-Length", fmt.Sprintf("%d", attrs.Size))
	}
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, reader)
}
