// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

// Package service contains application services sitting between the
// HTTP handlers and the store.
package service

import (
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/northboundstudio/brandsite/internal/imaging"
)

// Upload limits.
const (
	MaxImageSize    = 5 * 1024 * 1024 // 5MB
	MaxDocumentSize = 3 * 1024 * 1024 // 3MB
)

// Document MIME types accepted for resumes.
const (
	MimeTypePDF  = "application/pdf"
	MimeTypeDoc  = "application/msword"
	MimeTypeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// allowedImageTypes are the image MIME types accepted for upload.
var allowedImageTypes = map[string]bool{
	imaging.MimeTypeJPEG: true,
	imaging.MimeTypePNG:  true,
	imaging.MimeTypeGIF:  true,
	imaging.MimeTypeWebP: true,
}

// allowedDocumentExts maps document extensions to their expected MIME
// types. Content sniffing cannot tell a docx from any other zip, so
// documents are validated by extension plus declared type.
var allowedDocumentExts = map[string]string{
	".pdf":  MimeTypePDF,
	".doc":  MimeTypeDoc,
	".docx": MimeTypeDocx,
}

// UploadResult describes a stored upload.
type UploadResult struct {
	UUID         string `json:"uuid"`
	Filename     string `json:"filename"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	MimeType     string `json:"mimeType"`
	Size         int64  `json:"size"`
	Width        int    `json:"width,omitempty"`
	Height       int    `json:"height,omitempty"`
}

// UploadService handles file uploads for the admin panel and job
// application resumes.
type UploadService struct {
	processor *imaging.Processor
}

// NewUploadService creates a new upload service rooted at uploadDir.
func NewUploadService(uploadDir string) *UploadService {
	return &UploadService{
		processor: imaging.NewProcessor(uploadDir),
	}
}

// UploadImage validates, processes and stores an image upload.
// The image is re-encoded with EXIF orientation applied and a
// thumbnail is generated for larger images.
func (s *UploadService) UploadImage(file multipart.File, header *multipart.FileHeader) (*UploadResult, error) {
	if header.Size > MaxImageSize {
		return nil, fmt.Errorf("image exceeds maximum size of %d bytes", MaxImageSize)
	}

	// Sniff the real content type; the declared Content-Type header is
	// attacker-controlled.
	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind upload: %w", err)
	}

	mimeType := s.processor.DetectMimeType(head[:n])
	if !allowedImageTypes[mimeType] {
		return nil, fmt.Errorf("file type %s is not allowed", mimeType)
	}

	fileUUID := uuid.New().String()
	filename := sanitizeFilename(header.Filename)

	processResult, err := s.processor.ProcessImage(file, fileUUID, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to process image: %w", err)
	}

	result := &UploadResult{
		UUID:     fileUUID,
		Filename: filename,
		URL:      fmt.Sprintf("/uploads/images/%s/%s", fileUUID, filename),
		MimeType: processResult.MimeType,
		Size:     processResult.Size,
		Width:    processResult.Width,
		Height:   processResult.Height,
	}

	thumb, err := s.processor.CreateThumbnail(processResult.FilePath, fileUUID, filename)
	if err != nil {
		// The original is stored; a missing thumbnail is not fatal.
		return result, nil
	}
	if thumb != nil {
		result.ThumbnailURL = fmt.Sprintf("/uploads/thumbnails/%s/%s", fileUUID, filename)
	}

	return result, nil
}

// UploadDocument validates and stores a document upload (resume).
func (s *UploadService) UploadDocument(file multipart.File, header *multipart.FileHeader) (*UploadResult, error) {
	if header.Size > MaxDocumentSize {
		return nil, fmt.Errorf("document exceeds maximum size of %d bytes", MaxDocumentSize)
	}

	filename := sanitizeFilename(header.Filename)
	ext := strings.ToLower(filepath.Ext(filename))
	mimeType, ok := allowedDocumentExts[ext]
	if !ok {
		return nil, fmt.Errorf("file type %s is not allowed", ext)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	fileUUID := uuid.New().String()
	if _, err := s.processor.SaveRaw(filepath.Join("documents", fileUUID), filename, data); err != nil {
		return nil, fmt.Errorf("failed to save document: %w", err)
	}

	return &UploadResult{
		UUID:     fileUUID,
		Filename: filename,
		URL:      fmt.Sprintf("/uploads/documents/%s/%s", fileUUID, filename),
		MimeType: mimeType,
		Size:     int64(len(data)),
	}, nil
}

// Delete removes the files for an upload.
func (s *UploadService) Delete(fileUUID string) error {
	return s.processor.DeleteFiles(fileUUID)
}

// sanitizeFilename strips path separators and problematic characters.
func sanitizeFilename(filename string) string {
	filename = filepath.Base(filename)

	replacer := strings.NewReplacer(
		" ", "-",
		"'", "",
		"\"", "",
		"<", "",
		">", "",
		"&", "",
		"#", "",
		"?", "",
		"%", "",
	)
	filename = replacer.Replace(filename)

	if filepath.Ext(filename) == "" {
		filename += ".bin"
	}
	return filename
}
