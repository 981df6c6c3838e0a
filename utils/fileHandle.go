package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"edumart/config"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// UploadFile stores an uploaded file and returns its public URL. When an
// object-store endpoint is configured the file is PUT there under a
// generated key; otherwise it lands on local disk (dev fallback).
func UploadFile(file *multipart.FileHeader, folder string) (string, error) {
	if config.AppConfig.StorageEndpoint != "" {
		return uploadToObjectStore(file, folder)
	}
	return saveUploadedFile(file, filepath.Join("public", "uploads", folder))
}

// generateObjectKey builds a collision-free storage key, keeping the
// original extension
func generateObjectKey(folder, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%s/%s/%s%s", folder, time.Now().Format("2006/01"), uuid.NewString(), ext)
}

func uploadToObjectStore(file *multipart.FileHeader, folder string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}

	key := generateObjectKey(folder, file.Filename)
	url := fmt.Sprintf("%s/%s/%s", strings.TrimRight(config.AppConfig.StorageEndpoint, "/"), config.AppConfig.StorageBucket, key)

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	client := resty.New()
	resp, err := client.R().
		SetHeader("Content-Type", contentType).
		SetHeader("Authorization", "Bearer "+config.AppConfig.StorageApiKey).
		SetBody(data).
		Put(url)
	if err != nil {
		return "", err
	}
	if resp.StatusCode() >= 300 {
		return "", fmt.Errorf("object store upload failed: %d %s", resp.StatusCode(), resp.String())
	}

	if config.AppConfig.StoragePublicURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimRight(config.AppConfig.StoragePublicURL, "/"), key), nil
	}
	return url, nil
}

// saveUploadedFile is the local-disk fallback used when no object store
// is configured
func saveUploadedFile(file *multipart.FileHeader, destDir string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	ext := filepath.Ext(file.Filename)
	newFilename := uuid.NewString() + ext
	filePath := filepath.Join(destDir, newFilename)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return "/" + filepath.ToSlash(filePath), nil
}
