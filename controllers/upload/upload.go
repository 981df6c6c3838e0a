package uploadController

import (
	"edumart/middleware"
	"edumart/utils"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const maxUploadSize = 100 << 20 // 100 MB

var allowedExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true,
	".mp4": true, ".webm": true,
	".pdf": true, ".doc": true, ".docx": true, ".ppt": true, ".pptx": true,
}

// UploadFile accepts a multipart file and returns its public URL
func UploadFile(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No file provided!", nil)
	}

	if file.Size > maxUploadSize {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "File exceeds the maximum allowed size!", nil)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "File type not allowed!", nil)
	}

	folder := c.FormValue("folder", "uploads")

	url, err := utils.UploadFile(file, folder)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to upload file!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "File uploaded successfully!", fiber.Map{
		"url": url,
	})
}
