// Package upload turns an uploaded image into an inline data URL. Nothing is
// written to disk.
package upload

import (
	"encoding/base64"
	"io"
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

const defaultMime = "image/jpeg"

type Handler struct {
	log *slog.Logger
}

func NewHandler(log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{log: log}
}

func (h *Handler) RegisterProtectedRoutes(r fiber.Router, guard fiber.Handler) {
	r.Post("/upload-image", guard, h.uploadImage)
}

func (h *Handler) uploadImage(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "No file uploaded")
	}

	f, err := fh.Open()
	if err != nil {
		return h.failed(err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return h.failed(err)
	}

	mime := fh.Header.Get("Content-Type")
	if mime == "" {
		mime = defaultMime
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"imageUrl": DataURL(mime, data),
	})
}

func (h *Handler) failed(err error) error {
	h.log.Error("image upload failed", "error", err)
	return fiber.NewError(fiber.StatusInternalServerError, "Image upload failed: "+err.Error())
}

// DataURL encodes data as a base64 data URL with the given MIME type.
func DataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
