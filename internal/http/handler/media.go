package handler

import (
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"district/internal/media"
	"district/internal/service"
)

// ListMedia godoc
// @Summary List media
// @Tags media
// @Produce json
// @Param limit query int false "page size" default(10)
// @Param offset query int false "offset" default(0)
// @Success 200 {object} service.MediaListResult
// @Failure 400 {object} errorPayload
// @Router /api/media [get]
func ListMedia(svc service.MediaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// UploadMedia godoc
// @Summary Upload a media file
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "binary"
// @Param alt formData string false "alternative text"
// @Success 201 {object} model.Media
// @Failure 400 {object} errorPayload
// @Router /api/media [post]
func UploadMedia(svc service.MediaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		rec, err := svc.Upload(c.UserContext(), f, fh.Filename, ct, fh.Size, c.FormValue("alt"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(rec)
	}
}

// LookupMedia godoc
// @Summary Find the record standing for a filename
// @Description Matches "-N" de-duplicated variants and returns the highest one.
// @Tags media
// @Produce json
// @Param filename query string true "filename, e.g. amazon.png"
// @Success 200 {object} model.Media
// @Failure 404 {object} errorPayload
// @Router /api/media/lookup [get]
func LookupMedia(svc service.MediaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rec, err := svc.Lookup(c.UserContext(), c.Query("filename"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(rec)
	}
}

// GetMedia godoc
// @Summary Get a media record
// @Tags media
// @Produce json
// @Param id path string true "media ID"
// @Success 200 {object} model.Media
// @Failure 404 {object} errorPayload
// @Router /api/media/{id} [get]
func GetMedia(svc service.MediaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		rec, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(rec)
	}
}

// DeleteMedia godoc
// @Summary Delete a media record and its binary
// @Tags media
// @Param id path string true "media ID"
// @Success 204
// @Failure 404 {object} errorPayload
// @Router /api/media/{id} [delete]
func DeleteMedia(svc service.MediaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DownloadMedia godoc
// @Summary Download the binary of a media record
// @Tags media
// @Produce octet-stream
// @Param id path string true "media ID"
// @Success 200 {file} binary
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/media/{id}/file [get]
func DownloadMedia(svc service.MediaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		rc, rec, err := svc.Open(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		if rec.ContentType != "" {
			c.Set(fiber.HeaderContentType, rec.ContentType)
		}
		c.Set(fiber.HeaderContentDisposition, `inline; filename="`+rec.Filename+`"`)
		size := int(rec.Size)
		if size <= 0 {
			size = -1
		}
		// fasthttp closes rc once the body has been written.
		return c.SendStream(rc, size)
	}
}

// ServeMedia serves a file from servingDir. Files not reconciled to disk are redirected
// to a short-lived object storage URL.
//
// @Summary Serve a media file
// @Tags media
// @Param filename path string true "stored filename"
// @Success 200
// @Success 302
// @Failure 404 {object} errorPayload
// @Router /media/{filename} [get]
func ServeMedia(servingDir string, svc service.MediaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filename, err := url.PathUnescape(c.Params("filename"))
		if err != nil || !media.ValidFilename(filename) {
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "media not found")
		}

		p := filepath.Join(servingDir, filename)
		if fi, err := os.Stat(p); err == nil && fi.Mode().IsRegular() {
			return c.SendFile(p)
		}

		u, err := svc.Locate(c.UserContext(), filename)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Redirect(u, fiber.StatusFound)
	}
}
