package handlers

import (
	"io"
	"mime/multipart"

	domainerrors "gem-auction.backend/internal/domain/errors"
	"gem-auction.backend/internal/domain/ports"
	"gem-auction.backend/internal/interfaces/http/middleware"
	"gem-auction.backend/internal/interfaces/http/response"
	"gem-auction.backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MaxMultipartMemory bounds the in-memory part of multipart parsing; the rest spills to disk
const MaxMultipartMemory = 32 << 20

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return false
	}
	return true
}

func uuidParam(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid "+label+" ID"))
		return uuid.Nil, false
	}
	return id, true
}

func requireUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return uuid.Nil, false
	}
	return userID, true
}

func paginationFromQuery(c *gin.Context) utils.PaginationParams {
	return utils.ParsePaginationParams(c.Query("page"), c.Query("limit"))
}

func toUploadedFile(fh *multipart.FileHeader) ports.UploadedFile {
	return ports.UploadedFile{
		Filename: fh.Filename,
		Size:     fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

// formFile returns the named upload, or nil when the field is absent
func formFile(c *gin.Context, field string) *ports.UploadedFile {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil
	}
	f := toUploadedFile(fh)
	return &f
}

// formFiles returns every upload under field
func formFiles(c *gin.Context, field string) ([]ports.UploadedFile, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}
	headers := form.File[field]
	files := make([]ports.UploadedFile, 0, len(headers))
	for _, fh := range headers {
		files = append(files, toUploadedFile(fh))
	}
	return files, nil
}
