package v1

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eventhub/eventhub-api/internal/service"
)

var errInvalidID = errors.New("invalid ID")

// HandleHealthcheck godoc
// @Summary      Healthcheck
// @Produce      plain
// @Success      200 {string} string
// @Router       / [get]
func HandleHealthcheck(ctx *gin.Context) {
	ctx.String(http.StatusOK, "EventHub API running")
}

func parseIDParam(ctx *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errInvalidID
	}

	return uint(id), nil
}

// imageFile wraps the optional "image" part of a multipart form. A nil
// *imageFile means no image was sent; its methods stay nil-safe.
type imageFile struct {
	file     multipart.File
	filename string
}

func formImage(ctx *gin.Context) (*imageFile, error) {
	header, err := ctx.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}

		return nil, err
	}

	file, err := header.Open()
	if err != nil {
		return nil, err
	}

	return &imageFile{
		file:     file,
		filename: header.Filename,
	}, nil
}

func (i *imageFile) Close() {
	_ = i.file.Close()
}

func (i *imageFile) upload() *service.ImageUpload {
	if i == nil {
		return nil
	}

	return &service.ImageUpload{
		Filename: i.filename,
		Reader:   i.file,
	}
}
