package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/temped/temped-api/internal/dto"
	"github.com/temped/temped-api/internal/services/apperr"
	pkgutils "github.com/temped/temped-api/pkg/utils"
)

const (
	maxDocumentUpload = 10 << 20 //10MB
	maxPictureUpload  = 5 << 20  //5MB
)

// readUpload pulls a multipart file into memory, refusing anything over max.
func readUpload(ctx *fiber.Ctx, field string, max int64) (dto.UploadFile, error) {
	file, err := ctx.FormFile(field)
	if err != nil {
		return dto.UploadFile{}, apperr.Invalid("%s is required", field)
	}

	if file.Size > max {
		return dto.UploadFile{}, apperr.Invalid("file too large (max %dMB)", max>>20)
	}

	f, err := file.Open()
	if err != nil {
		return dto.UploadFile{}, errors.New("cannot open uploaded file")
	}
	defer f.Close()

	b, err := pkgutils.ReadAllLimit(f, max)
	if err != nil {
		if errors.Is(err, pkgutils.ErrFileTooLarge) {
			return dto.UploadFile{}, apperr.Invalid("file too large (max %dMB)", max>>20)
		}
		return dto.UploadFile{}, err
	}

	return dto.UploadFile{Name: file.Filename, Data: b}, nil
}

func uuidParam(ctx *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(name))
	if err != nil {
		return uuid.Nil, apperr.Invalid("invalid %s", name)
	}
	return id, nil
}
