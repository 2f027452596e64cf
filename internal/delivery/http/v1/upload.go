package v1

import (
	"errors"
	"io"
	"mime/multipart"

	"career-portal-backend/pkg/antivirus"
	"career-portal-backend/pkg/apperror"
	"career-portal-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// uploads reads multipart files and runs them past the virus scanner when
// one is configured.
type uploads struct {
	scanner antivirus.Scanner
}

// read returns one multipart file, refusing anything over limit bytes.
func (u uploads) read(c *gin.Context, field string, limit int) (*multipart.FileHeader, []byte, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, nil, apperror.BadRequest("File is required")
	}
	if fh.Size > int64(limit) {
		return nil, nil, apperror.BadRequest("File is too large")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, nil, apperror.BadRequest("Could not read the uploaded file")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, int64(limit)+1))
	if err != nil {
		return nil, nil, apperror.BadRequest("Could not read the uploaded file")
	}
	if len(data) > limit {
		return nil, nil, apperror.BadRequest("File is too large")
	}

	if u.scanner == nil || len(data) == 0 {
		return fh, data, nil
	}
	res, err := u.scanner.Scan(c.Request.Context(), fh.Filename, data)
	switch {
	case errors.Is(err, antivirus.ErrInfected):
		logger.Log.Warn("upload rejected by virus scan", "field", field, "threat", res.ThreatName, "ip", c.ClientIP())
		return nil, nil, apperror.BadRequest("File was rejected by the virus scanner")
	case err != nil:
		logger.Log.Error("virus scan failed", "field", field, "error", err)
		return nil, nil, apperror.Unavailable("File scanning is unavailable, please try again later")
	}
	return fh, data, nil
}
