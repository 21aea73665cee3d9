package utils

import (
	"bts/src/types"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/yeqown/go-qrcode"
	"gorm.io/gorm"
)

// TicketQRPayload is the stable check-in payload stored on a paid ticket.
func TicketQRPayload(id uint, ts time.Time) string {
	return fmt.Sprintf("TICKET-%d-%d", id, ts.Unix())
}

func NewPaymentReference() string {
	return fmt.Sprintf("PAY-%s", uuid.New().String()[:8])
}

// SaveQRImage renders a QR payload to an image under TEMP_DIR and returns the
// file path.
func SaveQRImage(name, content string) (string, error) {
	qrc, err := qrcode.New(content)
	if err != nil {
		return "", err
	}
	tempdir := os.Getenv("TEMP_DIR")
	if tempdir == "" {
		tempdir = os.TempDir()
	}
	filepath := path.Join(tempdir, fmt.Sprintf("%s.jpeg", name))
	if err := qrc.Save(filepath); err != nil {
		return "", err
	}
	return filepath, nil
}

// ErrorStatus maps the engine's error taxonomy onto HTTP status codes.
func ErrorStatus(err error) int {
	var notFound types.NotFoundError
	var validation types.ValidationError
	var conflict types.ConflictError
	var capacity types.CapacityError
	var precondition types.PreconditionError
	switch {
	case errors.As(err, &notFound), errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &conflict), errors.As(err, &capacity):
		return http.StatusConflict
	case errors.As(err, &precondition):
		return http.StatusPreconditionFailed
	}
	return http.StatusInternalServerError
}
