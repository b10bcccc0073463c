package utils

import (
	"fmt"
	"labreport-service/internal/pkg/constvars"
	"strings"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + strings.ReplaceAll(uuid.NewString(), "-", "")
}

func GenerateLabReportFileName(mrn string) string {
	return fmt.Sprintf(constvars.LabReportFileNameFormat, mrn)
}
