package models

type ReportArtifact struct {
	FileName    string
	ContentType string
	Content     []byte
}

func (a *ReportArtifact) Size() int {
	if a == nil {
		return 0
	}
	return len(a.Content)
}

// UploadAck is the storage acknowledgement for an uploaded report.
type UploadAck struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
