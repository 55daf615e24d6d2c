package gemini

// FileState is the provider-side processing state of an uploaded file
type FileState string

const (
	StateProcessing FileState = "PROCESSING"
	StateActive     FileState = "ACTIVE"
	StateFailed     FileState = "FAILED"
)

// startUploadRequest is the metadata body sent to the init-upload endpoint
type startUploadRequest struct {
	File fileMetadata `json:"file"`
}

type fileMetadata struct {
	DisplayName string `json:"display_name"`
}

// FileAPIResponse is the envelope returned by the byte-upload endpoint
type FileAPIResponse struct {
	File FilePayload `json:"file"`
}

// FilePayload describes the uploaded remote file
type FilePayload struct {
	Name     string    `json:"name"`
	URI      string    `json:"uri"`
	MimeType string    `json:"mimeType"`
	State    FileState `json:"state"`
}

// fileStateResponse is the minimal body returned by the file-status endpoint
type fileStateResponse struct {
	State FileState `json:"state"`
}

// Part is one entry of a generation request's content list. It is a sealed
// union: exactly TextPart and FileDataPart implement it, and each variant
// serializes under its own JSON key.
type Part interface {
	isPart()
}

// TextPart carries a plain-text instruction
type TextPart struct {
	Text string `json:"text"`
}

func (TextPart) isPart() {}

// FileDataPart references a previously uploaded file by URI
type FileDataPart struct {
	FileData FileData `json:"file_data"`
}

func (FileDataPart) isPart() {}

// FileData identifies an uploaded file for generation
type FileData struct {
	MimeType string `json:"mime_type"`
	FileURI  string `json:"file_uri"`
}

// GenerateRequest is the body of a generateContent call
type GenerateRequest struct {
	Contents []Content `json:"contents"`
}

// Content is an ordered list of heterogeneous parts
type Content struct {
	Parts []Part `json:"parts"`
}

// generateResponse mirrors the nested candidate structure of a
// generateContent reply; only the text path is navigated.
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}
