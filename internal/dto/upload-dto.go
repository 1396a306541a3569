package dto

// UploadFile is a multipart file already read into memory by the handler.
type UploadFile struct {
	Name string
	Data []byte
}
