package api

const (
	// PDFExtension is the only file extension accepted for upload
	PDFExtension = ".pdf"

	// PDFContentType is sent with every shrunk file
	PDFContentType = "application/pdf"

	// multipart form field names
	fileField    = "file"
	profileField = "profile"
)

// Error messages returned to clients
const (
	ErrMsgNoFilePart      = "No file part"
	ErrMsgNoSelectedFile  = "No selected file"
	ErrMsgInvalidFileType = "Invalid file type, only PDFs are allowed"
	ErrMsgInvalidProfile  = "Invalid value for profile. Accepted values are: "
	ErrMsgSaveFailed      = "Failed to save file"
	ErrMsgProcessFailed   = "Failed to process PDF"
	ErrMsgProcessTimeout  = "PDF processing timed out"
	ErrMsgNotSmaller      = "Failed to shrink the PDF: Output file is not smaller than the input file"
)
