package scanning

// Scanner defines the interface for OCR providers: it turns one receipt
// image or PDF into the raw text printed on it.
type Scanner interface {
	// ExtractText transcribes a receipt image/PDF into plain text,
	// one output line per printed line
	ExtractText(imageData []byte, contentType string) (string, error)
	// Close closes the scanner and releases resources
	Close() error
}
