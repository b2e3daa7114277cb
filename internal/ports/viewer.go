package ports

// DocumentViewer hands an exported document to the desktop's default viewer
type DocumentViewer interface {
	// Open starts the viewer for path and returns without waiting for it
	Open(path string) error
}
