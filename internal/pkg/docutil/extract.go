// Package docutil extracts plain text from uploaded documents.
package docutil

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Supported media types.
const (
	TypePDF  = "application/pdf"
	TypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	TypeText = "text/plain"
)

var (
	// ErrUnsupportedType is returned for media types without an extractor.
	ErrUnsupportedType = errors.New("unsupported document type")
	// ErrMalformed is returned when a document cannot be parsed.
	ErrMalformed = errors.New("malformed document")
)

var extensionTypes = map[string]string{
	".pdf":  TypePDF,
	".docx": TypeDOCX,
	".txt":  TypeText,
	".md":   "text/markdown",
	".csv":  "text/csv",
}

// DetectType returns the media type of an upload. The declared content type
// wins unless it is empty or application/octet-stream, in which case the
// file extension decides.
func DetectType(filename, contentType string) string {
	if mt, _, err := mime.ParseMediaType(contentType); err == nil && mt != "application/octet-stream" {
		return mt
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if mt, ok := extensionTypes[ext]; ok {
		return mt
	}
	if mt, _, err := mime.ParseMediaType(mime.TypeByExtension(ext)); err == nil {
		return mt
	}
	return "application/octet-stream"
}

// Extract returns the text of data interpreted as mediaType.
func Extract(mediaType string, data []byte) (string, error) {
	switch {
	case mediaType == TypePDF:
		return extractPDF(data)
	case mediaType == TypeDOCX:
		return extractDOCX(data)
	case strings.HasPrefix(mediaType, "text/"):
		return string(bytes.ToValidUTF8(data, nil)), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mediaType)
	}
}

// extractPDF recovers from parser panics on malformed input.
func extractPDF(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%w: %v", ErrMalformed, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	out, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return string(out), nil
}

func extractDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	for _, f := range zr.File {
		if !strings.EqualFold(f.Name, "word/document.xml") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		defer func() { _ = rc.Close() }()
		text, err := docxText(rc)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return text, nil
	}
	return "", fmt.Errorf("%w: word/document.xml not found", ErrMalformed)
}

// docxText walks WordprocessingML and keeps run text, tabs and paragraph breaks.
// Any decode error other than the end of input fails the whole document.
func docxText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var sb strings.Builder
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				var text string
				if err := dec.DecodeElement(&text, &t); err != nil {
					return "", err
				}
				sb.WriteString(text)
			case "tab":
				sb.WriteByte('\t')
			case "br", "cr":
				sb.WriteByte('\n')
			}
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "tr" {
				sb.WriteByte('\n')
			}
		}
	}
	return sb.String(), nil
}
