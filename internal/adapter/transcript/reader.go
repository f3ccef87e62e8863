package transcript

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/johnquangdev/minutesgen/errors"
)

// Read loads a transcript from disk. Word documents get their paragraph
// text extracted; anything else is treated as plain UTF-8 text.
func Read(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", apperrors.ErrInputNotFound(path)
		}
		return "", apperrors.ErrInputUnreadable(path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".docx") {
		return readDocx(path)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return "", apperrors.ErrInputUnreadable(path, err)
	}
	return string(b), nil
}

// Stem returns the base name of the transcript without its extension,
// used to derive local output filenames.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// readDocx pulls paragraph text out of the OOXML main document part.
// A .docx is a zip container; word/document.xml holds w:p paragraphs whose
// w:t runs carry the text.
func readDocx(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", apperrors.ErrInputUnreadable(path, err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", apperrors.ErrInputUnreadable(path, err)
		}
		defer rc.Close()
		return extractParagraphs(rc)
	}
	return "", apperrors.ErrInputUnreadable(path, io.ErrUnexpectedEOF)
}

func extractParagraphs(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)

	var (
		sb     strings.Builder
		inText bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", apperrors.ErrInputUnreadable("word/document.xml", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}
