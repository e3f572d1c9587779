package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
)

const uploadDir = "./static/uploads"

// SaveImage stores an uploaded recipe photo under a UUID name and writes a
// 320px-wide thumbnail next to it. Returns the public URL of the original.
func SaveImage(file multipart.File, header *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png":
	default:
		return "", fmt.Errorf("unsupported image type %q", ext)
	}

	if err := os.MkdirAll(uploadDir, os.ModePerm); err != nil {
		return "", err
	}

	name := uuid.New().String() + ext
	path := filepath.Join(uploadDir, name)

	out, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(out, file); err != nil {
		out.Close()
		return "", err
	}
	out.Close()

	if img, err := imaging.Open(path); err == nil {
		thumb := imaging.Resize(img, 320, 0, imaging.Lanczos)
		_ = imaging.Save(thumb, filepath.Join(uploadDir, "thumb_"+name))
	}

	return "/static/uploads/" + name, nil
}

// UploadImages accepts multipart image uploads and responds with the URLs
// the client stores in the recipe's image field.
func UploadImages(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Failed to parse form")
		return
	}

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		RespondWithError(w, http.StatusBadRequest, "No images uploaded")
		return
	}

	var urls []string
	for _, fileHeader := range files {
		file, err := fileHeader.Open()
		if err != nil {
			RespondWithError(w, http.StatusInternalServerError, "Error reading file")
			return
		}

		url, err := SaveImage(file, fileHeader)
		file.Close()
		if err != nil {
			RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		urls = append(urls, url)
	}

	RespondWithJSON(w, http.StatusOK, M{"urls": urls})
}
