package handlers

import (
	"bytes"
	"errors"
	"mime/multipart"
	"path/filepath"
	"strings"

	"yatube/config"
	"yatube/storage"
	"yatube/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// savePostImage stores the uploaded image and a JPEG thumbnail for the
// listing pages. Files are named by uuid so uploads never collide.
// A broken/undecodable image keeps the original and skips the thumb.
func savePostImage(file *multipart.FileHeader) (imagePath, thumbPath string, err error) {
	store := storage.GetDefaultStorage()
	if store == nil {
		return "", "", errors.New("no storage configured")
	}
	src, err := file.Open()
	if err != nil {
		return "", "", err
	}
	name := uuid.NewString() + filepath.Ext(file.Filename)
	imagePath = "posts/" + name
	_, err = store.Save(imagePath, src)
	src.Close()
	if err != nil {
		return "", "", err
	}

	src, err = file.Open()
	if err != nil {
		return imagePath, "", nil
	}
	var thumbBuf bytes.Buffer
	_, thumbErr := utils.CreateThumb(uint(config.THUMB_SIZE), src, &thumbBuf)
	src.Close()
	if thumbErr == nil {
		thumbPath = "thumbs/" + name + ".jpg"
		if _, err := store.Save(thumbPath, &thumbBuf); err != nil {
			thumbPath = ""
		}
	}
	return imagePath, thumbPath, nil
}

// MediaFetch serves stored post images.
func MediaFetch(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("path"), "/")
	if strings.Contains(path, "..") ||
		(!strings.HasPrefix(path, "posts/") && !strings.HasPrefix(path, "thumbs/")) {
		notFound(c)
		return
	}
	store := storage.GetDefaultStorage()
	if store == nil {
		notFound(c)
		return
	}
	store.Serve(path, c.Request, c.Writer)
}
