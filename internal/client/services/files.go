package services

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/client/client"
	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/client/models"
	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/filex"
)

// FileKind is the preview category of a file.
type FileKind string

const (
	KindImage       FileKind = "image"
	KindPDF         FileKind = "pdf"
	KindDocument    FileKind = "document"
	KindSpreadsheet FileKind = "spreadsheet"
	KindAudio       FileKind = "audio"
	KindVideo       FileKind = "video"
	KindOther       FileKind = "other"
)

var kindByExt = map[string]FileKind{
	"jpg": KindImage, "jpeg": KindImage, "png": KindImage, "svg": KindImage, "webp": KindImage, "gif": KindImage,
	"pdf":  KindPDF,
	"docx": KindDocument,
	"xlsx": KindSpreadsheet, "xls": KindSpreadsheet, "csv": KindSpreadsheet, "ods": KindSpreadsheet,
	"mp3": KindAudio, "wav": KindAudio, "ogg": KindAudio, "m4a": KindAudio,
	"mp4": KindVideo, "webm": KindVideo, "mov": KindVideo, "avi": KindVideo, "mkv": KindVideo,
}

// KindOf classifies a file by the extension of its name.
func KindOf(name string) FileKind {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if k, ok := kindByExt[ext]; ok {
		return k
	}
	return KindOther
}

// FileService manages the files of a type.
type FileService interface {
	List(ctx context.Context, typeID string) ([]models.Fichier, error)
	Details(ctx context.Context, fileID string) (*models.Fichier, error)
	Upload(ctx context.Context, typeID, path string) (*models.Fichier, error)
	UploadBytes(ctx context.Context, typeID, name string, data []byte) (*models.Fichier, error)
	Delete(ctx context.Context, fileID string) error
	Download(ctx context.Context, fileID string) (*client.Download, error)
	DownloadURL(fileID string) string
	Save(ctx context.Context, fileID, dir string) (string, error)
}

type fileService struct {
	api API
}

func NewFileService(api API) FileService {
	return &fileService{api: api}
}

func (s *fileService) List(ctx context.Context, typeID string) ([]models.Fichier, error) {
	var out []models.Fichier
	if err := s.api.GetJSON(ctx, "/fichier/"+id(typeID), nil, client.Raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *fileService) Details(ctx context.Context, fileID string) (*models.Fichier, error) {
	var out models.Fichier
	if err := s.api.GetJSON(ctx, "/fichier/"+id(fileID)+"/visualiser", nil, client.DataOrRaw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Upload sends the file at path to the given type.
func (s *fileService) Upload(ctx context.Context, typeID, path string) (*models.Fichier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return s.UploadBytes(ctx, typeID, filepath.Base(path), data)
}

func (s *fileService) UploadBytes(ctx context.Context, typeID, name string, data []byte) (*models.Fichier, error) {
	form := client.NewForm().
		File("file", name, data).
		Field("idTypeRubrique", typeID)

	var out models.Fichier
	if err := s.api.SendMultipart(ctx, http.MethodPost, "/fichier", form, client.DataOrRaw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *fileService) Delete(ctx context.Context, fileID string) error {
	return s.api.Delete(ctx, "/fichier/"+id(fileID))
}

func (s *fileService) Download(ctx context.Context, fileID string) (*client.Download, error) {
	return s.api.GetBinary(ctx, s.downloadPath(fileID))
}

// DownloadURL is the direct address of the file content.
func (s *fileService) DownloadURL(fileID string) string {
	return s.api.URL(s.downloadPath(fileID))
}

func (s *fileService) downloadPath(fileID string) string {
	return "/fichier/" + id(fileID) + "/telecharger"
}

// Save downloads the file into dir and returns the written path. Without a
// name from the server the file is named after its id and detected type.
func (s *fileService) Save(ctx context.Context, fileID, dir string) (string, error) {
	dl, err := s.Download(ctx, fileID)
	if err != nil {
		return "", err
	}

	dir, err = filex.EnsureDir(dir)
	if err != nil {
		return "", err
	}

	name := dl.FileName
	if name == "" {
		name = "fichier-" + fileID + mimetype.Detect(dl.Data).Extension()
	}
	return filex.WriteUnique(dir, name, dl.Data)
}
