package service

import (
	"fmt"
	"os"

	clierrors "github.com/vartaverse/varta/cli/pkg/errors"
	"github.com/vartaverse/varta/cli/pkg/formatter"
	"github.com/vartaverse/varta/cli/pkg/imagestore"
	"github.com/vartaverse/varta/cli/pkg/output"
)

// ImageService inspects the local image store
type ImageService struct {
	env *Env
}

func NewImageService(env *Env) *ImageService {
	return &ImageService{env: env}
}

func (s *ImageService) store() (*imagestore.Store, error) {
	if s.env.Images == nil {
		return nil, clierrors.NewCLIError(clierrors.ErrorTypeUnknown, "Local image store is unavailable", nil)
	}
	return s.env.Images, nil
}

// List prints the stored image keys, newest first
func (s *ImageService) List() error {
	store, err := s.store()
	if err != nil {
		return err
	}

	images, err := store.List()
	if err != nil {
		return clierrors.CategorizeError(err)
	}
	if output.IsJSON() {
		return output.Print("", images)
	}
	if len(images) == 0 {
		output.PrintInfo("No images stored.")
		return nil
	}

	rows := make([][]string, len(images))
	for i, img := range images {
		rows[i] = []string{img.Key, img.MimeType, fmt.Sprintf("%d", img.Size), img.CreatedAt.Local().Format("2006-01-02 15:04")}
	}
	formatter.Bold.Fprintf(output.Out, "%d image%s\n\n", len(images), formatter.Pluralize(len(images)))
	return output.PrintTable([]string{"Key", "Type", "Bytes", "Stored"}, rows)
}

// Show prints the data URL stored under key, or writes the decoded image to outPath
func (s *ImageService) Show(key, outPath string) error {
	store, err := s.store()
	if err != nil {
		return err
	}

	dataURL, err := store.Get(key)
	if err != nil {
		if err == imagestore.ErrNotFound {
			return clierrors.NotFoundError("Image", key)
		}
		return clierrors.CategorizeError(err)
	}

	if outPath == "" {
		if output.IsJSON() {
			return output.Print("", map[string]string{"key": key, "dataUrl": dataURL})
		}
		fmt.Fprintln(output.Out, dataURL)
		return nil
	}

	mime, data, err := imagestore.Decode(dataURL)
	if err != nil {
		return clierrors.CategorizeError(err)
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return clierrors.NewCLIError(clierrors.ErrorTypeUnknown, "Failed to write "+outPath, err)
	}
	output.PrintSuccess("Wrote %s (%s, %d bytes)", outPath, mime, len(data))
	return nil
}
