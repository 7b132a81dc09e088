// Package imagestore keeps user-selected images on the local machine.
//
// Images are stored as data URLs under generated keys such as
// "post_image_1718000000000". A post's imageUrl field carries the key, so
// resolving an image is a local lookup rather than a network fetch.
// There is no delete path; the database grows with every uploaded image.
package imagestore

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"
	"github.com/vartaverse/varta/cli/pkg/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	PostPrefix  = "post_image"
	MoviePrefix = "movie_image"
)

// ErrNotFound is returned for unknown keys
var ErrNotFound = errors.New("image not found")

// Image is one stored image
type Image struct {
	Key       string `gorm:"column:image_key;primaryKey"`
	MimeType  string
	Size      int
	DataURL   string
	CreatedAt time.Time
}

// Store is a sqlite-backed key/value store for images
type Store struct {
	db  *gorm.DB
	now func() time.Time
	mu  sync.Mutex
}

// Open opens (and creates if needed) the image database at path
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, errors.Wrap(err, "failed to create image store directory")
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open image store %s", path)
	}

	if err := db.AutoMigrate(&Image{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate image store")
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close releases the underlying database handle
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SaveFile reads a file and stores it under a new key with the given prefix
func (s *Store) SaveFile(prefix, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read image %s", path)
	}
	return s.Save(prefix, data)
}

// Save stores data under "<prefix>_<unix millis>" and returns the key
func (s *Store) Save(prefix string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("image is empty")
	}

	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		logger.Warn("Storing non-image file", "mime", mime.String())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key, err := s.nextKey(prefix)
	if err != nil {
		return "", err
	}

	img := Image{
		Key:      key,
		MimeType: mime.String(),
		Size:     len(data),
		DataURL:  DataURL(mime.String(), data),
	}
	if err := s.db.Create(&img).Error; err != nil {
		return "", errors.Wrap(err, "failed to store image")
	}

	logger.Debug("Stored image", "key", key, "mime", img.MimeType, "bytes", img.Size)
	return key, nil
}

// nextKey uses the current millisecond, bumping it when the key is taken
func (s *Store) nextKey(prefix string) (string, error) {
	ms := s.now().UnixMilli()
	for {
		key := prefix + "_" + strconv.FormatInt(ms, 10)
		var count int64
		if err := s.db.Model(&Image{}).Where("image_key = ?", key).Count(&count).Error; err != nil {
			return "", errors.Wrap(err, "failed to check image key")
		}
		if count == 0 {
			return key, nil
		}
		ms++
	}
}

// Get returns the data URL stored under key
func (s *Store) Get(key string) (string, error) {
	var img Image
	err := s.db.Where("image_key = ?", key).First(&img).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", errors.Wrapf(err, "failed to load image %s", key)
	}
	return img.DataURL, nil
}

// Resolve is Get without the error; unknown or empty keys yield ""
func (s *Store) Resolve(key string) string {
	if key == "" {
		return ""
	}
	url, err := s.Get(key)
	if err != nil {
		logger.Debug("Image lookup failed", "key", key, "error", err)
		return ""
	}
	return url
}

// List returns stored images without their payloads, newest first
func (s *Store) List() ([]Image, error) {
	var images []Image
	err := s.db.Select("image_key", "mime_type", "size", "created_at").
		Order("created_at desc").
		Find(&images).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list images")
	}
	return images, nil
}

// DataURL encodes data as data:<mime>;base64,<payload>
func DataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Decode splits a data URL into its mime type and bytes
func Decode(dataURL string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return "", nil, errors.New("not a data URL")
	}
	header, payload, ok := strings.Cut(rest, ";base64,")
	if !ok {
		return "", nil, errors.New("data URL is not base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, errors.Wrap(err, "invalid base64 payload")
	}
	return header, data, nil
}
