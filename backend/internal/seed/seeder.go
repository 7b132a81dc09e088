package seed

import (
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/vartaverse/varta/backend/internal/logger"
	"github.com/vartaverse/varta/backend/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Demo account available on every fresh server
const (
	TestUserEmail    = "test@example.com"
	TestUserPassword = "password123"
	TestUserName     = "Test User"
)

var fakeCategories = []string{"general", "guide", "announcement", "review", "movie"}

// Seeder fills a fresh database with demo data
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	_ = gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{db: db}
}

// SeedDev creates the demo account, the three welcome posts and fakePosts generated posts
func (s *Seeder) SeedDev(fakePosts int) error {
	admin, err := s.seedTestUser()
	if err != nil {
		return fmt.Errorf("failed to seed test user: %w", err)
	}

	if err := s.seedWelcomePosts(admin); err != nil {
		return fmt.Errorf("failed to seed welcome posts: %w", err)
	}

	if fakePosts > 0 {
		if err := s.seedFakePosts(fakePosts); err != nil {
			return fmt.Errorf("failed to seed fake posts: %w", err)
		}
	}
	return nil
}

func (s *Seeder) seedTestUser() (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ?", TestUserEmail).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(TestUserPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user = models.User{
		ID:           1,
		Email:        TestUserEmail,
		PasswordHash: string(hashedPassword),
		Name:         TestUserName,
		Role:         "user",
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	logger.Log.Info("Created test user", zap.String("email", user.Email))
	return &user, nil
}

func (s *Seeder) seedWelcomePosts(admin *models.User) error {
	var count int64
	if err := s.db.Model(&models.Post{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Log.Info("Posts already present, skipping welcome posts", zap.Int64("count", count))
		return nil
	}

	now := time.Now().UTC()
	posts := []models.Post{
		{
			Title:         "Welcome to VartaVerse",
			Content:       "This is your first post on VartaVerse!",
			Category:      "general",
			LikesCount:    5,
			CommentsCount: 2,
			AverageRating: 4.5,
			Tags:          models.StringArray{"welcome", "introduction"},
			CreatedAt:     now.Add(-3 * time.Hour),
		},
		{
			Title:         "Getting Started Guide",
			Content:       "Learn how to make the most of VartaVerse platform.",
			Category:      "guide",
			LikesCount:    12,
			CommentsCount: 8,
			AverageRating: 4.8,
			Tags:          models.StringArray{"guide", "tutorial"},
			CreatedAt:     now.Add(-2 * time.Hour),
		},
		{
			Title:         "Community Guidelines",
			Content:       "Please follow these guidelines to maintain a positive community.",
			Category:      "announcement",
			LikesCount:    3,
			CommentsCount: 1,
			AverageRating: 4.2,
			Tags:          models.StringArray{"rules", "community"},
			CreatedAt:     now.Add(-1 * time.Hour),
		},
	}
	for i := range posts {
		posts[i].AuthorID = admin.ID
		posts[i].Author = "Admin"
		posts[i].UpdatedAt = posts[i].CreatedAt
	}

	if err := s.db.Create(&posts).Error; err != nil {
		return err
	}
	logger.Log.Info("Created welcome posts", zap.Int("count", len(posts)))
	return nil
}

// seedFakePosts creates a handful of authors and spreads count posts across them
func (s *Seeder) seedFakePosts(count int) error {
	authors, err := s.seedFakeUsers(min(5, count))
	if err != nil {
		return err
	}

	posts := make([]models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := authors[i%len(authors)]
		createdAt := gofakeit.DateRange(time.Now().AddDate(0, 0, -30), time.Now()).UTC()

		posts = append(posts, models.Post{
			Title:         fakeTitle(),
			Content:       fakeContent(),
			Category:      gofakeit.RandomString(fakeCategories),
			AuthorID:      author.ID,
			Author:        author.Name,
			LikesCount:    gofakeit.Number(0, 50),
			AverageRating: float64(gofakeit.Number(10, 50)) / 10,
			Tags:          models.StringArray{strings.ToLower(gofakeit.Word()), strings.ToLower(gofakeit.Word())},
			CreatedAt:     createdAt,
			UpdatedAt:     createdAt,
		})
	}

	if err := s.db.Create(&posts).Error; err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}

	logger.Log.Info("Created fake posts", zap.Int("count", count), zap.Int("authors", len(authors)))
	return nil
}

func (s *Seeder) seedFakeUsers(count int) ([]models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(TestUserPassword), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	users := make([]models.User, 0, count)
	for len(users) < count {
		email := gofakeit.Email()

		var existing int64
		if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&existing).Error; err != nil {
			return nil, err
		}
		if existing > 0 {
			continue
		}

		user := models.User{
			Email:        email,
			PasswordHash: string(hashedPassword),
			Name:         gofakeit.Name(),
			Role:         "user",
			Bio:          gofakeit.Phrase(),
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		users = append(users, user)
	}
	return users, nil
}

func fakeTitle() string {
	if gofakeit.Bool() {
		return gofakeit.MovieName()
	}
	phrase := gofakeit.Phrase()
	if phrase == "" {
		return gofakeit.MovieName()
	}
	return strings.ToUpper(phrase[:1]) + phrase[1:]
}

func fakeContent() string {
	parts := make([]string, 0, 4)
	for i := gofakeit.Number(2, 4); i > 0; i-- {
		if i%2 == 0 {
			parts = append(parts, gofakeit.Question())
		} else {
			parts = append(parts, gofakeit.Phrase()+".")
		}
	}
	return strings.Join(parts, " ")
}
