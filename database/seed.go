package database

import (
	"encoding/json"
	"log"
	"os"

	"courseplatform/config"
	"courseplatform/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedSubtopic struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type seedTopic struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Subtopics []seedSubtopic `json:"subtopics"`
}

type seedCourse struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Topics      []seedTopic `json:"topics"`
}

type seedData struct {
	Courses []seedCourse `json:"courses"`
}

// Seed creates the default accounts and loads the course catalog from the
// seed file. Both steps are skipped when rows already exist, so it is safe
// to run on every startup.
func Seed(db *gorm.DB, cfg *config.Config) error {
	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return err
	}

	if userCount == 0 {
		log.Println("Creating default users...")
		if err := createDefaultUsers(db, cfg); err != nil {
			return err
		}
	}

	var courseCount int64
	if err := db.Model(&models.Course{}).Count(&courseCount).Error; err != nil {
		return err
	}

	if courseCount > 0 {
		log.Println("Database already contains courses. Skipping seed data loading.")
		return nil
	}

	log.Println("Database is empty. Loading seed data...")
	if err := loadCatalog(db, cfg.SeedFile); err != nil {
		return err
	}
	log.Println("Seed data loaded successfully.")

	return nil
}

func createDefaultUsers(db *gorm.DB, cfg *config.Config) error {
	defaults := []struct {
		email    string
		password string
		roles    string
	}{
		{"user@example.com", "password", "USER"},
		{"admin@example.com", "adminpass", "ADMIN"},
	}

	for _, d := range defaults {
		hashed, err := bcrypt.GenerateFromPassword([]byte(d.password), cfg.SaltRound)
		if err != nil {
			return err
		}
		user := models.User{
			Email:    d.email,
			Password: string(hashed),
			Roles:    d.roles,
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
	}

	return nil
}

func loadCatalog(db *gorm.DB, seedFile string) error {
	raw, err := os.ReadFile(seedFile)
	if err != nil {
		return err
	}

	var data seedData
	if err := json.Unmarshal(raw, &data); err != nil {
		return err
	}

	for _, sc := range data.Courses {
		course := models.Course{
			ID:          sc.ID,
			Title:       sc.Title,
			Description: sc.Description,
		}
		for _, st := range sc.Topics {
			topic := models.Topic{
				Slug:  st.ID,
				Title: st.Title,
			}
			for _, ss := range st.Subtopics {
				topic.Subtopics = append(topic.Subtopics, models.Subtopic{
					Slug:    ss.ID,
					Title:   ss.Title,
					Content: ss.Content,
				})
			}
			course.Topics = append(course.Topics, topic)
		}

		if err := db.Create(&course).Error; err != nil {
			return err
		}
		log.Printf("Loaded course: %s", course.Title)
	}

	return nil
}
