package seed

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/eunwoo0701/cafe-delight/internal/domain"
)

type menuItem struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       string   `json:"price"`
	Ingredients []string `json:"ingredients"`
	Image       string   `json:"image"`
}

type menuFile struct {
	HotDrinks  []menuItem `json:"hotDrinks"`
	ColdDrinks []menuItem `json:"coldDrinks"`
	Desserts   []menuItem `json:"desserts"`
}

// Products loads the starter menu from path and inserts it, skipping entirely
// when the catalog already has rows so restarts stay idempotent.
func Products(path string, repo domain.ProductRepository, log *logrus.Logger) error {
	count, err := repo.CountProducts()
	if err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		log.Debugf("Seed: catalog already has %d products, skipping", count)
		return nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read menu file %s: %w", path, err)
	}

	var menu menuFile
	if err := json.Unmarshal(raw, &menu); err != nil {
		return fmt.Errorf("failed to parse menu file %s: %w", path, err)
	}

	groups := []struct {
		category domain.Category
		items    []menuItem
	}{
		{domain.CategoryHot, menu.HotDrinks},
		{domain.CategoryCold, menu.ColdDrinks},
		{domain.CategoryDessert, menu.Desserts},
	}

	seeded := 0
	for _, group := range groups {
		for _, item := range group.items {
			price, err := decimal.NewFromString(item.Price)
			if err != nil {
				return fmt.Errorf("invalid price %q for %s: %w", item.Price, item.Name, err)
			}

			product := &domain.Product{
				Name:        item.Name,
				Category:    group.category,
				Description: item.Description,
				Price:       price,
				ImageURL:    item.Image,
				Ingredients: strings.Join(item.Ingredients, ", "),
				Sizes:       domain.DefaultSizes,
				Stock:       domain.DefaultStock,
			}
			if _, err := repo.CreateProduct(product); err != nil {
				return fmt.Errorf("failed to seed product %s: %w", item.Name, err)
			}
			seeded++
		}
	}

	log.Infof("Seed: inserted %d menu products", seeded)
	return nil
}

// Admin creates the bootstrap admin account when ADMIN_EMAIL and
// ADMIN_PASSWORD are configured and the account does not exist yet.
func Admin(email, password string, repo domain.UserRepository, log *logrus.Logger) error {
	if email == "" || password == "" {
		log.Debug("Seed: admin credentials not configured, skipping admin bootstrap")
		return nil
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := repo.GetUserByEmail(email); err == nil {
		log.Debugf("Seed: admin account %s already exists", email)
		return nil
	} else if !domain.IsNotFound(err) {
		return fmt.Errorf("failed to look up admin account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	_, err = repo.CreateUser(&domain.User{
		Name:         "Admin",
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	log.Infof("Seed: created admin account %s", email)
	return nil
}

var defaultFAQs = []domain.FAQ{
	{
		Question: "What are your cafe's opening hours?",
		Answer:   "Cafe is open Monday to Friday from 7:00 AM to 8:00 PM, and Saturday to Sunday from 8:00 AM to 6:00 PM.",
	},
	{
		Question: "Do you offer vegan or gluten-free options?",
		Answer:   "Yes, we have a variety of vegan and gluten-free options on our menu. Check the Drinks pages for details or ask our staff for recommendations.",
	},
	{
		Question: "Can I make a reservation for a group?",
		Answer:   "Yes, we accept reservations for groups of 4 or more.",
	},
	{
		Question: "Do you have Wi-Fi available for customers?",
		Answer:   "Yes, we offer free Wi-Fi to all customers. Ask our staff for the password when you visit.",
	},
	{
		Question: "Do you have parking?",
		Answer:   "Yes, free parking is available nearby.",
	},
	{
		Question: "Are pets allowed?",
		Answer:   "Service animals only are allowed inside the cafe.",
	},
}

// FAQs inserts the default questions the first time the table is empty.
func FAQs(repo domain.FAQRepository, log *logrus.Logger) error {
	count, err := repo.CountFAQs()
	if err != nil {
		return fmt.Errorf("failed to count FAQs: %w", err)
	}
	if count > 0 {
		log.Debugf("Seed: FAQ table already has %d rows, skipping", count)
		return nil
	}

	for i := range defaultFAQs {
		if _, err := repo.CreateFAQ(&defaultFAQs[i]); err != nil {
			return fmt.Errorf("failed to seed FAQ %q: %w", defaultFAQs[i].Question, err)
		}
	}

	log.Infof("Seed: inserted %d default FAQs", len(defaultFAQs))
	return nil
}
