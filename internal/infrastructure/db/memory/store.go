// Package memory implements the repository ports over an in-process record
// store. It is the default storage driver: a single ordered collection per
// entity, seeded with the sample marketplace data, guarded by one lock so
// every operation observes a total order equal to call order.
package memory

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/studentdiscount/marketplace-api/internal/core/domain"
)

// Store owns all entity instances. Repositories are stateless views over it;
// no entity escapes without being cloned.
type Store struct {
	mu       sync.RWMutex
	users    []*domain.User
	products []*domain.Product
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// NewSeededStore returns a store preloaded with the sample users and catalog.
func NewSeededStore() *Store {
	s := NewStore()
	s.users = seedUsers()
	s.products = seedProducts()
	return s
}

// newID returns a collision-resistant identifier with an entity prefix.
// Length-derived sequential ids collide after deletes; UUIDs do not.
func newID(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, uuid.NewString())
}

func mustHash(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("memory: seed password hash: %v", err))
	}
	return string(hash)
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func seedUsers() []*domain.User {
	return []*domain.User{
		{
			ID:           "usr_1",
			Name:         "Admin User",
			Email:        "admin@studentdiscount.com",
			Mobile:       "9876543210",
			Role:         domain.RoleAdmin,
			Verified:     true,
			PasswordHash: mustHash("admin123"),
			CreatedAt:    date(2023, time.January, 1),
			UpdatedAt:    date(2023, time.January, 1),
		},
		{
			ID:           "usr_2",
			Name:         "Rahul Sharma",
			Email:        "rahul@example.com",
			Mobile:       "9876543211",
			Role:         domain.RoleStudent,
			Verified:     true,
			Institute:    "Delhi Technical University",
			RollNo:       "DTU/2021/CS/123",
			PasswordHash: mustHash("student123"),
			CreatedAt:    date(2023, time.February, 15),
			UpdatedAt:    date(2023, time.February, 15),
			StudentDetails: &domain.StudentDetails{
				Stream:      "Engineering",
				Branch:      "Computer Science",
				CurrentYear: 3,
				PassoutYear: 2025,
				Gender:      "Male",
				DOB:         date(2000, time.May, 10),
				IDCardURL:   "https://example.com/id-cards/rahul.jpg",
			},
		},
		{
			ID:           "usr_3",
			Name:         "TechGadgets India",
			Email:        "contact@techgadgets.com",
			Mobile:       "9876543212",
			Role:         domain.RoleVendor,
			Verified:     true,
			BusinessName: "TechGadgets India",
			PasswordHash: mustHash("vendor123"),
			CreatedAt:    date(2023, time.March, 20),
			UpdatedAt:    date(2023, time.March, 20),
			VendorDetails: &domain.VendorDetails{
				BusinessType: "LLC",
				Category:     "Electronics",
				Address:      "123 Tech Park, Phase 2",
				City:         "Bangalore",
				State:        "Karnataka",
				Pincode:      "560001",
				Country:      "India",
				GSTNumber:    "29ABCDE1234F1Z5",
				PANNumber:    "ABCDE1234F",
				BankDetails: &domain.BankDetails{
					BankName:          "HDFC Bank",
					AccountNumber:     "12345678901234",
					IFSCCode:          "HDFC0001234",
					AccountHolderName: "TechGadgets India",
				},
			},
		},
	}
}

func seedProducts() []*domain.Product {
	return []*domain.Product{
		{
			ID:   "prod_1",
			Name: "Premium Noise-Cancelling Headphones",
			Description: "Experience premium sound quality with these noise-cancelling headphones. " +
				"Perfect for students who need to focus on their studies or enjoy music without distractions.",
			Price:         129.99,
			OriginalPrice: 249.99,
			Discount:      48,
			Category:      "Electronics",
			Subcategory:   "Audio",
			Images:        []string{"/placeholder.svg?height=300&width=300"},
			Stock:         45,
			VendorID:      "usr_3",
			Rating:        4.5,
			Reviews:       128,
			Specifications: map[string]string{
				"Brand":        "TechPro",
				"Model":        "XP-2023",
				"Color":        "Black",
				"Connectivity": "Bluetooth 5.0",
				"Battery Life": "Up to 30 hours",
				"Warranty":     "1 Year Manufacturer Warranty",
			},
			Status:    domain.StatusActive,
			CreatedAt: date(2023, time.April, 10),
			UpdatedAt: date(2023, time.April, 10),
		},
		{
			ID:   "prod_2",
			Name: "Ultrabook Pro 14-inch",
			Description: "Powerful and lightweight laptop perfect for students. Features a " +
				"high-resolution display, fast processor, and all-day battery life.",
			Price:         899.99,
			OriginalPrice: 1299.99,
			Discount:      31,
			Category:      "Electronics",
			Subcategory:   "Laptops",
			Images:        []string{"/placeholder.svg?height=300&width=300"},
			Stock:         12,
			VendorID:      "usr_3",
			Rating:        4.8,
			Reviews:       95,
			Specifications: map[string]string{
				"Processor": "Intel Core i7 12th Gen",
				"RAM":       "16GB DDR4",
				"Storage":   "512GB SSD",
				"Display":   "14-inch 2.8K (2880 x 1800)",
				"Graphics":  "Intel Iris Xe",
				"Battery":   "Up to 12 hours",
				"Weight":    "1.3 kg",
			},
			Status:    domain.StatusActive,
			CreatedAt: date(2023, time.April, 15),
			UpdatedAt: date(2023, time.April, 15),
		},
	}
}
