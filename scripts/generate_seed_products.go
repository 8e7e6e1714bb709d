package main

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
)

type seedProduct struct {
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Image    string `json:"image,omitempty"`
	Stock    int    `json:"stock"`
	IsActive bool   `json:"isActive"`
}

// Writes a sample catalog seed file to data/products.json. Point
// CATALOG_SEED_PATH at the output to populate an empty database on startup.
func main() {
	dataDir := "data"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	products := []seedProduct{
		{Name: "모던 패브릭 소파", Price: 890000, Image: "/images/sofa-fabric.jpg", Stock: 5, IsActive: true},
		{Name: "북유럽 3인 소파", Price: 1250000, Image: "/images/sofa-nordic.jpg", Stock: 3, IsActive: true},
		{Name: "원목 식탁 테이블", Price: 450000, Image: "/images/table-wood.jpg", Stock: 8, IsActive: true},
		{Name: "원목 의자", Price: 120000, Image: "/images/chair-wood.jpg", Stock: 20, IsActive: true},
		{Name: "슬라이딩 옷장", Price: 680000, Image: "/images/wardrobe.jpg", Stock: 4, IsActive: true},
		{Name: "퀸 사이즈 침대", Price: 990000, Image: "/images/bed-queen.jpg", Stock: 6, IsActive: true},
		{Name: "책상 겸 수납장", Price: 230000, Image: "/images/desk.jpg", Stock: 12, IsActive: true},
		{Name: "철제 책장", Price: 150000, Image: "/images/bookshelf.jpg", Stock: 15, IsActive: true},
		{Name: "단종 전시 소파", Price: 300000, Stock: 0, IsActive: false},
	}

	path := filepath.Join(dataDir, "products.json")
	file, err := os.Create(path)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", path, err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(products); err != nil {
		log.Fatalf("Failed to write seed data: %v", err)
	}

	log.Printf("Wrote %d products to %s", len(products), path)
}
