package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/artisell/artisell-backend/config"
	"github.com/artisell/artisell-backend/internal/app/model"
	"github.com/artisell/artisell-backend/internal/app/repository"
	"github.com/artisell/artisell-backend/internal/db"
)

// Expected sheet columns:
// title | artist | price | description | region | medium | dimensions | year | featured | image_urls
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	productRepo := repository.NewProductRepository(db.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	products, err := readProductsFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total artworks to import: %d\n", len(products))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	batchSize := 500
	fmt.Printf("Starting bulk import with batch size: %d\n", batchSize)
	if err := productRepo.BulkCreate(products, batchSize); err != nil {
		log.Fatal("Failed to bulk create products:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total artworks imported: %d\n", len(products))
}

func readProductsFromXLSX(filePath string) ([]model.Product, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	if len(rows) < 2 {
		return nil, fmt.Errorf("no data rows found in XLSX file")
	}

	var products []model.Product
	seen := make(map[string]bool)
	skipped := 0

	// Skip the header row.
	for i, row := range rows[1:] {
		rowNum := i + 2

		if len(row) < 3 {
			skipped++
			continue
		}

		title := strings.TrimSpace(cell(row, 0))
		artist := strings.TrimSpace(cell(row, 1))
		if title == "" || artist == "" {
			fmt.Printf("Row %d: missing title or artist, skipping\n", rowNum)
			skipped++
			continue
		}

		dedupeKey := title + "|" + artist
		if seen[dedupeKey] {
			skipped++
			continue
		}
		seen[dedupeKey] = true

		price, err := decimal.NewFromString(strings.TrimSpace(cell(row, 2)))
		if err != nil || price.IsNegative() {
			fmt.Printf("Row %d: invalid price %q, skipping\n", rowNum, cell(row, 2))
			skipped++
			continue
		}

		year := 0
		if v := strings.TrimSpace(cell(row, 7)); v != "" {
			if parsed, err := strconv.Atoi(v); err == nil {
				year = parsed
			}
		}

		product := model.Product{
			Title:       title,
			Artist:      artist,
			Price:       price,
			Description: strings.TrimSpace(cell(row, 3)),
			Region:      strings.TrimSpace(cell(row, 4)),
			Medium:      strings.TrimSpace(cell(row, 5)),
			Dimensions:  strings.TrimSpace(cell(row, 6)),
			Year:        year,
			IsFeatured:  parseBool(cell(row, 8)),
			InStock:     true,
		}

		for j, url := range splitURLs(cell(row, 9)) {
			product.Images = append(product.Images, model.ProductImage{
				ImageURL:  url,
				IsPrimary: j == 0,
			})
		}

		products = append(products, product)
	}

	fmt.Printf("Parsed %d artworks (%d rows skipped)\n", len(products), skipped)
	return products, nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1":
		return true
	}
	return false
}

func splitURLs(s string) []string {
	var urls []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			urls = append(urls, trimmed)
		}
	}
	return urls
}
