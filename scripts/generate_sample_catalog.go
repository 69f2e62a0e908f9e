package main

import (
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Writes data/products.csv.gz for `tinyshop seed`.
func main() {
	dataDir := "data"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	products := [][]string{
		{"Mechanical Keyboard", "10.00"},
		{"Wireless Mouse", "5.00"},
		{"27\" Monitor", "189.99"},
		{"USB-C Cable, 2m", "7.49"},
		{"Laptop Stand", "34.90"},
		{"Webcam", "49.00"},
		{"Desk Mat", "12.00"},
		{"Headphones", "79.95"},
	}

	filePath := filepath.Join(dataDir, "products.csv.gz")
	if err := createCatalogFile(filePath, products); err != nil {
		log.Fatalf("Failed to create %s: %v", filePath, err)
	}

	fmt.Printf("Created %s with %d products\n", filePath, len(products))
	fmt.Println("\nLoad it with:")
	fmt.Printf("  go run ./cmd/api seed --file %s\n", filePath)
}

func createCatalogFile(filePath string, products [][]string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	writer := csv.NewWriter(gzipWriter)
	if err := writer.Write([]string{"name", "price"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := writer.WriteAll(products); err != nil {
		return fmt.Errorf("failed to write products: %w", err)
	}

	return nil
}
