// package formatter provides functions to export movie listings to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/st-doval17/myflix/internal/models"
	"github.com/st-doval17/myflix/internal/shared"
)

// Catalog is a named set of movies ready for export, typically the full
// catalog or a genre/director filter of it.
type Catalog struct {
	Name   string
	Movies []models.Movie
}

// ExportToCSV converts a catalog to CSV format with columns: ID, Title, Genre, Director, Featured
func ExportToCSV(catalog *Catalog) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Genre", "Director", "Featured"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, movie := range catalog.Movies {
		record := []string{
			movie.ID,
			movie.Title,
			movie.Genre.Name,
			movie.Director.Name,
			strconv.FormatBool(movie.Featured),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a catalog to Markdown format
func ExportToMarkdown(catalog *Catalog) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", catalog.Name))
	buf.WriteString(fmt.Sprintf("**Movies**: %d\n\n", len(catalog.Movies)))

	buf.WriteString("## Movies\n\n")
	for i, movie := range catalog.Movies {
		genrePart := ""
		if movie.Genre.Name != "" {
			genrePart = fmt.Sprintf(" (%s)", movie.Genre.Name)
		}

		featuredPart := ""
		if movie.Featured {
			featuredPart = " *(featured)*"
		}

		buf.WriteString(fmt.Sprintf("%d. **%s**%s - %s%s\n", i+1, movie.Title, genrePart, movie.Director.Name, featuredPart))
		if movie.Description != "" {
			buf.WriteString(fmt.Sprintf("   %s\n", movie.Description))
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts a catalog to plain text format
func ExportToText(catalog *Catalog) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Catalog: %s\n", catalog.Name))
	buf.WriteString(fmt.Sprintf("Movies: %d\n\n", len(catalog.Movies)))

	for i, movie := range catalog.Movies {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, movie.Title, movie.Director.Name))
	}

	return buf.Bytes(), nil
}

// ToMetadataJSON generates a JSON representation of a catalog without descriptions
func ToMetadataJSON(catalog *Catalog) ([]byte, error) {
	summary := struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}{Name: catalog.Name, Count: len(catalog.Movies)}

	return shared.MarshalJSON(summary, true)
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	MoviesFile   string
	MetadataFile string
}

// WriteCSVExport exports a catalog to CSV format with an accompanying metadata JSON file.
//
// Defaults to the catalog name as the base filename & creates {base}_movies.csv and {base}_metadata.json
func WriteCSVExport(catalog *Catalog, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = catalog.Name
	}

	csvData, err := ExportToCSV(catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	moviesFile := baseFilepath + "_movies.csv"
	if err := os.WriteFile(moviesFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	metadataJSON, err := ToMetadataJSON(catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := baseFilepath + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}

	return &CSVExportResult{
		MoviesFile:   moviesFile,
		MetadataFile: metadataFile,
	}, nil
}

// WriteMarkdownExport exports a catalog to Markdown.
//
// Defaults to {catalog.Name}.md as the filename.
func WriteMarkdownExport(catalog *Catalog, filepath string) (string, error) {
	if filepath == "" {
		filepath = catalog.Name + ".md"
	}

	mdData, err := ExportToMarkdown(catalog)
	if err != nil {
		return "", fmt.Errorf("failed to generate Markdown: %w", err)
	}

	if err := os.WriteFile(filepath, mdData, 0644); err != nil {
		return "", fmt.Errorf("failed to write Markdown file: %w", err)
	}

	return filepath, nil
}

// WriteTextExport exports a catalog to plain text.
//
// Defaults to {catalog.Name}_movies.txt as the filename.
func WriteTextExport(catalog *Catalog, filepath string) (string, error) {
	if filepath == "" {
		filepath = fmt.Sprintf("%s_movies.txt", catalog.Name)
	}

	textData, err := ExportToText(catalog)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(filepath, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return filepath, nil
}
