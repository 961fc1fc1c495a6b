package formatter

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/st-doval17/myflix/internal/models"
	th "github.com/st-doval17/myflix/internal/testing"
)

func testCatalog() *Catalog {
	return &Catalog{
		Name: "catalog",
		Movies: []models.Movie{
			{
				ID:          "m1",
				Title:       "Alien",
				Description: "A commercial crew picks up a distress call.",
				Genre:       models.Genre{Name: "Science Fiction"},
				Director:    models.Director{Name: "Ridley Scott"},
				Featured:    true,
			},
			{
				ID:       "m2",
				Title:    "Blade Runner",
				Genre:    models.Genre{Name: "Science Fiction"},
				Director: models.Director{Name: "Ridley Scott"},
			},
		},
	}
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(testCatalog())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "ID,Title,Genre,Director,Featured") {
			t.Errorf("CSV missing headers, got: %s", output)
		}

		if !strings.Contains(output, "m1") {
			t.Errorf("CSV missing movie ID")
		}
		if !strings.Contains(output, "Alien") {
			t.Errorf("CSV missing movie title")
		}
		if !strings.Contains(output, "Ridley Scott") {
			t.Errorf("CSV missing director name")
		}
		if !strings.Contains(output, "true") {
			t.Errorf("CSV missing featured flag")
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown(testCatalog())
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "# catalog") {
			t.Errorf("Markdown missing heading, got: %s", output)
		}
		if !strings.Contains(output, "**Movies**: 2") {
			t.Errorf("Markdown missing movie count")
		}
		if !strings.Contains(output, "1. **Alien** (Science Fiction) - Ridley Scott *(featured)*") {
			t.Errorf("Markdown missing featured entry, got: %s", output)
		}
		if !strings.Contains(output, "A commercial crew picks up a distress call.") {
			t.Errorf("Markdown missing description")
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(testCatalog())
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "Catalog: catalog") {
			t.Errorf("Text missing catalog name, got: %s", output)
		}
		if !strings.Contains(output, "1. Alien - Ridley Scott") {
			t.Errorf("Text missing first movie")
		}
		if !strings.Contains(output, "2. Blade Runner - Ridley Scott") {
			t.Errorf("Text missing second movie")
		}
	})

	t.Run("WriteCSVExport creates both files", func(t *testing.T) {
		base := filepath.Join(t.TempDir(), "export")
		result, err := WriteCSVExport(testCatalog(), base)
		if err != nil {
			t.Fatalf("WriteCSVExport failed: %v", err)
		}

		th.AssertFileExists(t, result.MoviesFile)
		th.AssertFileExists(t, result.MetadataFile)

		metadata := th.MustReadFile(t, result.MetadataFile)
		if !strings.Contains(metadata, `"count": 2`) {
			t.Errorf("metadata missing movie count, got: %s", metadata)
		}
	})

	t.Run("WriteMarkdownExport writes the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.md")
		written, err := WriteMarkdownExport(testCatalog(), path)
		if err != nil {
			t.Fatalf("WriteMarkdownExport failed: %v", err)
		}

		th.AssertFileExists(t, written)
	})

	t.Run("WriteTextExport writes the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.txt")
		written, err := WriteTextExport(testCatalog(), path)
		if err != nil {
			t.Fatalf("WriteTextExport failed: %v", err)
		}

		content := th.MustReadFile(t, written)
		if !strings.Contains(content, "Movies: 2") {
			t.Errorf("text export missing count, got: %s", content)
		}
	})
}
