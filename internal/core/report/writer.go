// Package report materializes a job's deduplicated business list into the two
// downloadable artifacts: a line-oriented TXT list and a multi-sheet XLSX
// workbook grouped by sector.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"leadscraper/internal/core/job"
	"leadscraper/internal/logger"
	"leadscraper/internal/platform/places"
)

// Business is a deduplicated place result together with the sector labels it
// was discovered under.
type Business struct {
	places.Details
	Sectors []string `json:"foundSectors,omitempty"`
}

type Writer struct {
	outputDir string
	log       *logger.Logger
}

func NewWriter(outputDir string) *Writer {
	return &Writer{outputDir: outputDir, log: logger.New("ReportWriter")}
}

var (
	filenameStrip = regexp.MustCompile(`[^a-z0-9]+`)
	sheetStrip    = regexp.MustCompile(`[\[\]\*\?:/\\\s]+`)

	turkishASCII = strings.NewReplacer(
		"ç", "c", "ğ", "g", "ı", "i", "ö", "o", "ş", "s", "ü", "u",
		"Ç", "c", "Ğ", "g", "İ", "i", "Ö", "o", "Ş", "s", "Ü", "u",
	)
)

// SanitizeFilename transliterates Turkish characters and reduces the input to
// a lowercase dash-separated slug.
func SanitizeFilename(input string) string {
	s := strings.ToLower(turkishASCII.Replace(input))
	s = filenameStrip.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// sanitizeSheetName enforces the XLSX sheet naming rules: no []*?:/\ and at
// most 31 characters.
func sanitizeSheetName(name string) string {
	s := strings.TrimSpace(sheetStrip.ReplaceAllString(name, " "))
	// Cap by runes; a byte cut could split a multibyte character.
	if r := []rune(s); len(r) > 31 {
		s = strings.TrimSpace(string(r[:31]))
	}
	if s == "" {
		return "Liste"
	}
	return s
}

// Write renders both artifacts under <outputDir>/<jobID>/ and returns their
// file references. An empty business list still produces valid files.
func (w *Writer) Write(jobID string, businesses []Business, district, label string) (*job.Files, error) {
	dir := filepath.Join(w.outputDir, jobID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}

	date := time.Now().Format("2006-01-02")
	base := fmt.Sprintf("%s-%s-%s", SanitizeFilename(district), SanitizeFilename(truncate(label, 30)), date)

	txtRef, err := w.writeTXT(dir, base, businesses, district, label, date)
	if err != nil {
		return nil, err
	}
	xlsxRef, err := w.writeXLSX(dir, base, businesses)
	if err != nil {
		return nil, err
	}
	return &job.Files{TXT: txtRef, XLSX: xlsxRef}, nil
}

func (w *Writer) writeTXT(dir, base string, businesses []Business, district, label, date string) (job.FileRef, error) {
	filename := base + ".txt"
	path := filepath.Join(dir, filename)

	divider := strings.Repeat("=", 50)
	var b strings.Builder
	fmt.Fprintln(&b, divider)
	fmt.Fprintf(&b, "  %s - %s\n", district, label)
	fmt.Fprintf(&b, "  Tarih: %s | Toplam: %d isletme\n", date, len(businesses))
	fmt.Fprintln(&b, divider)
	fmt.Fprintln(&b)

	for i, biz := range businesses {
		fmt.Fprintf(&b, "%d. %s\n", i+1, biz.Name)
		fmt.Fprintf(&b, "   Tel: %s\n", biz.Phone)
		if len(biz.Sectors) > 0 {
			fmt.Fprintf(&b, "   Sektorler: %s\n", strings.Join(biz.Sectors, ", "))
		}
		fmt.Fprintln(&b)
	}

	// Flat phone list for bulk copy.
	fmt.Fprintln(&b, divider)
	fmt.Fprintf(&b, "  TELEFON NUMARALARI (%d adet)\n", len(businesses))
	fmt.Fprintln(&b, divider)
	for _, biz := range businesses {
		fmt.Fprintln(&b, biz.Phone)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return job.FileRef{}, fmt.Errorf("write txt: %w", err)
	}
	w.log.LogSuccessf("TXT ready: %s", filename)
	return job.FileRef{Filename: filename, Path: path}, nil
}

var xlsxHeaders = []string{
	"No", "İşletme Adı", "Telefon", "Web Sitesi", "Puan", "Yorum Sayısı",
	"Google Maps Linki", "Adres", "Telefon (Rakam)",
}

func (w *Writer) writeXLSX(dir, base string, businesses []Business) (job.FileRef, error) {
	filename := base + ".xlsx"
	path := filepath.Join(dir, filename)

	f := excelize.NewFile()
	defer f.Close()

	// Group by sector label, preserving first-seen order. Businesses without
	// any sector association land on a default sheet.
	groupOrder := []string{}
	groups := map[string][]Business{}
	for _, biz := range businesses {
		sectors := biz.Sectors
		if len(sectors) == 0 {
			sectors = []string{"Genel"}
		}
		for _, name := range sectors {
			if _, ok := groups[name]; !ok {
				groupOrder = append(groupOrder, name)
			}
			groups[name] = append(groups[name], biz)
		}
	}

	if len(groupOrder) == 0 {
		if err := f.SetSheetName("Sheet1", "Liste"); err != nil {
			return job.FileRef{}, fmt.Errorf("rename sheet: %w", err)
		}
		if err := f.SetCellValue("Liste", "A1", "Sonuç bulunamadı"); err != nil {
			return job.FileRef{}, fmt.Errorf("placeholder cell: %w", err)
		}
	} else {
		for i, name := range groupOrder {
			sheet := sanitizeSheetName(name)
			if i == 0 {
				if err := f.SetSheetName("Sheet1", sheet); err != nil {
					return job.FileRef{}, fmt.Errorf("rename sheet: %w", err)
				}
			} else if _, err := f.NewSheet(sheet); err != nil {
				return job.FileRef{}, fmt.Errorf("new sheet %s: %w", sheet, err)
			}
			if err := writeSheet(f, sheet, groups[name]); err != nil {
				return job.FileRef{}, err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return job.FileRef{}, fmt.Errorf("write xlsx: %w", err)
	}
	w.log.LogSuccessf("XLSX ready: %s", filename)
	return job.FileRef{Filename: filename, Path: path}, nil
}

func writeSheet(f *excelize.File, sheet string, rows []Business) error {
	for col, h := range xlsxHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("sheet %s header: %w", sheet, err)
		}
	}
	for i, biz := range rows {
		values := []interface{}{
			i + 1, biz.Name, biz.Phone, biz.Website, biz.Rating, biz.Reviews,
			biz.MapsURL, biz.Address, places.NormalizePhone(biz.Phone),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("sheet %s row %d: %w", sheet, i+2, err)
			}
		}
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
