package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Generator — интерфейс (удобно мокать в тестах)
type Generator interface {
	GenerateApplicantList(data ApplicantListData) (string, error)
}

type ApplicantRow struct {
	Name      string
	Email     string
	Status    string
	AppliedAt time.Time
}

type ApplicantListData struct {
	JobTitle   string
	Company    string
	Applicants []ApplicantRow
	Filename   string // имя файла (без путей); если пусто — сгенерируем
}

type ApplicantListGenerator struct {
	RootDir string // корень хранения, например "./files"
}

func NewApplicantListGenerator(rootDir string) *ApplicantListGenerator {
	return &ApplicantListGenerator{RootDir: filepath.Clean(rootDir)}
}

func (g *ApplicantListGenerator) GenerateApplicantList(data ApplicantListData) (string, error) {
	if err := os.MkdirAll(g.RootDir, 0o755); err != nil {
		return "", fmt.Errorf("pdf mkdir: %w", err)
	}

	filename := data.Filename
	if filename == "" {
		filename = fmt.Sprintf("applicants_%d.pdf", time.Now().Unix())
	}
	outPath := filepath.Join(g.RootDir, filename)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("Applicants: %s", data.JobTitle))
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Company: %s", data.Company))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04")))
	pdf.Ln(12)

	// шапка таблицы
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(55, 8, "Name", "1", 0, "L", false, 0, "")
	pdf.CellFormat(70, 8, "Email", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 8, "Status", "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 8, "Applied", "1", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, a := range data.Applicants {
		pdf.CellFormat(55, 7, a.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(70, 7, a.Email, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, a.Status, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 7, a.AppliedAt.Format("2006-01-02"), "1", 1, "L", false, 0, "")
	}
	if len(data.Applicants) == 0 {
		pdf.CellFormat(190, 7, "No applications yet", "1", 1, "C", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return "", fmt.Errorf("pdf output: %w", err)
	}
	return outPath, nil
}
