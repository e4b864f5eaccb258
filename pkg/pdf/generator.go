package pdf

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/signintech/gopdf"

	"github.com/saludplus/backend/internal/domain"
)

type Generator struct {
	pdf      *gopdf.GoPdf
	hasFont  bool
	fontName string
}

func NewGenerator() *Generator {
	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{
		PageSize: *gopdf.PageSizeA4,
		Unit:     gopdf.Unit_PT,
	})

	wd, _ := os.Getwd()

	// The built-in fonts cannot render accented characters, so a TTF with
	// full Latin coverage is required.
	fontPaths := []string{
		filepath.Join(wd, "fonts", "DejaVuSans.ttf"),
		"./fonts/DejaVuSans.ttf",
		"fonts/DejaVuSans.ttf",
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		"/System/Library/Fonts/Supplemental/Arial Unicode.ttf",
	}

	hasFont := false
	fontName := "dejavu"

	for _, path := range fontPaths {
		if _, err := os.Stat(path); err == nil {
			if err := pdf.AddTTFFont(fontName, path); err == nil {
				hasFont = true
				break
			}
		}
	}

	if !hasFont {
		fontName = ""
	}

	return &Generator{
		pdf:      pdf,
		hasFont:  hasFont,
		fontName: fontName,
	}
}

// GenerateRegistrationSummary renders the review document for a registration
// draft: identity, professional credentials and the configured dashboard.
func (g *Generator) GenerateRegistrationSummary(draft *domain.RegistrationDraft, progress *domain.RegistrationProgress, verification *domain.VerificationResult) ([]byte, error) {
	if !g.hasFont {
		return nil, fmt.Errorf("TTF font not loaded, ensure DejaVuSans.ttf is in ./fonts/")
	}

	g.pdf.AddPage()
	g.pdf.SetFont(g.fontName, "", 14)

	g.addHeader()

	g.pdf.SetFont(g.fontName, "", 18)
	g.pdf.SetX(50)
	g.pdf.SetY(100)
	g.pdf.Cell(nil, "Dr(a). "+draft.FirstName+" "+draft.LastName)

	g.pdf.SetY(g.pdf.GetY() + 30)
	g.pdf.SetX(50)
	g.pdf.SetFont(g.fontName, "", 12)
	g.pdf.Cell(nil, fmt.Sprintf("Progreso del registro: %d%%", progress.Percentage))

	g.pdf.SetY(g.pdf.GetY() + 25)
	g.addSection("Datos de contacto", fmt.Sprintf("Correo: %s / Teléfono: %s", draft.Email, draft.Phone))

	if draft.DocumentNumber != "" {
		g.addSection("Documento de identidad", draft.DocumentType+"-"+draft.DocumentNumber)
	}

	if draft.University != "" {
		credentials := draft.University
		if draft.GraduationYear > 0 {
			credentials = fmt.Sprintf("%s (%d)", credentials, draft.GraduationYear)
		}
		g.addSection("Formación", credentials)
	}

	if draft.MedicalBoard != "" {
		g.addSection("Colegio de médicos", draft.MedicalBoard)
	}

	if draft.Specialty != "" {
		g.addSection("Especialidad", draft.Specialty)
	}

	if verification != nil {
		g.addSection("Verificación de licencia", g.verificationText(verification))
	}

	if len(draft.SelectedFeatures) > 0 {
		g.addSection("Funciones del panel", strings.Join(draft.SelectedFeatures, ", "))
	}

	if len(draft.WorkingHours) > 0 {
		blocks := make([]string, 0, len(draft.WorkingHours))
		for _, wh := range draft.WorkingHours {
			blocks = append(blocks, fmt.Sprintf("%s %s-%s", wh.Day, wh.From, wh.To))
		}
		g.addSection("Horario de atención", strings.Join(blocks, "; "))
	}

	g.addFooter()

	var buf bytes.Buffer
	if _, err := g.pdf.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to output PDF: %w", err)
	}

	return buf.Bytes(), nil
}

func (g *Generator) verificationText(v *domain.VerificationResult) string {
	switch v.Status {
	case domain.VerificationVerified:
		if v.IsValid {
			return "Licencia verificada ante el registro nacional"
		}
		return "La licencia no pudo ser confirmada"
	case domain.VerificationFailed:
		return "Licencia no encontrada en el registro nacional"
	case domain.VerificationError:
		return "Servicio de verificación no disponible"
	case domain.VerificationVerifying:
		return "Verificación en curso"
	default:
		return "Pendiente de verificación"
	}
}

func (g *Generator) addHeader() {
	g.pdf.SetFillColor(13, 148, 136)
	g.pdf.RectFromUpperLeftWithStyle(0, 0, 595, 70, "F")

	if g.hasFont {
		g.pdf.SetTextColor(255, 255, 255)
		g.pdf.SetFont(g.fontName, "", 24)
		g.pdf.SetX(50)
		g.pdf.SetY(30)
		g.pdf.Cell(nil, "RESUMEN DE REGISTRO")
		g.pdf.SetTextColor(0, 0, 0)
	}
}

func (g *Generator) addSection(title, content string) {
	if !g.hasFont {
		return
	}

	currentY := g.pdf.GetY() + 20
	if currentY > 750 {
		g.pdf.AddPage()
		currentY = 50
	}

	g.pdf.SetY(currentY)
	g.pdf.SetX(50)

	g.pdf.SetFont(g.fontName, "", 14)
	g.pdf.SetTextColor(0, 0, 0)
	g.pdf.Cell(nil, title)

	g.pdf.SetY(g.pdf.GetY() + 18)
	g.pdf.SetX(50)
	g.pdf.SetFont(g.fontName, "", 11)
	g.pdf.SetTextColor(50, 50, 50)

	rect := &gopdf.Rect{W: 500, H: 15}
	g.pdf.MultiCell(rect, content)
}

func (g *Generator) addFooter() {
	if !g.hasFont {
		return
	}

	g.pdf.SetY(780)
	g.pdf.SetX(50)
	g.pdf.SetFont(g.fontName, "", 9)
	g.pdf.SetTextColor(150, 150, 150)
	dateStr := time.Now().Format("02/01/2006")
	g.pdf.Cell(nil, fmt.Sprintf("Documento generado el %s", dateStr))
}
