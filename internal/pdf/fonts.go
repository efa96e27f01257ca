package pdf

import (
	"os"
	"runtime"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"
)

// cjkFontFamily is the family name the resolved face registers under
const cjkFontFamily = "FormCJK"

// FontHandle identifies the text rendering face used for a document. It is
// resolved once at startup and safe to share across concurrent requests.
type FontHandle struct {
	Family  string
	Path    string
	Builtin bool
}

// install registers the resolved face on a document. Built-in faces need no
// registration.
func (h FontHandle) install(doc *fpdf.Fpdf) {
	if h.Builtin {
		return
	}
	doc.AddUTF8Font(h.Family, "", h.Path)
}

// FontResolver selects a CJK-capable font by probing candidate files
type FontResolver struct {
	customPaths []string
	logger      *zap.Logger
}

// NewFontResolver creates a resolver that tries customPaths (bundled fonts)
// before the platform's system font list
func NewFontResolver(customPaths []string, logger *zap.Logger) *FontResolver {
	return &FontResolver{customPaths: customPaths, logger: logger}
}

// Resolve returns the first candidate that exists on disk and registers
// cleanly, falling back to the built-in Helvetica face when every candidate
// fails. Font selection never aborts document generation, so all probe
// failures are logged and swallowed.
func (r *FontResolver) Resolve() FontHandle {
	candidates := append(append([]string{}, r.customPaths...), systemFontPaths()...)
	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := probeFont(path); err != nil {
			r.logger.Warn("Font registration failed",
				zap.String("path", path),
				zap.Error(err))
			continue
		}
		r.logger.Info("Resolved document font", zap.String("path", path))
		return FontHandle{Family: cjkFontFamily, Path: path}
	}

	r.logger.Warn("No usable CJK font found, using built-in fallback face")
	return FontHandle{Family: "Helvetica", Builtin: true}
}

// probeFont registers the file on a throwaway document so a corrupt font
// cannot poison a real generation pass
func probeFont(path string) error {
	doc := fpdf.New("P", "cm", "A4", "")
	doc.AddUTF8Font(cjkFontFamily, "", path)
	if doc.Err() {
		return doc.Error()
	}
	return nil
}

// systemFontPaths returns the ordered per-platform candidate list
func systemFontPaths() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{
			`C:/Windows/Fonts/msyh.ttc`,
			`C:/Windows/Fonts/simsun.ttc`,
			`C:/Windows/Fonts/simkai.ttf`,
		}
	case "darwin":
		return []string{
			"/System/Library/Fonts/PingFang.ttc",
			"/System/Library/Fonts/STHeiti Light.ttc",
			"/System/Library/Fonts/STSong.ttc",
		}
	default:
		return []string{
			"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
			"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
		}
	}
}
