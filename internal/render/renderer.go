package render

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"regexp"

	"google-reviews/internal/data/entity"

	"go.uber.org/zap"
)

// DefaultTemplateName is looked up in the theme directory before falling
// back to the built-in markup.
const DefaultTemplateName = "google-reviews"

//go:embed templates/default.html
var templatesFS embed.FS

//go:embed assets
var assetsFS embed.FS

var templateNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// View carries everything a template can use.
type View struct {
	Name           string
	PlaceID        string
	Count          int
	Reviews        []entity.Review
	ReviewData     entity.ReviewData
	AssetsURL      string
	LogoURL        string
	MoreReviewsURL string
}

// NewView prepares the template variables for an already truncated review list.
func NewView(set *entity.ReviewSet, reviews []entity.Review, assetsURL string) *View {
	return &View{
		Name:           set.Name,
		PlaceID:        set.PlaceID,
		Count:          len(reviews),
		Reviews:        reviews,
		ReviewData:     set.ReviewData,
		AssetsURL:      assetsURL,
		LogoURL:        assetsURL + "/google_g_icon.svg",
		MoreReviewsURL: MoreReviewsURL(set.Name, set.PlaceID),
	}
}

// MoreReviewsURL links to the Google search result for the place
func MoreReviewsURL(name, placeID string) string {
	query := url.Values{}
	query.Set("q", name)
	query.Set("ludocid", placeID)
	query.Set("hl", "en")
	return "https://www.google.com/search?" + query.Encode()
}

// Assets returns the embedded stylesheet, logo and star images.
func Assets() fs.FS {
	sub, err := fs.Sub(assetsFS, "assets")
	if err != nil {
		panic(err)
	}
	return sub
}

type Renderer interface {
	Render(w io.Writer, view *View) error
}

// DefaultRenderer renders the built-in markup
type DefaultRenderer struct {
	tmpl *template.Template
}

func NewDefaultRenderer() *DefaultRenderer {
	return &DefaultRenderer{
		tmpl: template.Must(template.ParseFS(templatesFS, "templates/default.html")),
	}
}

func (r *DefaultRenderer) Render(w io.Writer, view *View) error {
	return r.tmpl.ExecuteTemplate(w, "default.html", view)
}

// ThemeRenderer renders a template file from the theme directory. The file
// is parsed on every call so edits show up without a restart.
type ThemeRenderer struct {
	path string
}

func (r *ThemeRenderer) Path() string {
	return r.path
}

func (r *ThemeRenderer) Render(w io.Writer, view *View) error {
	tmpl, err := template.ParseFiles(r.path)
	if err != nil {
		return fmt.Errorf("parse theme template %s: %w", r.path, err)
	}
	return tmpl.Execute(w, view)
}

type Engine struct {
	themeDir string
	fallback *DefaultRenderer
	log      *zap.Logger
}

func NewEngine(themeDir string, log *zap.Logger) *Engine {
	return &Engine{
		themeDir: themeDir,
		fallback: NewDefaultRenderer(),
		log:      log.With(zap.String("service", "render")),
	}
}

// ValidTemplateName rejects anything that could escape the theme directory
func ValidTemplateName(name string) bool {
	return templateNamePattern.MatchString(name)
}

// Resolve returns the theme override for name when <themeDir>/<name>.html
// exists, otherwise the built-in renderer.
func (e *Engine) Resolve(name string) Renderer {
	if e.themeDir == "" || !ValidTemplateName(name) {
		return e.fallback
	}

	path := filepath.Join(e.themeDir, name+".html")
	info, err := os.Stat(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			e.log.Warn("Theme template not readable",
				zap.Error(err),
				zap.String("path", path),
			)
		}
		return e.fallback
	}
	if info.IsDir() {
		return e.fallback
	}

	return &ThemeRenderer{path: path}
}

// Render produces the widget HTML. A failing theme template is logged and
// replaced by the built-in markup.
func (e *Engine) Render(name string, view *View) (string, error) {
	renderer := e.Resolve(name)

	var buf bytes.Buffer
	err := renderer.Render(&buf, view)
	if err == nil {
		return buf.String(), nil
	}

	if renderer == Renderer(e.fallback) {
		return "", fmt.Errorf("render default template: %w", err)
	}

	e.log.Error("Theme template failed, using default markup",
		zap.Error(err),
		zap.String("template", name),
	)

	buf.Reset()
	if err := e.fallback.Render(&buf, view); err != nil {
		return "", fmt.Errorf("render default template: %w", err)
	}
	return buf.String(), nil
}
