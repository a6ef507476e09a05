// Package web is the presentation layer: an HTMX front end over the deck
// manager. It holds no state of its own; every screen is re-rendered from
// fresh store reads after each mutation.
package web

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SaptaAjiSadewo/flashcard-rpg/internal/deck"
	"github.com/SaptaAjiSadewo/flashcard-rpg/internal/domain"
	"github.com/SaptaAjiSadewo/flashcard-rpg/internal/filter"
)

//go:embed all:static
var staticFiles embed.FS

//go:embed all:templates
var templateFiles embed.FS

const themeCookie = "codecards_theme"

// Server holds the dependencies for the HTTP server.
type Server struct {
	mgr       *deck.Manager
	router    *http.ServeMux
	templates *template.Template
}

// NewServer creates and configures a new server.
func NewServer(mgr *deck.Manager) (*Server, error) {
	tpl, err := template.New("").Funcs(template.FuncMap{
		"languageIcon": domain.LanguageIcon,
	}).ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, err
	}

	s := &Server{
		mgr:       mgr,
		router:    http.NewServeMux(),
		templates: tpl,
	}
	s.routes()
	return s, nil
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		// Embedded tree is fixed at build time; failing here means a
		// broken build, not a runtime condition.
		panic(err)
	}
	s.router.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	s.router.HandleFunc("/", s.handleIndex())
	s.router.HandleFunc("/cards", s.handleCards())
	s.router.HandleFunc("/cards/", s.handleCardByID())
	s.router.HandleFunc("/chapters", s.handleChapters())
	s.router.HandleFunc("/chapters/", s.handleChapterByID())
	s.router.HandleFunc("/chapter-options", s.handleChapterOptions())
	s.router.HandleFunc("/theme", s.handleTheme())
}

// languageSection is one per-language block on the chapters screen.
type languageSection struct {
	Info     domain.LanguageInfo
	Chapters []chapterView
}

type chapterView struct {
	domain.Chapter
	CardCount int
}

func (s *Server) languageSections() ([]languageSection, error) {
	var sections []languageSection
	for _, info := range domain.Languages {
		chapters, err := s.mgr.ChaptersForLanguage(info.Key)
		if err != nil {
			return nil, err
		}
		if len(chapters) == 0 {
			continue
		}
		views := make([]chapterView, 0, len(chapters))
		for _, ch := range chapters {
			count, err := s.mgr.CardCountForChapter(ch.Language, ch.Name)
			if err != nil {
				return nil, err
			}
			views = append(views, chapterView{Chapter: ch, CardCount: count})
		}
		sections = append(sections, languageSection{Info: info, Chapters: views})
	}
	return sections, nil
}

func (s *Server) handleIndex() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}

		languageFilter := formValueOr(r, "language", filter.All)
		chapterFilter := formValueOr(r, "chapter", filter.All)

		cards, err := s.mgr.FilteredCards(languageFilter, chapterFilter)
		if err != nil {
			s.serverError(w, "rendering index", err)
			return
		}
		sections, err := s.languageSections()
		if err != nil {
			s.serverError(w, "rendering index", err)
			return
		}
		names, err := s.chapterNames(languageFilter)
		if err != nil {
			s.serverError(w, "rendering index", err)
			return
		}

		data := map[string]any{
			"ChapterOptions": map[string]any{
				"Names":    names,
				"Selected": chapterFilter,
			},
			"Theme":          themeFrom(r),
			"Cards":          cards,
			"Sections":       sections,
			"Languages":      domain.Languages,
			"LanguageFilter": languageFilter,
			"ChapterFilter":  chapterFilter,
		}
		s.render(w, "index", data)
	}
}

// handleCards lists cards (GET, filtered) and creates them (POST).
func (s *Server) handleCards() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			s.renderCardList(w, formValueOr(r, "language", filter.All), formValueOr(r, "chapter", filter.All))

		case http.MethodPost:
			input := domain.CardInput{
				Language:    r.PostFormValue("language"),
				Chapter:     r.PostFormValue("chapter"),
				Question:    r.PostFormValue("question"),
				Code:        r.PostFormValue("code"),
				Explanation: r.PostFormValue("explanation"),
			}
			if _, err := s.mgr.AddCard(input); err != nil {
				s.mutationError(w, "Gagal menambahkan kartu!", err)
				return
			}
			s.notify(w, "Kartu berhasil ditambahkan!", "success")
			s.renderCardList(w, filter.All, filter.All)

		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// handleCardByID serves the edit form (GET …/edit), updates (PUT) and
// deletes (DELETE) a single card.
func (s *Server) handleCardByID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/cards/")

		if r.Method == http.MethodGet && strings.HasSuffix(id, "/edit") {
			id = strings.TrimSuffix(id, "/edit")
			card, err := s.mgr.GetCard(id)
			if err != nil {
				http.NotFound(w, r)
				return
			}
			s.render(w, "card_edit_form", map[string]any{
				"Card":      card,
				"Languages": domain.Languages,
			})
			return
		}

		switch r.Method {
		case http.MethodPut:
			patch := domain.CardPatch{
				Language:    formPtr(r, "language"),
				Chapter:     formPtr(r, "chapter"),
				Question:    formPtr(r, "question"),
				Code:        formPtr(r, "code"),
				Explanation: formPtr(r, "explanation"),
			}
			if _, err := s.mgr.UpdateCard(id, patch); err != nil {
				s.mutationError(w, "Gagal memperbarui kartu!", err)
				return
			}
			s.notify(w, "Kartu berhasil diperbarui!", "success")
			s.renderCardList(w, filter.All, filter.All)

		case http.MethodDelete:
			if err := s.mgr.DeleteCard(id); err != nil {
				s.mutationError(w, "Gagal menghapus kartu!", err)
				return
			}
			s.notify(w, "Kartu berhasil dihapus!", "success")
			s.renderCardList(w, filter.All, filter.All)

		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// handleChapters renders the chapter sections (GET) and creates chapters
// (POST).
func (s *Server) handleChapters() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			s.renderChapterSections(w)

		case http.MethodPost:
			input := domain.ChapterInput{
				Language:    r.PostFormValue("language"),
				Name:        r.PostFormValue("name"),
				Description: r.PostFormValue("description"),
			}
			if _, err := s.mgr.AddChapter(input); err != nil {
				s.mutationError(w, "Gagal menambahkan bab!", err)
				return
			}
			s.notify(w, "Bab berhasil ditambahkan!", "success")
			s.renderChapterSections(w)

		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// handleChapterByID serves the edit form (GET …/edit), updates with rename
// cascade (PUT) and cascade-deletes (DELETE) a single chapter.
func (s *Server) handleChapterByID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/chapters/")

		if r.Method == http.MethodGet && strings.HasSuffix(id, "/edit") {
			id = strings.TrimSuffix(id, "/edit")
			chapter, err := s.mgr.GetChapter(id)
			if err != nil {
				http.NotFound(w, r)
				return
			}
			count, err := s.mgr.CardCountForChapter(chapter.Language, chapter.Name)
			if err != nil {
				s.serverError(w, "rendering chapter form", err)
				return
			}
			s.render(w, "chapter_edit_form", map[string]any{
				"Chapter":       chapter,
				"CardCount":     count,
				"DeleteMessage": deleteMessage(chapter.Name, count),
				"Languages":     domain.Languages,
			})
			return
		}

		switch r.Method {
		case http.MethodPut:
			patch := domain.ChapterPatch{
				Language:    formPtr(r, "language"),
				Name:        formPtr(r, "name"),
				Description: formPtr(r, "description"),
			}
			// RenameChapter runs the update and the card cascade
			// back to back so cards never keep the stale name.
			if _, err := s.mgr.RenameChapter(id, patch); err != nil {
				s.mutationError(w, "Gagal memperbarui bab!", err)
				return
			}
			s.notify(w, "Bab berhasil diperbarui!", "success")
			s.renderChapterSections(w)

		case http.MethodDelete:
			if _, err := s.mgr.DeleteChapter(id); err != nil {
				s.mutationError(w, "Gagal menghapus bab!", err)
				return
			}
			s.notify(w, "Bab berhasil dihapus!", "success")
			s.renderChapterSections(w)

		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// handleChapterOptions returns the <option> list for the chapter filter,
// dependent on the selected language.
func (s *Server) handleChapterOptions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		names, err := s.chapterNames(formValueOr(r, "language", filter.All))
		if err != nil {
			s.serverError(w, "rendering chapter options", err)
			return
		}

		s.render(w, "chapter_options", map[string]any{
			"Names":    names,
			"Selected": formValueOr(r, "chapter", filter.All),
		})
	}
}

// handleTheme toggles the light/dark theme cookie. The original kept this
// in localStorage; a cookie keeps it server-visible for rendering.
func (s *Server) handleTheme() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		next := "dark"
		if themeFrom(r) == "dark" {
			next = "light"
		}
		http.SetCookie(w, &http.Cookie{
			Name:     themeCookie,
			Value:    next,
			Path:     "/",
			HttpOnly: true,
		})
		w.Header().Set("HX-Refresh", "true")
		w.WriteHeader(http.StatusNoContent)
	}
}

// chapterNames lists the display-view chapter names for one language, or
// for every known language when the sentinel is passed.
func (s *Server) chapterNames(language string) ([]string, error) {
	keys := []string{language}
	if language == filter.All {
		keys = keys[:0]
		for _, info := range domain.Languages {
			keys = append(keys, info.Key)
		}
	}

	var names []string
	for _, key := range keys {
		chapters, err := s.mgr.ChaptersForLanguage(key)
		if err != nil {
			return nil, err
		}
		for _, ch := range chapters {
			names = append(names, ch.Name)
		}
	}
	return names, nil
}

func (s *Server) renderCardList(w http.ResponseWriter, languageFilter, chapterFilter string) {
	cards, err := s.mgr.FilteredCards(languageFilter, chapterFilter)
	if err != nil {
		s.serverError(w, "rendering card list", err)
		return
	}
	s.render(w, "card_list", map[string]any{
		"Cards":          cards,
		"LanguageFilter": languageFilter,
		"ChapterFilter":  chapterFilter,
	})

	// Keep the dependent chapter filter in sync via an out-of-band swap.
	names, err := s.chapterNames(languageFilter)
	if err != nil {
		slog.Error("refreshing chapter options", "error", err)
		return
	}
	s.render(w, "chapter_options_oob", map[string]any{
		"Names":    names,
		"Selected": chapterFilter,
	})
}

func (s *Server) renderChapterSections(w http.ResponseWriter) {
	sections, err := s.languageSections()
	if err != nil {
		s.serverError(w, "rendering chapters", err)
		return
	}
	s.render(w, "chapter_sections", map[string]any{"Sections": sections})
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		slog.Error("template execution failed", "template", name, "error", err)
	}
}

func (s *Server) notify(w http.ResponseWriter, message, kind string) {
	s.render(w, "notification", map[string]any{"Message": message, "Type": kind})
}

// mutationError translates a deck failure into a user-facing notification.
// Validation and not-found problems are the user's to fix; anything else is
// a storage fault and the attempted change is lost.
func (s *Server) mutationError(w http.ResponseWriter, message string, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		w.WriteHeader(http.StatusUnprocessableEntity)
	case errors.Is(err, domain.ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
	default:
		slog.Error("mutation failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
	}
	s.notify(w, message, "error")
}

func (s *Server) serverError(w http.ResponseWriter, context string, err error) {
	slog.Error(context, "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func themeFrom(r *http.Request) string {
	if c, err := r.Cookie(themeCookie); err == nil && c.Value == "dark" {
		return "dark"
	}
	return "light"
}

func formValueOr(r *http.Request, key, fallback string) string {
	if v := r.FormValue(key); v != "" {
		return v
	}
	return fallback
}

// formPtr returns a pointer to the submitted value, or nil when the field
// was absent so the patch leaves it untouched.
func formPtr(r *http.Request, key string) *string {
	r.ParseForm()
	if !r.PostForm.Has(key) && !r.Form.Has(key) {
		return nil
	}
	v := r.FormValue(key)
	return &v
}

// deleteMessage builds the pre-delete confirmation, mentioning how many
// cards go down with the chapter.
func deleteMessage(name string, cardCount int) string {
	if cardCount > 0 {
		return fmt.Sprintf("Apakah Anda yakin ingin menghapus bab %q? %d kartu dalam bab ini juga akan dihapus. Tindakan ini tidak dapat dibatalkan.", name, cardCount)
	}
	return fmt.Sprintf("Apakah Anda yakin ingin menghapus bab %q? Tindakan ini tidak dapat dibatalkan.", name)
}
