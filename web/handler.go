package web

import (
	"context"
	"errors"
	"html/template"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/amonks/lists/tasklist"
)

// Options configures the web handler.
type Options struct {
	// Logger receives store errors and ignored input. Defaults to discarding.
	Logger *log.Logger
}

// Handler serves the list pages and their form actions.
type Handler struct {
	store     *tasklist.Store
	router    chi.Router
	templates *template.Template
	logger    *log.Logger
}

// NewHandler creates a new web handler over store.
func NewHandler(store *tasklist.Store, opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	handler := &Handler{
		store:     store,
		templates: newTemplates(),
		logger:    logger,
	}

	r := chi.NewRouter()
	r.Get("/", handler.handleHome)
	r.Get("/{list}", handler.handleList)
	r.Post("/add_task/{list}", handler.handleAdd)
	r.Get("/delete_task/{list}/{index:[0-9]+}", handler.handleDelete)
	r.Get("/complete_task/{list}/{index:[0-9]+}", handler.handleComplete)
	r.Post("/rearrange_tasks/{list}", handler.handleRearrange)
	handler.router = r

	return handler
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

type homePageData struct {
	Lists []tasklist.List
}

type listPageData struct {
	List      tasklist.List
	Lists     []tasklist.List
	Active    []tasklist.Task
	Completed []tasklist.Task
	Error     string
}

func (h *Handler) handleHome(w http.ResponseWriter, r *http.Request) {
	h.render(w, "home", homePageData{Lists: h.store.Lists()})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	list, ok := h.lookupList(w, r)
	if !ok {
		return
	}

	data := listPageData{List: list, Lists: h.store.Lists()}
	active, completed, err := h.store.LoadParsed(r.Context(), list.Name)
	if err != nil {
		h.logger.Printf("load %s: %v", list.Name, err)
		data.Error = "Could not load tasks."
	}
	data.Active = active
	data.Completed = completed
	h.render(w, "list", data)
}

func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	list, ok := h.lookupList(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.logger.Printf("add to %s: parse form: %v", list.Name, err)
		redirectToList(w, r, list, http.StatusSeeOther)
		return
	}

	text := r.PostForm.Get("task")
	if text != "" {
		_, err := h.store.Append(r.Context(), list.Name, text)
		switch {
		case errors.Is(err, tasklist.ErrEmptyText):
		case errors.Is(err, tasklist.ErrInvalidText):
			h.logger.Printf("add to %s: ignoring task containing %q", list.Name, tasklist.FieldSeparator)
		case err != nil:
			h.logger.Printf("add to %s: %v", list.Name, err)
		}
	}
	redirectToList(w, r, list, http.StatusSeeOther)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	h.handleIndexAction(w, r, "delete", h.store.DeleteAt)
}

func (h *Handler) handleComplete(w http.ResponseWriter, r *http.Request) {
	h.handleIndexAction(w, r, "complete", h.store.CompleteAt)
}

func (h *Handler) handleIndexAction(w http.ResponseWriter, r *http.Request, name string, action func(context.Context, string, int) (bool, error)) {
	list, ok := h.lookupList(w, r)
	if !ok {
		return
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if _, err := action(r.Context(), list.Name, index); err != nil {
		h.logger.Printf("%s %s[%d]: %v", name, list.Name, index, err)
	}
	redirectToList(w, r, list, http.StatusFound)
}

func (h *Handler) handleRearrange(w http.ResponseWriter, r *http.Request) {
	list, ok := h.lookupList(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.logger.Printf("rearrange %s: parse form: %v", list.Name, err)
		redirectToList(w, r, list, http.StatusSeeOther)
		return
	}

	result, err := h.store.Reorder(r.Context(), list.Name, r.PostForm["task_order[]"])
	if err != nil {
		h.logger.Printf("rearrange %s: %v", list.Name, err)
	} else if len(result.Skipped) > 0 {
		h.logger.Printf("rearrange %s: skipped entries %q", list.Name, result.Skipped)
	}
	redirectToList(w, r, list, http.StatusSeeOther)
}

// lookupList resolves the {list} URL parameter, writing a 404 when the list
// is not configured.
func (h *Handler) lookupList(w http.ResponseWriter, r *http.Request) (tasklist.List, bool) {
	list, err := h.store.Lookup(chi.URLParam(r, "list"))
	if err != nil {
		http.NotFound(w, r)
		return tasklist.List{}, false
	}
	return list, true
}

func (h *Handler) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Printf("render %s: %v", name, err)
	}
}

func redirectToList(w http.ResponseWriter, r *http.Request, list tasklist.List, code int) {
	http.Redirect(w, r, listPath(list.Name), code)
}

func listPath(name string) string {
	return "/" + name
}
