package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/orgdot/pkg/dot"
	"github.com/matzehuels/orgdot/pkg/errors"
	orgio "github.com/matzehuels/orgdot/pkg/io"
	"github.com/matzehuels/orgdot/pkg/org"
	"github.com/matzehuels/orgdot/pkg/pipeline"
	"github.com/matzehuels/orgdot/pkg/render"
	"github.com/matzehuels/orgdot/pkg/schema"
)

// ContentTypeDOT is the media type of DOT source.
const ContentTypeDOT = "text/vnd.graphviz; charset=utf-8"

// compileRequest is the body of /dot and /render.
type compileRequest struct {
	Organization json.RawMessage `json:"organization,omitempty"`
	Config       json.RawMessage `json:"config,omitempty"`
	Layout       string          `json:"layout,omitempty"`
	Strict       bool            `json:"strict,omitempty"`

	// render only
	DOT     string `json:"dot,omitempty"`
	Format  string `json:"format,omitempty"`
	Refresh bool   `json:"refresh,omitempty"`
}

func decodeRequest(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}

// options turns a request into pipeline options.
func (req compileRequest) options() (pipeline.Options, error) {
	var opts pipeline.Options
	if len(req.Organization) == 0 {
		return opts, errors.New(errors.ErrCodeInvalidInput, "organization is required")
	}
	o, err := orgio.ReadJSON(bytes.NewReader(req.Organization))
	if err != nil {
		return opts, err
	}
	opts.Organization = o
	opts.Strict = req.Strict
	opts.Refresh = req.Refresh

	if len(req.Config) > 0 {
		cfg, err := dot.DecodeConfigJSON(req.Config)
		if err != nil {
			return opts, err
		}
		opts.Config = &cfg
	}
	if req.Layout != "" {
		l, err := dot.ParseLayout(req.Layout)
		if err != nil {
			return opts, err
		}
		opts.Layout = &l
	}
	return opts, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	data, err := schema.JSON()
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "generate schema"))
		return
	}
	w.Header().Set("Content-Type", "application/schema+json")
	w.Write(data)
}

func (s *Server) handleDOT(w http.ResponseWriter, r *http.Request) {
	var req compileRequest
	if err := decodeRequest(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := req.options()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	setSummaryHeaders(w, res.Summary)
	w.Header().Set("Content-Type", ContentTypeDOT)
	io.WriteString(w, res.DOT)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req compileRequest
	if err := decodeRequest(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	format := render.SVG
	if req.Format != "" {
		f, err := render.ParseFormat(req.Format)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		format = f
	}

	var (
		data []byte
		hit  bool
	)
	if req.DOT != "" {
		if len(req.Organization) > 0 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "send either dot or organization, not both"))
			return
		}
		out, cached, err := s.runner.Render(r.Context(), req.DOT, []render.Format{format})
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		data, hit = out[format], cached
	} else {
		opts, err := req.options()
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		opts.Formats = []render.Format{format}
		res, err := s.runner.Execute(r.Context(), opts)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		setSummaryHeaders(w, res.Summary)
		data, hit = res.Artifacts[format], res.CacheHit
	}

	if hit {
		w.Header().Set("X-Orgdot-Cache", "hit")
	} else {
		w.Header().Set("X-Orgdot-Cache", "miss")
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}

type validateResponse struct {
	Valid        bool        `json:"valid"`
	SchemaErrors []string    `json:"schema_errors,omitempty"`
	Issues       []org.Issue `json:"issues,omitempty"`
}

// handleValidate checks a raw organization document against the schema and
// the referential rules. A document that fails either check is still a 200.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body"))
		return
	}

	var resp validateResponse
	if err := schema.Validate(body); err != nil {
		if !errors.Is(err, errors.ErrCodeInvalidOrganization) {
			s.writeError(w, r, err)
			return
		}
		resp.SchemaErrors = append(resp.SchemaErrors, err.Error())
		writeJSON(w, http.StatusOK, resp)
		return
	}

	o, err := orgio.ReadJSON(bytes.NewReader(body))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	resp.Issues = org.Validate(o)
	resp.Valid = len(resp.Issues) == 0
	writeJSON(w, http.StatusOK, resp)
}

func setSummaryHeaders(w http.ResponseWriter, sum dot.Summary) {
	h := w.Header()
	h.Set("X-Orgdot-Layout", sum.Layout.String())
	h.Set("X-Orgdot-Nodes", strconv.Itoa(sum.Nodes))
	h.Set("X-Orgdot-Edges", strconv.Itoa(sum.Edges))
}

type documentResponse struct {
	Key string `json:"key"`
}

func readDOT(r *http.Request) (string, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return "", errors.New(errors.ErrCodeInvalidInput, "document body is empty")
	}
	return string(body), nil
}

// handleCreateDocument stores DOT source under a generated key.
func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	src, err := readDOT(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	key := uuid.NewString() + ".dot"
	if _, err := s.runner.Publish(r.Context(), key, src); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/v1/documents/"+key)
	writeJSON(w, http.StatusCreated, documentResponse{Key: key})
}

func (s *Server) handlePutDocument(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	src, err := readDOT(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if _, err := s.runner.Publish(r.Context(), key, src); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, documentResponse{Key: key})
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	src, err := s.runner.Fetch(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", ContentTypeDOT)
	io.WriteString(w, src)
}

func (s *Server) handleHeadDocument(w http.ResponseWriter, r *http.Request) {
	ok, err := s.runner.Has(r.Context(), chi.URLParam(r, "key"))
	switch {
	case err != nil && errors.Is(err, errors.ErrCodeInvalidKey):
		w.WriteHeader(http.StatusBadRequest)
	case err != nil:
		w.WriteHeader(http.StatusServiceUnavailable)
	case !ok:
		w.WriteHeader(http.StatusNotFound)
	default:
		w.WriteHeader(http.StatusOK)
	}
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := s.runner.Remove(r.Context(), chi.URLParam(r, "key")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
