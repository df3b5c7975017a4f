package api

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/matzehuels/wordgraph/pkg/buildinfo"
	"github.com/matzehuels/wordgraph/pkg/cloud"
	"github.com/matzehuels/wordgraph/pkg/errors"
	wio "github.com/matzehuels/wordgraph/pkg/io"
	"github.com/matzehuels/wordgraph/pkg/pipeline"
)

// contentTypes maps output formats to response media types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatHTML: "text/html; charset=utf-8",
	pipeline.FormatJSON: "application/json",
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: buildinfo.Version})
}

// handleCount tokenizes a plain text body.
func (s *Server) handleCount(w http.ResponseWriter, r *http.Request) {
	text, err := readText(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := s.options()
	opts.Text = text
	counts, err := s.runner.Count(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if counts == nil {
		counts = cloud.Counts{}
	}
	writeJSON(w, http.StatusOK, counts)
}

// layoutRequest is the body of POST /v1/layout. Exactly one of Text and
// Counts must be set. Keys present in Config override the server's layout
// configuration.
type layoutRequest struct {
	Text   string        `json:"text,omitempty"`
	Counts cloud.Counts  `json:"counts,omitempty"`
	Config *cloud.Config `json:"config,omitempty"`
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts := s.options()
	opts.SetLayoutDefaults()
	cfg := opts.Config

	req := layoutRequest{Config: &cfg}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, decodeError(err, "decode layout request"))
		return
	}
	opts.Config = cfg

	counts := req.Counts
	switch {
	case req.Text != "" && len(req.Counts) > 0:
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "text and counts are mutually exclusive"))
		return
	case req.Text != "":
		opts.Text = req.Text
		var err error
		if counts, err = s.runner.Count(r.Context(), opts); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	layout, err := s.runner.Layout(r.Context(), counts, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, layout)
}

// handleRender renders a text body through the full pipeline, or re-renders
// a layout JSON body.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts := s.options()
	if err := renderQuery(r, &opts); err != nil {
		s.writeError(w, r, err)
		return
	}
	format := opts.Formats[0]

	var layout wio.Layout
	if isJSON(r) {
		data, err := io.ReadAll(r.Body)
		if err != nil {
			s.writeError(w, r, decodeError(err, "read layout"))
			return
		}
		if layout, err = wio.UnmarshalLayout(data); err != nil {
			s.writeError(w, r, err)
			return
		}
	} else {
		text, err := readText(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		opts.Text = text
		counts, err := s.runner.Count(r.Context(), opts)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		if layout, err = s.runner.Layout(r.Context(), counts, opts); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	artifacts, err := s.runner.Render(r.Context(), layout, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Wordgraph-Placed", strconv.Itoa(len(layout.Words)))
	w.Header().Set("X-Wordgraph-Unplaced", strconv.Itoa(len(layout.Unplaced)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

// renderQuery applies the render query parameters to opts.
func renderQuery(r *http.Request, opts *pipeline.Options) error {
	q := r.URL.Query()

	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		return err
	}
	opts.Formats = []string{format}

	if v := q.Get("style"); v != "" {
		opts.Style = v
	}
	if v := q.Get("title"); v != "" {
		opts.Title = v
	}
	if v := q.Get("scale"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || !(f > 0 && f <= pipeline.MaxScale) {
			return errors.New(errors.ErrCodeInvalidInput, "invalid scale: %q (must be within (0, %g])", v, pipeline.MaxScale)
		}
		opts.Scale = f
	}
	if v := q.Get("seed"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return errors.New(errors.ErrCodeInvalidInput, "invalid seed: %q", v)
		}
		opts.Seed = n
	}
	for name, dst := range map[string]*bool{"flow": &opts.Flow, "boxes": &opts.Boxes} {
		if v := q.Get(name); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return errors.New(errors.ErrCodeInvalidInput, "invalid %s: %q", name, v)
			}
			*dst = b
		}
	}
	return opts.ValidateForRender()
}

func readText(r *http.Request) (string, error) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return "", decodeError(err, "read body")
	}
	if len(data) == 0 {
		return "", errors.New(errors.ErrCodeEmptyInput, "request body is empty")
	}
	return string(data), nil
}

func isJSON(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/json"
}

// decodeError keeps oversized bodies distinguishable from malformed ones.
func decodeError(err error, msg string) error {
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		return err
	}
	return errors.Wrap(errors.ErrCodeInvalidFormat, err, "%s", msg)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
