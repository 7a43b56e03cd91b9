package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/nodeshift/pkg/buildinfo"
	"github.com/matzehuels/nodeshift/pkg/cache"
	"github.com/matzehuels/nodeshift/pkg/core/cascade"
	"github.com/matzehuels/nodeshift/pkg/core/trigger"
	"github.com/matzehuels/nodeshift/pkg/errors"
	"github.com/matzehuels/nodeshift/pkg/graph"
	"github.com/matzehuels/nodeshift/pkg/render/nodelink"
)

type expandRequest struct {
	Height   *float64 `json:"height"`
	RootType string   `json:"root_type"`
}

type graphResponse struct {
	graph.Graph
	Expanded *Expansion `json:"expanded,omitempty"`
	Revision uint64     `json:"revision"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

func (s *Server) handleGraph(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	resp := graphResponse{
		Graph:    s.store.Snapshot(),
		Expanded: s.active,
		Revision: s.store.Revision(),
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	height := s.opts.ExpandHeight
	if v := r.URL.Query().Get("height"); v != "" {
		h, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "height must be a number"))
			return
		}
		height = h
	}
	root, err := s.rootType(r.URL.Query().Get("root_type"))
	if err == nil {
		err = validateExpand(id, height)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	moves, ok := cascade.Plan(s.baseline(), cascade.Request{
		ID:                 id,
		ExpandHeight:       height,
		RootType:           root,
		IsTransformational: s.rules.IsTransformational,
	}, s.cascadeOptions()...)
	if !ok {
		writeError(w, errors.New(errors.ErrCodeNodeNotFound, "node %q not found", id))
		return
	}
	writeJSON(w, http.StatusOK, Expansion{
		ID: id, Height: height, RootType: string(root),
		Moves: moves, Total: moves.Total(),
	})
}

func (s *Server) handleExpand(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req expandRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid request body"))
			return
		}
	}
	height := s.opts.ExpandHeight
	if req.Height != nil {
		height = *req.Height
	}
	root, err := s.rootType(req.RootType)
	if err == nil {
		err = validateExpand(id, height)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.store.Node(id); !ok {
		writeError(w, errors.New(errors.ErrCodeNodeNotFound, "node %q not found", id))
		return
	}
	in := trigger.Inputs{ID: id, ExpandHeight: height, RootType: root, Source: s.store}
	s.watcher.Observe(in)
	writeJSON(w, http.StatusOK, s.active)
}

func (s *Server) handleCollapse(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	var id string
	if s.active != nil {
		id = s.active.ID
	}
	s.watcher.Close()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"collapsed": id})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	detailed, _ := strconv.ParseBool(r.URL.Query().Get("detailed"))

	s.mu.Lock()
	g := s.store.Snapshot()
	opts := nodelink.Options{Detailed: detailed}
	keyOpts := cache.RenderKeyOpts{Format: "svg", Detailed: detailed}
	if s.active != nil {
		opts.Highlight = s.active.Moves
		opts.Focus = s.active.ID
		keyOpts.ExpandID = s.active.ID
		keyOpts.ExpandHeight = s.active.Height
	}
	s.mu.Unlock()

	data, err := graph.MarshalGraph(g)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "encode graph"))
		return
	}
	key := s.keyer.RenderKey(cache.Hash(data), keyOpts)

	svg, hit, err := cache.GetOrCompute(r.Context(), s.cache, key, "render", s.opts.CacheTTL, func() ([]byte, error) {
		return nodelink.RenderSVG(r.Context(), nodelink.ToDOT(g, opts))
	})
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "render preview"))
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	if hit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	_, _ = w.Write(svg)
}

// baseline returns the store as it would look with no active expansion,
// which is what the watcher solves against. Called with s.mu held.
func (s *Server) baseline() cascade.Source {
	if s.active == nil || s.active.Moves.Len() == 0 {
		return s.store
	}
	return newNodeView(cascade.Apply(s.store.Nodes(), s.active.Moves, false))
}

// nodeView is a read-only cascade.Source over a fixed node slice.
type nodeView struct {
	nodes []*graph.Node
	byID  map[string]*graph.Node
}

func newNodeView(nodes []*graph.Node) *nodeView {
	v := &nodeView{nodes: nodes, byID: make(map[string]*graph.Node, len(nodes))}
	for _, n := range nodes {
		v.byID[n.ID] = n
	}
	return v
}

func (v *nodeView) Node(id string) (*graph.Node, bool) {
	n, ok := v.byID[id]
	return n, ok
}

func (v *nodeView) Nodes() []*graph.Node { return v.nodes }

func (v *nodeView) Update(func([]*graph.Node) []*graph.Node) {
	panic("server: nodeView is read-only")
}

func (s *Server) rootType(v string) (graph.RootType, error) {
	if v == "" {
		if s.opts.RootType != "" {
			return s.opts.RootType, nil
		}
		return s.store.RootType(), nil
	}
	return graph.ParseRootType(v)
}

func validateExpand(id string, height float64) error {
	if err := errors.ValidateNodeID(id); err != nil {
		return err
	}
	if err := errors.ValidateFinite("height", height); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorResponse{
		Error: errors.UserMessage(err),
		Code:  errors.GetCode(err),
	})
}

func statusFor(err error) int {
	if errors.IsNotFound(err) {
		return http.StatusNotFound
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidRootType:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
