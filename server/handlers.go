package server

import (
	"errors"
	"net/http"

	"github.com/randalmurphal/captionmirror/anchor"
	"github.com/randalmurphal/captionmirror/hotkey"
	"github.com/randalmurphal/captionmirror/session"
)

// StateResponse is the body of GET /history and of anchor changes.
type StateResponse struct {
	SessionID    string `json:"session_id"`
	History      string `json:"history"`
	Anchor       int    `json:"anchor"`
	AnchorChars  int    `json:"anchor_chars"`
	UserAnchor   bool   `json:"user_anchor"`
	Updates      int    `json:"updates"`
	CopyInFlight bool   `json:"copy_in_flight"`
}

// CopyResponse is the body of POST /copy.
type CopyResponse struct {
	Text      string `json:"text,omitempty"`
	Delivered bool   `json:"delivered"`
	Skipped   bool   `json:"skipped"`
}

// SaveResponse is the body of POST /save.
type SaveResponse struct {
	ID    string `json:"id,omitempty"`
	Saved bool   `json:"saved"`
}

type anchorRequest struct {
	Offset *int   `json:"offset"`
	Unit   string `json:"unit"`
}

type selectRequest struct {
	Pos  *int   `json:"pos"`
	Unit string `json:"unit"`
}

type keyRequest struct {
	Key string `json:"key"`
}

type keyResponse struct {
	Key     string `json:"key"`
	Action  string `json:"action"`
	Handled bool   `json:"handled"`
}

func (s *Server) stateResponse(st session.State) StateResponse {
	return StateResponse{
		SessionID:    st.SessionID,
		History:      st.History,
		Anchor:       st.Anchor,
		AnchorChars:  anchor.CharIndex(st.History, st.Anchor),
		UserAnchor:   st.UserAnchor,
		Updates:      st.Updates,
		CopyInFlight: s.session.CopyInFlight(),
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "session_id": s.session.ID()})
}

func (s *Server) handleHistory(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.stateResponse(s.session.Snapshot()))
}

func (s *Server) handleAnchor(w http.ResponseWriter, r *http.Request) {
	var req anchorRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Offset == nil {
		writeError(w, http.StatusBadRequest, "offset is required")
		return
	}
	unit, err := anchor.ParseUnit(req.Unit)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.stateResponse(s.session.SetAnchorIn(*req.Offset, unit)))
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Pos == nil {
		writeError(w, http.StatusBadRequest, "pos is required")
		return
	}
	unit, err := anchor.ParseUnit(req.Unit)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.stateResponse(s.session.SelectIn(*req.Pos, unit)))
}

func (s *Server) handleCopy(w http.ResponseWriter, r *http.Request) {
	res, err := s.session.Copy(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, CopyResponse{
		Text:      res.Text,
		Delivered: res.Delivered,
		Skipped:   res.Skipped,
	})
}

func (s *Server) handleClear(w http.ResponseWriter, _ *http.Request) {
	if err := s.session.Clear(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.stateResponse(s.session.Snapshot()))
}

func (s *Server) handleSave(w http.ResponseWriter, _ *http.Request) {
	rec, err := s.session.Save()
	switch {
	case errors.Is(err, session.ErrNoStore):
		writeError(w, http.StatusNotImplemented, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	case rec == nil:
		writeJSON(w, http.StatusOK, SaveResponse{})
		return
	}
	writeJSON(w, http.StatusOK, SaveResponse{ID: rec.ID, Saved: true})
}

func (s *Server) handleKeys(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Dispatcher == nil {
		writeError(w, http.StatusNotImplemented, "no hotkeys bound")
		return
	}

	var req keyRequest
	if !decode(w, r, &req) {
		return
	}
	ev, err := hotkey.Parse(req.Key)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	action := s.cfg.Dispatcher.Lookup(ev)
	handled := s.cfg.Dispatcher.Handle(ev)
	writeJSON(w, http.StatusOK, keyResponse{
		Key:     ev.String(),
		Action:  action.String(),
		Handled: handled,
	})
}
