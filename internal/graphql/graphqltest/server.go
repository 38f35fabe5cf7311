// Package graphqltest provides an in-memory document store that speaks the
// subset of the GraphQL API this service uses. It records every request so
// tests can assert on call counts and ordering, and can be told to fail
// specific calls.
package graphqltest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"time"
)

// Call is one request received by the fake store.
type Call struct {
	Endpoint  string
	Operation string
	Variables map[string]any
}

// DocID returns the docId (or id) variable of the call.
func (c Call) DocID() string {
	if id, ok := c.Variables["docId"].(string); ok {
		return id
	}
	if id, ok := c.Variables["id"].(string); ok {
		return id
	}
	return ""
}

// Document is a stored document.
type Document struct {
	ID           string
	Type         string
	Name         string
	CreatedAt    string
	LastModified string
	Revision     int
	State        map[string]any
}

// FailFunc decides whether a call fails. A non-empty message is returned to
// the client in a GraphQL errors array.
type FailFunc func(call Call, index int) string

// Server is a fake document store. The zero value is not usable; call NewServer.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	docs      map[string]*Document
	calls     []Call
	nextID    int
	failFunc  FailFunc
	httpFails map[string]int
}

// NewServer starts a fake store. It is closed with t.Cleanup by the caller.
func NewServer() *Server {
	s := &Server{
		docs:      make(map[string]*Document),
		httpFails: make(map[string]int),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// Seed stores a document with the given state and returns its id.
func (s *Server) Seed(docType, id, name string, state map[string]any) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == "" {
		s.nextID++
		id = fmt.Sprintf("%s-%d", strings.ToLower(docType), s.nextID)
	}
	if state == nil {
		state = map[string]any{}
	}
	now := "2025-01-01T00:00:00.000Z"
	s.docs[id] = &Document{ID: id, Type: docType, Name: name, CreatedAt: now, LastModified: now, State: state}
	return id
}

// Document returns a copy of a stored document, or nil.
func (s *Server) Document(id string) *Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[id]
	if !ok {
		return nil
	}
	cp := *doc
	cp.State = make(map[string]any, len(doc.State))
	for k, v := range doc.State {
		cp.State[k] = v
	}
	return &cp
}

// Calls returns every call received so far, in order.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// CallsTo returns the calls for one operation name, e.g. "deleteDocument".
func (s *Server) CallsTo(operation string) []Call {
	var out []Call
	for _, c := range s.Calls() {
		if c.Operation == operation {
			out = append(out, c)
		}
	}
	return out
}

// FailWith installs a failure hook consulted on every call.
func (s *Server) FailWith(fn FailFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failFunc = fn
}

// FailHTTP makes the next n calls to endpoint answer with 502.
func (s *Server) FailHTTP(endpoint string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.httpFails[endpoint] = n
}

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	var req gqlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	call := Call{Endpoint: r.URL.Path, Operation: operationOf(req.Query), Variables: req.Variables}
	index := len(s.calls)
	s.calls = append(s.calls, call)

	if n := s.httpFails[call.Endpoint]; n > 0 {
		s.httpFails[call.Endpoint] = n - 1
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
		return
	}
	if s.failFunc != nil {
		if msg := s.failFunc(call, index); msg != "" {
			writeJSON(w, map[string]any{"errors": []map[string]string{{"message": msg}}})
			return
		}
	}

	data, err := s.apply(call)
	if err != nil {
		writeJSON(w, map[string]any{"errors": []map[string]string{{"message": err.Error()}}})
		return
	}
	writeJSON(w, map[string]any{"data": data})
}

var operations = []string{
	"deleteDocument",
	"_createDocument",
	"_setDaoName",
	"_setDaoDescription",
	"_setDaoOwner",
	"_setProposalDetails",
	"_updateProposalStatus",
	"_setTaskDetails",
	"_updateTaskStatus",
	"_assignTask",
	"getDocuments",
	"getDocument",
}

func operationOf(query string) string {
	for _, op := range operations {
		if strings.Contains(query, op) {
			return strings.TrimPrefix(op, "_")
		}
	}
	return "unknown"
}

func docTypeOf(endpoint string) string {
	switch endpoint {
	case "/graphql/dao":
		return "Dao"
	case "/graphql/proposal":
		return "Proposal"
	case "/graphql/task":
		return "Task"
	default:
		return ""
	}
}

var proposalDetailFields = []string{"title", "description", "daoId", "budget", "deadline", "createdBy", "createdAt"}

var taskDetailFields = []string{"title", "description", "assignee", "proposalId", "daoId", "deadline", "budget", "createdBy", "createdAt", "updatedAt"}

func (s *Server) apply(call Call) (map[string]any, error) {
	docType := docTypeOf(call.Endpoint)
	vars := call.Variables

	switch call.Operation {
	case "getDocuments":
		var list []map[string]any
		for _, doc := range s.sortedDocs(docType) {
			list = append(list, render(doc))
		}
		if list == nil {
			list = []map[string]any{}
		}
		return map[string]any{docType: map[string]any{"getDocuments": list}}, nil

	case "getDocument":
		doc, err := s.find(call.DocID(), docType)
		if err != nil {
			return nil, err
		}
		return map[string]any{docType: map[string]any{"getDocument": render(doc)}}, nil

	case "createDocument":
		s.nextID++
		id := fmt.Sprintf("%s-%d", strings.ToLower(docType), s.nextID)
		name, _ := vars["name"].(string)
		now := time.Now().UTC().Format(time.RFC3339)
		s.docs[id] = &Document{ID: id, Type: docType, Name: name, CreatedAt: now, LastModified: now, State: map[string]any{}}
		return map[string]any{docType + "_createDocument": id}, nil

	case "deleteDocument":
		id := call.DocID()
		if _, ok := s.docs[id]; !ok {
			return nil, fmt.Errorf("Document %s not found", id)
		}
		delete(s.docs, id)
		return map[string]any{"deleteDocument": true}, nil
	}

	doc, err := s.find(call.DocID(), docType)
	if err != nil {
		return nil, err
	}
	input, _ := vars["input"].(map[string]any)

	switch call.Operation {
	case "setDaoName":
		doc.State["name"] = input["name"]
	case "setDaoDescription":
		doc.State["description"] = input["description"]
	case "setDaoOwner":
		doc.State["ownerUserId"] = input["ownerUserId"]
	case "setProposalDetails":
		replace(doc.State, input, proposalDetailFields)
	case "setTaskDetails":
		replace(doc.State, input, taskDetailFields)
	case "updateProposalStatus":
		doc.State["status"] = input["status"]
		if closedAt, ok := input["closedAt"]; ok {
			doc.State["closedAt"] = closedAt
		}
	case "updateTaskStatus":
		doc.State["status"] = input["status"]
		if updatedAt, ok := input["updatedAt"]; ok {
			doc.State["updatedAt"] = updatedAt
		}
	case "assignTask":
		doc.State["assignee"] = input["assignee"]
		if updatedAt, ok := input["updatedAt"]; ok {
			doc.State["updatedAt"] = updatedAt
		}
	default:
		return nil, fmt.Errorf("unsupported operation %q", call.Operation)
	}

	doc.Revision++
	doc.LastModified = time.Now().UTC().Format(time.RFC3339)
	return map[string]any{docType + "_" + call.Operation: doc.Revision}, nil
}

// replace mimics the store's details mutations, which overwrite the whole
// set of detail fields: keys missing from input become null.
func replace(state, input map[string]any, fields []string) {
	for _, f := range fields {
		if v, ok := input[f]; ok {
			state[f] = v
		} else {
			state[f] = nil
		}
	}
}

func (s *Server) find(id, docType string) (*Document, error) {
	doc, ok := s.docs[id]
	if !ok || (docType != "" && doc.Type != docType) {
		return nil, fmt.Errorf("Document %s not found", id)
	}
	return doc, nil
}

func (s *Server) sortedDocs(docType string) []*Document {
	var docs []*Document
	for _, doc := range s.docs {
		if doc.Type == docType {
			docs = append(docs, doc)
		}
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs
}

func render(doc *Document) map[string]any {
	return map[string]any{
		"id":                   doc.ID,
		"name":                 doc.Name,
		"documentType":         doc.Type,
		"createdAtUtcIso":      doc.CreatedAt,
		"lastModifiedAtUtcIso": doc.LastModified,
		"revision":             doc.Revision,
		"state":                doc.State,
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
