package mockapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// errorBody is the error envelope; clients read "message".
type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func abort(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, errorBody{Code: code, Message: message})
}

func (s *Server) resolve(c *gin.Context) (*collection, bool) {
	col, ok := s.collection(c.Param("resource"))
	if !ok {
		abort(c, http.StatusNotFound, "resource not found")
	}
	return col, ok
}

func (s *Server) resolveID(c *gin.Context) (*collection, int64, bool) {
	col, ok := s.resolve(c)
	if !ok {
		return nil, 0, false
	}
	id, ok := idOf(c.Param("id"))
	if !ok {
		abort(c, http.StatusBadRequest, "invalid id")
		return nil, 0, false
	}
	return col, id, true
}

func bindObject(c *gin.Context) (map[string]any, bool) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil || body == nil {
		abort(c, http.StatusBadRequest, "invalid JSON body")
		return nil, false
	}
	return body, true
}

func (s *Server) list(c *gin.Context) {
	col, ok := s.resolve(c)
	if !ok {
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	c.JSON(http.StatusOK, col.list())
}

func (s *Server) get(c *gin.Context) {
	col, id, ok := s.resolveID(c)
	if !ok {
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, found := col.items[id]
	if !found {
		abort(c, http.StatusNotFound, "not found")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *Server) create(c *gin.Context) {
	col, ok := s.resolve(c)
	if !ok {
		return
	}
	body, ok := bindObject(c)
	if !ok {
		return
	}
	delete(body, "id")

	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusCreated, col.insert(body))
}

func (s *Server) update(c *gin.Context) {
	col, id, ok := s.resolveID(c)
	if !ok {
		return
	}
	body, ok := bindObject(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := col.items[id]; !found {
		abort(c, http.StatusNotFound, "not found")
		return
	}
	body["id"] = id
	col.items[id] = body
	c.JSON(http.StatusOK, body)
}

func (s *Server) remove(c *gin.Context) {
	col, id, ok := s.resolveID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := col.items[id]; !found {
		abort(c, http.StatusNotFound, "not found")
		return
	}
	delete(col.items, id)
	c.JSON(http.StatusOK, gin.H{})
}
