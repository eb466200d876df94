package rest

import (
	"net/http"

	"github.com/dmitrijs2005/passgate/internal/common"
	"github.com/dmitrijs2005/passgate/internal/server/models"
	"github.com/gin-gonic/gin"
)

// Record bodies accept "ISIN" as well as "isin": encoding/json matches keys
// case-insensitively.

type searchRequest struct {
	Query string `json:"query"`
}

var recordMessages = messages{
	common.ErrorAlreadyExists: "Record with this ISIN already exists",
	common.ErrorNotFound:      "Record not found",
}

func (s *Server) createRecord(c *gin.Context) {
	var rec models.CompanyRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		s.writeError(c, badFormat(err), recordMessages)
		return
	}

	if _, err := s.records.Create(c.Request.Context(), &rec); err != nil {
		s.writeError(c, err, recordMessages)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Record created successfully"})
}

func (s *Server) searchRecords(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, badFormat(err), recordMessages)
		return
	}

	result, err := s.records.Search(c.Request.Context(), req.Query)
	if err != nil {
		s.writeError(c, err, recordMessages)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) fetchRecords(c *gin.Context) {
	result, err := s.records.List(c.Request.Context())
	if err != nil {
		s.writeError(c, err, recordMessages)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) updateRecord(c *gin.Context) {
	var rec models.CompanyRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		s.writeError(c, badFormat(err), recordMessages)
		return
	}

	updated, err := s.records.Update(c.Request.Context(), &rec)
	if err != nil {
		s.writeError(c, err, recordMessages)
		return
	}
	c.JSON(http.StatusOK, updated)
}
