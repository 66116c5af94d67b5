package api

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/termindex/internal/corpus"
	"github.com/gcbaptista/termindex/internal/errors"
)

// PutCorpusHandler rebuilds the index from a corpus.
// Request Body: JSON array of {"id", "text"} or {"id", "tokens"} records.
// The rebuild runs as a job unless ?sync=true is given.
func (api *API) PutCorpusHandler(c *gin.Context) {
	docs, err := corpus.LoadJSON(c.Request.Body)
	if err != nil {
		var validationErr *errors.ValidationError
		if stderrors.As(err, &validationErr) {
			SendEngineError(c, "load corpus", err)
			return
		}
		SendInvalidJSONError(c, err)
		return
	}
	if len(docs) == 0 {
		result := &ValidationResult{Valid: true}
		result.AddError("documents", "No documents provided")
		SendValidationError(c, result)
		return
	}

	if c.Query("sync") == "true" {
		snap, err := api.engine.Rebuild(c.Request.Context(), docs)
		if err != nil {
			SendIndexingError(c, "rebuild", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Index rebuilt from %d documents", snap.Documents),
			"index":   api.engine.IndexStats(),
		})
		return
	}

	jobID, err := api.engine.RebuildAsync(docs)
	if err != nil {
		SendJobExecutionError(c, "build index", err)
		return
	}

	// Return job ID with 202 Accepted status
	c.JSON(http.StatusAccepted, gin.H{
		"status":         "accepted",
		"message":        fmt.Sprintf("Index rebuild started (%d documents)", len(docs)),
		"job_id":         jobID,
		"document_count": len(docs),
	})
}

// RollbackHandler serves the index replaced by the last rebuild again.
func (api *API) RollbackHandler(c *gin.Context) {
	snap, err := api.engine.Rollback()
	if err != nil {
		SendEngineError(c, "rollback", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Index rolled back to build %s", snap.BuildID),
		"index":   api.engine.IndexStats(),
	})
}

// HomepageHandler returns the ranked homepage terms with their documents.
func (api *API) HomepageHandler(c *gin.Context) {
	homepage, err := api.engine.Homepage()
	if err != nil {
		SendEngineError(c, "homepage", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"terms": homepage,
		"total": len(homepage),
	})
}

// IndexStatsHandler describes the snapshot currently served.
func (api *API) IndexStatsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, api.engine.IndexStats())
}

// TermPostingsHandler returns the ranked postings of one term.
func (api *API) TermPostingsHandler(c *gin.Context) {
	term := c.Param("term")
	if result := ValidateTerm("term", term); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	postings, err := api.engine.Postings(term)
	if err != nil {
		SendEngineError(c, "postings lookup", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"term":     term,
		"postings": postings,
		"total":    len(postings),
	})
}

// ForwardIndexHandler returns the TF-IDF scores of one document.
// Document ids are usually URLs, so the id travels as a query parameter.
func (api *API) ForwardIndexHandler(c *gin.Context) {
	docID := c.Query("id")
	if result := ValidateDocumentID(docID); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	scores, err := api.engine.Forward(docID)
	if err != nil {
		SendEngineError(c, "forward lookup", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":    docID,
		"terms": scores.Entries(),
		"total": len(scores),
	})
}

// VocabularyHandler returns the vocabulary dump of the current index as text.
func (api *API) VocabularyHandler(c *gin.Context) {
	var buf bytes.Buffer
	if _, err := api.engine.WriteVocabulary(&buf); err != nil {
		SendEngineError(c, "vocabulary dump", err)
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", buf.Bytes())
}
