package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// SearchHandler returns the documents carrying a term, in ranking order.
// The term is lowercased to match the tokenizer's output.
func (api *API) SearchHandler(c *gin.Context) {
	term := strings.ToLower(c.Query("term"))
	if result := ValidateTerm("term", term); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	result, err := api.engine.Search(term)
	if err != nil {
		SendEngineError(c, "search", err)
		return
	}

	c.JSON(http.StatusOK, result)
}
