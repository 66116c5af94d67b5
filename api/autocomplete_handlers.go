package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// SuggestRequest defines the query parameters of /autocomplete.
type SuggestRequest struct {
	Prefix string `form:"prefix"`
	Limit  int    `form:"limit"` // 0 applies the configured maximum
}

// WordRequest is one word to insert into the vocabulary.
type WordRequest struct {
	Query  string `json:"query"`
	Weight int64  `json:"weight"`
}

// SuggestHandler returns the ranked terms starting with a prefix.
func (api *API) SuggestHandler(c *gin.Context) {
	var req SuggestRequest
	if result := ValidateQueryBinding(c, &req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}
	if result := ValidateSuggestRequest(req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	terms := api.engine.Suggest(req.Prefix, req.Limit)
	c.JSON(http.StatusOK, gin.H{
		"prefix":      strings.ToLower(req.Prefix),
		"suggestions": terms,
		"total":       len(terms),
	})
}

// CountPrefixesHandler returns how many inserted words start with a prefix.
func (api *API) CountPrefixesHandler(c *gin.Context) {
	prefix := c.Query("prefix")
	c.JSON(http.StatusOK, gin.H{
		"prefix": strings.ToLower(prefix),
		"count":  api.engine.CountPrefixes(prefix),
	})
}

// AutocompleteStatsHandler returns vocabulary statistics.
func (api *API) AutocompleteStatsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, api.engine.AutocompleteStats())
}

// AddWordsHandler inserts words into the vocabulary.
// Request Body: a WordRequest object or an array of them
func (api *API) AddWordsHandler(c *gin.Context) {
	var rawData interface{}
	if err := c.ShouldBindJSON(&rawData); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	words, err := decodeWords(rawData)
	if err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest, err.Error())
		return
	}
	if result := ValidateWords(words); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	added := 0
	for _, word := range words {
		if api.engine.AddWord(word.Query, word.Weight) {
			added++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("%d word(s) added", added),
		"added":   added,
	})
}

// decodeWords accepts a single word object or an array of word objects.
func decodeWords(rawData interface{}) ([]WordRequest, error) {
	var items []interface{}
	switch data := rawData.(type) {
	case []interface{}:
		items = data
	case map[string]interface{}:
		items = []interface{}{data}
	default:
		return nil, fmt.Errorf("invalid request body. Expecting a word object or an array of words")
	}

	words := make([]WordRequest, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("word at index %d is not a valid object", i)
		}
		query, ok := obj["query"].(string)
		if !ok {
			return nil, fmt.Errorf("word at index %d must have a string 'query' field", i)
		}
		var weight int64
		if rawWeight, exists := obj["weight"]; exists {
			number, ok := rawWeight.(float64)
			if !ok || number != float64(int64(number)) {
				return nil, fmt.Errorf("word at index %d has a non-integer 'weight'", i)
			}
			weight = int64(number)
		}
		words = append(words, WordRequest{Query: query, Weight: weight})
	}
	return words, nil
}

// LoadVocabularyHandler bulk-loads a vocabulary stream: a header line, then
// one "<weight> <word>" record per line. Malformed records are reported, not fatal.
func (api *API) LoadVocabularyHandler(c *gin.Context) {
	report, err := api.engine.LoadVocabulary(c.Request.Body)
	if err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest,
			fmt.Sprintf("Vocabulary load stopped after %d records: %s", report.Lines, err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("%d word(s) loaded, %d record(s) skipped", report.Loaded, len(report.Skipped)),
		"report":  report,
		"stats":   api.engine.AutocompleteStats(),
	})
}

// SeedAutocompleteFromIndexHandler loads the current index vocabulary into
// the trie in the background.
func (api *API) SeedAutocompleteFromIndexHandler(c *gin.Context) {
	jobID, err := api.engine.SeedAutocompleteAsync()
	if err != nil {
		SendEngineError(c, "seed autocomplete", err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":  "accepted",
		"message": "Autocomplete seeding started",
		"job_id":  jobID,
	})
}
