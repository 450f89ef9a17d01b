// Package http exposes the solver engine over a small gin-based JSON API.
package http

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"nonosolve/internal/core"
	"nonosolve/internal/puzzles"
	"nonosolve/internal/search"
	"nonosolve/pkg/config"
	"nonosolve/pkg/constants"
)

var cfg *config.Config

// RegisterRoutes wires the API's endpoints onto r.
func RegisterRoutes(r *gin.Engine, c *config.Config) {
	cfg = c

	r.GET("/health", healthHandler)
	r.POST("/solve", solveHandler)
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": constants.APIVersion,
	})
}

type solveResponse struct {
	Status   string       `json:"status"`
	Solution string       `json:"solution"`
	Stats    search.Stats `json:"stats"`
}

// solveHandler accepts a puzzle in the JSON save format (internal/puzzles)
// as the request body, runs the search loop, and reports the stringified
// solution alongside the Stats counters and a status string matching the
// process exit code table.
func solveHandler(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body: " + err.Error()})
		return
	}

	puz, sol, err := puzzles.ParseJSON(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switches := switchesFromQuery(c)
	solver := search.NewSolver(puz, sol, switches)
	status := solver.Solve()

	c.JSON(http.StatusOK, solveResponse{
		Status:   status.String(),
		Solution: core.SolutionString(puz, sol),
		Stats:    solver.Stats,
	})
}

// switchesFromQuery starts from the configured default Switches and
// overrides any of them named as a boolean query parameter
// (?probe=false&checkunique=true).
func switchesFromQuery(c *gin.Context) search.Switches {
	sw := cfg.Switches

	if v, ok := boolQuery(c, "probe"); ok {
		sw.Probe = v
	}
	if v, ok := boolQuery(c, "backtrack"); ok {
		sw.Backtrack = v
	}
	if v, ok := boolQuery(c, "tryharder"); ok {
		sw.TryHarder = v
	}
	if v, ok := boolQuery(c, "mergeprobe"); ok {
		sw.MergeProbe = v
	}
	if v, ok := boolQuery(c, "checkunique"); ok {
		sw.CheckUnique = v
	}
	return sw
}

func boolQuery(c *gin.Context, name string) (bool, bool) {
	raw := c.Query(name)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
