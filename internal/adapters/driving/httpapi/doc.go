// Package httpapi exposes the analysis pipeline over HTTP using gin.
//
// Routes:
//
//	GET /api/analyze             run one analysis pass
//	GET /api/patterns            list the narrative catalogue
//	GET /api/patterns/:id        one pattern, 404 when unknown
//	GET /healthz                 liveness
//
// With Config.History set, recorded runs are served too:
//
//	GET /api/history                  run summaries, newest first
//	GET /api/history/:runId           one run, or "latest"
//	GET /api/narratives/:id/history   a narrative's confidence over runs
//
// Every request runs under a deadline; when it expires the in-flight
// analysis is discarded and the request fails.
package httpapi
