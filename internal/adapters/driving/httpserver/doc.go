// Package httpserver serves the MCP endpoint over streamable HTTP together
// with a landing page, a health check and Prometheus metrics.
//
// Routes:
//
//	GET    /         landing page
//	GET    /health   JSON health report
//	POST   /mcp      MCP streamable HTTP (stateless, JSON responses)
//	GET    /mcp      405
//	DELETE /mcp      405
//	GET    /metrics  Prometheus exposition
package httpserver
