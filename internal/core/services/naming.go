package services

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/duxt-mcp/internal/core/domain"
)

var (
	camelBoundary  = regexp.MustCompile(`([a-z])([A-Z])`)
	separatorRun   = regexp.MustCompile(`[\s-]+`)
	routeParameter = regexp.MustCompile(`\[(\w+)\]`)
)

// columnTypes maps Dart and shorthand type names to ORM column types.
var columnTypes = map[string]string{
	"String":    "text",
	"string":    "text",
	"text":      "text",
	"int":       "integer",
	"integer":   "integer",
	"Int":       "integer",
	"double":    "real",
	"Double":    "real",
	"float":     "real",
	"bool":      "boolean",
	"Bool":      "boolean",
	"boolean":   "boolean",
	"DateTime":  "timestamp",
	"datetime":  "timestamp",
	"timestamp": "timestamp",
}

// ToSnakeCase converts "BlogPost" or "blog post" to "blog_post".
func ToSnakeCase(s string) string {
	s = camelBoundary.ReplaceAllString(s, "${1}_${2}")
	s = separatorRun.ReplaceAllString(s, "_")
	return strings.ToLower(s)
}

// SplitCamelCase inserts a space at each lower-to-upper boundary,
// so "HomePage" becomes "Home Page".
func SplitCamelCase(s string) string {
	return camelBoundary.ReplaceAllString(s, "${1} ${2}")
}

// DartColumnType returns the ORM column type for a Dart type name.
// Unknown types map to "text".
func DartColumnType(dartType string) string {
	if col, ok := columnTypes[dartType]; ok {
		return col
	}
	return "text"
}

// RouteToFilePath turns a route such as "/blog/[slug]/" into the page
// path "blog/[slug]". The root route maps to "index".
func RouteToFilePath(route string) string {
	route = strings.TrimPrefix(route, "/")
	route = strings.TrimSuffix(route, "/")
	if route == "" {
		return "index"
	}
	return route
}

// RouteParameter returns the first [name] parameter of a route, or "".
func RouteParameter(route string) string {
	m := routeParameter.FindStringSubmatch(route)
	if m == nil {
		return ""
	}
	return m[1]
}

// ParseFieldList parses "title:String, body:String" into fields.
// A missing type defaults to String; empty entries are skipped.
func ParseFieldList(s string) []domain.Field {
	var fields []domain.Field
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		pieces := strings.Split(part, ":")
		field := domain.Field{Name: strings.TrimSpace(pieces[0]), Type: "String"}
		if len(pieces) > 1 {
			if typ := strings.TrimSpace(pieces[1]); typ != "" {
				field.Type = typ
			}
		}
		fields = append(fields, field)
	}
	return fields
}
