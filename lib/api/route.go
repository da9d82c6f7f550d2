package api

import (
	"fmt"
	"net/http"
	"strings"
)

// Route is a parsed "METHOD /segment/{param}" pattern. A trailing
// "{any...}" segment matches the rest of the path.
type Route struct {
	method   string
	segments []urlSegment
	open     bool
}

type urlSegment struct {
	Value string
	Param bool
}

func NewRoute(pattern string) (route Route) {

	// Extract method
	methodSplit := strings.Split(pattern, " ")
	hasMethodSpecific := len(methodSplit) > 1 && strings.HasPrefix(methodSplit[1], "/")
	if hasMethodSpecific {
		route.method = methodSplit[0]
		pattern = strings.Join(methodSplit[1:], " ") // restore the pattern without the method
	} else {
		route.method = http.MethodGet // Default method if not specified
	}

	trimmed := strings.Trim(pattern, "/")
	if trimmed == "" {
		return
	}

	segmentsSplit := strings.Split(trimmed, "/")

	for i, s := range segmentsSplit {

		if s == "{any...}" && i == len(segmentsSplit)-1 {
			route.open = true
			route.segments = append(route.segments, urlSegment{"any", true})
			break
		}

		isParam := strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}")
		if isParam {
			s = strings.TrimLeft(s, "{")
			s = strings.TrimRight(s, "}")
			route.segments = append(route.segments, urlSegment{s, true})
		} else {
			route.segments = append(route.segments, urlSegment{s, false})
		}
	}

	return
}

func (route Route) Method() string {
	return route.method
}

// Pattern renders the route back in its "METHOD /path" form.
func (route Route) Pattern() string {
	sb := strings.Builder{}
	sb.WriteString(route.method)
	sb.WriteRune(' ')
	if len(route.segments) == 0 {
		sb.WriteRune('/')
	}
	for i, segment := range route.segments {
		sb.WriteRune('/')
		switch {
		case route.open && i == len(route.segments)-1:
			sb.WriteString("{any...}")
		case segment.Param:
			sb.WriteRune('{')
			sb.WriteString(segment.Value)
			sb.WriteRune('}')
		default:
			sb.WriteString(segment.Value)
		}
	}
	return sb.String()
}

// Path substitutes params, in order, for the route parameters.
func (route Route) Path(params ...string) (string, error) {

	sb := strings.Builder{}

	pi := 0

	for i, segment := range route.segments {

		sb.WriteRune('/')

		if !segment.Param {
			sb.WriteString(segment.Value)
			continue
		}

		if pi >= len(params) || params[pi] == "" {
			return "", fmt.Errorf("missing value '%s' for route '%s'", segment.Value, route.Pattern())
		}

		val := params[pi]
		pi++

		isTail := route.open && i == len(route.segments)-1
		if !isTail && strings.Contains(val, "/") {
			return "", fmt.Errorf("value '%s' for '%s' must not contain '/'", val, segment.Value)
		}

		sb.WriteString(strings.TrimLeft(val, "/"))
	}

	if pi < len(params) {
		return "", fmt.Errorf("route '%s' takes %d values, got %d", route.Pattern(), pi, len(params))
	}

	if sb.Len() == 0 {
		return "/", nil
	}

	return sb.String(), nil
}

// Match reports whether r targets the route and returns the parameter
// values in order.
func (route Route) Match(r *http.Request) (params []string, match bool) {

	if route.method != "{any}" && route.method != r.Method {
		return nil, false
	}

	trimmed := strings.Trim(r.URL.Path, "/")

	var urlSplit []string
	if trimmed != "" {
		urlSplit = strings.Split(trimmed, "/")
	}

	fixed := len(route.segments)
	if route.open {
		fixed--
	}

	if len(urlSplit) < fixed || (!route.open && len(urlSplit) != fixed) {
		return nil, false
	}

	for i := 0; i < fixed; i++ {
		segment := route.segments[i]
		if segment.Param {
			params = append(params, urlSplit[i])
			continue
		}
		if segment.Value != urlSplit[i] {
			return nil, false
		}
	}

	if route.open {
		params = append(params, strings.Join(urlSplit[fixed:], "/"))
	}

	return params, true
}
