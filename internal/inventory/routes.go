package inventory

import (
	"path"
	"regexp"
	"strings"
)

var (
	// numberPrefix matches ordering prefixes such as "01-" or "2. " that the generator strips from routes.
	numberPrefix = regexp.MustCompile(`^\d+\s*[-_.]+\s*([^-_.\s].*)$`)
	datePrefix   = regexp.MustCompile(`^\d{4}[-_.]\d{2}[-_.]\d{2}`)
	// blogDate captures the publication date encoded in a blog post's file or folder name.
	blogDate = regexp.MustCompile(`^(?:.*/)?(\d{4})[-/](\d{1,2})[-/](\d{1,2})[-/]?(.*)$`)
)

// stripExt removes a Markdown extension from a slash-separated path.
func stripExt(p string) string {
	return strings.TrimSuffix(p, path.Ext(p))
}

func stripNumberPrefix(segment string) string {
	if datePrefix.MatchString(segment) {
		return segment
	}
	if m := numberPrefix.FindStringSubmatch(segment); m != nil {
		return m[1]
	}
	return segment
}

// isIndexName reports whether a file name turns into its directory's route.
func isIndexName(name, dir string) bool {
	lower := strings.ToLower(name)
	return lower == "index" || lower == "readme" || (dir != "" && name == path.Base(dir))
}

// docID is the document identifier sidebars refer to: the extension-less path with the
// last segment replaced by the front matter id when present.
func docID(rel, fmID string) string {
	id := stripExt(rel)
	if fmID == "" {
		return id
	}
	if dir := path.Dir(id); dir != "." {
		return dir + "/" + fmID
	}
	return fmID
}

// docSlug derives a page's path below the instance's route base path.
func docSlug(rel, fmSlug string) string {
	dir := path.Dir(rel)
	if dir == "." {
		dir = ""
	}
	if fmSlug != "" {
		if strings.HasPrefix(fmSlug, "/") {
			return fmSlug
		}
		return path.Join("/", dir, fmSlug)
	}

	segments := strings.Split(stripExt(rel), "/")
	for i, s := range segments {
		segments[i] = stripNumberPrefix(s)
	}
	last := segments[len(segments)-1]
	parent := strings.Join(segments[:len(segments)-1], "/")
	if isIndexName(last, parent) {
		segments = segments[:len(segments)-1]
	}
	return path.Join(append([]string{"/"}, segments...)...)
}

// blogSlug derives a post's path below the blog's route base path.
func blogSlug(rel, fmSlug string) string {
	if fmSlug != "" {
		if strings.HasPrefix(fmSlug, "/") {
			return fmSlug
		}
		return path.Join("/", fmSlug)
	}

	p := stripExt(rel)
	if path.Base(p) == "index" {
		p = path.Dir(p)
	}
	if m := blogDate.FindStringSubmatch(p); m != nil {
		return path.Join("/", m[1], pad2(m[2]), pad2(m[3]), m[4])
	}
	return path.Join("/", p)
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// joinRoute builds an absolute route from the site base URL, a route base path and a slug.
func joinRoute(baseURL, routeBasePath, slug string) string {
	return path.Join("/", baseURL, routeBasePath, slug)
}
